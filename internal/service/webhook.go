package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"score-server/internal/interfaces"
	"score-server/internal/models"

	"go.uber.org/zap"
)

// EventKind classifies the lifecycle event tags the platform sends. Unknown
// tags map to EventUnknown and are acknowledged without a store mutation.
type EventKind int

const (
	EventUnknown EventKind = iota
	// EventRegister covers tags that carry (or may carry) notification details.
	EventRegister
	// EventUnregister covers tags that revoke a registration.
	EventUnregister
)

// ClassifyEvent maps a raw event tag onto its EventKind. The frame_* tags are
// the legacy names for the mini_app_* tags and stay supported.
func ClassifyEvent(tag string) EventKind {
	switch tag {
	case "frame_added", "mini_app_added", "notifications_enabled":
		return EventRegister
	case "frame_removed", "mini_app_removed", "notifications_disabled":
		return EventUnregister
	default:
		return EventUnknown
	}
}

// WebhookProcessor translates platform lifecycle events into store mutations.
//
// The envelope signature is NOT verified: anyone who can reach the webhook
// endpoint with a plausibly shaped body can forge registration events. A
// production deployment must verify header/signature against the platform's
// key set before trusting the payload.
type WebhookProcessor struct {
	store  interfaces.NotificationStore
	logger *zap.Logger
}

// NewWebhookProcessor creates a WebhookProcessor over the given store.
func NewWebhookProcessor(store interfaces.NotificationStore, logger *zap.Logger) *WebhookProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookProcessor{
		store:  store,
		logger: logger.Named("WebhookProcessor"),
	}
}

// ProcessDirect handles the direct client report: the mini app SDK posts the
// frame_added event together with the notification details it received.
func (p *WebhookProcessor) ProcessDirect(ctx context.Context, fid int64, details models.NotificationDetails) error {
	p.logger.Info("Received direct notification registration", zap.Int64("fid", fid))
	return p.store.Set(ctx, fid, details)
}

// ProcessEnvelope handles the signed platform webhook. The payload is base64
// JSON; the event tag decides the store mutation. Unknown tags are logged and
// acknowledged so new platform events never fail the request.
func (p *WebhookProcessor) ProcessEnvelope(ctx context.Context, envelope models.WebhookEnvelope) error {
	raw, err := decodeBase64(envelope.Payload)
	if err != nil {
		return fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	var payload models.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal webhook payload: %w", err)
	}

	log := p.logger.With(zap.Int64("fid", payload.FID), zap.String("event", payload.Event))
	log.Info("Received webhook event")

	switch ClassifyEvent(payload.Event) {
	case EventRegister:
		if payload.NotificationDetails == nil {
			// Event acknowledged, nothing to store.
			log.Info("Register event without notification details, skipping")
			return nil
		}
		return p.store.Set(ctx, payload.FID, *payload.NotificationDetails)
	case EventUnregister:
		_, err := p.store.Delete(ctx, payload.FID)
		return err
	default:
		log.Info("Unknown event type, ignoring")
		return nil
	}
}

// decodeBase64 accepts the standard and the URL-safe alphabet, each with or
// without padding: Farcaster envelopes use base64url while older clients sent
// standard base64, and either may arrive padded.
func decodeBase64(s string) ([]byte, error) {
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	if raw, err := base64.URLEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	if raw, err := base64.RawStdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}
