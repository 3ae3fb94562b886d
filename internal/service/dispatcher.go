package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"score-server/internal/interfaces"
	"score-server/internal/models"

	"go.uber.org/zap"
)

// GatewayError is returned when the push gateway answers with a non-success
// status. It carries the upstream status and body so the handler can pass
// them through to the caller.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("push gateway returned status %d: %s", e.StatusCode, e.Body)
}

// SendRequest describes one notification delivery. Details, when set, bypass
// the store lookup; otherwise FID selects the stored registration.
type SendRequest struct {
	FID       int64
	Details   *models.NotificationDetails
	Title     string
	Body      string
	TargetURL string
}

// Dispatcher delivers a single push notification per invocation. No retries,
// no batching: a gateway failure or timeout is terminal for the request.
type Dispatcher struct {
	store      interfaces.NotificationStore
	httpClient *http.Client
	appURL     string
	logger     *zap.Logger
}

// NewDispatcher creates a Dispatcher. appURL is the default notification
// target when the caller supplies none.
func NewDispatcher(store interfaces.NotificationStore, httpClient *http.Client, appURL string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		store:      store,
		httpClient: httpClient,
		appURL:     appURL,
		logger:     logger.Named("Dispatcher"),
	}
}

// Send resolves the delivery credential and posts one push request to the
// gateway. Returns the gateway's parsed JSON response on success.
// Returns models.ErrNoNotificationDetails without any outbound call when no
// complete credential resolves, and *GatewayError on a non-success response.
func (d *Dispatcher) Send(ctx context.Context, req SendRequest) (json.RawMessage, error) {
	details := req.Details
	if details == nil && req.FID != 0 {
		stored, err := d.store.Get(ctx, req.FID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up notification details: %w", err)
		}
		details = stored
	}

	if details == nil || !details.Complete() {
		return nil, models.ErrNoNotificationDetails
	}

	targetURL := req.TargetURL
	if targetURL == "" {
		targetURL = d.appURL
	}

	fidPart := "unknown"
	if req.FID != 0 {
		fidPart = strconv.FormatInt(req.FID, 10)
	}

	push := models.PushRequest{
		NotificationID: fmt.Sprintf("neynar-score-%s-%d", fidPart, time.Now().UnixMilli()),
		Title:          req.Title,
		Body:           req.Body,
		TargetURL:      targetURL,
		Tokens:         []string{details.Token},
	}

	body, err := json.Marshal(push)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, details.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create push request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log := d.logger.With(zap.Int64("fid", req.FID), zap.String("notificationId", push.NotificationID))
	log.Info("Sending push notification", zap.String("title", req.Title))

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		// A timeout is treated the same as a gateway failure: terminal, no retry.
		log.Error("Push gateway request failed", zap.Error(err))
		return nil, fmt.Errorf("push gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read push gateway response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("Push gateway rejected notification",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	log.Info("Push notification sent")
	return json.RawMessage(respBody), nil
}
