package handler

import (
	"encoding/json"

	"score-server/internal/models"
	"score-server/internal/neynar"
)

// webhookRequest covers both accepted webhook shapes: the direct client report
// (event/fid/notificationDetails) and the platform envelope
// (header/payload/signature). Which variant applies is decided by field presence.
type webhookRequest struct {
	Event               string                      `json:"event"`
	FID                 int64                       `json:"fid"`
	NotificationDetails *models.NotificationDetails `json:"notificationDetails"`

	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

func (r *webhookRequest) isDirectReport() bool {
	return r.Event == "frame_added" && r.FID != 0 && r.NotificationDetails != nil
}

func (r *webhookRequest) isEnvelope() bool {
	return r.Header != "" && r.Payload != "" && r.Signature != ""
}

type sendNotificationRequest struct {
	FID                 int64                       `json:"fid"`
	NotificationDetails *models.NotificationDetails `json:"notificationDetails"`
	Title               string                      `json:"title" binding:"required"`
	Body                string                      `json:"body" binding:"required"`
	TargetURL           string                      `json:"targetUrl"`
}

type sendNotificationResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

type notificationStatusResponse struct {
	FID                        int64 `json:"fid"`
	NotificationsEnabled       bool  `json:"notificationsEnabled"`
	TotalUsersWithNotification int64 `json:"totalUsersWithNotifications"`
}

type searchUsersRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// scoreSummary presents the user's Neynar score band with its display
// attributes, so clients render the verdict without duplicating thresholds.
type scoreSummary struct {
	Level       neynar.ScoreLevel `json:"level"`
	Label       string            `json:"label"`
	Color       string            `json:"color"`
	Description string            `json:"description"`
	Tips        []string          `json:"tips"`
}

func newScoreSummary(score float64) scoreSummary {
	level := neynar.GetScoreLevel(score)
	return scoreSummary{
		Level:       level,
		Label:       neynar.GetScoreLabel(level),
		Color:       neynar.GetScoreColor(level),
		Description: neynar.GetScoreDescription(level),
		Tips:        neynar.GetScoreTips(level),
	}
}

type verifyResponse struct {
	Verified bool     `json:"verified"`
	FID      string   `json:"fid"`
	Iss      string   `json:"iss,omitempty"`
	Aud      []string `json:"aud,omitempty"`
	Exp      int64    `json:"exp,omitempty"`
}
