package models

// NotificationDetails is the delivery capability for one account's client:
// the push gateway URL and the opaque token scoped to that account.
// Both fields are required together; there is no partial state.
type NotificationDetails struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// Complete reports whether both delivery fields are present.
func (d NotificationDetails) Complete() bool {
	return d.URL != "" && d.Token != ""
}

// WebhookEnvelope is the server-to-server webhook body sent by the Farcaster
// platform: three opaque fields, with the event buried in the base64 payload.
type WebhookEnvelope struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

// WebhookPayload is the decoded form of WebhookEnvelope.Payload.
type WebhookPayload struct {
	Event               string               `json:"event"`
	FID                 int64                `json:"fid"`
	NotificationDetails *NotificationDetails `json:"notificationDetails,omitempty"`
}

// PushRequest is the body posted to the push gateway named by a credential.
type PushRequest struct {
	NotificationID string   `json:"notificationId"`
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	TargetURL      string   `json:"targetUrl"`
	Tokens         []string `json:"tokens"`
}
