package models

import "errors"

var (
	// ErrNoNotificationDetails means no complete delivery credential could be
	// resolved for a dispatch request. Reported to the caller as 400.
	ErrNoNotificationDetails = errors.New("no notification details found for this user")

	// ErrUserNotFound means the upstream Neynar API returned no user.
	ErrUserNotFound = errors.New("user not found")

	// ErrAPIKeyMissing means the Neynar API key is not configured.
	ErrAPIKeyMissing = errors.New("neynar API key not configured")

	ErrTokenMissing = errors.New("missing authorization token")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
