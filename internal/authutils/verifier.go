// Package authutils decodes Farcaster Quick Auth tokens.
package authutils

import (
	"fmt"
	"strings"
	"time"

	"score-server/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// QuickAuthClaims are the claims surfaced from a Quick Auth token.
// Subject carries the fid as a string.
type QuickAuthClaims struct {
	Subject   string   `json:"sub"`
	Issuer    string   `json:"iss"`
	Audience  []string `json:"aud"`
	ExpiresAt int64    `json:"exp"`
}

// QuickAuthVerifier decodes Quick Auth bearer tokens.
//
// The signature is NOT checked: this mirrors the demo-mode behavior of the
// source system. A production deployment must verify against the Quick Auth
// server's JWKS instead of trusting the decoded claims.
type QuickAuthVerifier struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewQuickAuthVerifier creates a QuickAuthVerifier.
func NewQuickAuthVerifier(logger *zap.Logger) *QuickAuthVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuickAuthVerifier{
		logger: logger.Named("QuickAuthVerifier"),
		now:    time.Now,
	}
}

// DecodeBearer extracts the token from an Authorization header value and
// decodes it. Returns models.ErrTokenMissing when the header is absent or not
// a Bearer scheme.
func (v *QuickAuthVerifier) DecodeBearer(authHeader string) (*QuickAuthClaims, error) {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, models.ErrTokenMissing
	}
	return v.Decode(strings.TrimPrefix(authHeader, "Bearer "))
}

// Decode parses the token without signature verification, requires a subject
// and rejects expired tokens.
func (v *QuickAuthVerifier) Decode(tokenString string) (*QuickAuthClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		v.logger.Warn("Failed to parse token", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrTokenInvalid, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, models.ErrTokenInvalid
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, models.ErrTokenInvalid
	}
	if exp != nil && exp.Before(v.now()) {
		return nil, models.ErrTokenExpired
	}

	iss, _ := claims.GetIssuer()
	aud, _ := claims.GetAudience()

	result := &QuickAuthClaims{
		Subject:  sub,
		Issuer:   iss,
		Audience: []string(aud),
	}
	if exp != nil {
		result.ExpiresAt = exp.Unix()
	}
	return result, nil
}
