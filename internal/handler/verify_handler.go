package handler

import (
	"errors"
	"net/http"

	"score-server/internal/models"

	"github.com/gin-gonic/gin"
)

// verifyToken decodes the Quick Auth bearer token and returns the caller's fid.
func (h *Handler) verifyToken(c *gin.Context) {
	claims, err := h.verifier.DecodeBearer(c.GetHeader("Authorization"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTokenMissing):
			c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrTokenMissing.Error()})
		case errors.Is(err, models.ErrTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrTokenExpired.Error()})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrTokenInvalid.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, verifyResponse{
		Verified: true,
		FID:      claims.Subject,
		Iss:      claims.Issuer,
		Aud:      claims.Audience,
		Exp:      claims.ExpiresAt,
	})
}
