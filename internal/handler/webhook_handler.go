package handler

import (
	"net/http"

	"score-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleWebhook accepts Farcaster mini app lifecycle events, either reported
// directly by the client SDK or delivered as the platform's signed envelope.
func (h *Handler) handleWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()

	if req.isDirectReport() {
		if err := h.webhook.ProcessDirect(ctx, req.FID, *req.NotificationDetails); err != nil {
			h.logger.Error("Failed to save notification details", zap.Int64("fid", req.FID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification details saved"})
		return
	}

	if req.isEnvelope() {
		envelope := models.WebhookEnvelope{
			Header:    req.Header,
			Payload:   req.Payload,
			Signature: req.Signature,
		}
		if err := h.webhook.ProcessEnvelope(ctx, envelope); err != nil {
			h.logger.Error("Failed to process webhook envelope", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}
