package handler

import (
	"errors"
	"net/http"
	"strconv"

	"score-server/internal/models"
	"score-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sendNotification delivers one push notification. The caller either names a
// registered fid or supplies the delivery details inline.
func (h *Handler) sendNotification(c *gin.Context) {
	var req sendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.dispatcher.Send(c.Request.Context(), service.SendRequest{
		FID:       req.FID,
		Details:   req.NotificationDetails,
		Title:     req.Title,
		Body:      req.Body,
		TargetURL: req.TargetURL,
	})
	if err != nil {
		if errors.Is(err, models.ErrNoNotificationDetails) {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrNoNotificationDetails.Error()})
			return
		}
		var gatewayErr *service.GatewayError
		if errors.As(err, &gatewayErr) {
			// Pass the gateway status through so the caller sees why delivery failed.
			c.JSON(gatewayErr.StatusCode, gin.H{
				"error":   "Failed to send notification",
				"details": gatewayErr.Body,
			})
			return
		}
		h.logger.Error("Notification dispatch failed", zap.Int64("fid", req.FID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, sendNotificationResponse{Success: true, Result: result})
}

// notificationStatus reports whether a fid has a registration and the total
// number of registered users. Diagnostics only, not a delivery decision input.
func (h *Handler) notificationStatus(c *gin.Context) {
	fidParam := c.Query("fid")
	if fidParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "FID required"})
		return
	}
	fid, err := strconv.ParseInt(fidParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "FID required"})
		return
	}

	ctx := c.Request.Context()
	enabled, err := h.store.Has(ctx, fid)
	if err != nil {
		h.logger.Error("Failed to check registration", zap.Int64("fid", fid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	total, err := h.store.Count(ctx)
	if err != nil {
		h.logger.Error("Failed to count registrations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, notificationStatusResponse{
		FID:                        fid,
		NotificationsEnabled:       enabled,
		TotalUsersWithNotification: total,
	})
}
