package handler

import (
	"errors"
	"net/http"
	"strconv"

	"score-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultSearchLimit = 5

// getUser proxies a Neynar profile lookup by fid or username and returns the
// flattened profile with the resolved score.
func (h *Handler) getUser(c *gin.Context) {
	fidParam := c.Query("fid")
	username := c.Query("username")

	if fidParam == "" && username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either fid or username is required"})
		return
	}

	ctx := c.Request.Context()
	var (
		user *models.UserProfile
		err  error
	)
	if fidParam != "" {
		fid, parseErr := strconv.ParseInt(fidParam, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Either fid or username is required"})
			return
		}
		user, err = h.neynar.GetUserByFID(ctx, fid)
	} else {
		user, err = h.neynar.GetUserByUsername(ctx, username)
	}

	if err != nil {
		h.respondNeynarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"score": newScoreSummary(user.NeynarScore),
	})
}

// searchUsers proxies a Neynar user search.
func (h *Handler) searchUsers(c *gin.Context) {
	var req searchUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}
	if req.Limit <= 0 || req.Limit > defaultSearchLimit {
		req.Limit = defaultSearchLimit
	}

	users, err := h.neynar.SearchUsers(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		h.respondNeynarError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *Handler) respondNeynarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrAPIKeyMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": models.ErrAPIKeyMissing.Error()})
	case errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrUserNotFound.Error()})
	default:
		h.logger.Error("Neynar request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
	}
}
