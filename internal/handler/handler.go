package handler

import (
	"score-server/internal/authutils"
	"score-server/internal/config"
	"score-server/internal/interfaces"
	"score-server/internal/neynar"
	"score-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler wires the HTTP surface of the mini app backend.
type Handler struct {
	store      interfaces.NotificationStore
	webhook    *service.WebhookProcessor
	dispatcher *service.Dispatcher
	neynar     *neynar.Client
	verifier   *authutils.QuickAuthVerifier
	cfg        *config.Config
	logger     *zap.Logger
}

// NewHandler creates the Handler with its collaborators.
func NewHandler(
	store interfaces.NotificationStore,
	webhook *service.WebhookProcessor,
	dispatcher *service.Dispatcher,
	neynarClient *neynar.Client,
	verifier *authutils.QuickAuthVerifier,
	cfg *config.Config,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:      store,
		webhook:    webhook,
		dispatcher: dispatcher,
		neynar:     neynarClient,
		verifier:   verifier,
		cfg:        cfg,
		logger:     logger.Named("Handler"),
	}
}

// RegisterRoutes registers all application routes. OPTIONS preflights are
// answered by the CORS middleware installed in main.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/webhook", h.handleWebhook)
		api.POST("/notification", h.sendNotification)
		api.GET("/notification", h.notificationStatus)
		api.GET("/user", h.getUser)
		api.POST("/user", h.searchUsers)
		api.POST("/verify", h.verifyToken)
	}

	router.GET("/.well-known/farcaster.json", h.manifest)
}
