package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"score-server/internal/authutils"
	"score-server/internal/config"
	"score-server/internal/handler"
	"score-server/internal/interfaces"
	"score-server/internal/logger"
	"score-server/internal/middleware"
	"score-server/internal/neynar"
	"score-server/internal/service"
	"score-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// --- Notification store ---
	// Redis when configured, otherwise the in-memory store (registrations are
	// then lost on restart).
	var notificationStore interfaces.NotificationStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
		defer redisClient.Close()
		notificationStore = store.NewRedisStore(redisClient, log)
		zap.L().Info("Using Redis notification store", zap.String("addr", cfg.RedisAddr))
	} else {
		notificationStore = store.NewMemoryStore(log)
		zap.L().Warn("REDIS_ADDR not set, using in-memory notification store (registrations do not survive restarts)")
	}

	// --- Dependency Injection ---
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	webhookProcessor := service.NewWebhookProcessor(notificationStore, log)
	dispatcher := service.NewDispatcher(notificationStore, httpClient, cfg.AppURL, log)
	neynarClient := neynar.NewClient(httpClient, cfg.NeynarAPIURL, cfg.NeynarAPIKey, log)
	if !neynarClient.Configured() {
		zap.L().Warn("NEYNAR_API_KEY not set, /api/user endpoints will fail")
	}
	verifier := authutils.NewQuickAuthVerifier(log)

	appHandler := handler.NewHandler(notificationStore, webhookProcessor, dispatcher, neynarClient, verifier, cfg, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	// Configure CORS Middleware. The webhook and notification endpoints are
	// called cross-origin from the mini app client, so the preflight must
	// permit POST with a Content-Type header.
	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Health Check Endpoint
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Register Application Routes
	appHandler.RegisterRoutes(router)

	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server stopped")
}
