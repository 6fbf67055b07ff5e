package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"

	"github.com/onewave/qrcheckin-backend/internal/config"
	"github.com/onewave/qrcheckin-backend/internal/database"
	"github.com/onewave/qrcheckin-backend/internal/handlers"
	"github.com/onewave/qrcheckin-backend/internal/middleware"
	"github.com/onewave/qrcheckin-backend/internal/services"
	"github.com/onewave/qrcheckin-backend/internal/utils"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting QRCheckin Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize Firestore connection
	logger.Info("Connecting to Firestore...")
	ctx := context.Background()
	db, err := database.NewConnection(ctx, cfg.Firestore)
	if err != nil {
		logger.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatalf("Failed to ping Firestore: %v", err)
	}
	logger.Infof("Firestore connection established (project: %s)", cfg.Firestore.ProjectID)

	// Initialize repositories
	participantRepo := database.NewParticipantRepository(db)
	staffRepo := database.NewStaffRepository(db)
	ledgerRepo := database.NewLedgerRepository(db)
	eventRepo := database.NewEventRepository(db)
	discordRepo := database.NewDiscordRepository(db)
	transitionRepo := database.NewTransitionRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	clock := services.NewSystemClock()
	searchService := services.NewSearchService(participantRepo, staffRepo)
	checkinService := services.NewCheckinService(participantRepo, staffRepo, ledgerRepo, transitionRepo, clock, logger)
	adminService := services.NewAdminService(participantRepo, staffRepo, ledgerRepo, clock, logger)
	dashboardService := services.NewDashboardService(eventRepo, ledgerRepo, clock)
	syncService := services.NewSyncService(discordRepo, participantRepo, clock, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	checkinHandler := handlers.NewCheckinHandler(searchService, checkinService)
	adminHandler := handlers.NewAdminHandler(adminService, syncService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API routes
	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "QRCheckin API Online"})
		})

		// Kiosk routes (public)
		api.GET("/search", checkinHandler.Search)
		api.POST("/checkin", checkinHandler.CheckIn)

		// Admin routes (password protected)
		admin := api.Group("")
		admin.Use(middleware.PasswordAuth(cfg.Auth))
		{
			admin.GET("/members", adminHandler.GetMembers)
			admin.GET("/participants", adminHandler.GetParticipants)
			admin.PUT("/participants/:id", adminHandler.UpdateParticipant)
			admin.GET("/dashboard/stats", dashboardHandler.Stats)
			admin.GET("/realtime/checkin", dashboardHandler.Realtime)
			admin.POST("/sync-discord", adminHandler.SyncDiscord)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		ua := user_agent.New(c.Request.UserAgent())
		browser, browserVersion := ua.Browser()

		fields := logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         utils.GetRealIP(c),
			"latency_ms": latency.Milliseconds(),
			"browser":    fmt.Sprintf("%s %s", browser, browserVersion),
			"mobile":     ua.Mobile(),
		}

		if isMaster, exists := c.Get(middleware.IsMasterKey); exists {
			fields["is_master"] = isMaster
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db *database.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
