package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountapp "github.com/ljwebdevelopment/booth-rent-pro/internal/application/account"
	billingapp "github.com/ljwebdevelopment/booth-rent-pro/internal/application/billing"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/auth"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/config"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/event"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/logger"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/infrastructure/persistence"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/interfaces/http/handler"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/interfaces/http/middleware"
	"github.com/ljwebdevelopment/booth-rent-pro/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting BoothRent Pro",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	renterRepo := persistence.NewGormRenterRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	renterEventRepo := persistence.NewGormRenterEventRepository(db.DB)
	profileRepo := persistence.NewGormBusinessProfileRepository(db.DB)
	inviteRepo := persistence.NewGormInviteRepository(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Initialize application services
	billingService := billingapp.NewBillingService(renterRepo, ledgerRepo, eventBus, log)
	renterService := billingapp.NewRenterService(renterRepo, ledgerRepo, renterEventRepo, billingService, eventBus, log)
	ledgerService := billingapp.NewLedgerService(renterRepo, ledgerRepo, renterEventRepo, eventBus, log)
	bulkChargeService := billingapp.NewBulkChargeService(renterRepo, ledgerRepo, eventBus, log)
	lifecycleService := billingapp.NewLifecycleService(renterRepo, ledgerRepo, renterEventRepo, eventBus, log, cfg.Billing.DeleteBatchSize)
	profileService := accountapp.NewProfileService(profileRepo, log)
	inviteService := accountapp.NewInviteService(inviteRepo, log)

	// Summary projection keeps month summaries fresh as ledger entries land
	summaryProjection := billingapp.NewSummaryProjection(renterRepo, ledgerRepo, log)
	eventBus.Subscribe(summaryProjection, summaryProjection.EventTypes()...)
	log.Info("Summary projection registered",
		zap.Strings("event_types", summaryProjection.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	renterHandler := handler.NewRenterHandler(renterService, lifecycleService, billingService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService, bulkChargeService)
	accountHandler := handler.NewAccountHandler(profileService, inviteService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, CORS
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// API routes behind JWT authentication
	r := router.New(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	}))

	r.MountFunc("/renters", func(rg *gin.RouterGroup) {
		rg.POST("", renterHandler.Create)
		rg.GET("", renterHandler.List)
		rg.GET("/summaries", renterHandler.ListWithSummaries)
		rg.GET("/:id", renterHandler.GetByID)
		rg.GET("/:id/detail", renterHandler.GetDetail)
		rg.PUT("/:id", renterHandler.Update)
		rg.POST("/:id/archive", renterHandler.Archive)
		rg.POST("/:id/restore", renterHandler.Restore)
		rg.DELETE("/:id", middleware.RequireOwner(), renterHandler.PermanentlyDelete)
		rg.POST("/:id/charges/ensure", renterHandler.EnsureCharge)
		rg.GET("/:id/history", renterHandler.GetHistory)
		rg.GET("/:id/summary", renterHandler.GetMonthSummary)
		rg.GET("/:id/ledger", ledgerHandler.ListForRenter)
		rg.POST("/:id/payments", ledgerHandler.RecordPayment)
		rg.POST("/:id/charges", ledgerHandler.RecordCharge)
		rg.POST("/:id/reminders", ledgerHandler.MarkReminderSent)
	})

	r.MountFunc("/charges", func(rg *gin.RouterGroup) {
		rg.POST("/bulk", ledgerHandler.BulkCharge)
	})

	r.MountFunc("/account", func(rg *gin.RouterGroup) {
		rg.GET("/profile", accountHandler.GetProfile)
		rg.PUT("/profile", accountHandler.UpsertProfile)
		rg.POST("/invites", middleware.RequireOwner(), accountHandler.CreateInvite)
		rg.GET("/invites", accountHandler.ListInvites)
		rg.POST("/invites/:id/accept", accountHandler.AcceptInvite)
		rg.DELETE("/invites/:id", middleware.RequireOwner(), accountHandler.RevokeInvite)
	})

	r.MountFunc("/system", func(rg *gin.RouterGroup) {
		rg.GET("/info", systemHandler.GetSystemInfo)
		rg.GET("/ping", systemHandler.Ping)
	})

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
