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

	appshipping "github.com/maplecart/backend/internal/application/shipping"
	"github.com/maplecart/backend/internal/infrastructure/carrier"
	"github.com/maplecart/backend/internal/infrastructure/config"
	"github.com/maplecart/backend/internal/infrastructure/logger"
	"github.com/maplecart/backend/internal/infrastructure/persistence"
	"github.com/maplecart/backend/internal/infrastructure/scheduler"
	"github.com/maplecart/backend/internal/interfaces/http/handler"
	"github.com/maplecart/backend/internal/interfaces/http/middleware"
	"github.com/maplecart/backend/internal/interfaces/http/router"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting MapleCart shipping backend",
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
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	methodRepo := persistence.NewGormShippingMethodRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	sitewideRepo := persistence.NewGormSiteSettingsRepository(db.DB)

	// Initialize the carrier API client
	carrierConfig := &carrier.CanadaPostConfig{
		ProdBaseURL:    cfg.Carrier.ProdBaseURL,
		DevBaseURL:     cfg.Carrier.DevBaseURL,
		TimeoutSeconds: cfg.Carrier.TimeoutSeconds,
	}
	gateway, err := carrier.NewCanadaPostClient(carrierConfig)
	if err != nil {
		log.Fatal("Invalid carrier client configuration", zap.Error(err))
	}

	// Initialize application services
	resolver := appshipping.NewSettingsResolver(sitewideRepo, log)
	ratingService := appshipping.NewRatingService(gateway, resolver, log)
	trackingService := appshipping.NewTrackingService(gateway, resolver, shipmentRepo, storeRepo, log)

	// Start the periodic tracking refresh (if enabled)
	if cfg.Scheduler.Enabled {
		trigger := scheduler.NewTrackingTrigger(scheduler.TrackingTriggerConfig{
			Interval:       cfg.Scheduler.TrackingInterval,
			RefreshTimeout: 10 * time.Minute,
		}, trackingService, log)
		if err := trigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start tracking trigger", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := trigger.Stop(stopCtx); err != nil {
				log.Error("Error stopping tracking trigger", zap.Error(err))
			}
		}()
	}

	// Initialize HTTP handlers
	storeHandler := handler.NewStoreHandler(storeRepo, log)
	methodHandler := handler.NewShippingMethodHandler(methodRepo, log)
	ratesHandler := handler.NewRatesHandler(ratingService, storeRepo, methodRepo, log)
	trackingHandler := handler.NewTrackingHandler(trackingService, storeRepo, log)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(storeHandler).
		Register(methodHandler).
		Register(ratesHandler).
		Register(trackingHandler).
		Register(systemHandler)
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
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.FromGin(c)
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
