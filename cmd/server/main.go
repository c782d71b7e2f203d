package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/stitchpos/backend/internal/application/catalog"
	inventoryapp "github.com/stitchpos/backend/internal/application/inventory"
	orderapp "github.com/stitchpos/backend/internal/application/order"
	partnerapp "github.com/stitchpos/backend/internal/application/partner"
	"github.com/stitchpos/backend/internal/infrastructure/config"
	"github.com/stitchpos/backend/internal/infrastructure/logger"
	"github.com/stitchpos/backend/internal/infrastructure/persistence"
	"github.com/stitchpos/backend/internal/interfaces/http/handler"
	"github.com/stitchpos/backend/internal/interfaces/http/middleware"
	"github.com/stitchpos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
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

	log.Info("Starting tailoring POS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
	fabricRepo := persistence.NewGormFabricRepository(db.DB)
	accessoryRepo := persistence.NewGormAccessoryRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	stitchingOrderRepo := persistence.NewGormStitchingOrderRepository(db.DB)
	retailOrderRepo := persistence.NewGormRetailOrderRepository(db.DB)

	// Initialize application services
	inventoryService := inventoryapp.NewService(fabricRepo, accessoryRepo, stitchingOrderRepo)
	catalogService := catalogapp.NewService(itemRepo)
	customerService := partnerapp.NewService(customerRepo)
	stitchingService := orderapp.NewStitchingService(stitchingOrderRepo, fabricRepo, accessoryRepo, log)
	retailService := orderapp.NewRetailService(retailOrderRepo, itemRepo, log)

	// Initialize HTTP handlers
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	customerHandler := handler.NewCustomerHandler(customerService)
	stitchingOrderHandler := handler.NewStitchingOrderHandler(stitchingService)
	retailOrderHandler := handler.NewRetailOrderHandler(retailService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Apply middleware stack in order:
	// 1. RequestID - generate/propagate request ID
	// 2. Recovery - catch panics
	// 3. Logger - log requests
	// 4. Security - add security headers
	// 5. CORS - handle cross-origin requests
	// 6. BodyLimit - limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(1 << 20))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(inventoryHandler).
		Register(catalogHandler).
		Register(customerHandler).
		Register(stitchingOrderHandler).
		Register(retailOrderHandler).
		Register(systemHandler)
	r.Setup()

	// Simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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
