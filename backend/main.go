package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"learnhub/backend/cache"
	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/routes"
	"learnhub/backend/storage"
	"learnhub/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{
		Format:       cfg.LogFormat,
		Output:       os.Stdout,
		EnableColors: cfg.LogColors,
		Level:        zap.InfoLevel,
	})
	defer func() { _ = logger.Sync() }()

	// Initialize database
	db, err := utils.InitDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Error initializing database", "error", err)
	}

	catalogCache := newCache(cfg, logger)
	store := storage.NewSupabaseStore(cfg.StorageURL, cfg.StorageKey, cfg.AvatarBucket)
	if cfg.StorageURL == "" {
		logger.Warn("STORAGE_URL is empty, avatar uploads will fail")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             int(cfg.MaxAvatarBytes) + 1<<20,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, routes.Deps{
		DB:    db,
		Cfg:   cfg,
		Log:   logger,
		Cache: catalogCache,
		Store: store,
	})

	go func() {
		logger.Infow("listening", "port", cfg.ServerPort)
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Fatalw("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Errorw("shutdown", "error", err)
	}
	if closer, ok := catalogCache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newCache uses redis when REDIS_URL is set and reachable, otherwise an
// in-process cache.
func newCache(cfg *config.Config, logger *zap.SugaredLogger) cache.Cache {
	if cfg.RedisURL == "" {
		return cache.NewMemory()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rc, err := cache.NewRedis(ctx, cfg.RedisURL, "learnhub")
	if err != nil {
		logger.Warnw("redis unavailable, using in-memory cache", "error", err)
		return cache.NewMemory()
	}
	return rc
}
