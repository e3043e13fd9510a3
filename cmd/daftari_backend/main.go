package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/amrmohammed249/daftari/internal/adapters/snapshot"
	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/core/ports/repositories"
	"github.com/amrmohammed249/daftari/internal/core/services"
	"github.com/amrmohammed249/daftari/internal/handlers"
	"github.com/amrmohammed249/daftari/internal/middleware"
	"github.com/amrmohammed249/daftari/internal/platform/config"
)

// @title Daftari Backend API
// @version 1.0
// @description Transactional accounting and inventory backend.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Pick the snapshot store: Postgres when configured, JSON file otherwise.
	var store repositories.SnapshotStore
	if cfg.SnapshotPgsqlURL != "" {
		pgStore, err := snapshot.NewPgStore(ctx, cfg.SnapshotPgsqlURL)
		if err != nil {
			logger.Error("Failed to initialize Postgres snapshot store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pgStore.Close()
		store = pgStore
		logger.Info("Using Postgres snapshot store")
	} else {
		fileStore, err := snapshot.NewFileStore(cfg.SnapshotDir)
		if err != nil {
			logger.Error("Failed to initialize file snapshot store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		store = fileStore
		logger.Info("Using file snapshot store", slog.String("dir", cfg.SnapshotDir))
	}

	// Load the dataset, or bootstrap a fresh one.
	state, found, err := services.LoadState(ctx, store, cfg.SnapshotKey)
	if err != nil {
		logger.Error("Failed to load snapshot", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !found {
		logger.Info("No snapshot found, starting with a fresh dataset")
		state = engine.NewDefaultState()
		state.Settings.AllowNegativeStock = cfg.AllowNegativeStock
	} else {
		logger.Info("Snapshot loaded", slog.Int64("version", state.Version))
	}
	engine.EnsureControlAccounts(state)

	eng := engine.New(state)

	saver := services.NewSaver(eng, store, cfg.SnapshotKey, cfg.SnapshotDebounce, logger)
	eng.SetCommitHook(saver.Notify)
	saver.Start()
	defer saver.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		}); err != nil {
			logger.Error("Failed to register validator", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, eng, saver)

	// Flush the snapshot on SIGINT/SIGTERM before exiting.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logger.Info("Shutting down, flushing snapshot")
		saver.Close()
		time.Sleep(100 * time.Millisecond)
		os.Exit(0)
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
