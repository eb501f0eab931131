package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/api"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/repository"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/service"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/handler"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/logger"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/middleware"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/worker"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, appLogger)
	stop()

	if err != nil {
		appLogger.Error("❌ [Go] User API stopped with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("👋 [Go] User API stopped")
}

// run serves until ctx is done or the server fails. Everything it opens is
// closed before it returns, on every path.
func run(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) error {
	appLogger.Info("🚀 [Go] Starting user API...",
		"environment", cfg.AppEnv,
		"driver", cfg.DatabaseDriver,
	)

	// 3. Connect to Database
	db, err := database.ConnectDatabase(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Warn("⚠️ [Database] Close failed", "error", err)
			return
		}
		appLogger.Info("🔒 [Database] Connection closed")
	}()

	// 4. Initialize Redis user cache
	var cache database.UserCache = database.NoOpUserCache{}
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis", "error", err)
		appLogger.Info("💡 User lookups will go straight to the database (no Redis caching)")
	} else {
		cache = redisClient
	}
	defer func() {
		if err := cache.Close(); err != nil {
			appLogger.Warn("⚠️ [Redis] Close failed", "error", err)
			return
		}
		appLogger.Info("🔒 [Redis] Cache closed")
	}()

	// 5. Validation rules
	validator, err := validation.NewDefault(cfg.ValidationLocale)
	if err != nil {
		return fmt.Errorf("load validation rules: %w", err)
	}

	// 6. Repositories & Services
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo, cache, validator, appLogger)
	authService := service.NewAuthService(userRepo, cfg, appLogger)

	// 7. Handlers, Middleware & Router
	userHandler := handler.NewUserHandler(userService, validator, appLogger)
	authHandler := handler.NewAuthHandler(authService, userService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.SetupRouter(cfg.ApiPrefix, userHandler, authHandler, authMiddleware, appLogger)

	// 8. Start HTTP Server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ApiServicePort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	pool := worker.NewPool(ctx, appLogger)

	pool.Submit("http-server", func(ctx context.Context) error {
		appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", srv.Addr, "prefix", cfg.ApiPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	pool.Submit("http-shutdown", func(ctx context.Context) error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// Runs until a signal arrives or the server fails.
	<-pool.Context().Done()

	return pool.Shutdown(cfg.ShutdownTimeout + time.Second)
}
