// Package testutil builds the real stack on throwaway backends (in-memory
// SQLite, miniredis) for package tests.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/api"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/repository"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/service"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/handler"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/logger"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/middleware"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

// ValidPassword satisfies every password rule.
const ValidPassword = "Abcdef1@"

// NewDB opens a private in-memory SQLite database with migrations applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.OpenSQLite(context.Background(), dsn, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// NewValidator builds a validator over the embedded rules.
func NewValidator(t testing.TB, locale string) *validation.Validator {
	t.Helper()
	v, err := validation.NewDefault(locale)
	require.NoError(t, err)
	return v
}

// NewRedis starts miniredis and wraps it in a user cache.
func NewRedis(t testing.TB) (*miniredis.Miniredis, *database.RedisClient) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := database.NewRedisClientWith(client, time.Hour, logger.Discard())

	t.Cleanup(func() {
		_ = cache.Close()
		mr.Close()
	})
	return mr, cache
}

// Config returns a config suitable for tests.
func Config() *config.Config {
	return &config.Config{
		AppEnv:                "test",
		ApiPrefix:             "/api",
		DatabaseDriver:        config.DriverSQLite,
		JWTSecret:             "test-secret",
		AccessTokenExpiration: 900,
		ValidationLocale:      "pt_BR",
	}
}

// Stack is a fully wired API over test backends.
type Stack struct {
	Config    *config.Config
	DB        *gorm.DB
	Repo      repository.UserRepository
	Validator *validation.Validator
	Users     service.UserService
	Auth      service.AuthService
	Router    *gin.Engine
}

// NewStack wires repository, services, handlers and router the way the
// server does, with a cheap bcrypt cost and no cache.
func NewStack(t testing.TB) *Stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := Config()
	log := logger.Discard()
	db := NewDB(t)
	v := NewValidator(t, cfg.ValidationLocale)

	repo := repository.NewUserRepository(db)
	users := service.NewUserService(repo, nil, v, log, service.WithHashCost(bcrypt.MinCost))
	auth := service.NewAuthService(repo, cfg, log)

	router := api.SetupRouter(
		cfg.ApiPrefix,
		handler.NewUserHandler(users, v, log),
		handler.NewAuthHandler(auth, users, log),
		middleware.NewAuthMiddleware(auth, log),
		log,
	)

	return &Stack{
		Config:    cfg,
		DB:        db,
		Repo:      repo,
		Validator: v,
		Users:     users,
		Auth:      auth,
		Router:    router,
	}
}

// NewServer serves a fresh stack over HTTP. The returned URL includes the
// API prefix.
func NewServer(t testing.TB) (*Stack, string) {
	t.Helper()
	stack := NewStack(t)
	srv := httptest.NewServer(stack.Router)
	t.Cleanup(srv.Close)
	return stack, srv.URL + stack.Config.ApiPrefix
}
