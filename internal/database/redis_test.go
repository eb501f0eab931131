package database_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/models"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/logger"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := database.NewRedisClientWith(client, 5*time.Minute, logger.Discard())

	t.Cleanup(func() {
		cache.Close()
		mr.Close()
	})
	return mr, cache
}

func sampleUser() *models.User {
	now := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	return &models.User{
		ID:        42,
		Name:      "Ann",
		Email:     "a@b.com",
		Password:  "$2a$10$hash",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRedisClient_FillAndGetUser(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	ctx := context.Background()
	user := sampleUser()

	_, version, err := cache.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, cache.FillUser(ctx, user, version))

	got, _, err := cache.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.Email, got.Email)
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))

	// The hash never reaches the cache.
	assert.Empty(t, got.Password)
	raw, err := mr.Get("user:42")
	require.NoError(t, err)
	assert.NotContains(t, raw, "hash")

	assert.Equal(t, 5*time.Minute, mr.TTL("user:42"))
}

func TestRedisClient_GetUser_Miss(t *testing.T) {
	_, cache := setupMiniRedis(t)

	got, version, err := cache.GetUser(context.Background(), 7)

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, version)
}

func TestRedisClient_GetUser_InvalidJSON(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	mr.Set("user:9", "invalid json data")

	got, _, err := cache.GetUser(context.Background(), 9)

	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("user:9"))
}

func TestRedisClient_GetUser_BadVersion(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	mr.Set("user:9:version", "x")

	_, _, err := cache.GetUser(context.Background(), 9)

	assert.Error(t, err)
}

func TestRedisClient_InvalidateUser(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	ctx := context.Background()
	user := sampleUser()

	require.NoError(t, cache.FillUser(ctx, user, 0))
	require.NoError(t, cache.InvalidateUser(ctx, user.ID))

	assert.False(t, mr.Exists("user:42"))
	got, version, err := cache.GetUser(ctx, user.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int64(1), version)
	assert.Equal(t, 5*time.Minute, mr.TTL("user:42:version"))
}

func TestRedisClient_FillUser_StaleVersion(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	ctx := context.Background()

	// A reader saw version 0, then a write invalidated the record.
	_, version, err := cache.GetUser(ctx, 42)
	require.NoError(t, err)
	require.NoError(t, cache.InvalidateUser(ctx, 42))

	require.NoError(t, cache.FillUser(ctx, sampleUser(), version))
	assert.False(t, mr.Exists("user:42"))

	// A reader that started after the write may fill.
	_, version, err = cache.GetUser(ctx, 42)
	require.NoError(t, err)
	require.NoError(t, cache.FillUser(ctx, sampleUser(), version))
	assert.True(t, mr.Exists("user:42"))
}

func TestRedisClient_Expiry(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.FillUser(ctx, sampleUser(), 0))
	mr.FastForward(6 * time.Minute)

	got, _, err := cache.GetUser(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisClient_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache := database.NewRedisClientWith(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute, logger.Discard())
	defer cache.Close()
	mr.Close()

	ctx := context.Background()
	_, _, err = cache.GetUser(ctx, 42)
	assert.Error(t, err)
	assert.Error(t, cache.FillUser(ctx, sampleUser(), 0))
	assert.Error(t, cache.InvalidateUser(ctx, 42))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	cfg := &config.Config{RedisHost: "127.0.0.1", RedisPort: 1}

	_, err := database.NewRedisClient(cfg, logger.Discard())
	assert.Error(t, err)
}

func TestNewRedisClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.ParseInt(mr.Port(), 10, 64)
	require.NoError(t, err)

	cache, err := database.NewRedisClient(&config.Config{RedisHost: mr.Host(), RedisPort: port, UserCacheTTL: 30}, logger.Discard())
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.FillUser(context.Background(), sampleUser(), 0))
	assert.Equal(t, 30*time.Second, mr.TTL("user:42"))
}

func TestNoOpUserCache(t *testing.T) {
	var cache database.UserCache = database.NoOpUserCache{}
	ctx := context.Background()

	assert.NoError(t, cache.FillUser(ctx, sampleUser(), 0))
	got, version, err := cache.GetUser(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, version)
	assert.NoError(t, cache.InvalidateUser(ctx, 42))
	assert.NoError(t, cache.Close())
}
