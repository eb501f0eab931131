package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/models"
)

// RedisClient wraps the redis client with helper methods for the user cache
type RedisClient struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*RedisClient, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDB,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return NewRedisClientWith(client, time.Duration(cfg.UserCacheTTL)*time.Second, logger), nil
}

// NewRedisClientWith wraps an existing redis.Client (tests point it at miniredis)
func NewRedisClientWith(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisClient {
	return &RedisClient{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

func userKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func versionKey(id uint) string {
	return fmt.Sprintf("user:%d:version", id)
}

// cachedUser mirrors models.User without the password hash, which never
// leaves the database.
type cachedUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RedisClient) GetUser(ctx context.Context, id uint) (*models.User, int64, error) {
	vals, err := r.client.MGet(ctx, userKey(id), versionKey(id)).Result()
	if err != nil {
		r.logger.Error("❌ [Redis] Failed to get user", "user_id", id, "error", err)
		return nil, 0, err
	}

	var version int64
	if v, ok := vals[1].(string); ok {
		version, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("user %d: bad cache version %q: %w", id, v, err)
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, version, nil
	}

	var cu cachedUser
	if err := json.Unmarshal([]byte(raw), &cu); err != nil {
		r.logger.Warn("⚠️ [Redis] Dropping undecodable cache entry", "user_id", id, "error", err)
		r.client.Del(ctx, userKey(id))
		return nil, version, nil
	}

	r.logger.Debug("📖 [Redis] Cache hit", "user_id", id)
	return &models.User{
		ID:        cu.ID,
		Name:      cu.Name,
		Email:     cu.Email,
		CreatedAt: cu.CreatedAt,
		UpdatedAt: cu.UpdatedAt,
	}, version, nil
}

// errStaleFill aborts a fill whose version was bumped in the meantime.
var errStaleFill = errors.New("stale cache fill")

func (r *RedisClient) FillUser(ctx context.Context, user *models.User, version int64) error {
	data, err := json.Marshal(cachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
	if err != nil {
		return err
	}

	vkey := versionKey(user.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, userKey(user.ID), data, r.ttl)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil:
		r.logger.Debug("💾 [Redis] Cached user", "user_id", user.ID, "ttl", r.ttl)
		return nil
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		r.logger.Debug("⏭️ [Redis] Skipped stale fill", "user_id", user.ID, "version", version)
		return nil
	default:
		r.logger.Error("❌ [Redis] Failed to cache user", "user_id", user.ID, "error", err)
		return err
	}
}

func (r *RedisClient) InvalidateUser(ctx context.Context, id uint) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(id))
		if r.ttl > 0 {
			pipe.Expire(ctx, versionKey(id), r.ttl)
		}
		pipe.Del(ctx, userKey(id))
		return nil
	})
	if err != nil {
		r.logger.Error("❌ [Redis] Failed to invalidate user", "user_id", id, "error", err)
		return err
	}

	r.logger.Debug("🗑️ [Redis] Invalidated user", "user_id", id)
	return nil
}
