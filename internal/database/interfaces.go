package database

import (
	"context"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/models"
)

// UserCache caches single user records by id. Every record has a version
// that writers bump through InvalidateUser; a reader fills the cache only if
// the version it saw before reading the store is still current, so a fill
// racing a write is dropped instead of resurrecting stale data.
type UserCache interface {
	// GetUser returns the cached record (nil on a miss) and the current version.
	GetUser(ctx context.Context, id uint) (*models.User, int64, error)
	// FillUser stores user if its version still equals version.
	FillUser(ctx context.Context, user *models.User, version int64) error
	// InvalidateUser bumps the version and drops the cached record.
	InvalidateUser(ctx context.Context, id uint) error
	Close() error
}

// NoOpUserCache never stores anything. Used when Redis is not available.
type NoOpUserCache struct{}

func (NoOpUserCache) GetUser(ctx context.Context, id uint) (*models.User, int64, error) {
	return nil, 0, nil
}
func (NoOpUserCache) FillUser(ctx context.Context, user *models.User, version int64) error {
	return nil
}
func (NoOpUserCache) InvalidateUser(ctx context.Context, id uint) error { return nil }
func (NoOpUserCache) Close() error                                      { return nil }
