package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/models"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/repository"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

// Fixed, non-localized result messages.
const (
	MsgUserNotFound = "user not found"
	MsgUserDeleted  = "user deleted"
)

// UserService defines the interface for user business logic.
// Validation failures are returned as *validation.FieldError, missing
// records as repository.ErrUserNotFound; anything else is a store fault.
type UserService interface {
	CreateUser(ctx context.Context, req dto.UserRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, req dto.UserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) (*models.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	cache     database.UserCache
	validator *validation.Validator
	hashCost  int
	logger    *slog.Logger
}

// UserServiceOption tweaks a user service at construction.
type UserServiceOption func(*userService)

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) UserServiceOption {
	return func(s *userService) { s.hashCost = cost }
}

// NewUserService creates a new user service instance. A nil cache disables caching.
func NewUserService(
	userRepo repository.UserRepository,
	cache database.UserCache,
	validator *validation.Validator,
	logger *slog.Logger,
	opts ...UserServiceOption,
) UserService {
	if cache == nil {
		cache = database.NoOpUserCache{}
	}
	s := &userService{
		userRepo:  userRepo,
		cache:     cache,
		validator: validator,
		hashCost:  bcrypt.DefaultCost,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *userService) CreateUser(ctx context.Context, req dto.UserRequest) (*models.User, error) {
	fields := s.validator.Normalize(req.Fields())

	fe, err := s.validator.Validate(ctx, fields, s.emailTakenExcept(0))
	if err != nil {
		s.logger.Error("❌ [UserService] Uniqueness check failed", "error", err)
		return nil, err
	}
	if fe != nil {
		s.logger.Debug("⚠️ [UserService] Create rejected", "field", fe.Field, "rule", fe.Rule)
		return nil, fe
	}

	hash, err := HashPassword(fields["password"], s.hashCost)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:     fields["name"],
		Email:    fields["email"],
		Password: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			s.logger.Warn("⚠️ [UserService] Email claimed concurrently", "email", user.Email)
			return nil, s.emailTakenError()
		}
		s.logger.Error("❌ [UserService] Failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [UserService] User created", "user_id", user.ID)
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// GetUser reads through the cache. The version is taken before the store
// read so that a write landing in between voids the fill.
func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	cached, version, cacheErr := s.cache.GetUser(ctx, id)
	if cacheErr != nil {
		s.logger.Warn("⚠️ [UserService] Cache read failed", "user_id", id, "error", cacheErr)
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("❌ [UserService] Failed to find user", "user_id", id, "error", err)
		}
		return nil, err
	}

	if cacheErr == nil {
		s.fill(ctx, user, version)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, req dto.UserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("❌ [UserService] Failed to find user", "user_id", id, "error", err)
		}
		return nil, err
	}

	fields := s.validator.Normalize(req.Fields())

	fe, err := s.validator.Validate(ctx, fields, s.emailTakenExcept(id))
	if err != nil {
		s.logger.Error("❌ [UserService] Uniqueness check failed", "user_id", id, "error", err)
		return nil, err
	}
	if fe != nil {
		s.logger.Debug("⚠️ [UserService] Update rejected", "user_id", id, "field", fe.Field, "rule", fe.Rule)
		return nil, fe
	}

	hash, err := HashPassword(fields["password"], s.hashCost)
	if err != nil {
		s.logger.Error("❌ [UserService] Failed to hash password", "error", err)
		return nil, err
	}

	user.Name = fields["name"]
	user.Email = fields["email"]
	user.Password = hash

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			s.logger.Warn("⚠️ [UserService] Email claimed concurrently", "email", user.Email)
			return nil, s.emailTakenError()
		case errors.Is(err, repository.ErrUserNotFound):
			s.forget(ctx, id)
			return nil, err
		}
		s.logger.Error("❌ [UserService] Failed to update user", "user_id", id, "error", err)
		return nil, err
	}

	s.forget(ctx, id)

	// Re-read so the timestamps are the store's.
	updated, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ [UserService] User updated", "user_id", id)
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("❌ [UserService] Failed to find user", "user_id", id, "error", err)
		}
		return nil, err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Error("❌ [UserService] Failed to delete user", "user_id", id, "error", err)
		}
		return nil, err
	}

	s.forget(ctx, id)

	s.logger.Info("🗑️ [UserService] User deleted", "user_id", id)
	return user, nil
}

// emailTakenExcept backs the schema's server-only uniqueness rule. excludeID
// lets an update keep its own address.
func (s *userService) emailTakenExcept(excludeID uint) validation.TakenFunc {
	return func(ctx context.Context, field, value string) (bool, error) {
		if field != "email" {
			return false, nil
		}
		return s.userRepo.EmailTaken(ctx, value, excludeID)
	}
}

func (s *userService) emailTakenError() *validation.FieldError {
	return &validation.FieldError{
		Field:   "email",
		Rule:    "unique",
		Message: s.validator.Message("email", "unique"),
	}
}

func (s *userService) fill(ctx context.Context, user *models.User, version int64) {
	if err := s.cache.FillUser(ctx, user, version); err != nil {
		s.logger.Warn("⚠️ [UserService] Cache write failed", "user_id", user.ID, "error", err)
	}
}

func (s *userService) forget(ctx context.Context, id uint) {
	if err := s.cache.InvalidateUser(ctx, id); err != nil {
		s.logger.Warn("⚠️ [UserService] Cache invalidation failed", "user_id", id, "error", err)
	}
}
