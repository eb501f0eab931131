package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/models"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, *AccessToken, error)
	ValidateAccessToken(tokenString string) (uint, error)
}

// AccessToken is a signed bearer token and its lifetime in seconds
type AccessToken struct {
	Token     string
	ExpiresIn int64
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	expiresIn int64
	now       func() time.Time
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service instance
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		expiresIn: cfg.AccessTokenExpiration,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *AccessToken, error) {
	// Stored addresses are trimmed on create and update.
	email = strings.TrimSpace(email)
	s.logger.Info("🔐 [AuthService] Login attempt", "email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [AuthService] User not found", "email", email)
			return nil, nil, ErrInvalidCredentials
		}
		s.logger.Error("❌ [AuthService] Database error", "error", err)
		return nil, nil, err
	}

	if !CheckPassword(user.Password, password) {
		s.logger.Warn("⚠️ [AuthService] Invalid password", "email", email)
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		s.logger.Error("❌ [AuthService] Failed to sign token", "error", err)
		return nil, nil, err
	}

	s.logger.Info("✅ [AuthService] User logged in successfully", "user_id", user.ID)
	return user, &AccessToken{Token: token, ExpiresIn: s.expiresIn}, nil
}

func (s *authService) ValidateAccessToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "access" {
		return 0, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}

func (s *authService) generateAccessToken(userID uint) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    "access",
		"exp":     now.Add(time.Duration(s.expiresIn) * time.Second).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Service errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
