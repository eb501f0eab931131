package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/repository"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/service"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/middleware"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	auth   service.AuthService
	users  service.UserService
	logger *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(auth service.AuthService, users service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		users:  users,
		logger: logger,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [AuthHandler] Invalid login request", "error", err)
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, "email and password required"))
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.TokenResponse{
		AccessToken: token.Token,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
		User:        dto.NewUser(user),
	}))
}

// Me handles GET /user and returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		h.logger.Error("❌ [AuthHandler] User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "unauthorized"))
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewUser(user)))
}

// handleServiceError maps service errors to HTTP responses
func (h *AuthHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "invalid email or password"))
	case errors.Is(err, repository.ErrUserNotFound):
		// The token outlived its user.
		c.JSON(http.StatusUnauthorized, dto.Fail(dto.CodeUnauthorized, "unauthorized"))
	default:
		h.logger.Error("❌ [AuthHandler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeInternalError, "internal server error"))
	}
}
