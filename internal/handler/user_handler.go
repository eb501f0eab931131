package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/repository"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/service"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

// UserHandler serves the /usuarios endpoints. Validation failures and
// missing records are reported in the envelope with HTTP 200; only store
// faults change the status code.
type UserHandler struct {
	service   service.UserService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.UserService, validator *validation.Validator, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// Create handles POST /usuarios/create
func (h *UserHandler) Create(c *gin.Context) {
	req, ok := h.bindUser(c)
	if !ok {
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewUser(user)))
}

// List handles GET /usuarios/list
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewUsers(users)))
}

// Get handles GET /usuarios/get/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewUser(user)))
}

// Update handles PUT /usuarios/update/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	req, ok := h.bindUser(c)
	if !ok {
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.NewUser(user)))
}

// Delete handles DELETE /usuarios/delete/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.service.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	env := dto.OK(dto.NewUser(user))
	env.Message = service.MsgUserDeleted
	c.JSON(http.StatusOK, env)
}

// Schema handles GET /usuarios/schema
func (h *UserHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OK(h.validator.Schema()))
}

// bindUser decodes the request body. An empty body is an empty request and
// is left to validation to reject.
func (h *UserHandler) bindUser(c *gin.Context) (dto.UserRequest, bool) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("⚠️ [UserHandler] Invalid request body", "error", err)
		c.JSON(http.StatusOK, dto.Fail(dto.CodeInvalidRequest, "invalid request body"))
		return req, false
	}
	return req, true
}

// userID parses the :id segment. Anything that is not a positive integer
// cannot name a record, so it is reported as not found.
func (h *UserHandler) userID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusOK, dto.Fail(dto.CodeNotFound, service.MsgUserNotFound))
		return 0, false
	}
	return uint(id), true
}

// handleServiceError maps service errors to envelopes
func (h *UserHandler) handleServiceError(c *gin.Context, err error) {
	var fe *validation.FieldError
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusOK, dto.FieldFail(fe.Field, fe.Message))
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusOK, dto.Fail(dto.CodeNotFound, service.MsgUserNotFound))
	default:
		h.logger.Error("❌ [UserHandler] Internal server error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeInternalError, "internal server error"))
	}
}
