package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/dto"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

// Result is a decoded envelope. When OK is false, Error holds the text the
// server put in data.
type Result[T any] struct {
	OK      bool
	Value   T
	Error   string
	Message string
	Code    string
	Field   string
}

type rawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Field   string          `json:"field"`
}

// APIClient talks to the user API. baseURL includes the API prefix, e.g.
// http://localhost:8000/api.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAPIClient creates a client. A zero timeout means no timeout.
func NewAPIClient(baseURL string, timeout time.Duration, logger *slog.Logger) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Create calls POST /usuarios/create
func (c *APIClient) Create(ctx context.Context, req dto.UserRequest) (Result[dto.User], error) {
	var res Result[dto.User]
	err := do(ctx, c, http.MethodPost, "/usuarios/create", req, &res)
	return res, err
}

// List calls GET /usuarios/list
func (c *APIClient) List(ctx context.Context) (Result[[]dto.User], error) {
	var res Result[[]dto.User]
	err := do(ctx, c, http.MethodGet, "/usuarios/list", nil, &res)
	return res, err
}

// Get calls GET /usuarios/get/{id}
func (c *APIClient) Get(ctx context.Context, id uint) (Result[dto.User], error) {
	var res Result[dto.User]
	err := do(ctx, c, http.MethodGet, fmt.Sprintf("/usuarios/get/%d", id), nil, &res)
	return res, err
}

// Update calls PUT /usuarios/update/{id}
func (c *APIClient) Update(ctx context.Context, id uint, req dto.UserRequest) (Result[dto.User], error) {
	var res Result[dto.User]
	err := do(ctx, c, http.MethodPut, fmt.Sprintf("/usuarios/update/%d", id), req, &res)
	return res, err
}

// Delete calls DELETE /usuarios/delete/{id}
func (c *APIClient) Delete(ctx context.Context, id uint) (Result[dto.User], error) {
	var res Result[dto.User]
	err := do(ctx, c, http.MethodDelete, fmt.Sprintf("/usuarios/delete/%d", id), nil, &res)
	return res, err
}

// Schema calls GET /usuarios/schema
func (c *APIClient) Schema(ctx context.Context) (Result[validation.Schema], error) {
	var res Result[validation.Schema]
	err := do(ctx, c, http.MethodGet, "/usuarios/schema", nil, &res)
	return res, err
}

// Login calls POST /auth/login
func (c *APIClient) Login(ctx context.Context, email, password string) (Result[dto.TokenResponse], error) {
	var res Result[dto.TokenResponse]
	err := do(ctx, c, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &res)
	return res, err
}

// do sends one request and decodes the envelope into out. Transport failures
// and undecodable bodies are errors; failed envelopes are not.
func do[T any](ctx context.Context, c *APIClient, method, path string, body any, out *Result[T]) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("❌ [APIClient] Request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env rawEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Error("❌ [APIClient] Undecodable response", "method", method, "path", path, "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}

	out.OK = env.Success
	out.Message = env.Message
	out.Code = env.Code
	out.Field = env.Field

	if env.Success {
		if err := json.Unmarshal(env.Data, &out.Value); err != nil {
			return fmt.Errorf("%s %s: decode data: %w", method, path, err)
		}
		return nil
	}

	var text string
	if err := json.Unmarshal(env.Data, &text); err != nil {
		text = string(env.Data)
	}
	out.Error = text

	c.logger.Debug("⚠️ [APIClient] Request rejected", "method", method, "path", path, "code", env.Code, "message", text)
	return nil
}
