package dto

import (
	"time"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/database/models"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

// UserRequest is the body of create and update. Update is a full replace, so
// every field is expected on both.
type UserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Fields exposes the request to the validator.
func (r UserRequest) Fields() validation.Fields {
	return validation.Fields{
		"email":    r.Email,
		"password": r.Password,
		"name":     r.Name,
	}
}

// User is the public shape of a record. It has no password field.
type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser converts a model into its public shape.
func NewUser(u *models.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUsers converts a slice of models, never returning nil.
func NewUsers(users []models.User) []User {
	out := make([]User, 0, len(users))
	for i := range users {
		out = append(out, NewUser(&users[i]))
	}
	return out
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        User   `json:"user"`
}
