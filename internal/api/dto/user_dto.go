package dto

import (
	"time"

	"github.com/spec-kit/gambler-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72,ascii"`
}

// RegisterRequest payload for new players.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72,ascii"`
}

// Credentials converts the request into domain credentials.
func (r LoginRequest) Credentials() domain.Credentials {
	return domain.Credentials{Username: r.Username, Password: r.Password}
}

// Credentials converts the request into domain credentials.
func (r RegisterRequest) Credentials() domain.Credentials {
	return domain.Credentials{Username: r.Username, Password: r.Password}
}

// UserResponse is the public view of a player.
type UserResponse struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Balance   int64      `json:"balance"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Balance: u.Balance, CreatedAt: u.CreatedAt}
}

// ResultResponse wraps a plain textual result.
type ResultResponse struct {
	Result string `json:"result"`
}
