package services

import (
	"context"
	"time"
)

// AuthService handles account registration and credential checks.
// Token verification on inbound requests belongs to the transport layer.
type AuthService interface {
	// Register creates an account with a hashed password
	Register(ctx context.Context, req *RegisterRequest) (*UserView, error)

	// Login verifies credentials and issues a signed token
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the account shape returned to the transport layer
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResult carries the issued token and its expiry
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}
