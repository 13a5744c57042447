package repositories

import (
	"context"

	"filecrate/internal/domain/models"
)

// UserRepository defines data access operations for user accounts.
type UserRepository interface {
	// Create persists a new user; fails with domain.ErrConflict on a
	// duplicate email
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)
}
