package memory

import (
	"context"

	"filecrate/internal/domain"
	"filecrate/internal/domain/models"
	"filecrate/internal/domain/repositories"
)

// UserRepository implements repositories.UserRepository over a Store
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a user repository backed by the store
func NewUserRepository(store *Store) repositories.UserRepository {
	return &UserRepository{store: store}
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.with(ctx, func(st *state) error {
		if _, taken := st.usersByEmail[user.Email]; taken {
			return &domain.UserAlreadyExistsError{Email: user.Email}
		}
		st.users[user.ID] = *user
		st.usersByEmail[user.Email] = user.ID
		return nil
	})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.store.with(ctx, func(st *state) error {
		id, ok := st.usersByEmail[email]
		if !ok {
			return &domain.UserNotFoundError{Email: email}
		}
		user = st.users[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.store.with(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return &domain.UserNotFoundError{Email: id}
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
