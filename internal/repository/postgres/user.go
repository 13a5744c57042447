package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"filecrate/internal/domain"
	"filecrate/internal/domain/models"
	"filecrate/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.tables.Users)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&user.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.UserAlreadyExistsError{Email: user.Email}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, created_at
		FROM %s
		WHERE email = $1
	`, r.tables.Users)

	return r.scanUser(GetExecutor(ctx, r.pool).QueryRow(ctx, query, email), email)
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	return r.scanUser(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), id)
}

func (r *PostgresUserRepository) scanUser(row interface{ Scan(...interface{}) error }, key string) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.UserNotFoundError{Email: key}
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}
