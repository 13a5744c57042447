package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"filecrate/internal/domain"
	"filecrate/internal/domain/models"
	"filecrate/internal/domain/repositories"
	"filecrate/internal/domain/services"
)

type authService struct {
	userRepo repositories.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	secret string,
	tokenTTL time.Duration,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register creates an account with a hashed password
func (s *authService) Register(ctx context.Context, req *services.RegisterRequest) (*services.UserView, error) {
	if err := s.validateCredentials(req.Email, req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID)

	return &services.UserView{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifies credentials and issues a signed token
func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResult, error) {
	if err := s.validateCredentials(req.Email, req.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in", "id", user.ID)

	return &services.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: services.UserView{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (s *authService) validateCredentials(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required, validation.Length(8, 128)),
	}.Filter()
}
