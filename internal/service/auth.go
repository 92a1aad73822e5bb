package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/boardly/board-go/internal/crypto"
	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/repository"
	"github.com/boardly/board-go/internal/validator"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateDisplayName = errors.New("display name already taken")
)

// AuthService registers accounts and exchanges credentials for bearer tokens.
type AuthService struct {
	users     UserRepository
	jwtSecret string
	jwtExpiry time.Duration
	clock     func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
		clock:     now,
	}
}

// Register creates an account and returns its public projection.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (model.UserResponse, error) {
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.Email = strings.TrimSpace(req.Email)

	if err := validationError(validator.ValidateSignup(req.DisplayName, req.Email, req.Password)); err != nil {
		return model.UserResponse{}, err
	}

	if err := s.ensureUnused(ctx, s.users.GetByEmail, req.Email, ErrDuplicateEmail); err != nil {
		return model.UserResponse{}, err
	}
	if err := s.ensureUnused(ctx, s.users.GetByDisplayName, req.DisplayName, ErrDuplicateDisplayName); err != nil {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock(),
	}

	// The lookups above race with concurrent signups; the store's unique
	// indexes settle it.
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.UserResponse{}, ErrDuplicateEmail
		case errors.Is(err, repository.ErrDuplicateDisplayName):
			return model.UserResponse{}, ErrDuplicateDisplayName
		}
		return model.UserResponse{}, fmt.Errorf("creating user: %w", err)
	}

	return model.NewUserResponse(user), nil
}

// Login verifies the credentials and returns a signed access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validationError(validator.ValidateLogin(req.Email, req.Password)); err != nil {
		return model.LoginResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Spend the same bcrypt work as a real check.
			_, _ = crypto.VerifyPassword(req.Password, s.unknownUserHash())
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, fmt.Errorf("looking up user: %w", err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("signing token: %w", err)
	}

	return model.LoginResponse{AccessToken: token}, nil
}

// GetUser retrieves an account by ID and returns safe user data.
func (s *AuthService) GetUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrAccountNotFound
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

func (s *AuthService) ensureUnused(ctx context.Context, lookup func(context.Context, string) (*model.User, error), value string, taken error) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("checking existing user: %w", err)
	}
}

func (s *AuthService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = crypto.HashPassword(uuid.NewString())
	})
	return s.dummyHash
}
