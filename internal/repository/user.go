package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/boardly/board-go/internal/model"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicateDisplayName = errors.New("display name already exists")
)

const userColumns = `id, display_name, email, password_hash, created_at`

// UserRepository handles account persistence operations.
type UserRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB, dialect Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

// Create inserts a new account. Unique index violations on email or display
// name are reported as ErrDuplicateEmail or ErrDuplicateDisplayName.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := r.dialect.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.DisplayName, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if constraint, ok := r.dialect.uniqueViolation(err); ok {
			return duplicateUserError(constraint)
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves an account by its email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetByDisplayName retrieves an account by its display name.
func (r *UserRepository) GetByDisplayName(ctx context.Context, displayName string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE display_name = ?`, displayName)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), arg).Scan(
		&user.ID, &user.DisplayName, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return user, nil
}

func duplicateUserError(constraint string) error {
	if strings.Contains(constraint, "uq_users_display_name") || strings.HasSuffix(constraint, "users.display_name") {
		return ErrDuplicateDisplayName
	}
	return ErrDuplicateEmail
}
