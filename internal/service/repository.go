package service

import (
	"context"
	"errors"
	"time"

	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/validator"
)

// UserRepository is the account storage the services depend on.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*model.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, offset, limit int) ([]model.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id, ownerID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByPost(ctx context.Context, postID string) ([]model.Comment, error)
}

var (
	ErrValidation      = errors.New("validation failed")
	ErrAccountNotFound = errors.New("account not found")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationError(errs validator.ValidationErrors) error {
	if !errs.HasErrors() {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// now returns the store timestamp for new writes; stores keep microseconds.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
