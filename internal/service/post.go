package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/repository"
	"github.com/boardly/board-go/internal/validator"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("only the post owner can modify this post")
)

// PostService handles post business logic. Reads are public; update and
// delete are gated on the caller owning the post.
type PostService struct {
	posts PostRepository
	users UserRepository
	clock func() time.Time
}

// NewPostService creates a new PostService.
func NewPostService(posts PostRepository, users UserRepository) *PostService {
	return &PostService{posts: posts, users: users, clock: now}
}

// Create stores a post owned by callerID.
func (s *PostService) Create(ctx context.Context, callerID string, req model.CreatePostRequest) (model.PostDetail, error) {
	if err := validationError(validator.ValidateCreatePost(req.Title, req.Body)); err != nil {
		return model.PostDetail{}, err
	}

	owner, err := lookupOwner(ctx, s.users, callerID)
	if err != nil {
		return model.PostDetail{}, err
	}

	ts := s.clock()
	post := &model.Post{
		ID:               uuid.NewString(),
		Title:            req.Title,
		Body:             req.Body,
		OwnerID:          owner.ID,
		OwnerDisplayName: owner.DisplayName,
		OwnerEmail:       owner.Email,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return model.PostDetail{}, err
	}

	return model.NewPostDetail(post), nil
}

// List returns one page of posts, newest first. limit is capped at MaxLimit
// and the reported limit is the capped value.
func (s *PostService) List(ctx context.Context, page, limit int) (model.PostPage, error) {
	errs := make(validator.ValidationErrors)
	if page < 1 {
		errs.Add("page", "Page must be at least 1")
	}
	if limit < 1 {
		errs.Add("limit", "Limit must be at least 1")
	}
	if err := validationError(errs); err != nil {
		return model.PostPage{}, err
	}

	limit = min(limit, MaxLimit)

	total, err := s.posts.Count(ctx)
	if err != nil {
		return model.PostPage{}, err
	}

	// A page whose offset does not fit in an int lies past every post.
	if page-1 > math.MaxInt/limit {
		return model.PostPage{Posts: []model.PostSummary{}, Page: page, Limit: limit, Total: total}, nil
	}
	offset := (page - 1) * limit

	posts, err := s.posts.List(ctx, offset, limit)
	if err != nil {
		return model.PostPage{}, err
	}

	summaries := make([]model.PostSummary, len(posts))
	for i := range posts {
		summaries[i] = model.NewPostSummary(&posts[i])
	}

	return model.PostPage{
		Posts: summaries,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

// Get returns a single post with the full owner projection.
func (s *PostService) Get(ctx context.Context, id string) (model.PostDetail, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return model.PostDetail{}, err
	}
	return model.NewPostDetail(post), nil
}

// Update applies the provided fields of req to a post owned by callerID.
func (s *PostService) Update(ctx context.Context, callerID, id string, req model.UpdatePostRequest) (model.PostDetail, error) {
	if err := validationError(validator.ValidateUpdatePost(req.Title, req.Body)); err != nil {
		return model.PostDetail{}, err
	}

	post, err := s.load(ctx, id)
	if err != nil {
		return model.PostDetail{}, err
	}
	if post.OwnerID != callerID {
		return model.PostDetail{}, ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	post.UpdatedAt = s.clock()

	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.PostDetail{}, ErrPostNotFound
		}
		return model.PostDetail{}, err
	}

	return model.NewPostDetail(post), nil
}

// Delete permanently removes a post owned by callerID.
func (s *PostService) Delete(ctx context.Context, callerID, id string) error {
	post, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if post.OwnerID != callerID {
		return ErrForbidden
	}

	err = s.posts.Delete(ctx, id, callerID)
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return err
}

func (s *PostService) load(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// lookupOwner resolves the caller to a stored account. A valid token whose
// account no longer exists yields ErrAccountNotFound.
func lookupOwner(ctx context.Context, users UserRepository, callerID string) (*model.User, error) {
	owner, err := users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("looking up owner: %w", err)
	}
	return owner, nil
}
