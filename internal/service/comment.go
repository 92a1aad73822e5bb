package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/repository"
	"github.com/boardly/board-go/internal/validator"
)

// PostLookup resolves a post or fails with ErrPostNotFound.
type PostLookup interface {
	Get(ctx context.Context, id string) (model.PostDetail, error)
}

// CommentService handles comments. Comments are append-only: there is no
// update or delete.
type CommentService struct {
	comments CommentRepository
	users    UserRepository
	posts    PostLookup
	clock    func() time.Time
}

func NewCommentService(comments CommentRepository, users UserRepository, posts PostLookup) *CommentService {
	return &CommentService{comments: comments, users: users, posts: posts, clock: now}
}

// Create adds a comment by callerID to an existing post.
func (s *CommentService) Create(ctx context.Context, callerID, postID string, req model.CreateCommentRequest) (model.CommentDetail, error) {
	if err := validationError(validator.ValidateComment(req.Body)); err != nil {
		return model.CommentDetail{}, err
	}

	if _, err := s.posts.Get(ctx, postID); err != nil {
		return model.CommentDetail{}, err
	}

	owner, err := lookupOwner(ctx, s.users, callerID)
	if err != nil {
		return model.CommentDetail{}, err
	}

	comment := &model.Comment{
		ID:               uuid.NewString(),
		PostID:           postID,
		Body:             req.Body,
		OwnerID:          owner.ID,
		OwnerDisplayName: owner.DisplayName,
		OwnerEmail:       owner.Email,
		CreatedAt:        s.clock(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return model.CommentDetail{}, ErrPostNotFound
		}
		return model.CommentDetail{}, err
	}

	return model.NewCommentDetail(comment), nil
}

// List returns every comment on a post, newest first. A post without
// comments yields an empty slice.
func (s *CommentService) List(ctx context.Context, postID string) ([]model.CommentSummary, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	out := make([]model.CommentSummary, len(comments))
	for i := range comments {
		out[i] = model.NewCommentSummary(&comments[i])
	}
	return out, nil
}
