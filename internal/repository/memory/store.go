// Package memory keeps accounts, posts and comments in process memory.
// It honours the same contracts as the SQL repositories: unique email and
// display name, owner-guarded writes and cascading comment removal.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/repository"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]model.User
	posts    map[string]model.Post
	comments map[string]model.Comment
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]model.User),
		posts:    make(map[string]model.Post),
		comments: make(map[string]model.Comment),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s: s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }

// withOwner fills the joined owner fields the SQL repositories select.
func (s *Store) withOwner(ownerID string) (displayName, email string) {
	u, ok := s.users[ownerID]
	if !ok {
		return "", ""
	}
	return u.DisplayName, u.Email
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.DisplayName == user.DisplayName {
			return repository.ErrDuplicateDisplayName
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByDisplayName(_ context.Context, displayName string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.DisplayName == displayName })
}

func (r *UserRepository) find(match func(model.User) bool) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *post
	stored.OwnerDisplayName, stored.OwnerEmail = "", ""
	r.s.posts[post.ID] = stored
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id string) (*model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	p.OwnerDisplayName, p.OwnerEmail = r.s.withOwner(p.OwnerID)
	return &p, nil
}

func (r *PostRepository) List(_ context.Context, offset, limit int) ([]model.Post, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("invalid post window: offset %d, limit %d", offset, limit)
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]model.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		p.OwnerDisplayName, p.OwnerEmail = r.s.withOwner(p.OwnerID)
		all = append(all, p)
	}
	slices.SortFunc(all, func(a, b model.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if offset >= len(all) {
		return []model.Post{}, nil
	}
	end := offset + min(limit, len(all)-offset)
	return all[offset:end], nil
}

func (r *PostRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.posts)), nil
}

func (r *PostRepository) Update(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.ID]
	if !ok || stored.OwnerID != post.OwnerID {
		return repository.ErrPostNotFound
	}
	stored.Title = post.Title
	stored.Body = post.Body
	stored.UpdatedAt = post.UpdatedAt
	r.s.posts[post.ID] = stored
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[id]
	if !ok || stored.OwnerID != ownerID {
		return repository.ErrPostNotFound
	}
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(_ context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return repository.ErrPostNotFound
	}
	stored := *comment
	stored.OwnerDisplayName, stored.OwnerEmail = "", ""
	r.s.comments[comment.ID] = stored
	return nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID string) ([]model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []model.Comment{}
	for _, c := range r.s.comments {
		if c.PostID != postID {
			continue
		}
		c.OwnerDisplayName, c.OwnerEmail = r.s.withOwner(c.OwnerID)
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b model.Comment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}
