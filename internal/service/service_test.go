package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/repository/memory"
)

// stepClock returns strictly increasing timestamps so ordering is deterministic.
func stepClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

type fixture struct {
	store    *memory.Store
	auth     *AuthService
	posts    *PostService
	comments *CommentService
}

func newFixture() *fixture {
	store := memory.NewStore()
	posts := NewPostService(store.Posts(), store.Users())
	posts.clock = stepClock()
	comments := NewCommentService(store.Comments(), store.Users(), posts)
	comments.clock = stepClock()

	return &fixture{
		store:    store,
		auth:     NewAuthService(store.Users(), "test-secret", time.Hour),
		posts:    posts,
		comments: comments,
	}
}

// seedUser stores an account directly, skipping bcrypt.
func (f *fixture) seedUser(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.store.Users().Create(context.Background(), &model.User{
		ID:           id,
		DisplayName:  name,
		Email:        name + "@x.com",
		PasswordHash: "unused",
		CreatedAt:    time.Now().UTC(),
	}))
}

func (f *fixture) createPost(t *testing.T, callerID, title string) model.PostDetail {
	t.Helper()
	p, err := f.posts.Create(context.Background(), callerID, model.CreatePostRequest{Title: title, Body: "body of " + title})
	require.NoError(t, err)
	return p
}

func strPtr(s string) *string { return &s }
