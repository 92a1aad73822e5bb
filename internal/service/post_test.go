package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardly/board-go/internal/model"
)

func TestCreatePost_OwnerIsCaller(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-1", "alice")

	p := f.createPost(t, "u-1", "T")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "u-1", p.Owner.ID)
	assert.Equal(t, "alice", p.Owner.DisplayName)
	assert.Equal(t, "alice@x.com", p.Owner.Email)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestCreatePost_UnknownCaller(t *testing.T) {
	f := newFixture()

	_, err := f.posts.Create(context.Background(), "u-ghost", model.CreatePostRequest{Title: "T", Body: "B"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCreatePost_Validation(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-1", "alice")

	_, err := f.posts.Create(context.Background(), "u-1", model.CreatePostRequest{Title: "", Body: "B"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetPost(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-1", "alice")
	created := f.createPost(t, "u-1", "T")

	got, err := f.posts.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.posts.Get(context.Background(), "p-404")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdatePost_NonOwnerForbidden(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-a", "alice")
	f.seedUser(t, "u-b", "bob")
	f.seedUser(t, "u-c", "carol")
	p := f.createPost(t, "u-a", "T")

	for _, caller := range []string{"u-b", "u-c", "u-ghost", ""} {
		_, err := f.posts.Update(context.Background(), caller, p.ID, model.UpdatePostRequest{Title: strPtr("hack")})
		assert.ErrorIs(t, err, ErrForbidden, "caller %q", caller)
	}

	got, err := f.posts.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
}

func TestUpdatePost_PartialUpdate(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-1", "alice")
	p := f.createPost(t, "u-1", "T")

	updated, err := f.posts.Update(context.Background(), "u-1", p.ID, model.UpdatePostRequest{Title: strPtr("T2")})
	require.NoError(t, err)

	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, p.Body, updated.Body)
	assert.Equal(t, "alice@x.com", updated.Owner.Email)
	assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)

	updated, err = f.posts.Update(context.Background(), "u-1", p.ID, model.UpdatePostRequest{Body: strPtr("new body")})
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "new body", updated.Body)
}

func TestUpdatePost_NotFoundAndValidation(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-1", "alice")
	p := f.createPost(t, "u-1", "T")

	_, err := f.posts.Update(context.Background(), "u-1", "p-404", model.UpdatePostRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.posts.Update(context.Background(), "u-1", p.ID, model.UpdatePostRequest{Title: strPtr("")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeletePost(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-a", "alice")
	f.seedUser(t, "u-b", "bob")
	p := f.createPost(t, "u-a", "T")
	ctx := context.Background()

	assert.ErrorIs(t, f.posts.Delete(ctx, "u-b", p.ID), ErrForbidden)
	require.NoError(t, f.posts.Delete(ctx, "u-a", p.ID))

	_, err := f.posts.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.ErrorIs(t, f.posts.Delete(ctx, "u-a", p.ID), ErrPostNotFound)
}

func TestListPosts_ClampsLimit(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-1", "alice")
	for i := 0; i < 60; i++ {
		f.createPost(t, "u-1", fmt.Sprintf("post-%02d", i))
	}

	page, err := f.posts.List(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, MaxLimit, page.Limit)
	assert.Len(t, page.Posts, MaxLimit)
	assert.Equal(t, int64(60), page.Total)
	assert.Equal(t, "post-59", page.Posts[0].Title)

	page, err = f.posts.List(context.Background(), 2, 100)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 10)
	assert.Equal(t, "post-09", page.Posts[0].Title)
}

func TestListPosts_WindowAndProjection(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-1", "alice")
	for i := 0; i < 5; i++ {
		f.createPost(t, "u-1", fmt.Sprintf("post-%d", i))
	}

	page, err := f.posts.List(context.Background(), 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "post-2", page.Posts[0].Title)
	assert.Equal(t, "post-1", page.Posts[1].Title)
	assert.Equal(t, "alice", page.Posts[0].Owner.DisplayName)

	page, err = f.posts.List(context.Background(), 9, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, int64(5), page.Total)
}

func TestListPosts_InvalidWindow(t *testing.T) {
	f := newFixture()

	_, err := f.posts.List(context.Background(), 0, 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.posts.List(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListPosts_PagePastEnd(t *testing.T) {
	f := newFixture()
	f.seedUser(t, "u-1", "alice")
	for i := 0; i < 3; i++ {
		f.createPost(t, "u-1", fmt.Sprintf("post-%d", i))
	}

	for _, page := range []int{4, 1000, 922337203685477582, math.MaxInt} {
		got, err := f.posts.List(context.Background(), page, 10)
		require.NoError(t, err, "page %d", page)
		assert.NotNil(t, got.Posts)
		assert.Empty(t, got.Posts, "page %d", page)
		assert.Equal(t, page, got.Page)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, int64(3), got.Total)
	}

	got, err := f.posts.List(context.Background(), math.MaxInt, 100)
	require.NoError(t, err)
	assert.Empty(t, got.Posts)
	assert.Equal(t, MaxLimit, got.Limit)
}
