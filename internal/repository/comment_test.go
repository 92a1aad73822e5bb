package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardly/board-go/internal/model"
)

func TestCommentCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepository(db, MySQL)
	c := &model.Comment{ID: "c-1", PostID: "p-1", Body: "nice", OwnerID: "u-1", CreatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO comments (id, post_id, body, owner_id, created_at)`)).
		WithArgs(c.ID, c.PostID, c.Body, c.OwnerID, c.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), c))
}

func TestCommentCreate_MissingParentPost(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		err     error
	}{
		{"mysql", MySQL, &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}},
		{"postgres", Postgres, &pgconn.PgError{Code: "23503", ConstraintName: "comments_post_id_fkey"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewCommentRepository(db, tt.dialect)

			mock.ExpectExec(`INSERT INTO comments`).WillReturnError(tt.err)

			err := repo.Create(context.Background(), &model.Comment{ID: "c-1", PostID: "p-gone"})
			assert.ErrorIs(t, err, ErrPostNotFound)
		})
	}
}

func TestCommentListByPost(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepository(db, MySQL)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.post_id = ?`)).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "body", "owner_id", "display_name", "email", "created_at"}).
			AddRow("c-2", "p-1", "newer", "u-2", "bob", "bob@x.com", now).
			AddRow("c-1", "p-1", "older", "u-1", "alice", "alice@x.com", now.Add(-time.Hour)))

	comments, err := repo.ListByPost(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c-2", comments[0].ID)
	assert.Equal(t, "bob", comments[0].OwnerDisplayName)
}

func TestCommentListByPost_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCommentRepository(db, MySQL)

	mock.ExpectQuery(`FROM comments c`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "body", "owner_id", "display_name", "email", "created_at"}))

	comments, err := repo.ListByPost(context.Background(), "p-1")
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
