package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/boardly/board-go/internal/model"
)

// CommentRepository handles comment persistence operations.
type CommentRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *sql.DB, dialect Dialect) *CommentRepository {
	return &CommentRepository{db: db, dialect: dialect}
}

// Create inserts a comment. A parent post that vanished after the caller's
// existence check surfaces as ErrPostNotFound through the foreign key.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := r.dialect.Rebind(`INSERT INTO comments (id, post_id, body, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.Body, comment.OwnerID, comment.CreatedAt,
	)
	if err != nil {
		if r.dialect.foreignKeyViolation(err) {
			return ErrPostNotFound
		}
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

// ListByPost returns every comment on a post, newest first, with the
// owner's display name joined in.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	query := r.dialect.Rebind(`SELECT c.id, c.post_id, c.body, c.owner_id, u.display_name, u.email, c.created_at
		FROM comments c JOIN users u ON u.id = c.owner_id
		WHERE c.post_id = ?
		ORDER BY c.created_at DESC, c.id DESC`)

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.Body, &c.OwnerID,
			&c.OwnerDisplayName, &c.OwnerEmail, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
