package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boardly/board-go/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

const postSelect = `SELECT p.id, p.title, p.body, p.owner_id, u.display_name, u.email, p.created_at, p.updated_at
		FROM posts p JOIN users u ON u.id = p.owner_id`

// PostRepository handles post persistence operations.
type PostRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB, dialect Dialect) *PostRepository {
	return &PostRepository{db: db, dialect: dialect}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := r.dialect.Rebind(`INSERT INTO posts (id, title, body, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Body, post.OwnerID, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}
	return nil
}

// GetByID retrieves a post joined with its owner's display name and email.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	query := r.dialect.Rebind(postSelect + ` WHERE p.id = ?`)

	post := &model.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Body, &post.OwnerID,
		&post.OwnerDisplayName, &post.OwnerEmail, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("querying post: %w", err)
	}

	return post, nil
}

// List returns one window of posts, newest first.
func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	query := r.dialect.Rebind(postSelect + ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Body, &p.OwnerID,
			&p.OwnerDisplayName, &p.OwnerEmail, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// Count returns the number of stored posts.
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return total, nil
}

// Update writes title, body and updated_at. The write only matches a row
// still owned by post.OwnerID; otherwise ErrPostNotFound is returned.
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	query := r.dialect.Rebind(`UPDATE posts SET title = ?, body = ?, updated_at = ?
		WHERE id = ? AND owner_id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		post.Title, post.Body, post.UpdatedAt, post.ID, post.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	return requireRow(result, ErrPostNotFound)
}

// Delete removes a post owned by ownerID. Its comments go with it.
func (r *PostRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := r.dialect.Rebind(`DELETE FROM posts WHERE id = ? AND owner_id = ?`)

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return requireRow(result, ErrPostNotFound)
}

func requireRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
