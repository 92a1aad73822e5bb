package model

import "time"

// Comment represents a comment row attached to one post.
type Comment struct {
	ID               string
	PostID           string
	Body             string
	OwnerID          string
	OwnerDisplayName string
	OwnerEmail       string
	CreatedAt        time.Time
}

type CreateCommentRequest struct {
	Body string `json:"body"`
}

type CommentDetail struct {
	ID        string      `json:"id"`
	PostID    string      `json:"post_id"`
	Body      string      `json:"body"`
	Owner     OwnerDetail `json:"owner"`
	CreatedAt time.Time   `json:"created_at"`
}

type CommentSummary struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post_id"`
	Body      string       `json:"body"`
	Owner     OwnerSummary `json:"owner"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewCommentDetail(c *Comment) CommentDetail {
	return CommentDetail{
		ID:     c.ID,
		PostID: c.PostID,
		Body:   c.Body,
		Owner: OwnerDetail{
			ID:          c.OwnerID,
			DisplayName: c.OwnerDisplayName,
			Email:       c.OwnerEmail,
		},
		CreatedAt: c.CreatedAt,
	}
}

func NewCommentSummary(c *Comment) CommentSummary {
	return CommentSummary{
		ID:     c.ID,
		PostID: c.PostID,
		Body:   c.Body,
		Owner: OwnerSummary{
			ID:          c.OwnerID,
			DisplayName: c.OwnerDisplayName,
		},
		CreatedAt: c.CreatedAt,
	}
}
