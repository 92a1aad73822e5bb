package model

import "time"

// Post represents a post row. OwnerDisplayName and OwnerEmail are filled
// by reads that join the owning account.
type Post struct {
	ID               string
	Title            string
	Body             string
	OwnerID          string
	OwnerDisplayName string
	OwnerEmail       string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// UpdatePostRequest is a partial update: nil fields keep their stored value.
type UpdatePostRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type PostDetail struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	Owner     OwnerDetail `json:"owner"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type PostSummary struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	Owner     OwnerSummary `json:"owner"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type PostPage struct {
	Posts []PostSummary `json:"posts"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
}

type UpdatePostResponse struct {
	Message string     `json:"message"`
	Post    PostDetail `json:"post"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// NewPostDetail projects a post with the full owner view (display name and email).
func NewPostDetail(p *Post) PostDetail {
	return PostDetail{
		ID:    p.ID,
		Title: p.Title,
		Body:  p.Body,
		Owner: OwnerDetail{
			ID:          p.OwnerID,
			DisplayName: p.OwnerDisplayName,
			Email:       p.OwnerEmail,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPostSummary projects a post for list views; the owner email is omitted.
func NewPostSummary(p *Post) PostSummary {
	return PostSummary{
		ID:    p.ID,
		Title: p.Title,
		Body:  p.Body,
		Owner: OwnerSummary{
			ID:          p.OwnerID,
			DisplayName: p.OwnerDisplayName,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
