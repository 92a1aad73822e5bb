package handler

import (
	"net/http"

	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/service"
)

// CommentHandler handles HTTP requests for the comments of a post.
type CommentHandler struct {
	service *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// HandleCreate handles POST /posts/{postID}/comments requests.
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := postID(w, r)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Create(r.Context(), caller.UserID, id, req)
	if err != nil {
		writePostError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// HandleList handles GET /posts/{postID}/comments requests.
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	comments, err := h.service.List(r.Context(), id)
	if err != nil {
		writePostError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}
