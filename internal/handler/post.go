package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/service"
	"github.com/boardly/board-go/internal/validator"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{service: svc}
}

// HandleCreate handles POST /posts requests.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req model.CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Create(r.Context(), caller.UserID, req)
	if err != nil {
		writePostError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// HandleList handles GET /posts?page=&limit= requests.
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	errs := make(validator.ValidationErrors)
	page := queryInt(r, "page", service.DefaultPage, errs)
	limit := queryInt(r, "limit", service.DefaultLimit, errs)
	if errs.HasErrors() {
		writeJSON(w, http.StatusBadRequest, validationResponse{Error: service.ErrValidation.Error(), Fields: errs})
		return
	}

	resp, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		writePostError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /posts/{postID} requests.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		writePostError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleUpdate handles PATCH /posts/{postID} requests.
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := postID(w, r)
	if !ok {
		return
	}

	var req model.UpdatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Update(r.Context(), caller.UserID, id, req)
	if err != nil {
		writePostError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UpdatePostResponse{
		Message: "Post updated successfully",
		Post:    post,
	})
}

// HandleDelete handles DELETE /posts/{postID} requests.
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := postID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller.UserID, id); err != nil {
		writePostError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Post deleted successfully"})
}

// writePostError maps post and comment service errors to a response.
func writePostError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeValidation(w, err)
	case errors.Is(err, service.ErrAccountNotFound):
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPostNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeInternal(w, r, err)
	}
}

// postID reads the post id path parameter, answering 400 when it is malformed.
func postID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "postID")
	if !validator.ValidID(id) {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid post id"))
		return "", false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int, errs validator.ValidationErrors) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		errs.Add(key, key+" must be a positive integer")
		return fallback
	}
	return n
}
