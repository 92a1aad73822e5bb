package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/boardly/board-go/internal/middleware"
)

// RouterConfig carries what NewRouter needs to assemble the API.
type RouterConfig struct {
	Logger      *slog.Logger
	JWTSecret   string
	CORSOrigins []string

	Auth     *AuthHandler
	Posts    *PostHandler
	Comments *CommentHandler
}

// NewRouter builds the HTTP surface. Reads are public; every write and
// /auth/me require a bearer token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/signup", cfg.Auth.HandleSignup)
	r.Post("/auth/login", cfg.Auth.HandleLogin)

	r.Get("/posts", cfg.Posts.HandleList)
	r.Get("/posts/{postID}", cfg.Posts.HandleGet)
	r.Get("/posts/{postID}/comments", cfg.Comments.HandleList)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/auth/me", cfg.Auth.HandleMe)

		r.Post("/posts", cfg.Posts.HandleCreate)
		r.Patch("/posts/{postID}", cfg.Posts.HandleUpdate)
		r.Delete("/posts/{postID}", cfg.Posts.HandleDelete)
		r.Post("/posts/{postID}/comments", cfg.Comments.HandleCreate)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("method not allowed"))
	})

	return r
}
