package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/boardly/board-go/internal/config"
	"github.com/boardly/board-go/internal/handler"
	"github.com/boardly/board-go/internal/logging"
	"github.com/boardly/board-go/internal/repository"
	"github.com/boardly/board-go/internal/repository/memory"
	"github.com/boardly/board-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("store unavailable", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer st.close()

	authService := service.NewAuthService(st.users, cfg.JWTSecret, cfg.JWTExpiry)
	postService := service.NewPostService(st.posts, st.users)
	commentService := service.NewCommentService(st.comments, st.users, postService)

	router := handler.NewRouter(handler.RouterConfig{
		Logger:      logger,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        handler.NewAuthHandler(authService),
		Posts:       handler.NewPostHandler(postService),
		Comments:    handler.NewCommentHandler(commentService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

type store struct {
	users    service.UserRepository
	posts    service.PostRepository
	comments service.CommentRepository
	close    func()
}

// openStore connects the configured backend. SQL backends are migrated
// before the first request is served.
func openStore(ctx context.Context, cfg config.Config) (*store, error) {
	if cfg.StoreDriver == config.DriverMemory {
		slog.Warn("using in-memory store, data is lost on restart")
		m := memory.NewStore()
		return &store{users: m.Users(), posts: m.Posts(), comments: m.Comments(), close: func() {}}, nil
	}

	db, dialect, err := repository.Open(ctx, cfg.StoreDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	return &store{
		users:    repository.NewUserRepository(db, dialect),
		posts:    repository.NewPostRepository(db, dialect),
		comments: repository.NewCommentRepository(db, dialect),
		close: func() {
			if err := db.Close(); err != nil {
				slog.Error("closing database", "error", err)
			}
		},
	}, nil
}
