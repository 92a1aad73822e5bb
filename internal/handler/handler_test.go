package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/boardly/board-go/internal/model"
	"github.com/boardly/board-go/internal/repository/memory"
	"github.com/boardly/board-go/internal/service"
)

const testSecret = "test-secret"

type testAPI struct {
	t *testing.T
	h http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := memory.NewStore()
	authSvc := service.NewAuthService(store.Users(), testSecret, time.Hour)
	postSvc := service.NewPostService(store.Posts(), store.Users())
	commentSvc := service.NewCommentService(store.Comments(), store.Users(), postSvc)

	h := NewRouter(RouterConfig{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTSecret:   testSecret,
		CORSOrigins: []string{"*"},
		Auth:        NewAuthHandler(authSvc),
		Posts:       NewPostHandler(postSvc),
		Comments:    NewCommentHandler(commentSvc),
	})
	return &testAPI{t: t, h: h}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		buf = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(a.t, err)
		buf = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, buf)
	if buf != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

// signup registers an account and returns a token for it.
func (a *testAPI) signup(name string) string {
	a.t.Helper()

	email := name + "@x.com"
	rec := a.do(http.MethodPost, "/auth/signup", "", model.SignupRequest{DisplayName: name, Email: email, Password: "password123"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/auth/login", "", model.LoginRequest{Email: email, Password: "password123"})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[model.LoginResponse](a.t, rec).AccessToken
}

func (a *testAPI) createPost(token, title string) model.PostDetail {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/posts", token, model.CreatePostRequest{Title: title, Body: "B"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.PostDetail](a.t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
