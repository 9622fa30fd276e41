package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/inkshelf/inkshelf-go/internal/middleware"
	"github.com/inkshelf/inkshelf-go/internal/model"
	"github.com/inkshelf/inkshelf-go/internal/repository"
	"github.com/inkshelf/inkshelf-go/internal/service"
)

type stubResolver struct {
	user *model.User
}

func (s *stubResolver) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	return s.user, nil
}

// newTestRouter mounts the handlers behind a stub-authenticated router so
// request-shape failures can be exercised without a database.
func newTestRouter() chi.Router {
	authService := service.NewAuthService(
		repository.NewUserRepository(nil),
		repository.NewTokenRepository(nil),
		"test-secret",
		time.Hour,
	)
	bookHandler := NewBookHandler(service.NewCatalogService(repository.NewBookRepository(nil)))
	searchHandler := NewSearchHandler(service.NewSearchService(repository.NewBookRepository(nil)))
	authHandler := NewAuthHandler(authService)

	alice := &model.User{ID: 1, Username: "alice", Active: true}

	r := chi.NewRouter()
	r.Post("/api/user/signUp", authHandler.HandleSignUp)
	r.Post("/api/user/signIn", authHandler.HandleSignIn)
	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(&stubResolver{user: alice}))
		r.Post("/api/books/create", bookHandler.HandleCreate)
		r.Get("/api/books/searchs", searchHandler.HandleSearch)
		r.Get("/api/books/{id}", bookHandler.HandleGet)
	})
	return r
}

func doRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer test-token")
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	return body
}

func TestHandleSignUp_InvalidBody(t *testing.T) {
	rr := doRequest(t, http.MethodPost, "/api/user/signUp", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleSignUp_MissingFields(t *testing.T) {
	rr := doRequest(t, http.MethodPost, "/api/user/signUp", `{"username":"alice"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	body := decodeBody(t, rr)
	errs, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors map, got %v", body)
	}
	for _, field := range []string{"email", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected error for field %q", field)
		}
	}
}

func TestHandleSignIn_MissingCredentials(t *testing.T) {
	rr := doRequest(t, http.MethodPost, "/api/user/signIn", `{"username":"alice"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["message"] != "Username and password are required fields" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHandleCreate_MissingTitle(t *testing.T) {
	rr := doRequest(t, http.MethodPost, "/api/books/create",
		`{"author":{"full_name":"Herbert"},"genre":[{"genre":"Sci-Fi"}],"publication_year":1965}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["message"] != "Error when creating the book" {
		t.Errorf("message = %q", body["message"])
	}
	errs, ok := body["errors"].(map[string]any)
	if !ok || errs["title"] == nil {
		t.Errorf("expected title error, got %v", body["errors"])
	}
}

func TestHandleGet_NonNumericID(t *testing.T) {
	rr := doRequest(t, http.MethodGet, "/api/books/abc", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["message"] != "Book not found" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	rr := doRequest(t, http.MethodGet, "/api/books/searchs", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["message"] != "incorrect search parameters" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHandleCreate_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/books/create", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}
