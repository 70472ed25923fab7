package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dpearce/inkwell/internal/middleware"
	"github.com/dpearce/inkwell/internal/repo"
	"github.com/dpearce/inkwell/internal/service"
	"github.com/go-chi/chi/v5"
)

// newPostRouter mounts the post routes with a stub identity middleware that
// injects callerID, standing in for the JWT middleware.
func newPostRouter(t *testing.T, callerID int) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := &PostHandler{Posts: service.NewPostService(repo.NewPostRepo(db))}

	r := chi.NewRouter()
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{id}", h.GetPost)
	r.Group(func(r chi.Router) {
		if callerID != 0 {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), callerID)))
				})
			})
		}
		r.Post("/posts", h.CreatePost)
		r.Patch("/posts/{id}", h.UpdatePost)
		r.Delete("/posts/{id}", h.DeletePost)
	})
	return r, mock
}

func ownedPostRows(id, authorID int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "title", "content", "author_id", "created_at", "updated_at", "id", "username",
	}).AddRow(id, "Title", "Content", authorID, now, now, authorID, "alice")
}

func TestPostHandler_CreatePost(t *testing.T) {
	r, mock := newPostRouter(t, 4)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("Hello", "World", 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at"}).
			AddRow(1, "Hello", "World", 4, now, now))

	body, _ := json.Marshal(map[string]string{"title": "Hello", "content": "World"})
	req := httptest.NewRequest("POST", "/posts", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreatePost status: got %d, want 201", rr.Code)
	}
	var out struct {
		ID       int    `json:"id"`
		AuthorID int    `json:"author_id"`
		Title    string `json:"title"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.AuthorID != 4 || out.Title != "Hello" {
		t.Errorf("unexpected post: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_Unauthenticated(t *testing.T) {
	r, mock := newPostRouter(t, 0)

	body, _ := json.Marshal(map[string]string{"title": "Hello", "content": "World"})
	req := httptest.NewRequest("POST", "/posts", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("CreatePost status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_CreatePost_MissingTitle(t *testing.T) {
	r, mock := newPostRouter(t, 4)

	body, _ := json.Marshal(map[string]string{"content": "World"})
	req := httptest.NewRequest("POST", "/posts", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("CreatePost status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_ListPosts_PublicAndEmpty(t *testing.T) {
	r, mock := newPostRouter(t, 0)

	mock.ExpectQuery(`ORDER BY p.created_at DESC, p.id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "content", "author_id", "created_at", "updated_at", "id", "username",
		}))

	req := httptest.NewRequest("GET", "/posts", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("ListPosts status: got %d, want 200", rr.Code)
	}
	if got := rr.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_GetPost_NotFound(t *testing.T) {
	r, mock := newPostRouter(t, 0)

	mock.ExpectQuery(`SELECT p.id, p.title, p.content`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest("GET", "/posts/999", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("GetPost status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_UpdatePost_Forbidden(t *testing.T) {
	// Post owned by 4, caller is 5.
	r, mock := newPostRouter(t, 5)

	mock.ExpectQuery(`SELECT p.id, p.title, p.content`).
		WithArgs(1).
		WillReturnRows(ownedPostRows(1, 4))

	body, _ := json.Marshal(map[string]string{"title": "Hijacked"})
	req := httptest.NewRequest("PATCH", "/posts/1", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("UpdatePost status: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_UpdatePost_PartialByOwner(t *testing.T) {
	r, mock := newPostRouter(t, 4)

	mock.ExpectQuery(`SELECT p.id, p.title, p.content`).
		WithArgs(1).
		WillReturnRows(ownedPostRows(1, 4))

	now := time.Now()
	mock.ExpectQuery(`UPDATE posts`).
		WithArgs("New title", "Content", 1, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author_id", "created_at", "updated_at"}).
			AddRow(1, "New title", "Content", 4, now, now))

	body, _ := json.Marshal(map[string]string{"title": "New title"})
	req := httptest.NewRequest("PATCH", "/posts/1", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("UpdatePost status: got %d, want 200", rr.Code)
	}
	var out struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Title != "New title" || out.Content != "Content" {
		t.Errorf("unexpected post: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_UpdatePost_EmptyField(t *testing.T) {
	r, mock := newPostRouter(t, 4)

	mock.ExpectQuery(`SELECT p.id, p.title, p.content`).
		WithArgs(1).
		WillReturnRows(ownedPostRows(1, 4))

	body, _ := json.Marshal(map[string]string{"title": "  "})
	req := httptest.NewRequest("PATCH", "/posts/1", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("UpdatePost status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_DeletePost_Owner(t *testing.T) {
	r, mock := newPostRouter(t, 4)

	mock.ExpectQuery(`SELECT p.id, p.title, p.content`).
		WithArgs(1).
		WillReturnRows(ownedPostRows(1, 4))
	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs(1, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("DELETE", "/posts/1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("DeletePost status: got %d, want 204", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_DeletePost_Forbidden(t *testing.T) {
	r, mock := newPostRouter(t, 5)

	mock.ExpectQuery(`SELECT p.id, p.title, p.content`).
		WithArgs(1).
		WillReturnRows(ownedPostRows(1, 4))

	req := httptest.NewRequest("DELETE", "/posts/1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("DeletePost status: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestPostHandler_DeletePost_RepeatIsNotFound(t *testing.T) {
	r, mock := newPostRouter(t, 4)

	mock.ExpectQuery(`SELECT p.id, p.title, p.content`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest("DELETE", "/posts/1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("DeletePost status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
