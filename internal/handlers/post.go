package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dpearce/inkwell/internal/apperr"
	"github.com/dpearce/inkwell/internal/metrics"
	"github.com/dpearce/inkwell/internal/middleware"
	"github.com/dpearce/inkwell/internal/models"
	"github.com/dpearce/inkwell/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// ==========================
// PostHandler
// ==========================
type PostHandler struct {
	Posts *service.PostService
}

// ==========================
// Create Post
// ==========================
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		WriteError(w, apperr.ErrUnauthenticated)
		return
	}

	var input struct {
		Title   string `json:"title" validate:"required,max=255"`
		Content string `json:"content" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.Posts.Create(r.Context(), userID, input.Title, input.Content)
	if err != nil {
		WriteError(w, err)
		return
	}

	metrics.PostsCreatedTotal.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(post)
}

// ==========================
// List Posts (public)
// ==========================
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// ==========================
// Get Post By ID (public)
// ==========================
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.Posts.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// ==========================
// Update Post (partial)
// ==========================
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		WriteError(w, apperr.ErrUnauthenticated)
		return
	}

	id, err := postID(r)
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var patch models.PostPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	post, err := h.Posts.Update(r.Context(), id, userID, patch)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// ==========================
// Delete Post
// ==========================
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		WriteError(w, apperr.ErrUnauthenticated)
		return
	}

	id, err := postID(r)
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := h.Posts.Delete(r.Context(), id, userID); err != nil {
		WriteError(w, err)
		return
	}

	metrics.PostsDeletedTotal.Inc()

	w.WriteHeader(http.StatusNoContent)
}

func postID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
