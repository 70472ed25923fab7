package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dpearce/inkwell/internal/apperr"
	"github.com/dpearce/inkwell/internal/models"
	"github.com/dpearce/inkwell/internal/repo"
)

// ==========================
// PostService
// ==========================
type PostService struct {
	Posts *repo.PostRepo
}

func NewPostService(posts *repo.PostRepo) *PostService {
	return &PostService{Posts: posts}
}

// ==========================
// Create
// ==========================
// Create stamps the post with the authenticated caller's id. The author is
// never taken from client input and never changes afterwards.
func (s *PostService) Create(ctx context.Context, authorID int, title, content string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, fmt.Errorf("title must not be empty: %w", apperr.ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("content must not be empty: %w", apperr.ErrValidation)
	}
	return s.Posts.Create(ctx, authorID, title, content)
}

// ==========================
// List / Get
// ==========================
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.Posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id int) (*models.Post, error) {
	return s.Posts.GetByID(ctx, id)
}

// ==========================
// Update
// ==========================
// Update applies a partial patch. The ownership check runs before any patch
// field is inspected; a non-owner on an existing post gets ErrForbidden.
// Absent fields keep their stored value, present-but-empty fields are
// rejected, field by field, never by a structural merge.
func (s *PostService) Update(ctx context.Context, id, callerID int, patch models.PostPatch) (*models.Post, error) {
	post, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, apperr.ErrForbidden
	}

	title := post.Title
	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("title must not be empty: %w", apperr.ErrValidation)
		}
	}

	content := post.Content
	if patch.Content != nil {
		content = strings.TrimSpace(*patch.Content)
		if content == "" {
			return nil, fmt.Errorf("content must not be empty: %w", apperr.ErrValidation)
		}
	}

	// The repo re-checks ownership in the UPDATE itself, so the write is
	// atomic even if the post was deleted since the fetch above.
	updated, err := s.Posts.Update(ctx, id, callerID, title, content)
	if err != nil {
		return nil, err
	}
	updated.Author = post.Author
	return updated, nil
}

// ==========================
// Delete
// ==========================
// Delete is permanent. A repeat delete sees ErrNotFound, not ErrForbidden.
func (s *PostService) Delete(ctx context.Context, id, callerID int) error {
	post, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return apperr.ErrForbidden
	}
	return s.Posts.Delete(ctx, id, callerID)
}
