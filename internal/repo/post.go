package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dpearce/inkwell/internal/apperr"
	"github.com/dpearce/inkwell/internal/models"
)

// ========================
// PostRepo
// ========================

type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// ========================
// CREATE POST
// ========================

func (r *PostRepo) Create(ctx context.Context, authorID int, title, content string) (*models.Post, error) {
	post := &models.Post{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, title, content, author_id, created_at, updated_at`,
		title, content, authorID,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ========================
// GET POST BY ID
// ========================

func (r *PostRepo) GetByID(ctx context.Context, id int) (*models.Post, error) {
	post := &models.Post{Author: &models.Author{}}
	err := r.DB.QueryRowContext(ctx,
		`SELECT p.id, p.title, p.content, p.author_id, p.created_at, p.updated_at,
		        u.id, u.username
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.id = $1`,
		id,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Author.ID,
		&post.Author.Username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ========================
// LIST ALL POSTS
// ========================

// List returns every post, newest created first. Ties on created_at break
// by id ascending so the order is total and stable.
func (r *PostRepo) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.title, p.content, p.author_id, p.created_at, p.updated_at,
		        u.id, u.username
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 ORDER BY p.created_at DESC, p.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p := models.Post{Author: &models.Author{}}
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
			&p.Author.ID, &p.Author.Username,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ========================
// UPDATE POST
// ========================

// Update writes the merged title and content. The author_id guard makes the
// ownership check and the mutation a single atomic statement; zero rows back
// means the post disappeared between the caller's fetch and this write.
func (r *PostRepo) Update(ctx context.Context, id, authorID int, title, content string) (*models.Post, error) {
	post := &models.Post{}
	err := r.DB.QueryRowContext(ctx,
		`UPDATE posts
		 SET title = $1, content = $2, updated_at = now()
		 WHERE id = $3 AND author_id = $4
		 RETURNING id, title, content, author_id, created_at, updated_at`,
		title, content, id, authorID,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.AuthorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ========================
// DELETE POST
// ========================

func (r *PostRepo) Delete(ctx context.Context, id, authorID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND author_id = $2`,
		id, authorID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
