package models

import "time"

// Author is the subset of User embedded in post responses.
type Author struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int       `json:"author_id"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostPatch carries a partial update. Nil fields are left unchanged;
// non-nil fields must be non-empty after trimming.
type PostPatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
