package models

import "time"

// Post represents a post authored by a user.
//
// AuthorID is always set. Author is nil until the read path resolves it;
// a post with a non-nil Author is considered resolved.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorIdentifier returns the post's author id regardless of whether the
// author relation has been resolved.
func (p *Post) AuthorIdentifier() string {
	if p.Author != nil {
		return p.Author.ID
	}
	return p.AuthorID
}
