package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dan9191/blog-service/internal/models"
)

var (
	// ErrNotFound is returned when a record id or filter resolves nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the unique email constraint is hit.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository provides persistence operations over users and posts.
//
// All post listings are ordered newest-created-first. Methods suffixed
// WithAuthor return posts with the author relation resolved.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindAllUsers(ctx context.Context) ([]*models.User, error)

	CreatePost(ctx context.Context, post *models.Post) error
	FindPostByID(ctx context.Context, id string) (*models.Post, error)
	FindPostWithAuthor(ctx context.Context, id string) (*models.Post, error)
	FindAllPostsWithAuthor(ctx context.Context) ([]*models.Post, error)
	FindPostsByAuthorWithAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	FindPostsCreatedSince(ctx context.Context, since time.Time) ([]*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
}
