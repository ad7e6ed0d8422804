package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/blog-service/internal/apperr"
	"github.com/Dan9191/blog-service/internal/auth"
	"github.com/Dan9191/blog-service/internal/models"
	"github.com/Dan9191/blog-service/internal/repository"
)

// Mailer sends account mail. Sends are best-effort; failures are logged
// and never surfaced to callers.
type Mailer interface {
	SendWelcome(to, name string) error
}

// AuthResult is returned by Register and Login: the issued claim plus the
// user it was issued for.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Service handles business logic
type Service struct {
	repo   repository.Repository
	tokens *auth.TokenService
	mailer Mailer
	log    *logrus.Logger
}

// NewService initializes a new service. mailer may be nil when outgoing
// mail is not configured.
func NewService(repo repository.Repository, tokens *auth.TokenService, mailer Mailer, log *logrus.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, mailer: mailer, log: log}
}

// Register creates a new user with a hashed password and issues a claim
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	_, err := s.repo.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, apperr.Wrap(apperr.CodeConflict, "user already exists with this email", nil)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.log.Errorf("Register: email lookup failed: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "registration failed", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.log.Errorf("Register: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "registration failed", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperr.Wrap(apperr.CodeConflict, "user already exists with this email", err)
		}
		s.log.Errorf("Register: create user failed: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "registration failed", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Errorf("Register: token issue failed: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "registration failed", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(user.Email, user.Name); err != nil {
			s.log.Warnf("Register: welcome email to %s failed: %v", user.Email, err)
		}
	}

	s.log.Infof("User registered: %s", user.Email)
	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates a user and issues a claim. Unknown email, wrong
// password and unexpected backend faults all collapse into the same
// AuthenticationFailed outcome; causes are only logged.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Errorf("Login: email lookup failed: %v", err)
		}
		return nil, apperr.Wrap(apperr.CodeAuthenticationFailed, "invalid email or password", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperr.Wrap(apperr.CodeAuthenticationFailed, "invalid email or password", nil)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Errorf("Login: token issue failed: %v", err)
		return nil, apperr.Wrap(apperr.CodeAuthenticationFailed, "invalid email or password", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return &AuthResult{Token: token, User: user}, nil
}

// Me returns the authenticated caller's user record
func (s *Service) Me(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	identity, err := auth.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrNotFound
		}
		s.log.Errorf("Me: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load user", err)
	}
	return user, nil
}

// ListUsers returns all users; any authenticated caller sees all of them
func (s *Service) ListUsers(ctx context.Context, identity *auth.Identity) ([]*models.User, error) {
	if _, err := auth.RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	users, err := s.repo.FindAllUsers(ctx)
	if err != nil {
		s.log.Errorf("ListUsers: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list users", err)
	}
	return users, nil
}

// GetPost returns a post by id with the author resolved. A missing id
// yields a nil post, not a failure.
func (s *Service) GetPost(ctx context.Context, identity *auth.Identity, id string) (*models.Post, error) {
	if _, err := auth.RequireAuthenticated(identity); err != nil {
		return nil, err
	}
	post, err := s.repo.FindPostWithAuthor(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.Errorf("GetPost: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load post", err)
	}
	return post, nil
}

// ListPosts returns all posts newest-first with authors resolved. No
// authentication required.
func (s *Service) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.repo.FindAllPostsWithAuthor(ctx)
	if err != nil {
		s.log.Errorf("ListPosts: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list posts", err)
	}
	return posts, nil
}

// MyPosts returns the caller's posts newest-first with authors resolved
func (s *Service) MyPosts(ctx context.Context, identity *auth.Identity) ([]*models.Post, error) {
	identity, err := auth.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}
	posts, err := s.repo.FindPostsByAuthorWithAuthor(ctx, identity.UserID)
	if err != nil {
		s.log.Errorf("MyPosts: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list posts", err)
	}
	return posts, nil
}

// CreatePost persists a post authored by the caller and returns it with
// the author resolved
func (s *Service) CreatePost(ctx context.Context, identity *auth.Identity, title, content string) (*models.Post, error) {
	identity, err := auth.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:       uuid.NewString(),
		Title:    title,
		Content:  content,
		AuthorID: identity.UserID,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		s.log.Errorf("CreatePost: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create post", err)
	}

	created, err := s.resolveAuthor(ctx, post)
	if err != nil {
		s.log.Errorf("CreatePost: created post could not be fetched: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "post created but could not be fetched", err)
	}

	s.log.Infof("Post created by user %s: %s", identity.UserID, post.ID)
	return created, nil
}

// UpdatePost applies the provided fields to a post owned by the caller.
// Omitted fields retain their prior values.
func (s *Service) UpdatePost(ctx context.Context, identity *auth.Identity, id string, title, content *string) (*models.Post, error) {
	identity, err := auth.RequireAuthenticated(identity)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Wrap(apperr.CodeNotFound, "post not found", err)
		}
		s.log.Errorf("UpdatePost: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update post", err)
	}

	if err := auth.RequireOwner(identity, post.AuthorIdentifier()); err != nil {
		return nil, err
	}

	if title != nil {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}

	// The ownership check and the write are separate repository calls; a
	// post deleted in between surfaces here as not found.
	if err := s.repo.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Wrap(apperr.CodeNotFound, "post not found", err)
		}
		s.log.Errorf("UpdatePost: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update post", err)
	}

	updated, err := s.resolveAuthor(ctx, post)
	if err != nil {
		s.log.Errorf("UpdatePost: updated post could not be fetched: %v", err)
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update post", err)
	}

	s.log.Infof("Post updated by user %s: %s", identity.UserID, id)
	return updated, nil
}

// DeletePost removes a post owned by the caller
func (s *Service) DeletePost(ctx context.Context, identity *auth.Identity, id string) error {
	identity, err := auth.RequireAuthenticated(identity)
	if err != nil {
		return err
	}

	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Wrap(apperr.CodeNotFound, "post not found", err)
		}
		s.log.Errorf("DeletePost: %v", err)
		return apperr.Wrap(apperr.CodeInternal, "failed to delete post", err)
	}

	if err := auth.RequireOwner(identity, post.AuthorIdentifier()); err != nil {
		return err
	}

	// A post already deleted by a concurrent call counts as deleted.
	if err := s.repo.DeletePost(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.log.Errorf("DeletePost: %v", err)
		return apperr.Wrap(apperr.CodeInternal, "failed to delete post", err)
	}

	s.log.Infof("Post deleted by user %s: %s", identity.UserID, id)
	return nil
}

// resolveAuthor normalizes a post for the read path: a post whose author
// is already embedded is returned as-is, otherwise it is re-fetched with
// the author relation expanded.
func (s *Service) resolveAuthor(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.Author != nil {
		return post, nil
	}
	return s.repo.FindPostWithAuthor(ctx, post.ID)
}
