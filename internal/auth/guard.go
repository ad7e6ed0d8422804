package auth

import "github.com/Dan9191/blog-service/internal/apperr"

// RequireAuthenticated fails unless a resolved identity is present.
func RequireAuthenticated(identity *Identity) (*Identity, error) {
	if identity == nil {
		return nil, apperr.ErrAuthenticationRequired
	}
	return identity, nil
}

// RequireOwner fails unless the acting identity owns the resource with the
// given author id.
func RequireOwner(identity *Identity, authorID string) error {
	if identity == nil {
		return apperr.ErrAuthenticationRequired
	}
	if identity.UserID != authorID {
		return apperr.ErrNotAuthorized
	}
	return nil
}
