package auth

import (
	"errors"
	"testing"

	"github.com/Dan9191/blog-service/internal/apperr"
)

func TestRequireAuthenticated(t *testing.T) {
	t.Parallel()

	if _, err := RequireAuthenticated(nil); !errors.Is(err, apperr.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}

	identity := &Identity{UserID: "u1", Email: "u1@x.com"}
	got, err := RequireAuthenticated(identity)
	if err != nil {
		t.Fatalf("RequireAuthenticated error: %v", err)
	}
	if got != identity {
		t.Fatalf("expected the same identity back")
	}
}

func TestRequireOwner(t *testing.T) {
	t.Parallel()

	identity := &Identity{UserID: "u1"}

	if err := RequireOwner(identity, "u1"); err != nil {
		t.Fatalf("expected owner to pass, got %v", err)
	}
	if err := RequireOwner(identity, "u2"); !errors.Is(err, apperr.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := RequireOwner(nil, "u1"); !errors.Is(err, apperr.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}
