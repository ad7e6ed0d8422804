package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeNotFound, "post not found", errors.New("sql: no rows"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match by code")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("unexpected match against a different code")
	}
}

func TestCauseIsWrappedButNotSurfaced(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Wrap(CodeInternal, "internal error", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected the cause to be reachable via Unwrap")
	}
	if MessageOf(err) != "internal error" {
		t.Fatalf("message must not include the cause, got %q", MessageOf(err))
	}
}

func TestCodeOf_Unknown(t *testing.T) {
	t.Parallel()

	if got := CodeOf(errors.New("boom")); got != CodeInternal {
		t.Fatalf("expected CodeInternal for unknown errors, got %q", got)
	}
	if got := MessageOf(errors.New("boom")); got != "internal error" {
		t.Fatalf("unknown errors must surface the generic message, got %q", got)
	}
}

func TestCodeOf_WrappedDeeper(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("operation failed: %w", New(CodeConflict, "already exists"))
	if got := CodeOf(err); got != CodeConflict {
		t.Fatalf("expected CodeConflict through wrapping, got %q", got)
	}
}
