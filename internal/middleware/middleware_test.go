package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dan9191/blog-service/internal/auth"
)

func resolveIdentity(t *testing.T, tokens *auth.TokenService, header string) *auth.Identity {
	t.Helper()

	var got *auth.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	Identity(tokens)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("resolver must never reject, got status %d", rec.Code)
	}
	return got
}

func TestIdentity_BearerToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService("secret")
	tok, err := tokens.Issue("u1", "u1@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	identity := resolveIdentity(t, tokens, "Bearer "+tok)
	if identity == nil {
		t.Fatalf("expected identity, got none")
	}
	if identity.UserID != "u1" || identity.Email != "u1@x.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestIdentity_BareToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService("secret")
	tok, err := tokens.Issue("u1", "u1@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	identity := resolveIdentity(t, tokens, tok)
	if identity == nil {
		t.Fatalf("expected identity for bare token, got none")
	}
}

func TestIdentity_AnonymousCases(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenService("secret")
	otherSecret, err := auth.NewTokenService("other").Issue("u1", "u1@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	cases := map[string]string{
		"missing header": "",
		"malformed":      "Bearer not.a.jwt",
		"bad signature":  "Bearer " + otherSecret,
		"wrong scheme":   "Basic dXNlcjpwdw==",
	}
	for name, header := range cases {
		if identity := resolveIdentity(t, tokens, header); identity != nil {
			t.Fatalf("%s: expected anonymous, got %+v", name, identity)
		}
	}
}
