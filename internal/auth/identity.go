package auth

// Identity is the per-request resolved identity extracted from a verified
// claim. A nil *Identity means the request is anonymous.
type Identity struct {
	UserID string
	Email  string
}
