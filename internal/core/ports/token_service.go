package ports

import "github.com/platops/user-directory/internal/core/domain"

// Claims is the verified identity carried by an access token.
type Claims struct {
	UserID string
	Name   string
	Level  int
}

// TokenService signs and validates bearer tokens. Tokens are stateless and
// self-contained; they expire but are never revoked early.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Verify returns the embedded claims, or domain.ErrInvalidToken on a bad
	// signature, malformed token, or past expiry.
	Verify(token string) (*Claims, error)
}
