package ports

import "github.com/orgboard/orgboard-api/internal/core/domain"

// Claims are the identity facts embedded in a session token.
type Claims struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	// Exp is the expiry as a Unix-epoch timestamp in seconds. Zero means the
	// token carries no expiry claim and is treated as non-expiring.
	Exp int64 `json:"exp"`
}

// TokenService constructs and inspects session tokens. It never stores them;
// the session manager owns the token lifecycle.
type TokenService interface {
	Issue(user *domain.User) (string, error)

	// Parse fails soft: malformed, tampered, or expired input yields nil,
	// never an error.
	Parse(token string) *Claims

	// IsExpired compares the token's expiry against the current time minus a
	// clock-skew tolerance. Tokens without an expiry claim never expire.
	IsExpired(token string) bool
}
