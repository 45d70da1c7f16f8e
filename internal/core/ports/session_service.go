package ports

import (
	"context"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

// SessionService orchestrates the session lifecycle and exposes the current
// session state. It is the only layer that turns store/verifier absence into
// the domain error taxonomy.
type SessionService interface {
	// Initialize rehydrates any persisted session. Idempotent; safe to call
	// again (storage is simply re-read).
	Initialize(ctx context.Context) error

	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, name, email, password string, role domain.Role) (domain.Session, error)
	Logout(ctx context.Context)

	// Current returns the session as of the last completed transition.
	Current() domain.Session

	// Loading reports whether rehydration has not yet completed.
	Loading() bool
}
