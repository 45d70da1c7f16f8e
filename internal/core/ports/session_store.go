package ports

import (
	"context"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

// SessionStore persists the current session record in client-durable storage.
// The record round-trips exactly through JSON as {user, token, isAuthenticated}.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error

	// Load returns (nil, nil) when no session is persisted.
	Load(ctx context.Context) (*domain.Session, error)

	Clear(ctx context.Context) error
}
