package ports

import (
	"context"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

// CredentialStore persists identities and resolves them by normalized email or
// by id. Absence is reported as (nil, nil); errors are reserved for malformed
// input and I/O failure.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// Insert fails with domain.ErrDuplicateEmail when an identity with the
	// same normalized email already exists.
	Insert(ctx context.Context, user *domain.User) error

	// Update replaces an existing identity fully; fails with
	// domain.ErrUserNotFound when the id is absent.
	Update(ctx context.Context, user *domain.User) error

	// Seed loads a baseline identity list. An entry whose normalized email
	// already exists is skipped: locally registered identities always win
	// over seed data.
	Seed(ctx context.Context, users []*domain.User) error
}
