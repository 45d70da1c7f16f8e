package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orgboard/orgboard-api/internal/core/domain"
	"github.com/orgboard/orgboard-api/internal/core/ports"
)

// SessionManager is the sole mutator of session state within one process. It
// orchestrates login/register/logout against the credential store, verifier
// and token service, persists the result, and rehydrates it on startup.
//
// State machine: uninitialized -> loading -> authenticated | unauthenticated.
type SessionManager struct {
	store    ports.CredentialStore
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	log      zerolog.Logger

	mu        sync.Mutex
	current   domain.Session
	loading   bool
	observers []func(domain.Session)
}

func NewSessionManager(
	store ports.CredentialStore,
	sessions ports.SessionStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	log zerolog.Logger,
) *SessionManager {
	return &SessionManager{
		store:    store,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		log:      log,
		loading:  true,
	}
}

// OnChange registers an observer invoked after every committed session
// transition. Observers run outside the manager's lock.
func (m *SessionManager) OnChange(fn func(domain.Session)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// Initialize rehydrates the persisted session. A missing, expired, malformed
// or orphaned session (whose subject no longer resolves in the credential
// store) is cleared and the manager ends unauthenticated. Idempotent: calling
// it again simply re-reads storage. Loading is always false afterwards.
func (m *SessionManager) Initialize(ctx context.Context) error {
	stored, err := m.sessions.Load(ctx)
	if err != nil {
		m.commit(domain.Anonymous(), false)
		return fmt.Errorf("load session: %w", err)
	}
	if stored == nil || stored.Token == "" {
		m.commit(domain.Anonymous(), false)
		return nil
	}

	claims := m.tokens.Parse(stored.Token)
	if claims == nil || m.tokens.IsExpired(stored.Token) {
		m.discardStale(ctx, "token expired or malformed")
		m.commit(domain.Anonymous(), false)
		return nil
	}

	user, err := m.store.FindByID(ctx, claims.ID)
	if err != nil {
		m.commit(domain.Anonymous(), false)
		return fmt.Errorf("resolve session user: %w", err)
	}
	if user == nil {
		m.discardStale(ctx, "session user no longer exists")
		m.commit(domain.Anonymous(), false)
		return nil
	}

	m.commit(domain.Session{User: user, Token: stored.Token, IsAuthenticated: true}, false)
	return nil
}

// Login authenticates by normalized email and password. Unknown email and
// rejected password are indistinguishable: both yield ErrInvalidCredentials.
// It performs no navigation side effects; callers react to the state change.
func (m *SessionManager) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.Anonymous(), domain.ErrInvalidCredentials
	}

	user, err := m.store.FindByEmail(ctx, email)
	if err != nil {
		return domain.Anonymous(), fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !m.hasher.Verify(password, user.PasswordHash) {
		return domain.Anonymous(), domain.ErrInvalidCredentials
	}

	return m.establish(ctx, user)
}

// Register creates a new identity and immediately authenticates it.
func (m *SessionManager) Register(ctx context.Context, name, email, password string, role domain.Role) (domain.Session, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" || password == "" || !role.Valid() {
		return domain.Anonymous(), domain.ErrInvalidCredentials
	}

	existing, err := m.store.FindByEmail(ctx, email)
	if err != nil {
		return domain.Anonymous(), fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return domain.Anonymous(), domain.ErrDuplicateEmail
	}

	hash, err := m.hasher.Hash(password)
	if err != nil {
		return domain.Anonymous(), fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := m.store.Insert(ctx, user); err != nil {
		return domain.Anonymous(), err
	}

	return m.establish(ctx, user)
}

// Logout clears the persisted and in-memory session. A failure to clear
// storage is cleanup-only: logged and swallowed.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.sessions.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	m.commit(domain.Anonymous(), false)
}

// Current returns the session as of the last completed transition.
func (m *SessionManager) Current() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Loading reports whether rehydration has not yet completed.
func (m *SessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *SessionManager) establish(ctx context.Context, user *domain.User) (domain.Session, error) {
	token, err := m.tokens.Issue(user)
	if err != nil {
		return domain.Anonymous(), fmt.Errorf("issue token: %w", err)
	}

	session := domain.Session{User: user, Token: token, IsAuthenticated: true}
	if err := m.sessions.Save(ctx, session); err != nil {
		return domain.Anonymous(), fmt.Errorf("persist session: %w", err)
	}

	m.commit(session, false)
	return session, nil
}

func (m *SessionManager) discardStale(ctx context.Context, reason string) {
	m.log.Debug().Str("reason", reason).Msg("clearing stale persisted session")
	if err := m.sessions.Clear(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear stale session")
	}
}

// commit installs the new session state and notifies observers outside the lock.
func (m *SessionManager) commit(session domain.Session, loading bool) {
	m.mu.Lock()
	m.current = session
	m.loading = loading
	observers := make([]func(domain.Session), len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(session)
	}
}
