package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

type stubCredStore struct {
	byEmail map[string]*domain.User
}

func newStubCredStore() *stubCredStore {
	return &stubCredStore{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *stubCredStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return cloneUser(s.byEmail[domain.NormalizeEmail(email)]), nil
}

func (s *stubCredStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (s *stubCredStore) Insert(_ context.Context, user *domain.User) error {
	key := domain.NormalizeEmail(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return domain.ErrDuplicateEmail
	}
	s.byEmail[key] = cloneUser(user)
	return nil
}

func (s *stubCredStore) Update(_ context.Context, user *domain.User) error {
	for key, u := range s.byEmail {
		if u.ID == user.ID {
			delete(s.byEmail, key)
			s.byEmail[domain.NormalizeEmail(user.Email)] = cloneUser(user)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (s *stubCredStore) Seed(ctx context.Context, users []*domain.User) error {
	for _, u := range users {
		if _, exists := s.byEmail[domain.NormalizeEmail(u.Email)]; exists {
			continue
		}
		if err := s.Insert(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

type stubSessionStore struct {
	stored   *domain.Session
	saveErr  error
	clearErr error
	clears   int
}

func (s *stubSessionStore) Save(_ context.Context, session domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := session
	s.stored = &copied
	return nil
}

func (s *stubSessionStore) Load(_ context.Context) (*domain.Session, error) {
	if s.stored == nil {
		return nil, nil
	}
	copied := *s.stored
	return &copied, nil
}

func (s *stubSessionStore) Clear(_ context.Context) error {
	s.clears++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.stored = nil
	return nil
}

func newTestManager(t *testing.T) (*SessionManager, *stubCredStore, *stubSessionStore, *TokenService) {
	t.Helper()
	creds := newStubCredStore()
	sessions := &stubSessionStore{}
	tokens := NewTokenService("test-secret", time.Hour)
	mgr := NewSessionManager(creds, sessions, NewBcryptHasher(4), tokens, zerolog.Nop())
	return mgr, creds, sessions, tokens
}

func TestSessionManager_RegisterThenLogin_SameID(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	registered, err := mgr.Register(ctx, "Alice", "alice@example.com", "s3cret", domain.RoleFinance)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.User.ID == "" || !registered.IsAuthenticated || registered.Token == "" {
		t.Fatalf("unexpected session: %+v", registered)
	}

	loggedIn, err := mgr.Login(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Fatalf("expected id %s, got %s", registered.User.ID, loggedIn.User.ID)
	}
}

func TestSessionManager_Login_Normalization(t *testing.T) {
	mgr, creds, _, _ := newTestManager(t)
	ctx := context.Background()

	hash, err := NewBcryptHasher(4).Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	seed := []*domain.User{{
		ID: "seed-1", Name: "Seed", Email: "a@x.com",
		Role: domain.RoleFinance, PasswordHash: hash, CreatedAt: time.Now().UTC(),
	}}
	if err := creds.Seed(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	session, err := mgr.Login(ctx, "A@X.com ", "password123")
	if err != nil {
		t.Fatalf("login with mixed case and trailing space: %v", err)
	}
	if session.User.ID != "seed-1" {
		t.Fatalf("unexpected user: %+v", session.User)
	}
}

func TestSessionManager_Register_DuplicateCasingVariant(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := mgr.Register(ctx, "Bob", "bob@example.com", "pass", domain.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := mgr.Register(ctx, "Bobby", "  BOB@Example.COM ", "pass2", domain.RoleUser)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSessionManager_Login_IndistinguishableFailures(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := mgr.Register(ctx, "Dave", "dave@example.com", "goodpass", domain.RoleWriter); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPass := mgr.Login(ctx, "dave@example.com", "badpass")
	_, unknown := mgr.Login(ctx, "ghost@example.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("failure modes must be indistinguishable: %q vs %q", wrongPass, unknown)
	}
}

func TestSessionManager_Register_InvalidRole(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)

	_, err := mgr.Register(context.Background(), "Eve", "eve@example.com", "pass", domain.Role("superadmin"))
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for undeclared role, got %v", err)
	}
}

func TestSessionManager_Logout_ClearsState(t *testing.T) {
	mgr, _, sessions, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := mgr.Register(ctx, "Fay", "fay@example.com", "pass", domain.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	mgr.Logout(ctx)

	if sessions.stored != nil {
		t.Fatalf("expected persisted session cleared")
	}
	if current := mgr.Current(); current.IsAuthenticated || current.User != nil {
		t.Fatalf("expected anonymous session, got %+v", current)
	}
}

func TestSessionManager_Logout_SwallowsClearFailure(t *testing.T) {
	mgr, _, sessions, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := mgr.Register(ctx, "Gil", "gil@example.com", "pass", domain.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}
	sessions.clearErr = errors.New("storage down")

	mgr.Logout(ctx)

	if current := mgr.Current(); current.IsAuthenticated {
		t.Fatalf("in-memory state must clear even when storage fails")
	}
}

func TestSessionManager_Initialize_RehydratesValidSession(t *testing.T) {
	mgr, _, sessions, _ := newTestManager(t)
	ctx := context.Background()

	registered, err := mgr.Register(ctx, "Hana", "hana@example.com", "pass", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Fresh process: same durable storage, new manager.
	fresh, _, _, _ := newTestManager(t)
	fresh.sessions = sessions
	fresh.store = mgr.store

	if !fresh.Loading() {
		t.Fatalf("expected loading before Initialize")
	}
	if err := fresh.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if fresh.Loading() {
		t.Fatalf("expected loading false after Initialize")
	}

	current := fresh.Current()
	if !current.IsAuthenticated || current.User == nil {
		t.Fatalf("expected authenticated session, got %+v", current)
	}
	if current.User.ID != registered.User.ID || current.Token != registered.Token {
		t.Fatalf("rehydrated session differs: %+v", current)
	}
}

func TestSessionManager_Initialize_ExpiredTokenClearsStorage(t *testing.T) {
	mgr, creds, sessions, tokens := newTestManager(t)
	ctx := context.Background()

	if _, err := mgr.Register(ctx, "Ivan", "ivan@example.com", "pass", domain.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	tokens.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	fresh := NewSessionManager(creds, sessions, NewBcryptHasher(4), tokens, zerolog.Nop())
	if err := fresh.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if fresh.Current().IsAuthenticated {
		t.Fatalf("expired session must rehydrate unauthenticated")
	}
	if sessions.stored != nil {
		t.Fatalf("stale persisted session must be cleared")
	}
	if fresh.Loading() {
		t.Fatalf("expected loading false after Initialize")
	}
}

func TestSessionManager_Initialize_OrphanedUserClearsStorage(t *testing.T) {
	mgr, _, sessions, tokens := newTestManager(t)
	ctx := context.Background()

	if _, err := mgr.Register(ctx, "Jo", "jo@example.com", "pass", domain.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Same storage, but a credential store that no longer knows the user.
	fresh := NewSessionManager(newStubCredStore(), sessions, NewBcryptHasher(4), tokens, zerolog.Nop())
	if err := fresh.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if fresh.Current().IsAuthenticated {
		t.Fatalf("orphaned session must rehydrate unauthenticated")
	}
	if sessions.stored != nil {
		t.Fatalf("orphaned persisted session must be cleared")
	}
}

func TestSessionManager_Initialize_Idempotent(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := mgr.Initialize(ctx); err != nil {
			t.Fatalf("initialize #%d: %v", i+1, err)
		}
	}
	if mgr.Loading() {
		t.Fatalf("expected loading false")
	}
}

func TestSessionManager_OnChange_Notified(t *testing.T) {
	mgr, _, _, _ := newTestManager(t)
	ctx := context.Background()

	var seen []domain.Session
	mgr.OnChange(func(s domain.Session) { seen = append(seen, s) })

	if _, err := mgr.Register(ctx, "Kim", "kim@example.com", "pass", domain.RoleWriter); err != nil {
		t.Fatalf("register: %v", err)
	}
	mgr.Logout(ctx)

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !seen[0].IsAuthenticated || seen[1].IsAuthenticated {
		t.Fatalf("unexpected notification order: %+v", seen)
	}
}

func TestBcryptHasher_VerifyMismatchIsFalse(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("right")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "right" {
		t.Fatalf("hash must not be plaintext")
	}
	if !hasher.Verify("right", hash) {
		t.Fatalf("expected verification to succeed")
	}
	if hasher.Verify("wrong", hash) {
		t.Fatalf("expected verification to fail")
	}
	if hasher.Verify("anything", "not-a-hash") {
		t.Fatalf("garbage hash must verify false, not panic")
	}
}
