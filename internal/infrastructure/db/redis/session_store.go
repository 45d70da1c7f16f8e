package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

const sessionKeyPrefix = "session-storage"

// SessionStore persists the session record as JSON under
// session-storage:<owner>, expiring with the token TTL so storage never
// outlives a token by much. Each client process owns one key.
type SessionStore struct {
	client *redis.Client
	owner  string
	ttl    time.Duration
}

// NewSessionStore wraps the given client. owner distinguishes concurrent
// clients sharing one Redis; last write wins within an owner.
func NewSessionStore(client *redis.Client, owner string, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, owner: owner, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionStore) key() string {
	return fmt.Sprintf("%s:%s", sessionKeyPrefix, s.owner)
}
