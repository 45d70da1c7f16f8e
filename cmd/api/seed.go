package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

// seedEntry is one baseline identity. PasswordHash must already be a bcrypt
// hash; seed files never carry plaintext passwords.
type seedEntry struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	PasswordHash string      `json:"password_hash"`
	CreatedAt    time.Time   `json:"created_at"`
}

// loadSeed reads and validates the bootstrap identity list. Entries without
// an id or timestamp get one assigned so seed files can stay minimal.
func loadSeed(path string) ([]*domain.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	users := make([]*domain.User, 0, len(entries))
	for i, entry := range entries {
		email := domain.NormalizeEmail(entry.Email)
		if email == "" || entry.PasswordHash == "" {
			return nil, fmt.Errorf("seed entry %d: email and password_hash are required", i)
		}
		if !entry.Role.Valid() {
			return nil, fmt.Errorf("seed entry %d: unknown role %q", i, entry.Role)
		}
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = time.Now().UTC()
		}
		users = append(users, &domain.User{
			ID:           entry.ID,
			Name:         entry.Name,
			Email:        email,
			Role:         entry.Role,
			PasswordHash: entry.PasswordHash,
			CreatedAt:    entry.CreatedAt,
		})
	}
	return users, nil
}
