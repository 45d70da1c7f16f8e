package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/orgboard/orgboard-api/internal/core/domain"
)

const userColumns = "id, name, email, role, password_hash, created_at"

func (s *Store) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?",
		domain.NormalizeEmail(email))
	return scanUser(row)
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *Store) Insert(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, role, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, domain.NormalizeEmail(user.Email), user.Role, user.PasswordHash, user.CreatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, user *domain.User) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, role = ?, password_hash = ?, created_at = ? WHERE id = ?",
		user.Name, domain.NormalizeEmail(user.Email), user.Role, user.PasswordHash, user.CreatedAt.Unix(), user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Seed inserts baseline identities, skipping emails that already exist so
// local registrations always win over seed data.
func (s *Store) Seed(ctx context.Context, users []*domain.User) error {
	for _, u := range users {
		err := s.Insert(ctx, u)
		if err == nil || errors.Is(err, domain.ErrDuplicateEmail) {
			continue
		}
		return fmt.Errorf("seed user %s: %w", domain.NormalizeEmail(u.Email), err)
	}
	return nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var createdAt int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
