package domain

import (
	"strings"
	"time"
)

// Role is the closed set of roles known to the permission matrix.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFinance Role = "finance"
	RoleWriter  Role = "writer"
	RoleUser    Role = "user"
)

// Roles lists every declared role, in declaration order.
var Roles = []Role{RoleAdmin, RoleFinance, RoleWriter, RoleUser}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFinance, RoleWriter, RoleUser:
		return true
	}
	return false
}

// User models an identity that can authenticate against the dashboard.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail trims whitespace and lowercases an email address. All email
// comparisons across the system go through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
