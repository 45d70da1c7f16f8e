package service

import "golang.org/x/crypto/bcrypt"

// BcryptHasher implements ports.PasswordHasher with salted bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using the given cost, or bcrypt.DefaultCost
// when cost is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports a mismatch as false, never as an error; the session manager
// translates rejection into domain.ErrInvalidCredentials.
func (h *BcryptHasher) Verify(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
