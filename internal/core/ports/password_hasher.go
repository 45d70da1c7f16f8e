package ports

// PasswordHasher turns a plaintext password into a storable one-way hash and
// verifies plaintext against a stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify reports a mismatch as false, never as an error.
	Verify(password, storedHash string) bool
}
