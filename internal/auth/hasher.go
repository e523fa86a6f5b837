package auth

import "crypto/sha256"

// PasswordHasher produces the salted digest stored on the Users table.
// Hashing is deterministic: authentication re-hashes the presented password
// and looks the digest up by equality, so there is no per-user salt.
type PasswordHasher struct {
	salt string
}

// NewPasswordHasher creates a hasher with the server-wide secret salt.
func NewPasswordHasher(salt string) *PasswordHasher {
	return &PasswordHasher{salt: salt}
}

// Hash returns the SHA-256 digest of salt+password.
func (h *PasswordHasher) Hash(password string) []byte {
	sum := sha256.Sum256([]byte(h.salt + password))
	return sum[:]
}
