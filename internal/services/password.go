package services

import (
	"strings"

	"todo-panel/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// saltPrefixLen is the length of the "$2a$10$" + 22 character salt
// prefix of a bcrypt digest. That prefix is what gets stored per-user
// as the password salt.
const saltPrefixLen = 29

// PasswordHasher produces and verifies password digests. Every
// plaintext is combined with a process-wide pepper before hashing, so a
// leaked database alone is not enough to mount a dictionary attack.
type PasswordHasher struct {
	pepper string
	cost   int
}

func NewPasswordHasher(cfg *config.Config) *PasswordHasher {
	return &PasswordHasher{
		pepper: cfg.Security.Pepper,
		cost:   cfg.Security.BcryptCost,
	}
}

// Hash generates a fresh salted digest for plaintext. The returned salt
// is the cost-and-salt prefix bcrypt embedded in the digest; it is
// stored alongside the hash on the user record.
func (h *PasswordHasher) Hash(plaintext string) (digest, salt string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext+h.pepper), h.cost)
	if err != nil {
		return "", "", err
	}
	digest = string(bytes)
	if len(digest) >= saltPrefixLen {
		salt = digest[:saltPrefixLen]
	}
	return digest, salt, nil
}

// Verify reports whether plaintext matches digest under the given salt.
// It never returns an error on mismatch; the comparison inside bcrypt
// is constant time.
func (h *PasswordHasher) Verify(plaintext, salt, digest string) bool {
	if salt != "" && !strings.HasPrefix(digest, salt) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext+h.pepper)) == nil
}
