// Package credential hashes and verifies account passwords with bcrypt.
package credential

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the salt rounds the marketplace has always used.
const DefaultCost = 10

var ErrHashingFailed = errors.New("failed to hash password")

// Hasher produces and checks password digests.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a Hasher using the given cost. Costs below
// bcrypt.MinCost fall back to DefaultCost.
func NewBcryptHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash returns a salted bcrypt digest of plaintext.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", errors.Join(ErrHashingFailed, err)
	}
	return string(digest), nil
}

// Verify reports whether digest was produced from plaintext. Malformed
// digests yield false.
func (h *bcryptHasher) Verify(plaintext, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
