package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is injected wherever credentials are hashed or checked,
// so tests can swap implementations and the algorithm can rotate without
// touching callers.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// Indirections for tests.
var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// BcryptHasher hashes with bcrypt. The hash string self-describes its
// algorithm and cost, so stored hashes survive parameter changes.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Verify reports whether password matches hash. A malformed stored hash
// verifies as false; it never surfaces an error into a login path.
func (h BcryptHasher) Verify(hash, password string) bool {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
