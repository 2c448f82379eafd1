package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used unless configuration overrides it
const DefaultBcryptCost = 12

// ErrInvalidCost is returned for a work factor bcrypt would reject
var ErrInvalidCost = errors.New("invalid bcrypt cost")

// PasswordHasher hashes and verifies passwords with bcrypt.
// A random salt is embedded in every hash, so equal passwords never share a hash.
// Passwords are reduced to a fixed-size SHA-256 digest first, so inputs longer
// than bcrypt's 72-byte limit are accepted and every byte of them counts.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher creates a hasher with the given bcrypt cost
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	// Hash compared against when no account exists, so lookups of unknown
	// emails spend the same time as real verifications.
	dummy, err := bcrypt.GenerateFromPassword(prehash("campusauth-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// Cost returns the configured bcrypt work factor
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash returns the salted bcrypt hash of password
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// Check re-hashes password with the salt and cost stored in hashedPassword and
// compares in constant time.
func (h *PasswordHasher) Check(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), prehash(password))
	return err == nil
}

// CheckDummy burns one comparison against a throwaway hash and always reports false.
func (h *PasswordHasher) CheckDummy(password string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, prehash(password))
	return false
}

// prehash returns the base64 SHA-256 digest of password: 44 bytes, no NUL.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum[:])
	return encoded
}
