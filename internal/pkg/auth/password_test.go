package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("Abcdef1!")
	require.NoError(t, err)

	assert.NotEqual(t, "Abcdef1!", hash)
	assert.True(t, hasher.Check(hash, "Abcdef1!"))
	assert.False(t, hasher.Check(hash, "abcdef1!"))
	assert.False(t, hasher.Check("not-a-hash", "Abcdef1!"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestPasswordHasherSaltsEveryHash(t *testing.T) {
	hasher, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	first, err := hasher.Hash("Abcdef1!")
	require.NoError(t, err)
	second, err := hasher.Hash("Abcdef1!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasherRejectsBadCost(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MaxCost + 1)
	assert.ErrorIs(t, err, ErrInvalidCost)

	_, err = NewPasswordHasher(0)
	assert.ErrorIs(t, err, ErrInvalidCost)
}

func TestCheckDummyAlwaysFails(t *testing.T) {
	hasher, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, hasher.CheckDummy("campusauth-dummy-password"))
}

func TestPasswordHasherAcceptsLongPasswords(t *testing.T) {
	hasher, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	long := "Abcdef1!" + strings.Repeat("x", 120)
	hash, err := hasher.Hash(long)
	require.NoError(t, err)

	assert.True(t, hasher.Check(hash, long))
	// Bytes past bcrypt's 72-byte window still matter
	assert.False(t, hasher.Check(hash, long[:len(long)-1]+"y"))
	assert.False(t, hasher.Check(hash, long[:72]))
}
