package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashIsNotInvertible(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	ok, err := h.Verify("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_CostIsApplied(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost + 1)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestNewBcrypt_DefaultsInvalidCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcrypt(0).Cost())
	assert.Equal(t, DefaultCost, NewBcrypt(bcrypt.MaxCost+1).Cost())
	assert.Equal(t, 12, DefaultCost)
}

func TestBcrypt_VerifyMalformedHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	ok, err := h.Verify("secret1", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcrypt_LongPasswordIsTruncated(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	long := strings.Repeat("p", 80)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	ok, err := h.Verify(long, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(strings.Repeat("p", MaxPasswordBytes), hash)
	require.NoError(t, err)
	assert.True(t, ok, "only the first 72 bytes take part")

	ok, err = h.Verify("q"+strings.Repeat("p", 79), hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
