package auth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_GenerateSalt(t *testing.T) {
	h := NewBcryptHasher(10)
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 5; i++ {
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		assert.Regexp(t, hexRe, salt, "salt should be 64 hex characters")
		_, dup := seen[salt]
		assert.False(t, dup, "salts must not repeat")
		seen[salt] = struct{}{}
	}
}

func TestBcryptHasher_Hash_and_Compare(t *testing.T) {
	h := NewBcryptHasher(10)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	password := "registration-desk-2025"

	hash, err := h.Hash(salt, password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, password, "hash must not embed the password")

	require.NoError(t, h.Compare(hash, salt, password))
}

func TestBcryptHasher_Compare_rejectsWrongPassword(t *testing.T) {
	h := NewBcryptHasher(10)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	hash, err := h.Hash(salt, "correct-password")
	require.NoError(t, err)

	assert.Error(t, h.Compare(hash, salt, "wrong-password"))
}

func TestBcryptHasher_Compare_rejectsWrongSalt(t *testing.T) {
	h := NewBcryptHasher(10)
	salt1, err := h.GenerateSalt()
	require.NoError(t, err)
	salt2, err := h.GenerateSalt()
	require.NoError(t, err)
	hash, err := h.Hash(salt1, "correct-password")
	require.NoError(t, err)

	assert.Error(t, h.Compare(hash, salt2, "correct-password"))
}
