package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_Issue(t *testing.T) {
	secret := "test-secret"
	j := NewJWT(secret)

	token, err := j.Issue("admin-123", "admin@example.com", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "admin-123", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestJWT_Verify_roundtrip(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Issue("admin-123", "admin@example.com", time.Hour)
	require.NoError(t, err)

	userID, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-123", userID)
}

func TestJWT_Verify_wrong_secret(t *testing.T) {
	token, err := NewJWT("secret-a").Issue("admin-123", "admin@example.com", time.Hour)
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Verify(token)
	assert.Error(t, err)
}

func TestJWT_Verify_expired(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Issue("admin-123", "admin@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = j.Verify(token)
	assert.Error(t, err)
}
