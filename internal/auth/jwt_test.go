package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "HS256", 30)

	token, err := manager.GenerateAccessToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	manager := NewTokenManager("correct-secret", "HS256", 30)
	other := NewTokenManager("other-secret", "HS256", 30)

	token, err := manager.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestTokenManager_AlgorithmMismatch(t *testing.T) {
	hs256 := NewTokenManager("shared-secret", "HS256", 30)
	hs512 := NewTokenManager("shared-secret", "HS512", 30)

	token, err := hs256.GenerateAccessToken("user-123")
	require.NoError(t, err)

	// Same secret but different expected algorithm must be rejected.
	_, err = hs512.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestTokenManager_Expired(t *testing.T) {
	manager := NewTokenManager("test-secret", "HS256", 0)

	token, err := manager.GenerateAccessToken("user-123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = manager.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	manager := NewTokenManager("test-secret", "HS256", 30)

	_, err := manager.ParseAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidAccessToken)

	_, err = manager.ParseAccessToken("")
	assert.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestTokenManager_UnknownAlgorithmFallsBack(t *testing.T) {
	manager := NewTokenManager("test-secret", "RS256", 30)

	token, err := manager.GenerateAccessToken("user-123")
	require.NoError(t, err)

	claims, err := manager.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestTokenManager_AccessTTL(t *testing.T) {
	manager := NewTokenManager("test-secret", "HS256", 45)
	assert.Equal(t, 45*time.Minute, manager.AccessTTL())
}
