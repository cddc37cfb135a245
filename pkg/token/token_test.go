package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Minute, time.Hour)

	signed, err := m.GenerateAccessToken(42, "priya@example.com", true)
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "priya@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, TypeAccess, claims.TokenType)
}

func TestRefreshTokenCarriesRefreshType(t *testing.T) {
	m := NewManager("test-secret", time.Minute, time.Hour)

	signed, err := m.GenerateRefreshToken(42, "priya@example.com", false)
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.TokenType)
	assert.False(t, claims.IsAdmin)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Minute, time.Hour)
	other := NewManager("other-secret", time.Minute, time.Hour)

	signed, err := m.GenerateAccessToken(42, "priya@example.com", false)
	require.NoError(t, err)

	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)

	signed, err := m.GenerateAccessToken(42, "priya@example.com", false)
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Minute, time.Hour)
	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
