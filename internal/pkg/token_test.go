package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundTrip(t *testing.T) {
	maker := NewTokenMaker("access-secret", "refresh-secret", 0, 0)

	pair, err := maker.GeneratePair(42, 1)
	require.NoError(t, err)

	claims, err := maker.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, 1, claims.Role)
	assert.Equal(t, "access", claims.Subject)
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	t.Run("distinct secrets", func(t *testing.T) {
		maker := NewTokenMaker("access-secret", "refresh-secret", 0, 0)
		pair, err := maker.GeneratePair(1, 0)
		require.NoError(t, err)

		// refresh token is signed with the other secret
		_, err = maker.ParseAccess(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("equal secrets still rejected", func(t *testing.T) {
		// the subject claim is the last line of defense when an operator
		// configures one secret for both
		maker := NewTokenMaker("shared-secret", "shared-secret", 0, 0)
		pair, err := maker.GeneratePair(1, 0)
		require.NoError(t, err)

		_, err = maker.ParseAccess(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestParseAccessExpired(t *testing.T) {
	// constructed directly: the constructor refuses non-positive TTLs
	maker := &TokenMaker{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     -time.Minute,
		RefreshTTL:    DefaultRefreshTTL,
	}
	pair, err := maker.GeneratePair(1, 0)
	require.NoError(t, err)

	_, err = maker.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefresh(t *testing.T) {
	maker := NewTokenMaker("access-secret", "refresh-secret", 0, 0)
	pair, err := maker.GeneratePair(7, 0)
	require.NoError(t, err)

	t.Run("valid refresh issues a new pair", func(t *testing.T) {
		fresh, err := maker.Refresh(pair.RefreshToken)
		require.NoError(t, err)
		claims, err := maker.ParseAccess(fresh.AccessToken)
		require.NoError(t, err)
		assert.EqualValues(t, 7, claims.UserID)
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		_, err := maker.Refresh(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("expired refresh rejected", func(t *testing.T) {
		expired := &TokenMaker{
			AccessSecret:  []byte("access-secret"),
			RefreshSecret: []byte("refresh-secret"),
			AccessTTL:     DefaultAccessTTL,
			RefreshTTL:    -time.Minute,
		}
		pair, err := expired.GeneratePair(7, 0)
		require.NoError(t, err)
		_, err = expired.Refresh(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrRefreshExpired)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := NewTokenMaker("access-secret", "different", 0, 0)
		_, err := other.Refresh(pair.RefreshToken)
		assert.Error(t, err)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}
