package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhat-is-coding/blog/config"
)

func init() {
	config.SetForTesting(config.AppConfig{
		SessionSecret: "test-secret",
		RedisHost:     "127.0.0.1",
		RedisPort:     16379,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "alice", "user", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "user", claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "alice", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "alice", "user", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestBlacklistedTokenStaysRevokedUntilExpiry(t *testing.T) {
	token, err := GenerateToken(7, "bob", "user", time.Hour)
	require.NoError(t, err)

	assert.False(t, IsTokenBlacklisted(token))
	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))
}
