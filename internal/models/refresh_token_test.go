package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_IsActive(t *testing.T) {
	now := time.Now().UTC()

	live := RefreshToken{Expires: now.Add(time.Hour)}
	assert.True(t, live.IsActive(now))
	assert.False(t, live.IsExpired(now))
	assert.False(t, live.IsRevoked())

	expired := RefreshToken{Expires: now.Add(-time.Hour)}
	assert.False(t, expired.IsActive(now))
	assert.True(t, expired.IsExpired(now))

	revokedAt := now.Add(-time.Minute)
	revoked := RefreshToken{Expires: now.Add(time.Hour), Revoked: &revokedAt}
	assert.False(t, revoked.IsActive(now))
	assert.True(t, revoked.IsRevoked())
}

func TestRefreshToken_ExpiryBoundary(t *testing.T) {
	now := time.Now().UTC()

	// Ровно в момент Expires токен уже мертв
	exact := RefreshToken{Expires: now}
	assert.True(t, exact.IsExpired(now))
	assert.False(t, exact.IsActive(now))
}
