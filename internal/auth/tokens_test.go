package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaqueToken(t *testing.T) {
	token, err := NewOpaqueToken()
	require.NoError(t, err)

	// 40 случайных байт в hex = 80 символов
	assert.Len(t, token, 80)

	_, err = hex.DecodeString(token)
	require.NoError(t, err)
}

func TestNewOpaqueToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewOpaqueToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "opaque tokens must not repeat")
		seen[token] = true
	}
}
