package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("66f0c1d2e3a4b5c6d7e8f901", true)
	require.NoError(t, err)

	userID, isAdmin, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "66f0c1d2e3a4b5c6d7e8f901", userID)
	assert.True(t, isAdmin)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, _, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("mat-khau-123")
	require.NoError(t, err)
	assert.NotEqual(t, "mat-khau-123", hash)

	assert.True(t, CheckPassword("mat-khau-123", hash))
	assert.False(t, CheckPassword("sai-mat-khau", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("mat-khau-123")
	require.NoError(t, err)
	second, err := HashPassword("mat-khau-123")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
