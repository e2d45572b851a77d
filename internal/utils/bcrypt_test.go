package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("khet123")
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, "khet123", hashed)
}

func TestCheckPasswordHash(t *testing.T) {
	hashed, err := HashPassword("khet123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("khet123", hashed))
	assert.False(t, CheckPasswordHash("wrongpassword", hashed))
	assert.False(t, CheckPasswordHash("khet123", "invalidhash"))
}
