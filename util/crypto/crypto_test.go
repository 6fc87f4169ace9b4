package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotEqual(t, "hunter22", hash)

	ok, err := CheckPasswordHash(hash, "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckPasswordHashMismatch(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	ok, err := CheckPasswordHash(hash, "wrongpass")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPasswordHashMalformed(t *testing.T) {
	ok, err := CheckPasswordHash("not-a-bcrypt-hash", "hunter22")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("hunter22")
	require.NoError(t, err)
	second, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
