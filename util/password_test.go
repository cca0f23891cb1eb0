package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2RoundTrip(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt, 32)

	hash, err := HashPasswordArgon2("s3cret-pass", salt)
	require.NoError(t, err)
	assert.True(t, IsArgon2Hash(hash))

	ok, err := VerifyPassword("s3cret-pass", hash, salt)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash, salt)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2RequiresSalt(t *testing.T) {
	_, err := HashPasswordArgon2("x", "")
	assert.Error(t, err)
}

func TestLegacyHashStillVerifies(t *testing.T) {
	SetJWTSecret("legacy-secret")
	t.Cleanup(func() { SetJWTSecret("") })

	legacy := HashPassword("old-pass")
	assert.False(t, IsArgon2Hash(legacy))

	ok, err := VerifyPassword("old-pass", legacy, "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetJWTSecretByteIsACopy(t *testing.T) {
	SetJWTSecret("abc")
	t.Cleanup(func() { SetJWTSecret("") })
	b := GetJWTSecretByte()
	b[0] = 'z'
	assert.Equal(t, "abc", string(GetJWTSecretByte()))
}
