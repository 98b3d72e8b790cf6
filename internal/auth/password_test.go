package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("s3cret-pw", 4)
	require.NoError(t, err)
	second, err := HashPassword("s3cret-pw", 4)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, VerifyPassword("s3cret-pw", first))
	require.True(t, VerifyPassword("s3cret-pw", second))
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pw", 4)
	require.NoError(t, err)

	require.False(t, VerifyPassword("wrong-pw", hash))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	require.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
	require.False(t, VerifyPassword("anything", ""))
}
