package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, PasswordCost, cost)

	ok, err := VerifyPassword("secret123", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "password", ve.Field)

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("secret123", "not-a-hash")
	require.Error(t, err)
	require.False(t, ok)
}
