package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored credentials.
const PasswordCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// HashPassword hashes a password using bcrypt. Passwords over
// MaxPasswordBytes are rejected as invalid input.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", Invalid("password", "Password must be at most 72 bytes long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", Invalid("password", "Password must be at most 72 bytes long")
		}
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash.
// A mismatch is reported as (false, nil); only a malformed hash is an error.
func VerifyPassword(password, hashedPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
