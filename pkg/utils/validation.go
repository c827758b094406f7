package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
)

const dateLayout = "2006-01-02"

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationError represents a validation error on a single request field.
// It unwraps to errs.ErrMissingField or errs.ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
	Kind    error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Missing builds a missing-field error.
func Missing(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Kind: errs.ErrMissingField}
}

// Invalid builds an invalid-input error.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Kind: errs.ErrInvalidInput}
}

// NormalizeEmail trims surrounding whitespace. Case is preserved: addresses
// are stored and matched exactly as entered.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// ValidateEmail checks the rough shape of an address.
func ValidateEmail(email string) error {
	if email == "" {
		return Missing("email", "Email is required")
	}
	if !emailRegex.MatchString(email) {
		return Invalid("email", "Email address is not valid")
	}
	return nil
}

// ParseDate accepts YYYY-MM-DD only and returns UTC midnight of that day.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, Missing(field, field+" is required")
	}
	if !dateRegex.MatchString(s) {
		return time.Time{}, Invalid(field, "Invalid date format. Use YYYY-MM-DD")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, Invalid(field, "Invalid date format. Use YYYY-MM-DD")
	}
	return t, nil
}
