// Package errs holds the sentinel errors shared by the store, service and
// handler layers. Handlers map them to HTTP status codes with errors.Is.
package errs

import "errors"

var (
	// ErrMissingField means a required request field was empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidInput means a field was present but unusable (bad date, non-boolean consent, ...).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned for an unknown email and a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken covers bad signature, malformed and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnauthorized means no usable bearer token was sent.
	ErrUnauthorized = errors.New("unauthorized")

	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("user already exists with this email")
	ErrDuplicateReference = errors.New("booking reference already exists")

	// ErrUnavailable marks infrastructure failures (store down, DNS, timeouts).
	ErrUnavailable = errors.New("service temporarily unavailable")

	// ErrCredentialsMissing means the travel API key or secret is not configured.
	ErrCredentialsMissing = errors.New("travel api credentials not configured")
)
