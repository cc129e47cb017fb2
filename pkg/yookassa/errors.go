package yookassa

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned before any network call when the client
// has no shop id or secret key configured.
var ErrMissingCredentials = errors.New("missing_credentials")

// APIError carries a non-200 response from the payment API verbatim.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yookassa: api returned status %d: %s", e.StatusCode, string(e.Body))
}

// MappingError reports a mandatory field missing from an API response object.
type MappingError struct {
	Object string
	Field  string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("yookassa: %s response missing mandatory field %q", e.Object, e.Field)
}

// UnknownError normalizes transport failures and malformed response shapes
// into a single boundary error so callers only deal with the taxonomy above.
type UnknownError struct {
	Details error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("yookassa: unknown error: %v", e.Details)
}

func (e *UnknownError) Unwrap() error {
	return e.Details
}

func unknownErr(err error) error {
	return &UnknownError{Details: err}
}
