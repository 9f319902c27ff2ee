package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation references an ID that is not in the collection
var ErrNotFound = errors.New("anime not found")

// ValidationError is returned when a draft is missing required fields.  No backend call is made in that case.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// NetworkError wraps failures to reach the backend at all
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

// RemoteError is returned when the backend answers with a non-success status
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// DecodeError is returned when a backend response is not valid JSON for the expected shape
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: invalid response body: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
