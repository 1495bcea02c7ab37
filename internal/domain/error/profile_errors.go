// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Profile and reference-data domain errors.
var (
	// ErrProfileNotFound is returned when a profile id is unknown.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrSnapshotNotFound is returned when a profile has no snapshot row.
	// Every profile is created with one, so this indicates a broken invariant.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrCurrencyNotFound is returned when a currency code is not in the
	// seeded reference table.
	ErrCurrencyNotFound = errors.New("currency not found")
)

// ProfileErrorCode defines error codes for profile errors.
// Format: PRF-XXYYYY where XX is category and YYYY is specific error.
type ProfileErrorCode string

const (
	ErrCodeProfileNotFound  ProfileErrorCode = "PRF-010001"
	ErrCodeSnapshotNotFound ProfileErrorCode = "PRF-010002"
	ErrCodeCurrencyNotFound ProfileErrorCode = "PRF-010003"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError with the given code and message.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
