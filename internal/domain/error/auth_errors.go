// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrInvalidToken is returned when a profile token fails verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a profile token has expired.
	ErrExpiredToken = errors.New("expired token")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	ErrCodeMissingToken AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidToken AuthErrorCode = "AUTH-010002"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-010003"
	ErrCodeRateLimited  AuthErrorCode = "AUTH-020001"
)
