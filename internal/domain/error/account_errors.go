// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Account (payment source) domain errors.
var (
	// ErrAccountNotFound is returned when an account id or name is unknown.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountNameTaken is returned when the account name already exists
	// for the profile.
	ErrAccountNameTaken = errors.New("account name already exists")

	// ErrInvalidAccountType is returned when the account type is invalid.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrReservedAccount is returned on attempts to modify or delete the
	// reserved UNKNOWN fallback account.
	ErrReservedAccount = errors.New("reserved account cannot be modified")

	// ErrBalanceNotFound is returned when an account has no balance record.
	ErrBalanceNotFound = errors.New("balance not found")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	ErrCodeAccountNotFound    AccountErrorCode = "ACC-010001"
	ErrCodeAccountNameTaken   AccountErrorCode = "ACC-010002"
	ErrCodeInvalidAccountType AccountErrorCode = "ACC-010003"
	ErrCodeReservedAccount    AccountErrorCode = "ACC-010004"
	ErrCodeBalanceNotFound    AccountErrorCode = "ACC-010005"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
