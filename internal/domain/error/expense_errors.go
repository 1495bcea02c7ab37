// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Planned-expense domain errors.
var (
	// ErrExpenseNotFound is returned when a planned expense is unknown.
	ErrExpenseNotFound = errors.New("planned expense not found")

	// ErrExpenseNameTaken is returned when the expense name already exists
	// for the profile.
	ErrExpenseNameTaken = errors.New("planned expense name already exists")

	// ErrInvalidExpenseStatus is returned when the status value is invalid.
	ErrInvalidExpenseStatus = errors.New("invalid planned expense status")

	// ErrInvalidExpenseCost is returned when the estimated cost is invalid.
	ErrInvalidExpenseCost = errors.New("invalid estimated cost")
)

// ExpenseErrorCode defines error codes for planned-expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	ErrCodeExpenseNotFound      ExpenseErrorCode = "EXP-010001"
	ErrCodeExpenseNameTaken     ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidExpenseStatus ExpenseErrorCode = "EXP-010003"
	ErrCodeInvalidExpenseCost   ExpenseErrorCode = "EXP-010004"
)

// ExpenseError represents a planned-expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
