// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Currency conversion domain errors.
var (
	// ErrUnknownCurrency is returned when a currency code is absent from the
	// exchange-rate table.
	ErrUnknownCurrency = errors.New("currency code not found in rate table")

	// ErrRateTableUnavailable is returned when the exchange-rate table is
	// missing or corrupt.
	ErrRateTableUnavailable = errors.New("exchange-rate table unavailable")

	// ErrNoRateForDate is returned when the table holds no rate on or before
	// the requested date.
	ErrNoRateForDate = errors.New("no exchange rate on or before requested date")
)

// ConversionErrorCode defines error codes for currency conversion failures.
// Format: FX-XXYYYY where XX is category and YYYY is specific error.
type ConversionErrorCode string

const (
	ErrCodeUnknownCurrency     ConversionErrorCode = "FX-010001"
	ErrCodeRateTableUnavailable ConversionErrorCode = "FX-020001"
	ErrCodeNoRateForDate       ConversionErrorCode = "FX-010002"
)

// ConversionError represents a currency conversion failure. It aborts the
// current unit of work; callers never swallow it.
type ConversionError struct {
	Code    ConversionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError with the given code and message.
func NewConversionError(code ConversionErrorCode, message string, err error) *ConversionError {
	return &ConversionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
