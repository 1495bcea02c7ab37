// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a ledger transaction.
type TransactionType string

const (
	TransactionTypeExpense     TransactionType = "EXPENSE"
	TransactionTypeIncome      TransactionType = "INCOME"
	TransactionTypeTransferIn  TransactionType = "XFER_IN"
	TransactionTypeTransferOut TransactionType = "XFER_OUT"
)

// Reduces reports whether transactions of this type reduce the owning
// account's balance. EXPENSE and XFER_OUT are stored negative; INCOME and
// XFER_IN positive.
func (t TransactionType) Reduces() bool {
	return t == TransactionTypeExpense || t == TransactionTypeTransferOut
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome,
		TransactionTypeTransferIn, TransactionTypeTransferOut:
		return true
	}
	return false
}

// Transaction represents a posted financial transaction. EntryID is the
// internal auto-incrementing id defining strict insertion order per profile;
// TxID is the public opaque identifier external callers use.
type Transaction struct {
	EntryID     int64
	TxID        string
	ProfileID   uuid.UUID
	AccountID   uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // signed per the sign convention
	Currency    string
	Type        TransactionType
	Tags        []string
	BillID      *int64 // optional link to a planned expense
	CreatedAt   time.Time
}

// NewTransaction creates a Transaction with the sign convention applied:
// the amount is stored as its absolute value, negated for types that reduce
// the balance. Posting dates carry day granularity; a zero date defaults to
// today. The public TxID is generated.
func NewTransaction(
	profileID uuid.UUID,
	accountID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	currency string,
	txType TransactionType,
	tags []string,
	billID *int64,
	now time.Time,
) *Transaction {
	if date.IsZero() {
		date = now
	}
	date = DateOnly(date)

	amount = amount.Abs()
	if txType.Reduces() {
		amount = amount.Neg()
	}

	return &Transaction{
		TxID:        NewTxID(now),
		ProfileID:   profileID,
		AccountID:   accountID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Currency:    currency,
		Type:        txType,
		Tags:        tags,
		BillID:      billID,
		CreatedAt:   now,
	}
}

// NewTxID generates a public transaction identifier of the form
// "2024-1A2B3C4D": the posting year plus an uppercase uuid prefix.
func NewTxID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%d-%s", now.Year(), suffix)
}

// NormalizeAmount re-applies the sign convention after an edit that may have
// changed the amount or the type.
func (t *Transaction) NormalizeAmount() {
	t.Amount = t.Amount.Abs()
	if t.Type.Reduces() {
		t.Amount = t.Amount.Neg()
	}
}
