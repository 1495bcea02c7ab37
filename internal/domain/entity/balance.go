// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is the single mutable running total for one Account. Every posted
// transaction against the account mutates Amount; currency conversion happens
// before the mutation when the transaction currency differs.
type Balance struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	ProfileID uuid.UUID
	Amount    decimal.Decimal
	Currency  string
	UpdatedAt time.Time
}

// NewBalance creates the zero balance that accompanies a freshly created
// account, denominated in the profile's base currency.
func NewBalance(account *Account, currency string, now time.Time) *Balance {
	return &Balance{
		ID:        uuid.New(),
		AccountID: account.ID,
		ProfileID: account.ProfileID,
		Amount:    decimal.Zero,
		Currency:  currency,
		UpdatedAt: now,
	}
}
