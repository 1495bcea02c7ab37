// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents one ledger owner. SpendAccountIDs is the set of accounts
// considered liquid for the safe-to-spend figure; BaseCurrency is the single
// currency aggregates are normalized into.
type Profile struct {
	ID              uuid.UUID
	BaseCurrency    string
	SpendAccountIDs []uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewProfile creates a new Profile entity.
func NewProfile(baseCurrency string, now time.Time) *Profile {
	return &Profile{
		ID:           uuid.New(),
		BaseCurrency: baseCurrency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsSpendAccount reports whether the given account is in the profile's
// spend-account set.
func (p *Profile) IsSpendAccount(accountID uuid.UUID) bool {
	for _, id := range p.SpendAccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}
