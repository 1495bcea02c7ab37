// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountType represents the kind of payment source an account is.
type AccountType string

const (
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypeEwallet    AccountType = "EWALLET"

	// AccountTypeUnknown is the reserved sentinel. Transactions belonging to a
	// deleted account are reassigned here so ledger history is never lost.
	// Its balance is excluded from total-assets aggregation.
	AccountTypeUnknown AccountType = "UNKNOWN"
)

// UnknownAccountName is the reserved name of the per-profile fallback account.
const UnknownAccountName = "unknown"

// AccountTypes lists the user-selectable account types (UNKNOWN excluded).
var AccountTypes = []AccountType{
	AccountTypeSavings,
	AccountTypeChecking,
	AccountTypeCash,
	AccountTypeInvestment,
	AccountTypeEwallet,
}

// Valid reports whether t is a user-selectable account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeCash,
		AccountTypeInvestment, AccountTypeEwallet:
		return true
	}
	return false
}

// Account represents a payment source: a named bucket of money the user
// tracks. Name is unique per profile.
type Account struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	Name      string
	Type      AccountType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates a new Account entity. Names are stored lowercased and
// types uppercased, matching how external callers reference them.
func NewAccount(profileID uuid.UUID, name string, accType AccountType, now time.Time) *Account {
	return &Account{
		ID:        uuid.New(),
		ProfileID: profileID,
		Name:      strings.ToLower(name),
		Type:      accType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewUnknownAccount creates the reserved fallback account for a profile.
func NewUnknownAccount(profileID uuid.UUID, now time.Time) *Account {
	acc := NewAccount(profileID, UnknownAccountName, AccountTypeUnknown, now)
	acc.Type = AccountTypeUnknown
	return acc
}

// IsUnknown reports whether the account is the reserved fallback.
func (a *Account) IsUnknown() bool {
	return a.Type == AccountTypeUnknown
}
