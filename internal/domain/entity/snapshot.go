// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the denormalized aggregate record, one per profile. It is a
// materialized view over accounts, transactions and planned expenses: never
// written directly by a user action, only recomputed by rebalance.
type Snapshot struct {
	ProfileID              uuid.UUID
	TotalAssets            decimal.Decimal
	SafeToSpend            decimal.Decimal
	TotalSavings           decimal.Decimal
	TotalChecking          decimal.Decimal
	TotalInvestment        decimal.Decimal
	TotalCash              decimal.Decimal
	TotalEwallet           decimal.Decimal
	TotalMonthlySpending   decimal.Decimal
	TotalRemainingExpenses decimal.Decimal
	TotalLeaks             decimal.Decimal
	UpdatedAt              time.Time
}

// NewSnapshot creates the zeroed snapshot row that accompanies a new profile.
func NewSnapshot(profileID uuid.UUID, now time.Time) *Snapshot {
	return &Snapshot{ProfileID: profileID, UpdatedAt: now}
}

// SnapshotFieldName returns the normalized snapshot field for an account
// type, e.g. CHECKING -> "total_checking".
func SnapshotFieldName(t AccountType) string {
	return "total_" + strings.ToLower(string(t))
}

// TypeTotal returns the stored total for the given account type. The UNKNOWN
// sentinel has no snapshot field and always reads zero.
func (s *Snapshot) TypeTotal(t AccountType) decimal.Decimal {
	switch t {
	case AccountTypeSavings:
		return s.TotalSavings
	case AccountTypeChecking:
		return s.TotalChecking
	case AccountTypeInvestment:
		return s.TotalInvestment
	case AccountTypeCash:
		return s.TotalCash
	case AccountTypeEwallet:
		return s.TotalEwallet
	}
	return decimal.Zero
}

// SetTypeTotal writes the total for the given account type. Writes are
// last-write-wins per field; setting the UNKNOWN sentinel is a no-op.
func (s *Snapshot) SetTypeTotal(t AccountType, total decimal.Decimal) {
	switch t {
	case AccountTypeSavings:
		s.TotalSavings = total
	case AccountTypeChecking:
		s.TotalChecking = total
	case AccountTypeInvestment:
		s.TotalInvestment = total
	case AccountTypeCash:
		s.TotalCash = total
	case AccountTypeEwallet:
		s.TotalEwallet = total
	}
}
