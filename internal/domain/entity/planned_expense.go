// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseStatus is the lifecycle dimension of a planned expense. It is
// independent from the paid/recurring flags: external callers own status
// transitions, and aggregation filters specifically on ACTIVE.
type ExpenseStatus string

const (
	ExpenseStatusPending   ExpenseStatus = "PENDING"
	ExpenseStatusActive    ExpenseStatus = "ACTIVE"
	ExpenseStatusCompleted ExpenseStatus = "COMPLETED"
	ExpenseStatusCancelled ExpenseStatus = "CANCELLED"
)

// Valid reports whether s is a known expense status.
func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusActive,
		ExpenseStatusCompleted, ExpenseStatusCancelled:
		return true
	}
	return false
}

// PlannedExpense represents an anticipated future cost ("bill"), recurring or
// one-off, tracked separately from realized transactions. Name is unique per
// profile.
type PlannedExpense struct {
	ExpenseID     int64
	ProfileID     uuid.UUID
	Name          string
	EstimatedCost decimal.Decimal
	Currency      string
	DueDate       *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	PaidFlag      bool
	IsRecurring   bool
	Status        ExpenseStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPlannedExpense creates a new PlannedExpense entity with status ACTIVE.
func NewPlannedExpense(
	profileID uuid.UUID,
	name string,
	estimatedCost decimal.Decimal,
	currency string,
	dueDate, startDate, endDate *time.Time,
	isRecurring bool,
	now time.Time,
) *PlannedExpense {
	return &PlannedExpense{
		ProfileID:     profileID,
		Name:          strings.ToLower(name),
		EstimatedCost: estimatedCost,
		Currency:      currency,
		DueDate:       dueDate,
		StartDate:     startDate,
		EndDate:       endDate,
		IsRecurring:   isRecurring,
		Status:        ExpenseStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ApplyRecurrenceExpiry is the standing guard evaluated on every save: once
// the current date has passed the end date the series stops recurring,
// regardless of any other change.
func (e *PlannedExpense) ApplyRecurrenceExpiry(today time.Time) {
	if e.EndDate != nil && today.After(*e.EndDate) {
		e.IsRecurring = false
	}
}

// IsDueBy reports whether the expense counts against safe-to-spend: unpaid,
// ACTIVE, and due on or before the given date.
func (e *PlannedExpense) IsDueBy(today time.Time) bool {
	if e.PaidFlag || e.Status != ExpenseStatusActive || e.DueDate == nil {
		return false
	}
	return !e.DueDate.After(today)
}
