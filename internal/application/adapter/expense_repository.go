// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// ExpenseFilter defines filter options for listing planned expenses.
type ExpenseFilter struct {
	Start        *time.Time // due-date window start
	End          *time.Time // due-date window end
	Recurring    *bool
	PaidFlag     *bool
	Status       *entity.ExpenseStatus
	Currency     string
	OnlyUpcoming bool // due date strictly in the future
}

// ExpenseRepository defines the interface for planned-expense persistence
// operations.
type ExpenseRepository interface {
	// Create inserts a new planned expense, assigning its expense id.
	Create(ctx context.Context, expense *entity.PlannedExpense) error

	// FindByID retrieves a planned expense by id.
	FindByID(ctx context.Context, profileID uuid.UUID, expenseID int64) (*entity.PlannedExpense, error)

	// FindByName retrieves a profile's planned expense by its (lowercased) name.
	FindByName(ctx context.Context, profileID uuid.UUID, name string) (*entity.PlannedExpense, error)

	// FindByProfile retrieves all planned expenses for a profile.
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.PlannedExpense, error)

	// FindByFilter retrieves planned expenses matching the filter, ordered by
	// due date.
	FindByFilter(ctx context.Context, profileID uuid.UUID, filter ExpenseFilter) ([]*entity.PlannedExpense, error)

	// FindUnpaidDue retrieves the unpaid ACTIVE expenses due on or before the
	// given date; these count against safe-to-spend.
	FindUnpaidDue(ctx context.Context, profileID uuid.UUID, onOrBefore time.Time) ([]*entity.PlannedExpense, error)

	// FindRemaining retrieves the unpaid ACTIVE expenses regardless of due
	// date; these feed the remaining-expenses snapshot total.
	FindRemaining(ctx context.Context, profileID uuid.UUID) ([]*entity.PlannedExpense, error)

	// Update persists changes to an existing planned expense.
	Update(ctx context.Context, expense *entity.PlannedExpense) error

	// Delete removes a planned expense permanently.
	Delete(ctx context.Context, profileID uuid.UUID, expenseID int64) error
}
