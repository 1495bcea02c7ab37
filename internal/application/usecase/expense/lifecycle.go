// Package expense contains planned-expense use cases, including the
// recurring-bill lifecycle driven by linked transactions.
package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// Lifecycle advances a planned expense's paid/recurring state in reaction to
// linked transactions. It mutates and persists the expense but never touches
// balances or the snapshot; the caller's rebalance pass picks up the changes.
type Lifecycle struct {
	clock adapter.Clock
}

// NewLifecycle creates a new Lifecycle instance.
func NewLifecycle(clock adapter.Clock) *Lifecycle {
	return &Lifecycle{clock: clock}
}

// HandleBillPaid marks the linked expense paid after a transaction posting.
// A recurring series advances its due date one calendar month, unless the
// posting date has reached the series end date, which stops the recurrence
// instead.
func (l *Lifecycle) HandleBillPaid(ctx context.Context, repos *adapter.Repositories, profileID uuid.UUID, billID int64, postingDate time.Time) error {
	bill, err := l.findBill(ctx, repos, profileID, billID)
	if err != nil {
		return err
	}

	bill.PaidFlag = true
	switch {
	case bill.EndDate != nil && !postingDate.Before(*bill.EndDate):
		// The series has ended; do not schedule another occurrence.
		bill.IsRecurring = false
	case bill.IsRecurring && bill.DueDate != nil:
		next := entity.AddMonths(*bill.DueDate, 1)
		bill.DueDate = &next
	}

	return l.save(ctx, repos, bill)
}

// HandleBillUnpaid undoes HandleBillPaid when the linked transaction is
// edited, reversed, or detached. The rollback only applies when the
// transaction's date falls within the current billing cycle (on or after
// due date minus one month); an older transaction did not satisfy this
// cycle and must not unwind it.
func (l *Lifecycle) HandleBillUnpaid(ctx context.Context, repos *adapter.Repositories, profileID uuid.UUID, billID int64, txDate time.Time) error {
	bill, err := l.findBill(ctx, repos, profileID, billID)
	if err != nil {
		return err
	}

	if bill.DueDate == nil {
		bill.PaidFlag = false
		return l.save(ctx, repos, bill)
	}

	cycleStart := entity.AddMonths(*bill.DueDate, -1)
	if txDate.Before(cycleStart) {
		return nil
	}

	bill.PaidFlag = false
	bill.DueDate = &cycleStart
	if bill.EndDate != nil && !cycleStart.After(*bill.EndDate) {
		bill.IsRecurring = true
	}

	return l.save(ctx, repos, bill)
}

// CheckRecurrenceExpiry applies the standing expiry guard and persists the
// expense when the guard changed it.
func (l *Lifecycle) CheckRecurrenceExpiry(ctx context.Context, repos *adapter.Repositories, bill *entity.PlannedExpense) error {
	wasRecurring := bill.IsRecurring
	bill.ApplyRecurrenceExpiry(l.clock.Today())
	if bill.IsRecurring == wasRecurring {
		return nil
	}
	return l.save(ctx, repos, bill)
}

func (l *Lifecycle) findBill(ctx context.Context, repos *adapter.Repositories, profileID uuid.UUID, billID int64) (*entity.PlannedExpense, error) {
	bill, err := repos.Expenses.FindByID(ctx, profileID, billID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"planned expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find planned expense: %w", err)
	}
	return bill, nil
}

func (l *Lifecycle) save(ctx context.Context, repos *adapter.Repositories, bill *entity.PlannedExpense) error {
	bill.ApplyRecurrenceExpiry(l.clock.Today())
	bill.UpdatedAt = l.clock.Now()
	if err := repos.Expenses.Update(ctx, bill); err != nil {
		return fmt.Errorf("failed to persist planned expense: %w", err)
	}

	slog.Debug("Planned expense transitioned",
		"expense_id", bill.ExpenseID,
		"paid", bill.PaidFlag,
		"recurring", bill.IsRecurring,
	)
	return nil
}
