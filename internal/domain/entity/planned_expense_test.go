package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestApplyRecurrenceExpiry(t *testing.T) {
	end := d(2024, time.March, 1)

	t.Run("stops recurring after the end date", func(t *testing.T) {
		e := &PlannedExpense{IsRecurring: true, EndDate: &end}
		e.ApplyRecurrenceExpiry(d(2024, time.March, 2))
		if e.IsRecurring {
			t.Error("expected recurrence to stop")
		}
	})

	t.Run("keeps recurring on the end date itself", func(t *testing.T) {
		e := &PlannedExpense{IsRecurring: true, EndDate: &end}
		e.ApplyRecurrenceExpiry(d(2024, time.March, 1))
		if !e.IsRecurring {
			t.Error("expected recurrence to continue on the end date")
		}
	})

	t.Run("no end date means no expiry", func(t *testing.T) {
		e := &PlannedExpense{IsRecurring: true}
		e.ApplyRecurrenceExpiry(d(2030, time.January, 1))
		if !e.IsRecurring {
			t.Error("expected recurrence to continue without an end date")
		}
	})
}

func TestIsDueBy(t *testing.T) {
	due := d(2024, time.March, 10)
	today := d(2024, time.March, 15)

	base := func() *PlannedExpense {
		return &PlannedExpense{
			Status:  ExpenseStatusActive,
			DueDate: &due,
		}
	}

	t.Run("unpaid active past due counts", func(t *testing.T) {
		if !base().IsDueBy(today) {
			t.Error("expected expense to be due")
		}
	})

	t.Run("due today counts", func(t *testing.T) {
		if !base().IsDueBy(due) {
			t.Error("expected expense due today to count")
		}
	})

	t.Run("paid does not count", func(t *testing.T) {
		e := base()
		e.PaidFlag = true
		if e.IsDueBy(today) {
			t.Error("expected paid expense to not count")
		}
	})

	t.Run("non-active status does not count", func(t *testing.T) {
		e := base()
		e.Status = ExpenseStatusPending
		if e.IsDueBy(today) {
			t.Error("expected pending expense to not count")
		}
	})

	t.Run("future due date does not count", func(t *testing.T) {
		if base().IsDueBy(d(2024, time.March, 5)) {
			t.Error("expected future expense to not count")
		}
	})

	t.Run("no due date does not count", func(t *testing.T) {
		e := base()
		e.DueDate = nil
		if e.IsDueBy(today) {
			t.Error("expected undated expense to not count")
		}
	})
}

func TestNewPlannedExpense(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	e := NewPlannedExpense(uuid.New(), "Rent", decimal.NewFromInt(900), "EUR",
		nil, nil, nil, true, now)

	if e.Name != "rent" {
		t.Errorf("expected lowercased name, got %q", e.Name)
	}
	if e.Status != ExpenseStatusActive {
		t.Errorf("expected status ACTIVE, got %s", e.Status)
	}
	if e.PaidFlag {
		t.Error("expected new expense to be unpaid")
	}
}
