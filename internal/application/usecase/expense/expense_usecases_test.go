package expense

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
	"github.com/ledgerkeep/backend/internal/fx"
	"github.com/ledgerkeep/backend/internal/integration/persistence"
	"github.com/ledgerkeep/backend/internal/integration/persistence/model"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time   { return c.now }
func (c fixedClock) Today() time.Time { return entity.DateOnly(c.now) }

type fixture struct {
	db        *gorm.DB
	uow       adapter.UnitOfWork
	updater   *ledger.Updater
	converter adapter.CurrencyConverter
	clock     fixedClock
	profile   *entity.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect gorm: %v", err)
	}
	if err := db.AutoMigrate(
		&model.ProfileModel{},
		&model.CurrencyModel{},
		&model.AccountModel{},
		&model.BalanceModel{},
		&model.TransactionModel{},
		&model.PlannedExpenseModel{},
		&model.SnapshotModel{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	table, err := fx.ParseTable(strings.NewReader("Date,USD\n2024-03-01,1.10\n"), "EUR")
	if err != nil {
		t.Fatalf("failed to parse rates: %v", err)
	}
	clock := fixedClock{now: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)}
	converter := fx.NewConverter(table)

	f := &fixture{
		db:        db,
		uow:       persistence.NewUnitOfWork(db),
		updater:   ledger.NewUpdater(converter, clock),
		converter: converter,
		clock:     clock,
	}

	f.profile = entity.NewProfile("EUR", clock.Now())
	if err := persistence.NewProfileRepository(db).Create(ctx, f.profile); err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	if err := persistence.NewSnapshotRepository(db).Create(ctx, entity.NewSnapshot(f.profile.ID, clock.Now())); err != nil {
		t.Fatalf("failed to create snapshot: %v", err)
	}
	currencies := persistence.NewCurrencyRepository(db)
	for _, c := range []*entity.Currency{
		{Code: "EUR", Name: "Euro", Symbol: "€"},
		{Code: "USD", Name: "US Dollar", Symbol: "$"},
	} {
		if err := currencies.Upsert(ctx, c); err != nil {
			t.Fatalf("failed to seed currency: %v", err)
		}
	}
	return f
}

func (f *fixture) create(t *testing.T, input CreateExpenseInput) *ExpenseOutput {
	t.Helper()
	input.ProfileID = f.profile.ID
	out, err := NewCreateExpenseUseCase(f.uow, f.updater, nil, f.clock).Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	return out.Expense
}

func (f *fixture) snapshot(t *testing.T) *entity.Snapshot {
	t.Helper()
	snapshot, err := persistence.NewSnapshotRepository(f.db).FindByProfile(context.Background(), f.profile.ID)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	return snapshot
}

func day(d int) *time.Time {
	v := time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestCreateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("feeds the remaining-expense total", func(t *testing.T) {
		f := newFixture(t)
		out := f.create(t, CreateExpenseInput{
			Name:          "Rent",
			EstimatedCost: decimal.RequireFromString("850"),
			Currency:      "EUR",
			DueDate:       day(25),
			IsRecurring:   true,
		})

		if out.Name != "rent" {
			t.Errorf("expected lowercased name, got %q", out.Name)
		}
		if out.Status != entity.ExpenseStatusActive {
			t.Errorf("expected ACTIVE, got %s", out.Status)
		}

		snapshot := f.snapshot(t)
		if !snapshot.TotalRemainingExpenses.Equal(decimal.RequireFromString("850")) {
			t.Errorf("expected 850 remaining, got %s", snapshot.TotalRemainingExpenses)
		}
	})

	t.Run("a due expense lowers safe to spend", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, CreateExpenseInput{
			Name:          "overdue bill",
			EstimatedCost: decimal.RequireFromString("120.50"),
			Currency:      "EUR",
			DueDate:       day(10),
		})

		// No spend accounts are configured, so the figure is the deduction.
		if !f.snapshot(t).SafeToSpend.Equal(decimal.RequireFromString("-120.50")) {
			t.Errorf("expected -120.50, got %s", f.snapshot(t).SafeToSpend)
		}
	})

	t.Run("an end date already in the past stops recurrence on entry", func(t *testing.T) {
		f := newFixture(t)
		out := f.create(t, CreateExpenseInput{
			Name:          "lapsed",
			EstimatedCost: decimal.RequireFromString("10"),
			Currency:      "EUR",
			DueDate:       day(1),
			EndDate:       day(1),
			IsRecurring:   true,
		})
		if out.IsRecurring {
			t.Error("expected recurrence stopped")
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, CreateExpenseInput{Name: "gym", EstimatedCost: decimal.NewFromInt(30), Currency: "EUR"})

		_, err := NewCreateExpenseUseCase(f.uow, f.updater, nil, f.clock).Execute(ctx, CreateExpenseInput{
			ProfileID:     f.profile.ID,
			Name:          "GYM",
			EstimatedCost: decimal.NewFromInt(30),
			Currency:      "EUR",
		})
		if !errors.Is(err, domainerror.ErrExpenseNameTaken) {
			t.Fatalf("expected ErrExpenseNameTaken, got %v", err)
		}
	})

	t.Run("negative cost", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateExpenseUseCase(f.uow, f.updater, nil, f.clock).Execute(ctx, CreateExpenseInput{
			ProfileID:     f.profile.ID,
			Name:          "bad",
			EstimatedCost: decimal.NewFromInt(-5),
			Currency:      "EUR",
		})
		if !errors.Is(err, domainerror.ErrInvalidExpenseCost) {
			t.Fatalf("expected ErrInvalidExpenseCost, got %v", err)
		}
	})
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("marking paid releases safe to spend", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, CreateExpenseInput{
			Name:          "bill",
			EstimatedCost: decimal.RequireFromString("60"),
			Currency:      "EUR",
			DueDate:       day(10),
		})

		paid := true
		out, err := NewUpdateExpenseUseCase(f.uow, f.updater, nil, f.clock).Execute(ctx, UpdateExpenseInput{
			ProfileID: f.profile.ID,
			ExpenseID: created.ExpenseID,
			PaidFlag:  &paid,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Expense.PaidFlag {
			t.Error("expected the expense paid")
		}

		snapshot := f.snapshot(t)
		if !snapshot.SafeToSpend.IsZero() {
			t.Errorf("expected zero safe to spend, got %s", snapshot.SafeToSpend)
		}
		if !snapshot.TotalRemainingExpenses.IsZero() {
			t.Errorf("expected zero remaining, got %s", snapshot.TotalRemainingExpenses)
		}
	})

	t.Run("clearing the due date removes it from due deductions", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, CreateExpenseInput{
			Name:          "floating",
			EstimatedCost: decimal.RequireFromString("40"),
			Currency:      "EUR",
			DueDate:       day(10),
		})

		out, err := NewUpdateExpenseUseCase(f.uow, f.updater, nil, f.clock).Execute(ctx, UpdateExpenseInput{
			ProfileID:    f.profile.ID,
			ExpenseID:    created.ExpenseID,
			ClearDueDate: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Expense.DueDate != nil {
			t.Errorf("expected no due date, got %s", out.Expense.DueDate)
		}

		snapshot := f.snapshot(t)
		if !snapshot.SafeToSpend.IsZero() {
			t.Errorf("expected zero safe to spend, got %s", snapshot.SafeToSpend)
		}
		// Undated expenses still count toward the remaining total.
		if !snapshot.TotalRemainingExpenses.Equal(decimal.RequireFromString("40")) {
			t.Errorf("expected 40 remaining, got %s", snapshot.TotalRemainingExpenses)
		}
	})

	t.Run("cancelling removes it from every total", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, CreateExpenseInput{
			Name:          "dropped",
			EstimatedCost: decimal.RequireFromString("40"),
			Currency:      "EUR",
			DueDate:       day(10),
		})

		status := entity.ExpenseStatusCancelled
		if _, err := NewUpdateExpenseUseCase(f.uow, f.updater, nil, f.clock).Execute(ctx, UpdateExpenseInput{
			ProfileID: f.profile.ID,
			ExpenseID: created.ExpenseID,
			Status:    &status,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snapshot := f.snapshot(t)
		if !snapshot.TotalRemainingExpenses.IsZero() {
			t.Errorf("expected zero remaining, got %s", snapshot.TotalRemainingExpenses)
		}
		if !snapshot.SafeToSpend.IsZero() {
			t.Errorf("expected zero safe to spend, got %s", snapshot.SafeToSpend)
		}
	})

	t.Run("missing expense", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewUpdateExpenseUseCase(f.uow, f.updater, nil, f.clock).Execute(ctx, UpdateExpenseInput{
			ProfileID: f.profile.ID,
			ExpenseID: 12345,
		})
		if !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Fatalf("expected ErrExpenseNotFound, got %v", err)
		}
	})
}

func TestListExpenses(t *testing.T) {
	ctx := context.Background()

	t.Run("filters and totals in the base currency", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, CreateExpenseInput{
			Name:          "rent",
			EstimatedCost: decimal.RequireFromString("850"),
			Currency:      "EUR",
			DueDate:       day(25),
		})
		f.create(t, CreateExpenseInput{
			Name:          "hosting",
			EstimatedCost: decimal.RequireFromString("11"),
			Currency:      "USD",
			DueDate:       day(28),
		})
		f.create(t, CreateExpenseInput{
			Name:          "overdue",
			EstimatedCost: decimal.RequireFromString("5"),
			Currency:      "EUR",
			DueDate:       day(1),
		})

		uc := NewListExpensesUseCase(f.uow, f.converter)
		out, err := uc.Execute(ctx, ListExpensesInput{
			ProfileID: f.profile.ID,
			Filter:    adapter.ExpenseFilter{OnlyUpcoming: true},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(out.Expenses) != 2 {
			t.Fatalf("expected 2 upcoming expenses, got %d", len(out.Expenses))
		}
		if out.BaseCurrency != "EUR" {
			t.Errorf("expected EUR, got %s", out.BaseCurrency)
		}
		// 850 EUR plus 11 USD at 1.10 per EUR.
		if !out.Total.Equal(decimal.RequireFromString("860")) {
			t.Errorf("expected 860, got %s", out.Total)
		}
	})
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("linked transactions are detached, snapshot recomputed", func(t *testing.T) {
		f := newFixture(t)
		created := f.create(t, CreateExpenseInput{
			Name:          "doomed",
			EstimatedCost: decimal.RequireFromString("75"),
			Currency:      "EUR",
			DueDate:       day(10),
		})

		account := entity.NewAccount(f.profile.ID, "checking", entity.AccountTypeChecking, f.clock.Now())
		if err := persistence.NewAccountRepository(f.db).Create(ctx, account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		if err := persistence.NewBalanceRepository(f.db).Create(ctx, entity.NewBalance(account, "EUR", f.clock.Now())); err != nil {
			t.Fatalf("failed to create balance: %v", err)
		}
		tx := entity.NewTransaction(f.profile.ID, account.ID, f.clock.Now(), "payment",
			decimal.RequireFromString("75"), "EUR", entity.TransactionTypeExpense, nil, &created.ExpenseID, f.clock.Now())
		if err := persistence.NewTransactionRepository(f.db).Create(ctx, tx); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}

		uc := NewDeleteExpenseUseCase(f.uow, f.updater, nil)
		if err := uc.Execute(ctx, DeleteExpenseInput{ProfileID: f.profile.ID, ExpenseID: created.ExpenseID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		kept, err := persistence.NewTransactionRepository(f.db).FindByTxID(ctx, f.profile.ID, tx.TxID)
		if err != nil {
			t.Fatalf("expected the transaction to survive: %v", err)
		}
		if kept.BillID != nil {
			t.Errorf("expected the bill link cleared, got %d", *kept.BillID)
		}

		snapshot := f.snapshot(t)
		if !snapshot.TotalRemainingExpenses.IsZero() {
			t.Errorf("expected zero remaining, got %s", snapshot.TotalRemainingExpenses)
		}
	})
}
