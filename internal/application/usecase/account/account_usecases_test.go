package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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
	db      *gorm.DB
	uow     adapter.UnitOfWork
	updater *ledger.Updater
	clock   fixedClock
	profile *entity.Profile
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

	f := &fixture{
		db:      db,
		uow:     persistence.NewUnitOfWork(db),
		updater: ledger.NewUpdater(fx.NewConverter(table), clock),
		clock:   clock,
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

func (f *fixture) create(t *testing.T, name string, accType entity.AccountType) *AccountOutput {
	t.Helper()
	out, err := NewCreateAccountUseCase(f.uow, f.clock).Execute(context.Background(), CreateAccountInput{
		ProfileID: f.profile.ID,
		Name:      name,
		Type:      accType,
	})
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return out.Account
}

func (f *fixture) setBalance(t *testing.T, accountID uuid.UUID, amount string) {
	t.Helper()
	value := decimal.RequireFromString(amount)
	out, err := NewUpdateBalanceUseCase(f.uow, f.updater, nil, f.clock).Execute(context.Background(), UpdateBalanceInput{
		ProfileID: f.profile.ID,
		AccountID: accountID,
		Amount:    &value,
	})
	if err != nil {
		t.Fatalf("failed to set balance: %v", err)
	}
	if !out.Account.Amount.Equal(value) {
		t.Fatalf("expected balance %s, got %s", value, out.Account.Amount)
	}
}

func (f *fixture) snapshot(t *testing.T) *entity.Snapshot {
	t.Helper()
	snapshot, err := persistence.NewSnapshotRepository(f.db).FindByProfile(context.Background(), f.profile.ID)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	return snapshot
}

func eq(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", label, want, got)
	}
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("starts with a zero balance in the base currency", func(t *testing.T) {
		f := newFixture(t)
		account := f.create(t, "Main Checking", entity.AccountTypeChecking)

		if account.Name != "main checking" {
			t.Errorf("expected lowercased name, got %q", account.Name)
		}
		if !account.Amount.IsZero() || account.Currency != "EUR" {
			t.Errorf("expected zero EUR balance, got %s %s", account.Amount, account.Currency)
		}
	})

	t.Run("duplicate name within the profile", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, "wallet", entity.AccountTypeCash)

		_, err := NewCreateAccountUseCase(f.uow, f.clock).Execute(ctx, CreateAccountInput{
			ProfileID: f.profile.ID,
			Name:      "WALLET",
			Type:      entity.AccountTypeCash,
		})
		if !errors.Is(err, domainerror.ErrAccountNameTaken) {
			t.Fatalf("expected ErrAccountNameTaken, got %v", err)
		}
	})

	t.Run("reserved name is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateAccountUseCase(f.uow, f.clock).Execute(ctx, CreateAccountInput{
			ProfileID: f.profile.ID,
			Name:      entity.UnknownAccountName,
			Type:      entity.AccountTypeCash,
		})
		if !errors.Is(err, domainerror.ErrReservedAccount) {
			t.Fatalf("expected ErrReservedAccount, got %v", err)
		}
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateAccountUseCase(f.uow, f.clock).Execute(ctx, CreateAccountInput{
			ProfileID: f.profile.ID,
			Name:      "bad",
			Type:      entity.AccountType("LOAN"),
		})
		if !errors.Is(err, domainerror.ErrInvalidAccountType) {
			t.Fatalf("expected ErrInvalidAccountType, got %v", err)
		}
	})
}

func TestUpdateBalance(t *testing.T) {
	t.Run("direct correction recomputes the snapshot", func(t *testing.T) {
		f := newFixture(t)
		account := f.create(t, "checking", entity.AccountTypeChecking)
		f.setBalance(t, account.ID, "250.755")

		snapshot := f.snapshot(t)
		// The authoritative amount is rounded on entry.
		eq(t, snapshot.TotalChecking, "250.76", "total checking")
		eq(t, snapshot.TotalAssets, "250.76", "total assets")
	})

	t.Run("currency change converts in the totals", func(t *testing.T) {
		f := newFixture(t)
		account := f.create(t, "usd wallet", entity.AccountTypeCash)

		amount := decimal.RequireFromString("110")
		currency := "USD"
		_, err := NewUpdateBalanceUseCase(f.uow, f.updater, nil, f.clock).Execute(context.Background(), UpdateBalanceInput{
			ProfileID: f.profile.ID,
			AccountID: account.ID,
			Amount:    &amount,
			Currency:  &currency,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// 110 USD at 1.10 per EUR lands as 100 EUR in the base-currency total.
		eq(t, f.snapshot(t).TotalCash, "100", "total cash")
	})
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("type change moves the balance between totals", func(t *testing.T) {
		f := newFixture(t)
		account := f.create(t, "movable", entity.AccountTypeChecking)
		f.setBalance(t, account.ID, "300")

		newType := entity.AccountTypeSavings
		out, err := NewUpdateAccountUseCase(f.uow, f.updater, nil, f.clock).Execute(ctx, UpdateAccountInput{
			ProfileID: f.profile.ID,
			AccountID: account.ID,
			Type:      &newType,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Account.Type != entity.AccountTypeSavings {
			t.Errorf("expected SAVINGS, got %s", out.Account.Type)
		}

		snapshot := f.snapshot(t)
		eq(t, snapshot.TotalChecking, "0", "total checking")
		eq(t, snapshot.TotalSavings, "300", "total savings")
		eq(t, snapshot.TotalAssets, "300", "total assets")
	})

	t.Run("rename to a taken name", func(t *testing.T) {
		f := newFixture(t)
		f.create(t, "first", entity.AccountTypeCash)
		second := f.create(t, "second", entity.AccountTypeCash)

		name := "First"
		_, err := NewUpdateAccountUseCase(f.uow, f.updater, nil, f.clock).Execute(ctx, UpdateAccountInput{
			ProfileID: f.profile.ID,
			AccountID: second.ID,
			Name:      &name,
		})
		if !errors.Is(err, domainerror.ErrAccountNameTaken) {
			t.Fatalf("expected ErrAccountNameTaken, got %v", err)
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("transactions move to the reserved fallback", func(t *testing.T) {
		f := newFixture(t)
		account := f.create(t, "doomed", entity.AccountTypeChecking)
		f.setBalance(t, account.ID, "500")

		tx := entity.NewTransaction(f.profile.ID, account.ID, f.clock.Now(), "history",
			decimal.RequireFromString("42"), "EUR", entity.TransactionTypeExpense, nil, nil, f.clock.Now())
		if err := persistence.NewTransactionRepository(f.db).Create(ctx, tx); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}

		uc := NewDeleteAccountUseCase(f.uow, f.updater, nil)
		if err := uc.Execute(ctx, DeleteAccountInput{ProfileID: f.profile.ID, AccountID: account.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// History survives on the UNKNOWN account.
		kept, err := persistence.NewTransactionRepository(f.db).FindByTxID(ctx, f.profile.ID, tx.TxID)
		if err != nil {
			t.Fatalf("expected the transaction to survive: %v", err)
		}
		unknown, err := persistence.NewAccountRepository(f.db).FindOrCreateUnknown(ctx, f.profile.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if kept.AccountID != unknown.ID {
			t.Errorf("expected reassignment to %s, got %s", unknown.ID, kept.AccountID)
		}

		// The deleted balance leaves the totals.
		snapshot := f.snapshot(t)
		eq(t, snapshot.TotalChecking, "0", "total checking")
		eq(t, snapshot.TotalAssets, "0", "total assets")
	})

	t.Run("deletion drops the account from the spend set", func(t *testing.T) {
		f := newFixture(t)
		account := f.create(t, "spend", entity.AccountTypeChecking)

		f.profile.SpendAccountIDs = []uuid.UUID{account.ID}
		if err := persistence.NewProfileRepository(f.db).Update(ctx, f.profile); err != nil {
			t.Fatalf("failed to update profile: %v", err)
		}

		uc := NewDeleteAccountUseCase(f.uow, f.updater, nil)
		if err := uc.Execute(ctx, DeleteAccountInput{ProfileID: f.profile.ID, AccountID: account.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		profile, err := persistence.NewProfileRepository(f.db).FindByID(ctx, f.profile.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(profile.SpendAccountIDs) != 0 {
			t.Errorf("expected an empty spend set, got %v", profile.SpendAccountIDs)
		}
	})

	t.Run("the reserved account cannot be deleted", func(t *testing.T) {
		f := newFixture(t)
		unknown, err := persistence.NewAccountRepository(f.db).FindOrCreateUnknown(ctx, f.profile.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewDeleteAccountUseCase(f.uow, f.updater, nil)
		err = uc.Execute(ctx, DeleteAccountInput{ProfileID: f.profile.ID, AccountID: unknown.ID})
		if !errors.Is(err, domainerror.ErrReservedAccount) {
			t.Fatalf("expected ErrReservedAccount, got %v", err)
		}
	})
}
