package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
	"github.com/ledgerkeep/backend/internal/fx"
	"github.com/ledgerkeep/backend/internal/integration/adapters"
	snapshotcache "github.com/ledgerkeep/backend/internal/integration/cache"
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
	tokens  adapter.TokenService
	clock   fixedClock
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
		tokens:  adapters.NewTokenService("test-secret", time.Hour),
		clock:   clock,
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

func (f *fixture) createProfile(t *testing.T, currency string) *CreateProfileOutput {
	t.Helper()
	out, err := NewCreateProfileUseCase(f.uow, f.tokens, f.clock).Execute(context.Background(), CreateProfileInput{
		BaseCurrency: currency,
	})
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return out
}

func newCache(t *testing.T) adapter.SnapshotCache {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return snapshotcache.NewSnapshotCache(client, time.Minute)
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("creates profile, snapshot, fallback account and token", func(t *testing.T) {
		f := newFixture(t)
		out := f.createProfile(t, "EUR")

		if out.Token == "" {
			t.Error("expected a bearer token")
		}
		if out.Profile.BaseCurrency != "EUR" {
			t.Errorf("expected EUR, got %s", out.Profile.BaseCurrency)
		}

		claims, err := f.tokens.ValidateToken(ctx, out.Token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.ProfileID != out.Profile.ID {
			t.Errorf("expected the token bound to %s, got %s", out.Profile.ID, claims.ProfileID)
		}

		if _, err := persistence.NewSnapshotRepository(f.db).FindByProfile(ctx, out.Profile.ID); err != nil {
			t.Errorf("expected a snapshot: %v", err)
		}
		unknown, err := persistence.NewAccountRepository(f.db).FindByName(ctx, out.Profile.ID, entity.UnknownAccountName)
		if err != nil {
			t.Fatalf("expected the fallback account: %v", err)
		}
		if !unknown.IsUnknown() {
			t.Errorf("expected UNKNOWN type, got %s", unknown.Type)
		}
	})

	t.Run("unknown base currency", func(t *testing.T) {
		f := newFixture(t)
		_, err := NewCreateProfileUseCase(f.uow, f.tokens, f.clock).Execute(ctx, CreateProfileInput{
			BaseCurrency: "XXX",
		})
		if !errors.Is(err, domainerror.ErrCurrencyNotFound) {
			t.Fatalf("expected ErrCurrencyNotFound, got %v", err)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("spend account set replaces wholesale", func(t *testing.T) {
		f := newFixture(t)
		created := f.createProfile(t, "EUR")

		account := entity.NewAccount(created.Profile.ID, "checking", entity.AccountTypeChecking, f.clock.Now())
		if err := persistence.NewAccountRepository(f.db).Create(ctx, account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		if err := persistence.NewBalanceRepository(f.db).Create(ctx, entity.NewBalance(account, "EUR", f.clock.Now())); err != nil {
			t.Fatalf("failed to create balance: %v", err)
		}

		uc := NewUpdateProfileUseCase(f.uow, f.updater, nil, f.clock)
		out, err := uc.Execute(ctx, UpdateProfileInput{
			ProfileID:       created.Profile.ID,
			SpendAccountIDs: []uuid.UUID{account.ID},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Profile.SpendAccountIDs) != 1 || out.Profile.SpendAccountIDs[0] != account.ID {
			t.Fatalf("expected one spend account, got %v", out.Profile.SpendAccountIDs)
		}

		// An empty non-nil set clears it.
		out, err = uc.Execute(ctx, UpdateProfileInput{
			ProfileID:       created.Profile.ID,
			SpendAccountIDs: []uuid.UUID{},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Profile.SpendAccountIDs) != 0 {
			t.Fatalf("expected an empty spend set, got %v", out.Profile.SpendAccountIDs)
		}
	})

	t.Run("unknown spend account is rejected", func(t *testing.T) {
		f := newFixture(t)
		created := f.createProfile(t, "EUR")

		uc := NewUpdateProfileUseCase(f.uow, f.updater, nil, f.clock)
		_, err := uc.Execute(ctx, UpdateProfileInput{
			ProfileID:       created.Profile.ID,
			SpendAccountIDs: []uuid.UUID{uuid.New()},
		})
		if !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("base currency change reconverts the snapshot", func(t *testing.T) {
		f := newFixture(t)
		created := f.createProfile(t, "EUR")

		account := entity.NewAccount(created.Profile.ID, "checking", entity.AccountTypeChecking, f.clock.Now())
		if err := persistence.NewAccountRepository(f.db).Create(ctx, account); err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		balance := entity.NewBalance(account, "EUR", f.clock.Now())
		balance.Amount = decimal.RequireFromString("100")
		if err := persistence.NewBalanceRepository(f.db).Create(ctx, balance); err != nil {
			t.Fatalf("failed to create balance: %v", err)
		}

		currency := "USD"
		uc := NewUpdateProfileUseCase(f.uow, f.updater, nil, f.clock)
		if _, err := uc.Execute(ctx, UpdateProfileInput{
			ProfileID:    created.Profile.ID,
			BaseCurrency: &currency,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snapshot, err := persistence.NewSnapshotRepository(f.db).FindByProfile(ctx, created.Profile.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 100 EUR expressed in the new USD base at 1.10 per EUR.
		if !snapshot.TotalChecking.Equal(decimal.RequireFromString("110")) {
			t.Errorf("expected 110, got %s", snapshot.TotalChecking)
		}
		if !snapshot.TotalAssets.Equal(decimal.RequireFromString("110")) {
			t.Errorf("expected 110, got %s", snapshot.TotalAssets)
		}
	})
}

func TestGetSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("miss falls back to the database and repopulates", func(t *testing.T) {
		f := newFixture(t)
		created := f.createProfile(t, "EUR")
		cache := newCache(t)

		snapshot, err := persistence.NewSnapshotRepository(f.db).FindByProfile(ctx, created.Profile.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		snapshot.TotalAssets = decimal.RequireFromString("500")
		if err := persistence.NewSnapshotRepository(f.db).Update(ctx, snapshot); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		uc := NewGetSnapshotUseCase(f.uow, cache)
		out, err := uc.Execute(ctx, GetSnapshotInput{ProfileID: created.Profile.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Snapshot.TotalAssets.Equal(decimal.RequireFromString("500")) {
			t.Errorf("expected 500, got %s", out.Snapshot.TotalAssets)
		}
		if out.BaseCurrency != "EUR" {
			t.Errorf("expected EUR, got %s", out.BaseCurrency)
		}

		// The value is now served from the cache even if the row changes
		// underneath without an invalidation.
		snapshot.TotalAssets = decimal.RequireFromString("999")
		if err := persistence.NewSnapshotRepository(f.db).Update(ctx, snapshot); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, err = uc.Execute(ctx, GetSnapshotInput{ProfileID: created.Profile.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Snapshot.TotalAssets.Equal(decimal.RequireFromString("500")) {
			t.Errorf("expected the cached 500, got %s", out.Snapshot.TotalAssets)
		}
	})

	t.Run("works without a cache", func(t *testing.T) {
		f := newFixture(t)
		created := f.createProfile(t, "EUR")

		uc := NewGetSnapshotUseCase(f.uow, nil)
		out, err := uc.Execute(ctx, GetSnapshotInput{ProfileID: created.Profile.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Snapshot.TotalAssets.IsZero() {
			t.Errorf("expected a zeroed snapshot, got %s", out.Snapshot.TotalAssets)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		f := newFixture(t)
		uc := NewGetSnapshotUseCase(f.uow, nil)
		_, err := uc.Execute(ctx, GetSnapshotInput{ProfileID: uuid.New()})
		if !errors.Is(err, domainerror.ErrProfileNotFound) {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})
}

func TestListCurrencies(t *testing.T) {
	f := newFixture(t)
	uc := NewListCurrenciesUseCase(f.uow)
	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Currencies) != 2 {
		t.Fatalf("expected 2 currencies, got %d", len(out.Currencies))
	}
}
