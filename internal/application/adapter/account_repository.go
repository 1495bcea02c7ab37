// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account (payment source)
// persistence operations.
type AccountRepository interface {
	// Create inserts a new account.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByName retrieves a profile's account by its (lowercased) name.
	FindByName(ctx context.Context, profileID uuid.UUID, name string) (*entity.Account, error)

	// FindByProfile retrieves all accounts for a profile.
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Account, error)

	// FindByType retrieves a profile's accounts of the given type.
	FindByType(ctx context.Context, profileID uuid.UUID, t entity.AccountType) ([]*entity.Account, error)

	// FindOrCreateUnknown returns the profile's reserved UNKNOWN account,
	// creating it (with its zero balance) on first use.
	FindOrCreateUnknown(ctx context.Context, profileID uuid.UUID) (*entity.Account, error)

	// Update persists changes to an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account permanently. Callers must reassign the
	// account's transactions first.
	Delete(ctx context.Context, id uuid.UUID) error
}

// BalanceRepository defines the interface for balance persistence operations.
type BalanceRepository interface {
	// Create inserts the balance record accompanying a new account.
	Create(ctx context.Context, balance *entity.Balance) error

	// FindByAccount retrieves the balance for an account.
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*entity.Balance, error)

	// FindByProfile retrieves all balances for a profile.
	FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Balance, error)

	// FindByAccountType retrieves a profile's balances whose owning account
	// has the given type.
	FindByAccountType(ctx context.Context, profileID uuid.UUID, t entity.AccountType) ([]*entity.Balance, error)

	// FindByAccounts retrieves the balances for a specific set of accounts.
	FindByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*entity.Balance, error)

	// FindAssets retrieves a profile's balances excluding the reserved
	// UNKNOWN account, which never counts toward total assets.
	FindAssets(ctx context.Context, profileID uuid.UUID) ([]*entity.Balance, error)

	// Update persists a mutated balance.
	Update(ctx context.Context, balance *entity.Balance) error

	// Delete removes the balance for an account.
	Delete(ctx context.Context, accountID uuid.UUID) error
}
