package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerkeep/backend/internal/application/adapter"
)

// unitOfWork implements adapter.UnitOfWork on a gorm database transaction.
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new unit-of-work instance.
func NewUnitOfWork(db *gorm.DB) adapter.UnitOfWork {
	return &unitOfWork{db: db}
}

// Execute runs fn inside one database transaction. Every repository handed
// to fn is bound to that transaction; an error rolls everything back.
func (u *unitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos *adapter.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
}

// NewRepositories binds the full repository set to one database handle.
func NewRepositories(db *gorm.DB) *adapter.Repositories {
	return &adapter.Repositories{
		Profiles:     NewProfileRepository(db),
		Snapshots:    NewSnapshotRepository(db),
		Currencies:   NewCurrencyRepository(db),
		Accounts:     NewAccountRepository(db),
		Balances:     NewBalanceRepository(db),
		Transactions: NewTransactionRepository(db),
		Expenses:     NewExpenseRepository(db),
	}
}
