// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Repositories bundles the repositories bound to one unit of work, all
// operating on the same underlying transaction.
type Repositories struct {
	Profiles     ProfileRepository
	Snapshots    SnapshotRepository
	Currencies   CurrencyRepository
	Accounts     AccountRepository
	Balances     BalanceRepository
	Transactions TransactionRepository
	Expenses     ExpenseRepository
}

// UnitOfWork executes fn atomically: every repository write inside fn commits
// together or not at all. A returned error rolls the whole unit back without
// a partial commit.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}
