// Package ledger contains the balance-consistency and recalculation engine:
// applying a transaction's monetary effect to its account balance and
// recomputing the profile's snapshot afterwards. Every write path in the
// application ends here.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// Updater keeps Balance and Snapshot consistent with transaction history.
// All methods must run inside a unit of work that has already taken the
// profile row lock; a conversion failure aborts the unit with no partial
// mutation.
type Updater struct {
	converter adapter.CurrencyConverter
	clock     adapter.Clock
}

// NewUpdater creates a new Updater instance.
func NewUpdater(converter adapter.CurrencyConverter, clock adapter.Clock) *Updater {
	return &Updater{
		converter: converter,
		clock:     clock,
	}
}

// PostTransaction applies the transaction's signed delta to the owning
// account's balance, then rebalances the snapshot for the account's type.
func (u *Updater) PostTransaction(ctx context.Context, repos *adapter.Repositories, profile *entity.Profile, tx *entity.Transaction) error {
	account, err := u.applyDelta(ctx, repos, tx, tx.Amount)
	if err != nil {
		return err
	}

	opts := DefaultRebalance()
	opts.AccountTypes = []entity.AccountType{account.Type}
	return u.Rebalance(ctx, repos, profile, opts)
}

// ReverseTransaction applies the exact negation of the transaction's effect,
// undoing it prior to an edit or a delete. The snapshot is never touched
// directly; the reversal routes through a full rebalance like any posting.
func (u *Updater) ReverseTransaction(ctx context.Context, repos *adapter.Repositories, profile *entity.Profile, tx *entity.Transaction) error {
	account, err := u.applyDelta(ctx, repos, tx, tx.Amount.Neg())
	if err != nil {
		return err
	}

	opts := DefaultRebalance()
	opts.AccountTypes = []entity.AccountType{account.Type}
	return u.Rebalance(ctx, repos, profile, opts)
}

// applyDelta converts the delta into the account's stored currency and adds
// it to the balance. Returns the owning account so callers know which type
// total to recompute.
func (u *Updater) applyDelta(ctx context.Context, repos *adapter.Repositories, tx *entity.Transaction, delta decimal.Decimal) (*entity.Account, error) {
	account, err := repos.Accounts.FindByID(ctx, tx.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account for transaction %s: %w", tx.TxID, err)
	}

	balance, err := repos.Balances.FindByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find balance for account %s: %w", account.Name, err)
	}

	converted, err := u.converter.Convert(delta, tx.Currency, balance.Currency)
	if err != nil {
		return nil, err
	}

	balance.Amount = balance.Amount.Add(converted).Round(2)
	balance.UpdatedAt = u.clock.Now()
	if err := repos.Balances.Update(ctx, balance); err != nil {
		return nil, fmt.Errorf("failed to update balance for account %s: %w", account.Name, err)
	}

	slog.Debug("Applied transaction delta to balance",
		"tx_id", tx.TxID,
		"account", account.Name,
		"new_balance", balance.Amount,
	)
	return account, nil
}
