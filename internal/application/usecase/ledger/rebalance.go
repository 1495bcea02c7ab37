package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/calc"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// RebalanceOptions selects which snapshot fields a rebalance pass recomputes.
// The recomputation order is fixed regardless of selection: account-type
// totals, total assets, leaks, monthly spending, remaining expenses, and
// safe-to-spend last. Safe-to-spend depends on spend-account balances that
// the earlier steps may have just changed, so reordering produces a stale
// figure.
type RebalanceOptions struct {
	AccountTypes      []entity.AccountType
	TotalAssets       bool
	Leaks             bool
	MonthlySpending   bool
	RemainingExpenses bool
	SafeToSpend       bool
}

// DefaultRebalance recomputes everything. Callers narrow it for localized
// writes (e.g. planned-expense edits skip asset and leak totals).
func DefaultRebalance() RebalanceOptions {
	return RebalanceOptions{
		TotalAssets:       true,
		Leaks:             true,
		MonthlySpending:   true,
		RemainingExpenses: true,
		SafeToSpend:       true,
	}
}

// ExpenseRebalance recomputes only the fields a planned-expense write can
// affect: the remaining-expense total and safe-to-spend.
func ExpenseRebalance() RebalanceOptions {
	return RebalanceOptions{
		RemainingExpenses: true,
		SafeToSpend:       true,
	}
}

// Rebalance recomputes the selected snapshot fields from current ledger
// state and persists them. It must run after the associated balance
// mutation, inside the same unit of work.
func (u *Updater) Rebalance(ctx context.Context, repos *adapter.Repositories, profile *entity.Profile, opts RebalanceOptions) error {
	snapshot, err := repos.Snapshots.FindByProfile(ctx, profile.ID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	fc := calc.NewCalculator(u.converter, profile.BaseCurrency)
	today := u.clock.Today()

	for _, accType := range opts.AccountTypes {
		if accType == entity.AccountTypeUnknown {
			continue
		}
		balances, err := repos.Balances.FindByAccountType(ctx, profile.ID, accType)
		if err != nil {
			return fmt.Errorf("failed to load %s balances: %w", accType, err)
		}
		total, err := fc.SumConverted(calc.BalanceItems(balances))
		if err != nil {
			return err
		}
		snapshot.SetTypeTotal(accType, total)
	}

	if opts.TotalAssets {
		balances, err := repos.Balances.FindAssets(ctx, profile.ID)
		if err != nil {
			return fmt.Errorf("failed to load asset balances: %w", err)
		}
		total, err := fc.SumConverted(calc.BalanceItems(balances))
		if err != nil {
			return err
		}
		snapshot.TotalAssets = total
	}

	if opts.Leaks {
		in, err := repos.Transactions.FindByType(ctx, profile.ID, entity.TransactionTypeTransferIn)
		if err != nil {
			return fmt.Errorf("failed to load inbound transfers: %w", err)
		}
		out, err := repos.Transactions.FindByType(ctx, profile.ID, entity.TransactionTypeTransferOut)
		if err != nil {
			return fmt.Errorf("failed to load outbound transfers: %w", err)
		}
		leaks, err := fc.Leaks(calc.TransactionMagnitudes(in), calc.TransactionMagnitudes(out))
		if err != nil {
			return err
		}
		snapshot.TotalLeaks = leaks
	}

	if opts.MonthlySpending {
		spending, err := u.monthlySpending(ctx, repos, fc, profile, today)
		if err != nil {
			return err
		}
		snapshot.TotalMonthlySpending = spending
	}

	if opts.RemainingExpenses {
		remaining, err := repos.Expenses.FindRemaining(ctx, profile.ID)
		if err != nil {
			return fmt.Errorf("failed to load remaining expenses: %w", err)
		}
		total, err := fc.SumConverted(calc.ExpenseItems(remaining))
		if err != nil {
			return err
		}
		snapshot.TotalRemainingExpenses = total
	}

	// Safe-to-spend goes last: it reads spend-account balances settled above.
	if opts.SafeToSpend {
		sts, err := u.safeToSpend(ctx, repos, fc, profile, today)
		if err != nil {
			return err
		}
		snapshot.SafeToSpend = sts
	}

	snapshot.UpdatedAt = u.clock.Now()
	if err := repos.Snapshots.Update(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	slog.Debug("Rebalanced snapshot",
		"profile_id", profile.ID,
		"total_assets", snapshot.TotalAssets,
		"safe_to_spend", snapshot.SafeToSpend,
	)
	return nil
}

// SourceDeleted recomputes the snapshot after an account of the given type
// was removed: that type's total, then total assets, then safe-to-spend.
func (u *Updater) SourceDeleted(ctx context.Context, repos *adapter.Repositories, profile *entity.Profile, accType entity.AccountType) error {
	return u.Rebalance(ctx, repos, profile, RebalanceOptions{
		AccountTypes: []entity.AccountType{accType},
		TotalAssets:  true,
		SafeToSpend:  true,
	})
}

// AccountReassigned recomputes the snapshot after an account changed type:
// both the old and new type totals, then total assets, then safe-to-spend.
func (u *Updater) AccountReassigned(ctx context.Context, repos *adapter.Repositories, profile *entity.Profile, oldType, newType entity.AccountType) error {
	return u.Rebalance(ctx, repos, profile, RebalanceOptions{
		AccountTypes: []entity.AccountType{oldType, newType},
		TotalAssets:  true,
		SafeToSpend:  true,
	})
}

func (u *Updater) monthlySpending(ctx context.Context, repos *adapter.Repositories, fc *calc.Calculator, profile *entity.Profile, today time.Time) (decimal.Decimal, error) {
	start := entity.BeginningOfMonth(today)
	txType := entity.TransactionTypeExpense
	txs, err := repos.Transactions.FindByFilter(ctx, profile.ID, adapter.TransactionFilter{
		StartDate: &start,
		EndDate:   &today,
		Type:      &txType,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load monthly expenses: %w", err)
	}
	return fc.SumConverted(calc.TransactionMagnitudes(txs))
}

func (u *Updater) safeToSpend(ctx context.Context, repos *adapter.Repositories, fc *calc.Calculator, profile *entity.Profile, today time.Time) (decimal.Decimal, error) {
	var spend []calc.Item
	if len(profile.SpendAccountIDs) > 0 {
		balances, err := repos.Balances.FindByAccounts(ctx, profile.SpendAccountIDs)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to load spend-account balances: %w", err)
		}
		spend = calc.BalanceItems(balances)
	}

	due, err := repos.Expenses.FindUnpaidDue(ctx, profile.ID, today)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load due expenses: %w", err)
	}

	return fc.SafeToSpend(spend, calc.ExpenseItems(due))
}
