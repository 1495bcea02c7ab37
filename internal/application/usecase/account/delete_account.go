package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	ProfileID uuid.UUID
	AccountID uuid.UUID
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	uow     adapter.UnitOfWork
	updater *ledger.Updater
	cache   adapter.SnapshotCache
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	cache adapter.SnapshotCache,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		uow:     uow,
		updater: updater,
		cache:   cache,
	}
}

// Execute performs the account deletion. Transactions referencing the
// account are reassigned to the profile's reserved UNKNOWN account; ledger
// history is never lost. The account's balance row goes with it, and the
// snapshot drops the deleted balance from its totals.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		account, err := findAccount(ctx, repos, input.AccountID)
		if err != nil {
			return err
		}
		if account.IsUnknown() {
			return domainerror.NewAccountError(
				domainerror.ErrCodeReservedAccount,
				"the reserved fallback account cannot be deleted",
				domainerror.ErrReservedAccount,
			)
		}

		unknown, err := repos.Accounts.FindOrCreateUnknown(ctx, input.ProfileID)
		if err != nil {
			return fmt.Errorf("failed to resolve fallback account: %w", err)
		}

		moved, err := repos.Transactions.ReassignAccount(ctx, input.ProfileID, account.ID, unknown.ID)
		if err != nil {
			return fmt.Errorf("failed to reassign transactions: %w", err)
		}

		if err := repos.Balances.Delete(ctx, account.ID); err != nil {
			return fmt.Errorf("failed to delete balance: %w", err)
		}
		if err := repos.Accounts.Delete(ctx, account.ID); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}

		// A deleted account cannot stay in the spend-account set.
		if profile.IsSpendAccount(account.ID) {
			kept := profile.SpendAccountIDs[:0]
			for _, id := range profile.SpendAccountIDs {
				if id != account.ID {
					kept = append(kept, id)
				}
			}
			profile.SpendAccountIDs = kept
			if err := repos.Profiles.Update(ctx, profile); err != nil {
				return fmt.Errorf("failed to update spend accounts: %w", err)
			}
		}

		slog.Info("Deleted account",
			"profile_id", input.ProfileID,
			"account", account.Name,
			"reassigned_transactions", moved,
		)
		return uc.updater.SourceDeleted(ctx, repos, profile, account.Type)
	})
	if err != nil {
		return err
	}

	invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	return nil
}
