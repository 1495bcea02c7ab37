package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// GetSnapshotInput represents the input for retrieving a profile's snapshot.
type GetSnapshotInput struct {
	ProfileID uuid.UUID
}

// SnapshotOutput represents the denormalized totals returned to callers, all
// in the profile's base currency.
type SnapshotOutput struct {
	TotalAssets            decimal.Decimal
	SafeToSpend            decimal.Decimal
	TotalSavings           decimal.Decimal
	TotalChecking          decimal.Decimal
	TotalInvestment        decimal.Decimal
	TotalCash              decimal.Decimal
	TotalEwallet           decimal.Decimal
	TotalMonthlySpending   decimal.Decimal
	TotalRemainingExpenses decimal.Decimal
	TotalLeaks             decimal.Decimal
	UpdatedAt              time.Time
}

// GetSnapshotOutput represents the output of retrieving a snapshot.
type GetSnapshotOutput struct {
	Snapshot     *SnapshotOutput
	BaseCurrency string
}

// GetSnapshotUseCase handles the snapshot read path. Reads go through the
// cache; a miss falls back to the repository and repopulates it.
type GetSnapshotUseCase struct {
	uow   adapter.UnitOfWork
	cache adapter.SnapshotCache
}

// NewGetSnapshotUseCase creates a new GetSnapshotUseCase instance.
func NewGetSnapshotUseCase(uow adapter.UnitOfWork, cache adapter.SnapshotCache) *GetSnapshotUseCase {
	return &GetSnapshotUseCase{uow: uow, cache: cache}
}

// Execute performs the snapshot retrieval.
func (uc *GetSnapshotUseCase) Execute(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error) {
	output := &GetSnapshotOutput{}

	var cached *entity.Snapshot
	if uc.cache != nil {
		snap, err := uc.cache.Get(ctx, input.ProfileID)
		if err != nil {
			// Cache trouble never fails a read; the repository is the
			// source of truth.
			slog.Warn("Snapshot cache read failed", "profile_id", input.ProfileID, "error", err)
		} else {
			cached = snap
		}
	}

	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := findProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}
		output.BaseCurrency = profile.BaseCurrency

		if cached != nil {
			output.Snapshot = newSnapshotOutput(cached)
			return nil
		}

		snapshot, err := repos.Snapshots.FindByProfile(ctx, input.ProfileID)
		if err != nil {
			if errors.Is(err, domainerror.ErrSnapshotNotFound) {
				return domainerror.NewProfileError(
					domainerror.ErrCodeSnapshotNotFound,
					"snapshot not found",
					domainerror.ErrSnapshotNotFound,
				)
			}
			return fmt.Errorf("failed to find snapshot: %w", err)
		}

		if uc.cache != nil {
			if cerr := uc.cache.Set(ctx, snapshot); cerr != nil {
				slog.Warn("Snapshot cache write failed", "profile_id", input.ProfileID, "error", cerr)
			}
		}

		output.Snapshot = newSnapshotOutput(snapshot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

func newSnapshotOutput(s *entity.Snapshot) *SnapshotOutput {
	return &SnapshotOutput{
		TotalAssets:            s.TotalAssets,
		SafeToSpend:            s.SafeToSpend,
		TotalSavings:           s.TotalSavings,
		TotalChecking:          s.TotalChecking,
		TotalInvestment:        s.TotalInvestment,
		TotalCash:              s.TotalCash,
		TotalEwallet:           s.TotalEwallet,
		TotalMonthlySpending:   s.TotalMonthlySpending,
		TotalRemainingExpenses: s.TotalRemainingExpenses,
		TotalLeaks:             s.TotalLeaks,
		UpdatedAt:              s.UpdatedAt,
	}
}
