package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
	"github.com/ledgerkeep/backend/internal/integration/persistence/model"
)

// balanceRepository implements the adapter.BalanceRepository interface.
type balanceRepository struct {
	db *gorm.DB
}

// NewBalanceRepository creates a new balance repository instance.
func NewBalanceRepository(db *gorm.DB) adapter.BalanceRepository {
	return &balanceRepository{db: db}
}

// Create creates a new balance in the database.
func (r *balanceRepository) Create(ctx context.Context, balance *entity.Balance) error {
	return r.db.WithContext(ctx).Create(model.BalanceFromEntity(balance)).Error
}

// FindByAccount retrieves the balance for an account.
func (r *balanceRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*entity.Balance, error) {
	var balanceModel model.BalanceModel
	result := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&balanceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBalanceNotFound
		}
		return nil, result.Error
	}
	return balanceModel.ToEntity(), nil
}

// FindByProfile retrieves all balances for a profile.
func (r *balanceRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Balance, error) {
	var balanceModels []model.BalanceModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&balanceModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBalanceEntities(balanceModels), nil
}

// FindByAccountType retrieves a profile's balances whose owning account has
// the given type.
func (r *balanceRepository) FindByAccountType(ctx context.Context, profileID uuid.UUID, t entity.AccountType) ([]*entity.Balance, error) {
	var balanceModels []model.BalanceModel
	result := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.id = balances.account_id").
		Where("balances.profile_id = ? AND accounts.type = ?", profileID, string(t)).
		Find(&balanceModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBalanceEntities(balanceModels), nil
}

// FindByAccounts retrieves the balances for a specific set of accounts.
func (r *balanceRepository) FindByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*entity.Balance, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	var balanceModels []model.BalanceModel
	result := r.db.WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Find(&balanceModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBalanceEntities(balanceModels), nil
}

// FindAssets retrieves a profile's balances excluding the reserved UNKNOWN
// account.
func (r *balanceRepository) FindAssets(ctx context.Context, profileID uuid.UUID) ([]*entity.Balance, error) {
	var balanceModels []model.BalanceModel
	result := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.id = balances.account_id").
		Where("balances.profile_id = ? AND accounts.type <> ?", profileID, string(entity.AccountTypeUnknown)).
		Find(&balanceModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBalanceEntities(balanceModels), nil
}

// Update updates an existing balance.
func (r *balanceRepository) Update(ctx context.Context, balance *entity.Balance) error {
	result := r.db.WithContext(ctx).
		Model(&model.BalanceModel{}).
		Where("id = ?", balance.ID).
		Select("amount", "currency", "updated_at").
		Updates(model.BalanceFromEntity(balance))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBalanceNotFound
	}
	return nil
}

// Delete removes the balance for an account.
func (r *balanceRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.BalanceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBalanceNotFound
	}
	return nil
}

func toBalanceEntities(balanceModels []model.BalanceModel) []*entity.Balance {
	balances := make([]*entity.Balance, len(balanceModels))
	for i, bm := range balanceModels {
		balances[i] = bm.ToEntity()
	}
	return balances
}
