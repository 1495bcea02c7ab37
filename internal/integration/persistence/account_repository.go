package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
	"github.com/ledgerkeep/backend/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{db: db, now: time.Now}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Create(model.AccountFromEntity(account)).Error
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByName retrieves a profile's account by name.
func (r *accountRepository) FindByName(ctx context.Context, profileID uuid.UUID, name string) (*entity.Account, error) {
	var accountModel model.AccountModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND name = ?", profileID, strings.ToLower(name)).
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByProfile retrieves all accounts for a profile.
func (r *accountRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("name ASC").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toAccountEntities(accountModels), nil
}

// FindByType retrieves a profile's accounts of the given type.
func (r *accountRepository) FindByType(ctx context.Context, profileID uuid.UUID, t entity.AccountType) ([]*entity.Account, error) {
	var accountModels []model.AccountModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND type = ?", profileID, string(t)).
		Order("name ASC").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toAccountEntities(accountModels), nil
}

// FindOrCreateUnknown returns the profile's reserved UNKNOWN account,
// creating it with its zero balance on first use. The UNKNOWN balance
// carries no currency conversion weight; it exists so reassigned
// transactions always have a balance row to post against.
func (r *accountRepository) FindOrCreateUnknown(ctx context.Context, profileID uuid.UUID) (*entity.Account, error) {
	account, err := r.FindByName(ctx, profileID, entity.UnknownAccountName)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domainerror.ErrAccountNotFound) {
		return nil, err
	}

	var profileModel model.ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", profileID).First(&profileModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, err
	}

	now := r.now()
	unknown := entity.NewUnknownAccount(profileID, now)
	if err := r.Create(ctx, unknown); err != nil {
		return nil, err
	}
	balance := entity.NewBalance(unknown, profileModel.BaseCurrency, now)
	if err := r.db.WithContext(ctx).Create(model.BalanceFromEntity(balance)).Error; err != nil {
		return nil, err
	}
	return unknown, nil
}

// Update updates an existing account.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Select("name", "type", "updated_at").
		Updates(model.AccountFromEntity(account))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

// Delete removes an account permanently.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccountModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

func toAccountEntities(accountModels []model.AccountModel) []*entity.Account {
	accounts := make([]*entity.Account, len(accountModels))
	for i, am := range accountModels {
		accounts[i] = am.ToEntity()
	}
	return accounts
}
