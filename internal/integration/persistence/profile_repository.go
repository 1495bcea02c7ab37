package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
	"github.com/ledgerkeep/backend/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{db: db}
}

// Create creates a new profile in the database.
func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return r.db.WithContext(ctx).Create(model.ProfileFromEntity(profile)).Error
}

// FindByID retrieves a profile by its ID.
func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}

// Update updates an existing profile.
func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result := r.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", profile.ID).
		Select("base_currency", "spend_accounts", "updated_at").
		Updates(model.ProfileFromEntity(profile))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProfileNotFound
	}
	return nil
}

// Lock takes the profile row lock, serializing concurrent units of work
// against the same profile. SQLite serializes writers on its own, so the
// explicit FOR UPDATE is a Postgres concern.
func (r *profileRepository) Lock(ctx context.Context, id uuid.UUID) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	var profileModel model.ProfileModel
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return domainerror.ErrProfileNotFound
		}
		return result.Error
	}
	return nil
}

// snapshotRepository implements the adapter.SnapshotRepository interface.
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository instance.
func NewSnapshotRepository(db *gorm.DB) adapter.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Create creates the zeroed snapshot row for a new profile.
func (r *snapshotRepository) Create(ctx context.Context, snapshot *entity.Snapshot) error {
	return r.db.WithContext(ctx).Create(model.SnapshotFromEntity(snapshot)).Error
}

// FindByProfile retrieves the profile's snapshot.
func (r *snapshotRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) (*entity.Snapshot, error) {
	var snapshotModel model.SnapshotModel
	result := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&snapshotModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSnapshotNotFound
		}
		return nil, result.Error
	}
	return snapshotModel.ToEntity(), nil
}

// Update persists recomputed snapshot fields.
func (r *snapshotRepository) Update(ctx context.Context, snapshot *entity.Snapshot) error {
	result := r.db.WithContext(ctx).
		Model(&model.SnapshotModel{}).
		Where("profile_id = ?", snapshot.ProfileID).
		Select("total_assets", "safe_to_spend", "total_savings", "total_checking",
			"total_investment", "total_cash", "total_ewallet", "total_monthly_spending",
			"total_remaining_expenses", "total_leaks", "updated_at").
		Updates(model.SnapshotFromEntity(snapshot))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSnapshotNotFound
	}
	return nil
}

// currencyRepository implements the adapter.CurrencyRepository interface.
type currencyRepository struct {
	db *gorm.DB
}

// NewCurrencyRepository creates a new currency repository instance.
func NewCurrencyRepository(db *gorm.DB) adapter.CurrencyRepository {
	return &currencyRepository{db: db}
}

// Upsert inserts or refreshes a currency definition.
func (r *currencyRepository) Upsert(ctx context.Context, currency *entity.Currency) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "symbol"}),
		}).
		Create(model.CurrencyFromEntity(currency)).Error
}

// FindByCode retrieves a currency by its 3-letter code.
func (r *currencyRepository) FindByCode(ctx context.Context, code string) (*entity.Currency, error) {
	var currencyModel model.CurrencyModel
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&currencyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCurrencyNotFound
		}
		return nil, result.Error
	}
	return currencyModel.ToEntity(), nil
}

// FindAll retrieves every seeded currency.
func (r *currencyRepository) FindAll(ctx context.Context) ([]*entity.Currency, error) {
	var currencyModels []model.CurrencyModel
	result := r.db.WithContext(ctx).Order("code ASC").Find(&currencyModels)
	if result.Error != nil {
		return nil, result.Error
	}
	currencies := make([]*entity.Currency, len(currencyModels))
	for i, cm := range currencyModels {
		currencies[i] = cm.ToEntity()
	}
	return currencies, nil
}
