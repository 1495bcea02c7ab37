// Package persistence implements repository interfaces for database operations.
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

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create creates a new transaction and backfills the assigned entry id.
func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	if err := r.db.WithContext(ctx).Create(txModel).Error; err != nil {
		return err
	}
	tx.EntryID = txModel.EntryID
	return nil
}

// FindByTxID retrieves a transaction by its public id.
func (r *transactionRepository) FindByTxID(ctx context.Context, profileID uuid.UUID, txID string) (*entity.Transaction, error) {
	var txModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND tx_id = ?", profileID, txID).
		First(&txModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return txModel.ToEntity(), nil
}

// FindLatest retrieves the most recently inserted transaction for a profile.
func (r *transactionRepository) FindLatest(ctx context.Context, profileID uuid.UUID) (*entity.Transaction, error) {
	var txModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("entry_id DESC").
		First(&txModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return txModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria.
func (r *transactionRepository) FindByFilter(ctx context.Context, profileID uuid.UUID, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("profile_id = ?", profileID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.Tag != "" {
		if r.db.Dialector.Name() == "postgres" {
			query = query.Where("? = ANY(tags)", filter.Tag)
		} else {
			// Array columns degrade to their text literal on other dialects.
			query = query.Where("tags LIKE ?", "%"+filter.Tag+"%")
		}
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.MinAmount != nil {
		query = query.Where("ABS(amount) >= ?", filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("ABS(amount) <= ?", filter.MaxAmount)
	}

	var txModels []model.TransactionModel
	if err := query.Order("entry_id ASC").Find(&txModels).Error; err != nil {
		return nil, err
	}
	return toTransactionEntities(txModels), nil
}

// FindByAccount retrieves all transactions posted against an account.
func (r *transactionRepository) FindByAccount(ctx context.Context, profileID, accountID uuid.UUID) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND account_id = ?", profileID, accountID).
		Order("entry_id ASC").
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(txModels), nil
}

// FindByType retrieves all transactions of the given type.
func (r *transactionRepository) FindByType(ctx context.Context, profileID uuid.UUID, t entity.TransactionType) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND type = ?", profileID, string(t)).
		Order("entry_id ASC").
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(txModels), nil
}

// Update updates an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("entry_id = ?", tx.EntryID).
		Select("tx_id", "account_id", "date", "description", "amount", "currency", "type", "tags", "bill_id").
		Updates(txModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction permanently.
func (r *transactionRepository) Delete(ctx context.Context, tx *entity.Transaction) error {
	result := r.db.WithContext(ctx).
		Where("entry_id = ?", tx.EntryID).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// ReassignAccount moves every transaction referencing fromAccount onto
// toAccount.
func (r *transactionRepository) ReassignAccount(ctx context.Context, profileID, fromAccount, toAccount uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("profile_id = ? AND account_id = ?", profileID, fromAccount).
		Update("account_id", toAccount)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ExistsByTxID checks whether a public tx id is already taken for the
// profile.
func (r *transactionRepository) ExistsByTxID(ctx context.Context, profileID uuid.UUID, txID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("profile_id = ? AND tx_id = ?", profileID, txID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// ClearBill detaches every transaction linked to a planned expense.
func (r *transactionRepository) ClearBill(ctx context.Context, profileID uuid.UUID, billID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("profile_id = ? AND bill_id = ?", profileID, billID).
		Update("bill_id", nil).Error
}

func toTransactionEntities(txModels []model.TransactionModel) []*entity.Transaction {
	txs := make([]*entity.Transaction, len(txModels))
	for i, tm := range txModels {
		txs[i] = tm.ToEntity()
	}
	return txs
}
