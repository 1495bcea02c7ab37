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

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new planned-expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create creates a new planned expense and backfills the assigned id.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.PlannedExpense) error {
	expenseModel := model.PlannedExpenseFromEntity(expense)
	if err := r.db.WithContext(ctx).Create(expenseModel).Error; err != nil {
		return err
	}
	expense.ExpenseID = expenseModel.ExpenseID
	return nil
}

// FindByID retrieves a planned expense by id.
func (r *expenseRepository) FindByID(ctx context.Context, profileID uuid.UUID, expenseID int64) (*entity.PlannedExpense, error) {
	var expenseModel model.PlannedExpenseModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND expense_id = ?", profileID, expenseID).
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByName retrieves a profile's planned expense by name.
func (r *expenseRepository) FindByName(ctx context.Context, profileID uuid.UUID, name string) (*entity.PlannedExpense, error) {
	var expenseModel model.PlannedExpenseModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND name = ?", profileID, strings.ToLower(name)).
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByProfile retrieves all planned expenses for a profile.
func (r *expenseRepository) FindByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.PlannedExpense, error) {
	var expenseModels []model.PlannedExpenseModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("due_date ASC, expense_id ASC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toExpenseEntities(expenseModels), nil
}

// FindByFilter retrieves planned expenses matching the filter.
func (r *expenseRepository) FindByFilter(ctx context.Context, profileID uuid.UUID, filter adapter.ExpenseFilter) ([]*entity.PlannedExpense, error) {
	query := r.db.WithContext(ctx).
		Model(&model.PlannedExpenseModel{}).
		Where("profile_id = ?", profileID)

	if filter.Start != nil {
		query = query.Where("due_date >= ?", filter.Start)
	}
	if filter.End != nil {
		query = query.Where("due_date <= ?", filter.End)
	}
	if filter.Recurring != nil {
		query = query.Where("is_recurring = ?", *filter.Recurring)
	}
	if filter.PaidFlag != nil {
		query = query.Where("paid_flag = ?", *filter.PaidFlag)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}
	if filter.OnlyUpcoming {
		query = query.Where("due_date > ?", time.Now())
	}

	var expenseModels []model.PlannedExpenseModel
	if err := query.Order("due_date ASC, expense_id ASC").Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toExpenseEntities(expenseModels), nil
}

// FindUnpaidDue retrieves the unpaid ACTIVE expenses due on or before the
// given date.
func (r *expenseRepository) FindUnpaidDue(ctx context.Context, profileID uuid.UUID, onOrBefore time.Time) ([]*entity.PlannedExpense, error) {
	var expenseModels []model.PlannedExpenseModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND paid_flag = ? AND status = ? AND due_date IS NOT NULL AND due_date <= ?",
			profileID, false, string(entity.ExpenseStatusActive), onOrBefore).
		Order("due_date ASC, expense_id ASC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toExpenseEntities(expenseModels), nil
}

// FindRemaining retrieves the unpaid ACTIVE expenses regardless of due date.
func (r *expenseRepository) FindRemaining(ctx context.Context, profileID uuid.UUID) ([]*entity.PlannedExpense, error) {
	var expenseModels []model.PlannedExpenseModel
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND paid_flag = ? AND status = ?",
			profileID, false, string(entity.ExpenseStatusActive)).
		Order("due_date ASC, expense_id ASC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toExpenseEntities(expenseModels), nil
}

// Update updates an existing planned expense.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.PlannedExpense) error {
	result := r.db.WithContext(ctx).
		Model(&model.PlannedExpenseModel{}).
		Where("expense_id = ?", expense.ExpenseID).
		Select("name", "estimated_cost", "currency", "due_date", "start_date",
			"end_date", "paid_flag", "is_recurring", "status", "updated_at").
		Updates(model.PlannedExpenseFromEntity(expense))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// Delete removes a planned expense permanently.
func (r *expenseRepository) Delete(ctx context.Context, profileID uuid.UUID, expenseID int64) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND expense_id = ?", profileID, expenseID).
		Delete(&model.PlannedExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

func toExpenseEntities(expenseModels []model.PlannedExpenseModel) []*entity.PlannedExpense {
	expenses := make([]*entity.PlannedExpense, len(expenseModels))
	for i, em := range expenseModels {
		expenses[i] = em.ToEntity()
	}
	return expenses
}
