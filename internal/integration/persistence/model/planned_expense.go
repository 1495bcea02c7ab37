package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// PlannedExpenseModel represents the planned_expenses table in the database.
// Names are unique per profile.
type PlannedExpenseModel struct {
	ExpenseID     int64           `gorm:"primaryKey;autoIncrement"`
	ProfileID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_expenses_profile_name"`
	Name          string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_expenses_profile_name"`
	EstimatedCost decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	DueDate       *time.Time      `gorm:"type:date;index"`
	StartDate     *time.Time      `gorm:"type:date"`
	EndDate       *time.Time      `gorm:"type:date"`
	PaidFlag      bool            `gorm:"default:false"`
	IsRecurring   bool            `gorm:"default:false"`
	Status        string          `gorm:"type:varchar(10);not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PlannedExpenseModel.
func (PlannedExpenseModel) TableName() string {
	return "planned_expenses"
}

// ToEntity converts a PlannedExpenseModel to a domain PlannedExpense entity.
func (m *PlannedExpenseModel) ToEntity() *entity.PlannedExpense {
	return &entity.PlannedExpense{
		ExpenseID:     m.ExpenseID,
		ProfileID:     m.ProfileID,
		Name:          m.Name,
		EstimatedCost: m.EstimatedCost,
		Currency:      m.Currency,
		DueDate:       m.DueDate,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		PaidFlag:      m.PaidFlag,
		IsRecurring:   m.IsRecurring,
		Status:        entity.ExpenseStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// PlannedExpenseFromEntity converts a domain PlannedExpense entity to a
// PlannedExpenseModel.
func PlannedExpenseFromEntity(e *entity.PlannedExpense) *PlannedExpenseModel {
	return &PlannedExpenseModel{
		ExpenseID:     e.ExpenseID,
		ProfileID:     e.ProfileID,
		Name:          e.Name,
		EstimatedCost: e.EstimatedCost,
		Currency:      e.Currency,
		DueDate:       e.DueDate,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		PaidFlag:      e.PaidFlag,
		IsRecurring:   e.IsRecurring,
		Status:        string(e.Status),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
