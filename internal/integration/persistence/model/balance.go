package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// BalanceModel represents the balances table in the database, one row per
// account.
type BalanceModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ProfileID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BalanceModel.
func (BalanceModel) TableName() string {
	return "balances"
}

// ToEntity converts a BalanceModel to a domain Balance entity.
func (m *BalanceModel) ToEntity() *entity.Balance {
	return &entity.Balance{
		ID:        m.ID,
		AccountID: m.AccountID,
		ProfileID: m.ProfileID,
		Amount:    m.Amount,
		Currency:  m.Currency,
		UpdatedAt: m.UpdatedAt,
	}
}

// BalanceFromEntity converts a domain Balance entity to a BalanceModel.
func BalanceFromEntity(b *entity.Balance) *BalanceModel {
	return &BalanceModel{
		ID:        b.ID,
		AccountID: b.AccountID,
		ProfileID: b.ProfileID,
		Amount:    b.Amount,
		Currency:  b.Currency,
		UpdatedAt: b.UpdatedAt,
	}
}
