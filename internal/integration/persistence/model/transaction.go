package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database. The
// auto-incrementing EntryID defines strict insertion order per profile; TxID
// is the public identifier, unique per profile.
type TransactionModel struct {
	EntryID     int64           `gorm:"primaryKey;autoIncrement"`
	TxID        string          `gorm:"type:varchar(16);not null;uniqueIndex:idx_transactions_profile_txid"`
	ProfileID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_transactions_profile_txid;index"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	Tags        pq.StringArray  `gorm:"type:text[]"`
	BillID      *int64          `gorm:"index"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		EntryID:     m.EntryID,
		TxID:        m.TxID,
		ProfileID:   m.ProfileID,
		AccountID:   m.AccountID,
		Date:        m.Date,
		Description: m.Description,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Type:        entity.TransactionType(m.Type),
		Tags:        []string(m.Tags),
		BillID:      m.BillID,
		CreatedAt:   m.CreatedAt,
	}
}

// TransactionFromEntity converts a domain Transaction entity to a
// TransactionModel.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		EntryID:     t.EntryID,
		TxID:        t.TxID,
		ProfileID:   t.ProfileID,
		AccountID:   t.AccountID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Currency:    t.Currency,
		Type:        string(t.Type),
		Tags:        pq.StringArray(t.Tags),
		BillID:      t.BillID,
		CreatedAt:   t.CreatedAt,
	}
}
