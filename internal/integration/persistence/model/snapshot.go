package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// SnapshotModel represents the snapshots table in the database, one row per
// profile.
type SnapshotModel struct {
	ProfileID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TotalAssets            decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SafeToSpend            decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalSavings           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalChecking          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalInvestment        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalCash              decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalEwallet           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalMonthlySpending   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalRemainingExpenses decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalLeaks             decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	UpdatedAt              time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SnapshotModel.
func (SnapshotModel) TableName() string {
	return "snapshots"
}

// ToEntity converts a SnapshotModel to a domain Snapshot entity.
func (m *SnapshotModel) ToEntity() *entity.Snapshot {
	return &entity.Snapshot{
		ProfileID:              m.ProfileID,
		TotalAssets:            m.TotalAssets,
		SafeToSpend:            m.SafeToSpend,
		TotalSavings:           m.TotalSavings,
		TotalChecking:          m.TotalChecking,
		TotalInvestment:        m.TotalInvestment,
		TotalCash:              m.TotalCash,
		TotalEwallet:           m.TotalEwallet,
		TotalMonthlySpending:   m.TotalMonthlySpending,
		TotalRemainingExpenses: m.TotalRemainingExpenses,
		TotalLeaks:             m.TotalLeaks,
		UpdatedAt:              m.UpdatedAt,
	}
}

// SnapshotFromEntity converts a domain Snapshot entity to a SnapshotModel.
func SnapshotFromEntity(s *entity.Snapshot) *SnapshotModel {
	return &SnapshotModel{
		ProfileID:              s.ProfileID,
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
