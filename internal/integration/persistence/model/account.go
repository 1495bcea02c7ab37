package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database. Names are
// unique per profile.
type AccountModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_profile_name"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_accounts_profile_name"`
	Type      string    `gorm:"type:varchar(10);not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		Name:      m.Name,
		Type:      entity.AccountType(m.Type),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AccountFromEntity converts a domain Account entity to an AccountModel.
func AccountFromEntity(a *entity.Account) *AccountModel {
	return &AccountModel{
		ID:        a.ID,
		ProfileID: a.ProfileID,
		Name:      a.Name,
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
