// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// ProfileModel represents the profiles table in the database. The
// spend-account set is stored as a text array of account ids.
type ProfileModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	BaseCurrency  string         `gorm:"type:varchar(3);not null"`
	SpendAccounts pq.StringArray `gorm:"type:text[]"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts a ProfileModel to a domain Profile entity. Malformed
// spend-account ids are skipped rather than failing the read.
func (m *ProfileModel) ToEntity() *entity.Profile {
	spend := make([]uuid.UUID, 0, len(m.SpendAccounts))
	for _, raw := range m.SpendAccounts {
		if id, err := uuid.Parse(raw); err == nil {
			spend = append(spend, id)
		}
	}
	return &entity.Profile{
		ID:              m.ID,
		BaseCurrency:    m.BaseCurrency,
		SpendAccountIDs: spend,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ProfileFromEntity converts a domain Profile entity to a ProfileModel.
func ProfileFromEntity(p *entity.Profile) *ProfileModel {
	spend := make(pq.StringArray, 0, len(p.SpendAccountIDs))
	for _, id := range p.SpendAccountIDs {
		spend = append(spend, id.String())
	}
	return &ProfileModel{
		ID:            p.ID,
		BaseCurrency:  p.BaseCurrency,
		SpendAccounts: spend,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
