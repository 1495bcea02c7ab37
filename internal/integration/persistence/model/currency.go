package model

import "github.com/ledgerkeep/backend/internal/domain/entity"

// CurrencyModel represents the currencies reference table in the database.
type CurrencyModel struct {
	Code   string `gorm:"type:varchar(3);primaryKey"`
	Name   string `gorm:"type:varchar(100);not null"`
	Symbol string `gorm:"type:varchar(10)"`
}

// TableName returns the table name for the CurrencyModel.
func (CurrencyModel) TableName() string {
	return "currencies"
}

// ToEntity converts a CurrencyModel to a domain Currency entity.
func (m *CurrencyModel) ToEntity() *entity.Currency {
	return &entity.Currency{
		Code:   m.Code,
		Name:   m.Name,
		Symbol: m.Symbol,
	}
}

// CurrencyFromEntity converts a domain Currency entity to a CurrencyModel.
func CurrencyFromEntity(c *entity.Currency) *CurrencyModel {
	return &CurrencyModel{
		Code:   c.Code,
		Name:   c.Name,
		Symbol: c.Symbol,
	}
}
