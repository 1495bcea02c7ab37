package dto

import (
	"github.com/ledgerkeep/backend/internal/application/usecase/profile"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// CreateProfileRequest represents the request body for profile creation.
type CreateProfileRequest struct {
	BaseCurrency string `json:"base_currency" binding:"required,len=3"`
}

// UpdateProfileRequest represents the request body for profile update. A
// non-nil spend_account_ids replaces the whole set.
type UpdateProfileRequest struct {
	BaseCurrency    *string  `json:"base_currency,omitempty" binding:"omitempty,len=3"`
	SpendAccountIDs []string `json:"spend_account_ids,omitempty" binding:"omitempty,dive,uuid"`
}

// ProfileResponse represents a profile in API responses.
type ProfileResponse struct {
	ID              string   `json:"id"`
	BaseCurrency    string   `json:"base_currency"`
	SpendAccountIDs []string `json:"spend_account_ids"`
	CreatedAt       string   `json:"created_at"`
}

// CreateProfileResponse represents the profile creation response, including
// the bearer token.
type CreateProfileResponse struct {
	Profile ProfileResponse `json:"profile"`
	Token   string          `json:"token"`
}

// SnapshotResponse represents the denormalized totals in API responses, all
// in the profile's base currency.
type SnapshotResponse struct {
	TotalAssets            string `json:"total_assets"`
	SafeToSpend            string `json:"safe_to_spend"`
	TotalSavings           string `json:"total_savings"`
	TotalChecking          string `json:"total_checking"`
	TotalInvestment        string `json:"total_investment"`
	TotalCash              string `json:"total_cash"`
	TotalEwallet           string `json:"total_ewallet"`
	TotalMonthlySpending   string `json:"total_monthly_spending"`
	TotalRemainingExpenses string `json:"total_remaining_expenses"`
	TotalLeaks             string `json:"total_leaks"`
	BaseCurrency           string `json:"base_currency"`
	UpdatedAt              string `json:"updated_at"`
}

// CurrencyResponse represents a currency in API responses.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// ToProfileResponse converts a use case output to a response DTO.
func ToProfileResponse(p *profile.ProfileOutput) ProfileResponse {
	spend := make([]string, 0, len(p.SpendAccountIDs))
	for _, id := range p.SpendAccountIDs {
		spend = append(spend, id.String())
	}
	return ProfileResponse{
		ID:              p.ID.String(),
		BaseCurrency:    p.BaseCurrency,
		SpendAccountIDs: spend,
		CreatedAt:       p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToSnapshotResponse converts a use case output to a response DTO.
func ToSnapshotResponse(output *profile.GetSnapshotOutput) SnapshotResponse {
	s := output.Snapshot
	return SnapshotResponse{
		TotalAssets:            s.TotalAssets.StringFixed(2),
		SafeToSpend:            s.SafeToSpend.StringFixed(2),
		TotalSavings:           s.TotalSavings.StringFixed(2),
		TotalChecking:          s.TotalChecking.StringFixed(2),
		TotalInvestment:        s.TotalInvestment.StringFixed(2),
		TotalCash:              s.TotalCash.StringFixed(2),
		TotalEwallet:           s.TotalEwallet.StringFixed(2),
		TotalMonthlySpending:   s.TotalMonthlySpending.StringFixed(2),
		TotalRemainingExpenses: s.TotalRemainingExpenses.StringFixed(2),
		TotalLeaks:             s.TotalLeaks.StringFixed(2),
		BaseCurrency:           output.BaseCurrency,
		UpdatedAt:              s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToCurrencyResponses converts currency entities to response DTOs.
func ToCurrencyResponses(currencies []*entity.Currency) []CurrencyResponse {
	out := make([]CurrencyResponse, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, CurrencyResponse{
			Code:   c.Code,
			Name:   c.Name,
			Symbol: c.Symbol,
		})
	}
	return out
}
