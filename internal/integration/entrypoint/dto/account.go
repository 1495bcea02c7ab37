package dto

import (
	"github.com/ledgerkeep/backend/internal/application/usecase/account"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Type string `json:"type" binding:"required,oneof=SAVINGS CHECKING CASH INVESTMENT EWALLET"`
}

// UpdateAccountRequest represents the request body for account update.
type UpdateAccountRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Type *string `json:"type,omitempty" binding:"omitempty,oneof=SAVINGS CHECKING CASH INVESTMENT EWALLET"`
}

// UpdateBalanceRequest represents the request body for a direct balance
// update.
type UpdateBalanceRequest struct {
	Amount   *string `json:"amount,omitempty"`
	Currency *string `json:"currency,omitempty" binding:"omitempty,len=3"`
}

// AccountResponse represents a single account with its balance in API
// responses.
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
}

// AccountListResponse represents the account list response.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a use case output to a response DTO.
func ToAccountResponse(a *account.AccountOutput) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Type:      string(a.Type),
		Amount:    a.Amount.StringFixed(2),
		Currency:  a.Currency,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToAccountListResponse converts a list output to a response DTO.
func ToAccountListResponse(output *account.ListAccountsOutput) AccountListResponse {
	accounts := make([]AccountResponse, 0, len(output.Accounts))
	for _, a := range output.Accounts {
		accounts = append(accounts, ToAccountResponse(a))
	}
	return AccountListResponse{Accounts: accounts}
}
