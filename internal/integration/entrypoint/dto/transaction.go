package dto

import (
	"github.com/ledgerkeep/backend/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction
// creation.
type CreateTransactionRequest struct {
	AccountID   string   `json:"account_id" binding:"required,uuid"`
	Date        string   `json:"date,omitempty"`
	Description string   `json:"description" binding:"required,min=1,max=255"`
	Amount      string   `json:"amount" binding:"required"`
	Currency    string   `json:"currency" binding:"required,len=3"`
	Type        string   `json:"type" binding:"required,oneof=EXPENSE INCOME XFER_IN XFER_OUT"`
	Tags        []string `json:"tags,omitempty"`
	BillID      *int64   `json:"bill_id,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction
// update.
type UpdateTransactionRequest struct {
	AccountID   *string  `json:"account_id,omitempty" binding:"omitempty,uuid"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount      *string  `json:"amount,omitempty"`
	Currency    *string  `json:"currency,omitempty" binding:"omitempty,len=3"`
	Type        *string  `json:"type,omitempty" binding:"omitempty,oneof=EXPENSE INCOME XFER_IN XFER_OUT"`
	Tags        []string `json:"tags,omitempty"`
	BillID      *int64   `json:"bill_id,omitempty"`
	ClearBill   bool     `json:"clear_bill,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	TxID        string   `json:"tx_id"`
	AccountID   string   `json:"account_id"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      string   `json:"amount"`
	Currency    string   `json:"currency"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags,omitempty"`
	BillID      *int64   `json:"bill_id,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// TransactionListResponse represents the transaction list response, with
// per-type totals in the profile's base currency.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalsByType map[string]string     `json:"totals_by_type"`
	BaseCurrency string                `json:"base_currency"`
}

// ToTransactionResponse converts a use case output to a response DTO.
func ToTransactionResponse(t *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		TxID:        t.TxID,
		AccountID:   t.AccountID.String(),
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		Currency:    t.Currency,
		Type:        string(t.Type),
		Tags:        t.Tags,
		BillID:      t.BillID,
		CreatedAt:   t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ToTransactionListResponse converts a list output to a response DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, 0, len(output.Transactions))
	for _, t := range output.Transactions {
		transactions = append(transactions, ToTransactionResponse(t))
	}
	totals := make(map[string]string, len(output.TotalsByType))
	for txType, total := range output.TotalsByType {
		totals[string(txType)] = total.StringFixed(2)
	}
	return TransactionListResponse{
		Transactions: transactions,
		TotalsByType: totals,
		BaseCurrency: output.BaseCurrency,
	}
}
