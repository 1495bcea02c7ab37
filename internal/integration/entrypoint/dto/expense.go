package dto

import (
	"github.com/ledgerkeep/backend/internal/application/usecase/expense"
)

// CreateExpenseRequest represents the request body for planned-expense
// creation.
type CreateExpenseRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	EstimatedCost string  `json:"estimated_cost" binding:"required"`
	Currency      string  `json:"currency" binding:"required,len=3"`
	DueDate       *string `json:"due_date,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	IsRecurring   bool    `json:"is_recurring,omitempty"`
}

// UpdateExpenseRequest represents the request body for planned-expense
// update.
type UpdateExpenseRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	EstimatedCost *string `json:"estimated_cost,omitempty"`
	Currency      *string `json:"currency,omitempty" binding:"omitempty,len=3"`
	DueDate       *string `json:"due_date,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	ClearDueDate  bool    `json:"clear_due_date,omitempty"`
	ClearEndDate  bool    `json:"clear_end_date,omitempty"`
	PaidFlag      *bool   `json:"paid_flag,omitempty"`
	IsRecurring   *bool   `json:"is_recurring,omitempty"`
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=PENDING ACTIVE COMPLETED CANCELLED"`
}

// ExpenseResponse represents a single planned expense in API responses.
type ExpenseResponse struct {
	ExpenseID     int64   `json:"expense_id"`
	Name          string  `json:"name"`
	EstimatedCost string  `json:"estimated_cost"`
	Currency      string  `json:"currency"`
	DueDate       *string `json:"due_date,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	PaidFlag      bool    `json:"paid_flag"`
	IsRecurring   bool    `json:"is_recurring"`
	Status        string  `json:"status"`
}

// ExpenseListResponse represents the planned-expense list response, with the
// filtered total in the profile's base currency.
type ExpenseListResponse struct {
	Expenses     []ExpenseResponse `json:"expenses"`
	Total        string            `json:"total"`
	BaseCurrency string            `json:"base_currency"`
}

// ToExpenseResponse converts a use case output to a response DTO.
func ToExpenseResponse(e *expense.ExpenseOutput) ExpenseResponse {
	resp := ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		Name:          e.Name,
		EstimatedCost: e.EstimatedCost.StringFixed(2),
		Currency:      e.Currency,
		PaidFlag:      e.PaidFlag,
		IsRecurring:   e.IsRecurring,
		Status:        string(e.Status),
	}
	if e.DueDate != nil {
		due := e.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	if e.StartDate != nil {
		start := e.StartDate.Format("2006-01-02")
		resp.StartDate = &start
	}
	if e.EndDate != nil {
		end := e.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

// ToExpenseListResponse converts a list output to a response DTO.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, 0, len(output.Expenses))
	for _, e := range output.Expenses {
		expenses = append(expenses, ToExpenseResponse(e))
	}
	return ExpenseListResponse{
		Expenses:     expenses,
		Total:        output.Total.StringFixed(2),
		BaseCurrency: output.BaseCurrency,
	}
}
