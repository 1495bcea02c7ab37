package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/calc"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// ExpenseOutput represents planned-expense data returned by use cases.
type ExpenseOutput struct {
	ExpenseID     int64
	Name          string
	EstimatedCost decimal.Decimal
	Currency      string
	DueDate       *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	PaidFlag      bool
	IsRecurring   bool
	Status        entity.ExpenseStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func newExpenseOutput(e *entity.PlannedExpense) *ExpenseOutput {
	return &ExpenseOutput{
		ExpenseID:     e.ExpenseID,
		Name:          e.Name,
		EstimatedCost: e.EstimatedCost,
		Currency:      e.Currency,
		DueDate:       e.DueDate,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		PaidFlag:      e.PaidFlag,
		IsRecurring:   e.IsRecurring,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// ListExpensesInput represents the input for listing planned expenses.
type ListExpensesInput struct {
	ProfileID uuid.UUID
	Filter    adapter.ExpenseFilter
}

// ListExpensesOutput represents the output of listing planned expenses,
// including the filtered total converted into the profile's base currency.
type ListExpensesOutput struct {
	Expenses     []*ExpenseOutput
	Total        decimal.Decimal
	BaseCurrency string
}

// ListExpensesUseCase handles planned-expense listing logic.
type ListExpensesUseCase struct {
	uow       adapter.UnitOfWork
	converter adapter.CurrencyConverter
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(uow adapter.UnitOfWork, converter adapter.CurrencyConverter) *ListExpensesUseCase {
	return &ListExpensesUseCase{uow: uow, converter: converter}
}

// Execute performs the planned-expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	output := &ListExpensesOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := findProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		expenses, err := repos.Expenses.FindByFilter(ctx, input.ProfileID, input.Filter)
		if err != nil {
			return fmt.Errorf("failed to list planned expenses: %w", err)
		}

		fc := calc.NewCalculator(uc.converter, profile.BaseCurrency)
		total, err := fc.SumConverted(calc.ExpenseItems(expenses))
		if err != nil {
			return err
		}

		output.Expenses = make([]*ExpenseOutput, 0, len(expenses))
		for _, e := range expenses {
			output.Expenses = append(output.Expenses, newExpenseOutput(e))
		}
		output.Total = total
		output.BaseCurrency = profile.BaseCurrency
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
