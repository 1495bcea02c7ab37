package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// AccountOutput represents account data returned by use cases, paired with
// the account's current balance.
type AccountOutput struct {
	ID        uuid.UUID
	Name      string
	Type      entity.AccountType
	Amount    decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newAccountOutput(a *entity.Account, b *entity.Balance) *AccountOutput {
	out := &AccountOutput{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if b != nil {
		out.Amount = b.Amount
		out.Currency = b.Currency
	}
	return out
}

// ListAccountsInput represents the input for listing a profile's accounts.
type ListAccountsInput struct {
	ProfileID uuid.UUID
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*AccountOutput
}

// ListAccountsUseCase handles account listing logic.
type ListAccountsUseCase struct {
	uow adapter.UnitOfWork
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(uow adapter.UnitOfWork) *ListAccountsUseCase {
	return &ListAccountsUseCase{uow: uow}
}

// Execute performs the account listing, joining each account with its
// balance.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	output := &ListAccountsOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		if _, err := findProfile(ctx, repos, input.ProfileID); err != nil {
			return err
		}

		accounts, err := repos.Accounts.FindByProfile(ctx, input.ProfileID)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		balances, err := repos.Balances.FindByProfile(ctx, input.ProfileID)
		if err != nil {
			return fmt.Errorf("failed to list balances: %w", err)
		}

		byAccount := make(map[uuid.UUID]*entity.Balance, len(balances))
		for _, b := range balances {
			byAccount[b.AccountID] = b
		}

		output.Accounts = make([]*AccountOutput, 0, len(accounts))
		for _, a := range accounts {
			output.Accounts = append(output.Accounts, newAccountOutput(a, byAccount[a.ID]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// GetAccountInput represents the input for retrieving one account.
type GetAccountInput struct {
	ProfileID uuid.UUID
	AccountID uuid.UUID
}

// GetAccountOutput represents the output of retrieving one account.
type GetAccountOutput struct {
	Account *AccountOutput
}

// GetAccountUseCase handles single-account retrieval logic.
type GetAccountUseCase struct {
	uow adapter.UnitOfWork
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(uow adapter.UnitOfWork) *GetAccountUseCase {
	return &GetAccountUseCase{uow: uow}
}

// Execute performs the account retrieval.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*GetAccountOutput, error) {
	output := &GetAccountOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		account, err := findAccount(ctx, repos, input.AccountID)
		if err != nil {
			return err
		}
		balance, err := repos.Balances.FindByAccount(ctx, account.ID)
		if err != nil {
			return fmt.Errorf("failed to find balance: %w", err)
		}
		output.Account = newAccountOutput(account, balance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
