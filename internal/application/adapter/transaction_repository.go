// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions. All
// fields are optional; zero values mean "no constraint".
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	AccountID *uuid.UUID
	Tag       string
	Currency  string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// TransactionRepository defines the interface for transaction persistence
// operations. All operations are scoped to a profile.
type TransactionRepository interface {
	// Create inserts a new transaction, assigning its entry id.
	Create(ctx context.Context, tx *entity.Transaction) error

	// FindByTxID retrieves a transaction by its public id.
	FindByTxID(ctx context.Context, profileID uuid.UUID, txID string) (*entity.Transaction, error)

	// FindLatest retrieves the most recently inserted transaction for a
	// profile (highest entry id).
	FindLatest(ctx context.Context, profileID uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, ordered by
	// entry id.
	FindByFilter(ctx context.Context, profileID uuid.UUID, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindByAccount retrieves all transactions posted against an account.
	FindByAccount(ctx context.Context, profileID, accountID uuid.UUID) ([]*entity.Transaction, error)

	// FindByType retrieves all transactions of the given type.
	FindByType(ctx context.Context, profileID uuid.UUID, t entity.TransactionType) ([]*entity.Transaction, error)

	// Update persists changes to an existing transaction.
	Update(ctx context.Context, tx *entity.Transaction) error

	// Delete removes a transaction permanently.
	Delete(ctx context.Context, tx *entity.Transaction) error

	// ReassignAccount moves every transaction referencing fromAccount onto
	// toAccount, returning the number moved. Used when an account is deleted:
	// history is reassigned to the UNKNOWN sentinel, never lost.
	ReassignAccount(ctx context.Context, profileID, fromAccount, toAccount uuid.UUID) (int64, error)

	// ExistsByTxID checks whether a public tx id is already taken for the
	// profile.
	ExistsByTxID(ctx context.Context, profileID uuid.UUID, txID string) (bool, error)

	// ClearBill detaches every transaction linked to a planned expense.
	// Used when the expense is deleted; the transactions themselves survive.
	ClearBill(ctx context.Context, profileID uuid.UUID, billID int64) error
}
