package entity

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewTransactionSignConvention(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	profileID := uuid.New()
	accountID := uuid.New()

	cases := []struct {
		txType TransactionType
		amount string
		want   string
	}{
		{TransactionTypeExpense, "30", "-30"},
		{TransactionTypeExpense, "-30", "-30"},
		{TransactionTypeTransferOut, "100", "-100"},
		{TransactionTypeIncome, "100", "100"},
		{TransactionTypeIncome, "-100", "100"},
		{TransactionTypeTransferIn, "100", "100"},
	}

	for _, tc := range cases {
		t.Run(string(tc.txType)+" "+tc.amount, func(t *testing.T) {
			tx := NewTransaction(profileID, accountID, now, "test",
				decimal.RequireFromString(tc.amount), "EUR", tc.txType, nil, nil, now)
			if tx.Amount.String() != tc.want {
				t.Errorf("expected stored amount %s, got %s", tc.want, tx.Amount)
			}
		})
	}
}

func TestNewTransactionDateHandling(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("zero date defaults to today", func(t *testing.T) {
		tx := NewTransaction(uuid.New(), uuid.New(), time.Time{}, "test",
			decimal.NewFromInt(10), "EUR", TransactionTypeIncome, nil, nil, now)
		if !tx.Date.Equal(today) {
			t.Errorf("expected date %s, got %s", today, tx.Date)
		}
	})

	t.Run("explicit dates are truncated to day granularity", func(t *testing.T) {
		tx := NewTransaction(uuid.New(), uuid.New(),
			time.Date(2024, time.March, 3, 18, 30, 0, 0, time.UTC), "test",
			decimal.NewFromInt(10), "EUR", TransactionTypeIncome, nil, nil, now)
		want := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
		if !tx.Date.Equal(want) {
			t.Errorf("expected date %s, got %s", want, tx.Date)
		}
	})
}

func TestNewTxIDFormat(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^2024-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTxID(now)
		if !pattern.MatchString(id) {
			t.Fatalf("tx id %q does not match expected format", id)
		}
		if seen[id] {
			t.Fatalf("tx id %q generated twice", id)
		}
		seen[id] = true
	}
}

func TestNormalizeAmount(t *testing.T) {
	tx := &Transaction{Amount: decimal.NewFromInt(50), Type: TransactionTypeIncome}

	// Flip the type to one that reduces; the sign must follow.
	tx.Type = TransactionTypeExpense
	tx.NormalizeAmount()
	if tx.Amount.String() != "-50" {
		t.Errorf("expected -50, got %s", tx.Amount)
	}

	tx.Type = TransactionTypeIncome
	tx.NormalizeAmount()
	if tx.Amount.String() != "50" {
		t.Errorf("expected 50, got %s", tx.Amount)
	}
}

func TestTransactionTypeValid(t *testing.T) {
	for _, tt := range []TransactionType{
		TransactionTypeExpense, TransactionTypeIncome,
		TransactionTypeTransferIn, TransactionTypeTransferOut,
	} {
		if !tt.Valid() {
			t.Errorf("expected %s to be valid", tt)
		}
	}
	if TransactionType("REFUND").Valid() {
		t.Error("expected REFUND to be invalid")
	}
}
