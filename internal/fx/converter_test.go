package fx

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

func testConverter(t *testing.T) *Converter {
	t.Helper()
	table, err := ParseTable(strings.NewReader(sampleRates), "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewConverter(table)
}

func TestConverterIdentity(t *testing.T) {
	c := testConverter(t)

	// Identity conversion must not touch the table, even for codes it does
	// not know.
	amount := decimal.RequireFromString("123.456789")
	got, err := c.Convert(amount, "BRL", "BRL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(amount) {
		t.Errorf("expected %s, got %s", amount, got)
	}

	t.Run("code comparison ignores case", func(t *testing.T) {
		got, err := c.Convert(amount, "usd", "USD")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(amount) {
			t.Errorf("expected %s, got %s", amount, got)
		}
	})
}

func TestConverterZeroAmount(t *testing.T) {
	c := testConverter(t)

	got, err := c.Convert(decimal.Zero, "USD", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("expected zero, got %s", got)
	}
}

func TestConverterThroughPivot(t *testing.T) {
	c := testConverter(t)

	t.Run("pivot to quoted currency", func(t *testing.T) {
		// Latest USD rate is 1.08.
		got, err := c.Convert(decimal.NewFromInt(100), "EUR", "USD")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.String() != "108" {
			t.Errorf("expected 108, got %s", got)
		}
	})

	t.Run("quoted currency to pivot", func(t *testing.T) {
		got, err := c.Convert(decimal.NewFromInt(108), "USD", "EUR")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.String() != "100" {
			t.Errorf("expected 100, got %s", got)
		}
	})

	t.Run("cross rate between two quoted currencies", func(t *testing.T) {
		// 100 USD -> 100/1.08 EUR -> *0.86 GBP.
		got, err := c.Convert(decimal.NewFromInt(100), "USD", "GBP")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.NewFromInt(100).
			Div(decimal.RequireFromString("1.08")).
			Mul(decimal.RequireFromString("0.86"))
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

func TestConvertOnUsesHistoricalRates(t *testing.T) {
	c := testConverter(t)

	got, err := c.ConvertOn(decimal.NewFromInt(100), "EUR", "USD", date(t, "2024-03-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "110" {
		t.Errorf("expected 110, got %s", got)
	}
}

func TestConverterUnknownCurrency(t *testing.T) {
	c := testConverter(t)

	_, err := c.Convert(decimal.NewFromInt(100), "BRL", "EUR")
	if !errors.Is(err, domainerror.ErrUnknownCurrency) {
		t.Errorf("expected ErrUnknownCurrency, got %v", err)
	}
}
