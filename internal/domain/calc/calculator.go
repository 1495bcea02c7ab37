// Package calc provides the pure aggregation operations of the ledger core.
// Every operation groups its inputs by currency, converts each group's
// subtotal into the profile's base currency, sums the converted subtotals,
// and rounds to 2 decimals exactly once at the end. Nothing here mutates
// state; results are deterministic given the inputs and the rate table.
package calc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// Converter converts an amount between currency codes. Satisfied by
// fx.Converter.
type Converter interface {
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// Item is one (amount, currency) pair to aggregate.
type Item struct {
	Amount   decimal.Decimal
	Currency string
}

// Calculator aggregates monetary collections into a single base currency.
type Calculator struct {
	converter Converter
	base      string
}

// NewCalculator creates a Calculator for the given base currency.
func NewCalculator(converter Converter, baseCurrency string) *Calculator {
	return &Calculator{converter: converter, base: baseCurrency}
}

// SumConverted returns the base-currency total of the items, rounded to
// 2 decimals. An empty collection yields zero.
func (c *Calculator) SumConverted(items []Item) (decimal.Decimal, error) {
	total, err := c.sum(items)
	if err != nil {
		return decimal.Zero, err
	}
	return total.Round(2), nil
}

// SafeToSpend returns spendable balances minus currently-due unpaid planned
// expenses, rounded once at the end rather than per operand.
func (c *Calculator) SafeToSpend(spendBalances, unpaidDue []Item) (decimal.Decimal, error) {
	spend, err := c.sum(spendBalances)
	if err != nil {
		return decimal.Zero, err
	}
	debt, err := c.sum(unpaidDue)
	if err != nil {
		return decimal.Zero, err
	}
	return spend.Sub(debt).Round(2), nil
}

// Leaks returns inbound transfer value minus outbound transfer value, both
// taken as magnitudes. A positive result means transfers net added value;
// nonzero results surface fees or slippage between the legs of a transfer.
func (c *Calculator) Leaks(transfersIn, transfersOut []Item) (decimal.Decimal, error) {
	in, err := c.sum(transfersIn)
	if err != nil {
		return decimal.Zero, err
	}
	out, err := c.sum(transfersOut)
	if err != nil {
		return decimal.Zero, err
	}
	return in.Sub(out).Round(2), nil
}

// TotalForPeriod returns the base-currency total of transactions dated
// within [start, end], inclusive.
func (c *Calculator) TotalForPeriod(txs []*entity.Transaction, start, end time.Time) (decimal.Decimal, error) {
	var items []Item
	for _, tx := range txs {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		items = append(items, Item{Amount: tx.Amount, Currency: tx.Currency})
	}
	return c.SumConverted(items)
}

// TotalByTransactionType returns the base-currency total of transactions of
// the given type.
func (c *Calculator) TotalByTransactionType(txs []*entity.Transaction, t entity.TransactionType) (decimal.Decimal, error) {
	var items []Item
	for _, tx := range txs {
		if tx.Type != t {
			continue
		}
		items = append(items, Item{Amount: tx.Amount, Currency: tx.Currency})
	}
	return c.SumConverted(items)
}

// sum groups by currency, converts each subtotal, and returns the unrounded
// base-currency sum. Rounding is the caller's terminal step so composite
// figures round exactly once.
func (c *Calculator) sum(items []Item) (decimal.Decimal, error) {
	byCurrency := make(map[string]decimal.Decimal)
	for _, item := range items {
		byCurrency[item.Currency] = byCurrency[item.Currency].Add(item.Amount)
	}

	total := decimal.Zero
	for currency, subtotal := range byCurrency {
		converted, err := c.converter.Convert(subtotal, currency, c.base)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(converted)
	}
	return total, nil
}

// BalanceItems adapts balances for aggregation.
func BalanceItems(balances []*entity.Balance) []Item {
	items := make([]Item, 0, len(balances))
	for _, b := range balances {
		items = append(items, Item{Amount: b.Amount, Currency: b.Currency})
	}
	return items
}

// TransactionItems adapts transactions for aggregation, keeping the signed
// amounts.
func TransactionItems(txs []*entity.Transaction) []Item {
	items := make([]Item, 0, len(txs))
	for _, tx := range txs {
		items = append(items, Item{Amount: tx.Amount, Currency: tx.Currency})
	}
	return items
}

// TransactionMagnitudes adapts transactions for aggregation using absolute
// amounts, as the leaks computation requires.
func TransactionMagnitudes(txs []*entity.Transaction) []Item {
	items := make([]Item, 0, len(txs))
	for _, tx := range txs {
		items = append(items, Item{Amount: tx.Amount.Abs(), Currency: tx.Currency})
	}
	return items
}

// ExpenseItems adapts planned expenses for aggregation over their estimated
// costs.
func ExpenseItems(expenses []*entity.PlannedExpense) []Item {
	items := make([]Item, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, Item{Amount: e.EstimatedCost, Currency: e.Currency})
	}
	return items
}
