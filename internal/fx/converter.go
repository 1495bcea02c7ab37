package fx

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Converter converts monetary amounts between currencies using a historical
// rate table. It is read-only and safe for concurrent use.
type Converter struct {
	table *Table
}

// NewConverter creates a Converter over a loaded table.
func NewConverter(table *Table) *Converter {
	return &Converter{table: table}
}

// Convert converts amount from one currency code to another at the table's
// latest rates. Identity conversion returns the input unchanged with no
// precision loss; a zero amount converts to zero without a table lookup.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return c.ConvertOn(amount, from, to, c.table.Latest())
}

// ConvertOn converts amount using the rates in effect on the given date.
// The result is not rounded; aggregation rounds once at the end.
func (c *Converter) ConvertOn(amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	if strings.EqualFold(from, to) {
		return amount, nil
	}
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	fromRate, err := c.table.Rate(from, date)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.table.Rate(to, date)
	if err != nil {
		return decimal.Zero, err
	}

	// Both rates are quoted against the pivot: amount/fromRate is the pivot
	// value, times toRate is the target value.
	return amount.Div(fromRate).Mul(toRate), nil
}
