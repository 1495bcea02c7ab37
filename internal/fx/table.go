// Package fx provides currency conversion against a historical daily
// exchange-rate table. The table is loaded once from a bundled CSV resource
// and treated as immutable for the lifetime of the process.
package fx

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// DateLayout is the date format used in the rate file's first column.
const DateLayout = "2006-01-02"

// Table holds daily exchange rates quoted against a pivot currency. Rows are
// kept sorted by date; lookups resolve to the most recent day on or before
// the requested date.
type Table struct {
	pivot string
	days  []day
	codes map[string]struct{}
}

type day struct {
	date  time.Time
	rates map[string]decimal.Decimal
}

// LoadTable reads a rate file: a header row of "Date" followed by currency
// codes, then one row per day with rates against the pivot currency (the
// pivot itself carries an implicit rate of 1 and need not appear as a
// column). Empty cells are tolerated; the previous day's rate applies.
func LoadTable(path, pivot string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domainerror.NewConversionError(
			domainerror.ErrCodeRateTableUnavailable,
			fmt.Sprintf("cannot open rate file %s", path),
			domainerror.ErrRateTableUnavailable,
		)
	}
	defer f.Close()

	table, err := ParseTable(f, pivot)
	if err != nil {
		return nil, err
	}
	return table, nil
}

// ParseTable parses rate-file content from r. Split from LoadTable so tests
// can feed in-memory data.
func ParseTable(r io.Reader, pivot string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, corruptTable(err)
	}
	if len(header) < 2 || !strings.EqualFold(header[0], "date") {
		return nil, corruptTable(fmt.Errorf("unexpected header %q", strings.Join(header, ",")))
	}

	codes := make([]string, len(header)-1)
	codeSet := map[string]struct{}{strings.ToUpper(pivot): {}}
	for i, code := range header[1:] {
		codes[i] = strings.ToUpper(strings.TrimSpace(code))
		codeSet[codes[i]] = struct{}{}
	}

	var days []day
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, corruptTable(err)
		}
		date, err := time.Parse(DateLayout, record[0])
		if err != nil {
			return nil, corruptTable(err)
		}

		rates := make(map[string]decimal.Decimal, len(codes))
		for i, cell := range record[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" || cell == "N/A" {
				continue
			}
			rate, err := decimal.NewFromString(cell)
			if err != nil {
				return nil, corruptTable(err)
			}
			if !rate.IsPositive() {
				return nil, corruptTable(fmt.Errorf("non-positive %s rate %q on %s", codes[i], cell, record[0]))
			}
			rates[codes[i]] = rate
		}
		days = append(days, day{date: date, rates: rates})
	}

	if len(days) == 0 {
		return nil, corruptTable(fmt.Errorf("rate file has no data rows"))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date.Before(days[j].date) })

	return &Table{
		pivot: strings.ToUpper(pivot),
		days:  days,
		codes: codeSet,
	}, nil
}

// Pivot returns the currency the table's rates are quoted against.
func (t *Table) Pivot() string { return t.pivot }

// Latest returns the most recent date the table has rates for.
func (t *Table) Latest() time.Time { return t.days[len(t.days)-1].date }

// Has reports whether the table knows the given currency code.
func (t *Table) Has(code string) bool {
	_, ok := t.codes[strings.ToUpper(code)]
	return ok
}

// Rate returns the rate of one unit of the pivot currency in the given
// currency, on the most recent day on or before date that carries a value
// for the code.
func (t *Table) Rate(code string, date time.Time) (decimal.Decimal, error) {
	code = strings.ToUpper(code)
	if code == t.pivot {
		return decimal.NewFromInt(1), nil
	}
	if !t.Has(code) {
		return decimal.Zero, domainerror.NewConversionError(
			domainerror.ErrCodeUnknownCurrency,
			fmt.Sprintf("currency %s not in rate table", code),
			domainerror.ErrUnknownCurrency,
		)
	}

	// Walk back from the latest day <= date to skip gaps (weekends, holidays).
	idx := sort.Search(len(t.days), func(i int) bool { return t.days[i].date.After(date) })
	for i := idx - 1; i >= 0; i-- {
		if rate, ok := t.days[i].rates[code]; ok {
			return rate, nil
		}
	}
	return decimal.Zero, domainerror.NewConversionError(
		domainerror.ErrCodeNoRateForDate,
		fmt.Sprintf("no %s rate on or before %s", code, date.Format(DateLayout)),
		domainerror.ErrNoRateForDate,
	)
}

func corruptTable(err error) *domainerror.ConversionError {
	return domainerror.NewConversionError(
		domainerror.ErrCodeRateTableUnavailable,
		"rate table is corrupt",
		fmt.Errorf("%w: %w", domainerror.ErrRateTableUnavailable, err),
	)
}
