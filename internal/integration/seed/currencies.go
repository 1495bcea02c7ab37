// Package seed loads immutable reference data at startup.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rhymond/go-money"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// currencyNames maps ISO 4217 codes to display names. Symbols come from the
// money package's currency registry.
var currencyNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "Pound Sterling",
	"JPY": "Japanese Yen",
	"CHF": "Swiss Franc",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
	"NZD": "New Zealand Dollar",
	"SEK": "Swedish Krona",
	"NOK": "Norwegian Krone",
	"DKK": "Danish Krone",
	"PLN": "Polish Zloty",
	"CZK": "Czech Koruna",
	"HUF": "Hungarian Forint",
	"RON": "Romanian Leu",
	"BGN": "Bulgarian Lev",
	"ISK": "Icelandic Krona",
	"TRY": "Turkish Lira",
	"RUB": "Russian Ruble",
	"UAH": "Ukrainian Hryvnia",
	"CNY": "Chinese Yuan",
	"HKD": "Hong Kong Dollar",
	"TWD": "New Taiwan Dollar",
	"KRW": "South Korean Won",
	"SGD": "Singapore Dollar",
	"MYR": "Malaysian Ringgit",
	"THB": "Thai Baht",
	"IDR": "Indonesian Rupiah",
	"PHP": "Philippine Peso",
	"VND": "Vietnamese Dong",
	"INR": "Indian Rupee",
	"PKR": "Pakistani Rupee",
	"BDT": "Bangladeshi Taka",
	"LKR": "Sri Lankan Rupee",
	"AED": "UAE Dirham",
	"SAR": "Saudi Riyal",
	"QAR": "Qatari Riyal",
	"KWD": "Kuwaiti Dinar",
	"ILS": "Israeli New Shekel",
	"EGP": "Egyptian Pound",
	"ZAR": "South African Rand",
	"NGN": "Nigerian Naira",
	"KES": "Kenyan Shilling",
	"MAD": "Moroccan Dirham",
	"BRL": "Brazilian Real",
	"ARS": "Argentine Peso",
	"CLP": "Chilean Peso",
	"COP": "Colombian Peso",
	"PEN": "Peruvian Sol",
	"MXN": "Mexican Peso",
	"UYU": "Uruguayan Peso",
}

// Currencies upserts the ISO currency reference table. Seeding is idempotent
// and safe to run on every startup.
func Currencies(ctx context.Context, repo adapter.CurrencyRepository) error {
	seeded := 0
	for code, name := range currencyNames {
		symbol := ""
		if def := money.GetCurrency(code); def != nil {
			symbol = def.Grapheme
		}
		if err := repo.Upsert(ctx, &entity.Currency{
			Code:   code,
			Name:   name,
			Symbol: symbol,
		}); err != nil {
			return fmt.Errorf("failed to seed currency %s: %w", code, err)
		}
		seeded++
	}
	slog.Info("Seeded currency reference data", "count", seeded)
	return nil
}
