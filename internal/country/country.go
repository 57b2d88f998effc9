// Package country holds per-country billing defaults. The registry is
// static — staff-configurable tax rules live in the database and take
// precedence; these defaults only apply when no active percentage tax
// is configured for the clinic.
package country

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Settings are the locale-dependent billing defaults for one country.
type Settings struct {
	Code           string
	Currency       string
	CurrencySymbol string
	DateFormat     string // Go layout used when rendering PDFs
	DefaultTaxName string
	DefaultTaxRate decimal.Decimal // percent
	DefaultTerms   string
}

var registry = map[string]Settings{
	"US": {
		Code: "US", Currency: "USD", CurrencySymbol: "$",
		DateFormat:     "01/02/2006",
		DefaultTaxName: "Sales Tax", DefaultTaxRate: decimal.NewFromFloat(8.5),
		DefaultTerms: "Net 30",
	},
	"GB": {
		Code: "GB", Currency: "GBP", CurrencySymbol: "£",
		DateFormat:     "02/01/2006",
		DefaultTaxName: "VAT", DefaultTaxRate: decimal.NewFromInt(20),
		DefaultTerms: "Net 30",
	},
	"IN": {
		Code: "IN", Currency: "INR", CurrencySymbol: "₹",
		DateFormat:     "02/01/2006",
		DefaultTaxName: "GST", DefaultTaxRate: decimal.NewFromInt(18),
		DefaultTerms: "Net 15",
	},
	"AE": {
		Code: "AE", Currency: "AED", CurrencySymbol: "AED ",
		DateFormat:     "02/01/2006",
		DefaultTaxName: "VAT", DefaultTaxRate: decimal.NewFromInt(5),
		DefaultTerms: "Due on Receipt",
	},
	"AU": {
		Code: "AU", Currency: "AUD", CurrencySymbol: "$",
		DateFormat:     "02/01/2006",
		DefaultTaxName: "GST", DefaultTaxRate: decimal.NewFromInt(10),
		DefaultTerms: "Net 30",
	},
}

// SettingsFor returns the settings for an ISO 3166-1 alpha-2 code.
// Unknown codes fall back to the US defaults (8.5% effective rate).
func SettingsFor(code string) Settings {
	if s, ok := registry[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return s
	}
	return registry["US"]
}

// Codes lists the supported country codes (for the settings endpoint).
func Codes() []string {
	return []string{"AE", "AU", "GB", "IN", "US"}
}
