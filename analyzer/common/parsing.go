package common

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var nonNumericRegex = regexp.MustCompile(`[^0-9.]`)

// CleanDecimal parses a string into a decimal.Decimal, removing non-numeric characters
func CleanDecimal(text string) (decimal.Decimal, error) {

	cleanText := nonNumericRegex.ReplaceAllString(text, "")
	if cleanText == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(cleanText)
	if err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

var currencyAliases = map[string]string{
	"S$": "SGD", "SGD": "SGD", "SG": "SGD",
	"US$": "USD", "USD": "USD", "US": "USD",
	"MYR": "MYR", "MY": "MYR", "RM": "MYR",
	"HK$": "HKD", "HKD": "HKD", "HK": "HKD",
	"CDN": "CAD", "CAD": "CAD", "C$": "CAD",
}

// NormalizeCurrency maps the currency labels found in the report to
// canonical 3-letter codes. Unrecognized labels pass through trimmed and
// uppercased; an absent label reads as UNKNOWN.
func NormalizeCurrency(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "UNKNOWN"
	}
	if canonical, ok := currencyAliases[code]; ok {
		return canonical
	}
	return code
}

// ParseDays converts a raw days cell to an integer. The export sometimes
// renders the value as a float ("2.0"); anything unparseable reads as
// absent rather than zero.
func ParseDays(raw string) (int, bool) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.EqualFold(text, "nan") {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return int(value), true
}
