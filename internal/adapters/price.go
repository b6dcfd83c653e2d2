package adapters

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var priceRe = regexp.MustCompile(`\d+(\.\d+)?`)

// parsePrice extracts a decimal price from raw display text like "£51.77"
// or "$1,295.00". Returns nil when no numeric value can be found.
func parsePrice(raw string) *decimal.Decimal {
	cleaned := strings.NewReplacer(
		"£", "",
		"$", "",
		"€", "",
		"GBP", "",
		"USD", "",
		",", "",
		"Â", "", // mojibake seen on pages served with a wrong charset
	).Replace(raw)
	cleaned = strings.TrimSpace(cleaned)

	m := priceRe.FindString(cleaned)
	if m == "" {
		return nil
	}
	d, err := decimal.NewFromString(m)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

func boolPtr(b bool) *bool { return &b }
