package pricing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var priceToken = regexp.MustCompile(`\d+(?:,\d+)*(?:\.\d+)?`)

// ParsePriceFromText extracts the first numeric token from text, e.g.
// "Gold rate today is ₹6,231.40 per gram" yields 6231.40. Tokens that parse
// to zero are treated as missing.
func ParsePriceFromText(text string) (float64, bool) {
	tok := priceToken.FindString(text)
	if tok == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(tok, ",", ""))
	if err != nil || !d.IsPositive() {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// priceFromAnswer tries the primary answer text first, then each related
// fragment in order.
func priceFromAnswer(text string, related []string) (float64, bool) {
	if p, ok := ParsePriceFromText(text); ok {
		return p, true
	}
	for _, r := range related {
		if p, ok := ParsePriceFromText(r); ok {
			return p, true
		}
	}
	return 0, false
}
