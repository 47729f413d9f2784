package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols maps currency code to its display symbol. These are
// static; rates are the configurable part.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

const fallbackCurrency = "INR"

// Symbol returns the display symbol for a currency code, falling back to
// the INR symbol for unknown codes.
func Symbol(currency string) string {
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	return currencySymbols[fallbackCurrency]
}

// groupIndian renders a non-negative decimal with two fraction digits and
// Indian digit grouping (1,23,456.78): the last three integer digits form
// one group, the rest pair off in twos.
func groupIndian(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	if n := len(intPart); n > 3 {
		head := intPart[:n-3]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		b.WriteString(strings.Join(groups, ","))
		b.WriteByte(',')
		b.WriteString(intPart[n-3:])
	} else {
		b.WriteString(intPart)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
