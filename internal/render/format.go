package render

import (
	"fmt"
	"strings"
)

// FormatDollars renders an amount as "$1,234.50". Negative amounts keep
// the sign ahead of the currency symbol.
func FormatDollars(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := int64(amount)
	cents := int64(amount*100+0.5) - whole*100
	if cents >= 100 { // rounding carried into the next dollar
		whole++
		cents -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	s := fmt.Sprintf("$%s.%02d", strings.Join(parts, ","), cents)
	if neg {
		return "-" + s
	}
	return s
}
