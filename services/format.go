package services

import (
	"fmt"
	"strings"
)

// FormatPrice formats an amount for export documents with two decimal
// places and 3-digit thousands grouping (e.g., 1,234,567.89). Locale
// specific display formatting belongs to the presentation layer; this
// is the neutral form used in generated files.
func FormatPrice(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	formatted := applyThousandsGrouping(intPart)

	result := formatted + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// applyThousandsGrouping inserts commas every 3 digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}
