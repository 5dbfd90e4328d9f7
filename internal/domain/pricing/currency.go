package pricing

import (
	"fmt"
	"math"
)

// Round2 rounds a monetary amount to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatCurrency renders an amount the way the product displays money:
// "RM 99.99", "RM 0.00". The value goes through Round2 first so display and
// stored amounts never drift.
func FormatCurrency(v float64) string {
	return fmt.Sprintf("RM %.2f", Round2(v))
}
