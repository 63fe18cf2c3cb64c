// Package currencyutil converts bounties between the decimal form users
// type ("4.99") and the integer minor units stored in the DB.
package currencyutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToCents converts a decimal currency amount to integer cents.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts integer cents back to a decimal amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// maxParseAmount caps user-supplied amounts; beyond it the cents
// conversion would overflow int64.
const maxParseAmount = 1e9

// ParseToCents parses a user-supplied decimal string into cents.
// The amount must be positive and at most maxParseAmount.
func ParseToCents(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("amount is required")
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	if amount <= 0 || math.IsNaN(amount) {
		return 0, fmt.Errorf("amount must be positive")
	}
	if amount > maxParseAmount {
		return 0, fmt.Errorf("amount is too large")
	}
	return ToCents(amount), nil
}

// Format renders cents as a dollar string, e.g. 499 -> "$4.99".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
