package utils

import (
	"fmt"
	"math"
)

// FormatUSD renders an amount the way booking documents show it.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// RoundMoney rounds to 2 decimal places for display totals.
func RoundMoney(x float64) float64 {
	return math.Round(x*100) / 100
}
