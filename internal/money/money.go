// Package money holds the 2-decimal currency arithmetic used across the shop.
// Amounts are float64 in the database (NUMERIC); any equality check goes
// through whole cents so comparisons are exact at 2 decimals.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cents converts an amount to whole cents.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Equal reports cent-exact equality. A 0.01 discrepancy is a mismatch.
func Equal(a, b float64) bool {
	return Cents(a) == Cents(b)
}

// Format renders an amount with exactly two decimals, as the gateway requires.
func Format(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Parse reads a decimal amount string from a gateway payload.
func Parse(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q: %w", s, err)
	}
	return v, nil
}

// Split allocates a subtotal across the three stakeholders: school 20%,
// supplier 70%, courier 10%. Each part is rounded independently, so the three
// parts can miss the rounded total by a cent. That drift is a known property
// of the books and is not reconciled here.
func Split(subtotal float64) (school, supplier, courier float64) {
	school = Round2(subtotal * 0.20)
	supplier = Round2(subtotal * 0.70)
	courier = Round2(subtotal * 0.10)
	return
}
