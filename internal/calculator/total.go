package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is one priced line to be totalled.
type Line struct {
	Price    float64
	Quantity int
}

// LineTotal holds the computed subtotal of one line.
type LineTotal struct {
	Price    float64
	Quantity int
	Subtotal float64
}

// CalculateTotal computes subtotal = price × quantity for every line and
// their sum. Arithmetic is done in decimal so totals such as 3 × 0.1 come
// out as 0.3 rather than accumulating binary floating point error.
//
// The total is the exact decimal sum rounded to float64 once, so it can
// differ in the last ulp from adding the returned float subtotals, e.g.
// 0.1 + 0.2 yields a total of 0.3, not 0.30000000000000004.
func CalculateTotal(lines []Line) ([]LineTotal, float64, error) {
	out := make([]LineTotal, len(lines))
	total := decimal.Zero

	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, 0, fmt.Errorf("line %d: quantity must be positive, got %d", i+1, line.Quantity)
		}
		if line.Price < 0 {
			return nil, 0, fmt.Errorf("line %d: price must not be negative, got %v", i+1, line.Price)
		}

		subtotal := decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		out[i] = LineTotal{
			Price:    line.Price,
			Quantity: line.Quantity,
			Subtotal: subtotal.InexactFloat64(),
		}
	}

	return out, total.InexactFloat64(), nil
}
