package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name          string
		lines         []Line
		wantSubtotals []float64
		wantTotal     float64
		wantErr       bool
	}{
		{
			name:          "single line",
			lines:         []Line{{Price: 25, Quantity: 3}},
			wantSubtotals: []float64{75},
			wantTotal:     75,
		},
		{
			name: "several lines",
			lines: []Line{
				{Price: 25, Quantity: 2},
				{Price: 20, Quantity: 1},
				{Price: 15, Quantity: 4},
			},
			wantSubtotals: []float64{50, 20, 60},
			wantTotal:     130,
		},
		{
			name:          "fractional prices stay exact",
			lines:         []Line{{Price: 0.1, Quantity: 3}, {Price: 0.2, Quantity: 1}},
			wantSubtotals: []float64{0.3, 0.2},
			wantTotal:     0.5,
		},
		{
			name:          "total is the exact decimal sum",
			lines:         []Line{{Price: 0.1, Quantity: 1}, {Price: 0.2, Quantity: 1}},
			wantSubtotals: []float64{0.1, 0.2},
			wantTotal:     0.3,
		},
		{
			name:          "free item",
			lines:         []Line{{Price: 0, Quantity: 5}},
			wantSubtotals: []float64{0},
			wantTotal:     0,
		},
		{
			name:          "no lines",
			lines:         nil,
			wantSubtotals: []float64{},
			wantTotal:     0,
		},
		{
			name:    "zero quantity should error",
			lines:   []Line{{Price: 10, Quantity: 0}},
			wantErr: true,
		},
		{
			name:    "negative price should error",
			lines:   []Line{{Price: -1, Quantity: 1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, total, err := CalculateTotal(tt.lines)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CalculateTotal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if total != tt.wantTotal {
				t.Errorf("total = %v, want %v", total, tt.wantTotal)
			}
			if len(lines) != len(tt.wantSubtotals) {
				t.Fatalf("got %d lines, want %d", len(lines), len(tt.wantSubtotals))
			}

			// Total must equal the decimal sum of the reported subtotals
			sum := decimal.Zero
			for i, l := range lines {
				if l.Subtotal != tt.wantSubtotals[i] {
					t.Errorf("line %d subtotal = %v, want %v", i, l.Subtotal, tt.wantSubtotals[i])
				}
				sum = sum.Add(decimal.NewFromFloat(l.Subtotal))
			}
			if got := sum.InexactFloat64(); got != total {
				t.Errorf("sum of subtotals %v != total %v", got, total)
			}
		})
	}
}
