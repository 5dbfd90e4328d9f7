package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name        string
		base        float64
		pct         float64
		max         *float64
		wantAmount  float64
		wantFinal   float64
	}{
		{"simple half", 100, 50, nil, 50, 50},
		{"ninety five percent", 100, 95, nil, 95, 5},
		{"full discount hits zero", 100, 100, nil, 100, 0},
		{"zero percent", 100, 0, nil, 0, 100},
		{"cap applies", 100, 50, ptr(20), 20, 80},
		{"cap above raw discount is inert", 100, 10, ptr(50), 10, 90},
		{"independent rounding", 100, 33.33, nil, 33.33, 66.67},
		{"penny rounding half up", 49.99, 15, nil, 7.5, 42.49},
		{"zero base", 0, 50, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateDiscount(tt.base, tt.pct, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.base, got.OriginalPrice)
			assert.InDelta(t, tt.wantAmount, got.DiscountAmount, 1e-9)
			assert.InDelta(t, tt.wantFinal, got.FinalPrice, 1e-9)
			assert.Equal(t, got.DiscountAmount, got.Savings)
		})
	}
}

func TestCalculateDiscountInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		base float64
		pct  float64
		max  *float64
	}{
		{"negative base", -1, 10, nil},
		{"negative percentage", 100, -5, nil},
		{"percentage above 100", 100, 100.01, nil},
		{"negative cap", 100, 10, ptr(-1)},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateDiscount(tt.base, tt.pct, tt.max)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, got)
		})
	}
}

// Without a cap, amount + final must reassemble the (rounded) base price.
func TestDiscountConservation(t *testing.T) {
	bases := []float64{0, 1, 49.99, 50, 99.95, 100, 123.45, 250}
	pcts := []float64{0, 1, 10, 33.33, 50, 66.67, 95, 100}
	for _, b := range bases {
		for _, p := range pcts {
			got, err := CalculateDiscount(b, p, nil)
			require.NoError(t, err)
			assert.InDelta(t, Round2(b), got.FinalPrice+got.DiscountAmount, 0.011,
				"base=%v pct=%v", b, p)
		}
	}
}
