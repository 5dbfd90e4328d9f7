package referrals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		price      float64
		wantAmount float64
		wantRate   float64
	}{
		{50, 10, 20},
		{100, 30, 30}, // the 30% outlier in the table
		{250, 50, 20},
		{999, 0, 0},
		{0, 0, 0},
		{-50, 0, 0},
		{99.999, 30, 30}, // keyed on the rounded integer price
		{100.4, 30, 30},
		{100.6, 0, 0},
	}
	for _, tt := range tests {
		got := CalculateCommission(tt.price)
		assert.Equal(t, tt.wantAmount, got.Amount, "price=%v", tt.price)
		assert.Equal(t, tt.wantRate, got.Rate, "price=%v", tt.price)
	}
}
