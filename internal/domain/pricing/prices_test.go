package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierPrice(t *testing.T) {
	assert.Equal(t, 50.0, TierPrice("basic"))
	assert.Equal(t, 100.0, TierPrice("standard"))
	assert.Equal(t, 250.0, TierPrice("premium"))
	assert.Equal(t, 250.0, TierPrice("  Premium "))

	// unknown keys fall back to basic silently
	assert.Equal(t, BasicPrice, TierPrice("platinum"))
	assert.Equal(t, BasicPrice, TierPrice(""))
}

func TestTypePrice(t *testing.T) {
	assert.Equal(t, 50.0, TypePrice("career-interest"))
	assert.Equal(t, 100.0, TypePrice("aptitude"))
	assert.Equal(t, 250.0, TypePrice("entrepreneurship"))
	assert.Equal(t, BasicPrice, TypePrice("astrology"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "RM 99.99", FormatCurrency(99.99))
	assert.Equal(t, "RM 0.00", FormatCurrency(0))
	assert.Equal(t, "RM 100.00", FormatCurrency(100))

	// half-up at the hundredth boundary
	assert.Equal(t, "RM 100.00", FormatCurrency(99.995))
	assert.Equal(t, 100.0, Round2(99.995))

	// display follows Round2, so it can never drift from stored values
	assert.Equal(t, "RM 66.67", FormatCurrency(66.666666))
	d, err := CalculateDiscount(100, 33.33, nil)
	assert.NoError(t, err)
	assert.Equal(t, "RM 66.67", FormatCurrency(d.FinalPrice))
}
