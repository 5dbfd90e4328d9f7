package coupons

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCoupon() *Coupon {
	return &Coupon{
		Code:               "LAUNCH20",
		DiscountPercentage: 20,
		CurrentUses:        0,
		MaxUses:            100,
		ExpiresAt:          time.Now().Add(24 * time.Hour),
		Active:             true,
	}
}

func TestValidateHappyPath(t *testing.T) {
	v := Validate(validCoupon(), 100, time.Now())
	require.True(t, v.IsValid)
	assert.Equal(t, MsgApplied, v.Message)
	require.NotNil(t, v.Discount)
	assert.Equal(t, 20.0, v.Discount.DiscountAmount)
	assert.Equal(t, 80.0, v.Discount.FinalPrice)
}

func TestValidateMaxDiscountCap(t *testing.T) {
	cap := 10.0
	c := validCoupon()
	c.DiscountPercentage = 50
	c.MaxDiscount = &cap

	v := Validate(c, 100, time.Now())
	require.True(t, v.IsValid)
	assert.Equal(t, 10.0, v.Discount.DiscountAmount)
	assert.Equal(t, 90.0, v.Discount.FinalPrice)
}

func TestValidateUsageLimit(t *testing.T) {
	c := validCoupon()
	c.CurrentUses = c.MaxUses

	v := Validate(c, 100, time.Now())
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgUsageLimit, v.Message)
	assert.Nil(t, v.Discount)
}

// The usage check runs first: an exhausted coupon reports the quota message
// even when it is also expired.
func TestValidateUsageLimitBeatsExpiry(t *testing.T) {
	c := validCoupon()
	c.CurrentUses = c.MaxUses
	c.ExpiresAt = time.Now().Add(-time.Hour)

	v := Validate(c, 100, time.Now())
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgUsageLimit, v.Message)
}

func TestValidateExpired(t *testing.T) {
	c := validCoupon()
	c.ExpiresAt = time.Now().Add(-time.Minute)

	v := Validate(c, 100, time.Now())
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgExpired, v.Message)
}

func TestValidateInactive(t *testing.T) {
	c := validCoupon()
	c.Active = false

	v := Validate(c, 100, time.Now())
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgInvalidConfig, v.Message)
}

// A malformed stored percentage maps to the generic configuration message
// instead of leaking the discount engine's error.
func TestValidateMalformedPercentage(t *testing.T) {
	c := validCoupon()
	c.DiscountPercentage = 140

	v := Validate(c, 100, time.Now())
	assert.False(t, v.IsValid)
	assert.Equal(t, MsgInvalidConfig, v.Message)
}
