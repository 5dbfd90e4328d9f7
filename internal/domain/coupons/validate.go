package coupons

import (
	"errors"
	"time"

	"assessment-app/internal/domain/pricing"

	"gorm.io/gorm"
)

// User-facing rejection messages. The API returns these verbatim.
const (
	MsgUsageLimit    = "Coupon usage limit reached"
	MsgExpired       = "Coupon has expired"
	MsgInvalidConfig = "Invalid coupon configuration"
	MsgApplied       = "Coupon applied"
)

// ErrExhausted is returned by Consume when the usage quota is already spent.
var ErrExhausted = errors.New("coupon usage limit reached")

type Validation struct {
	IsValid  bool              `json:"isValid"`
	Message  string            `json:"message"`
	Discount *pricing.Discount `json:"discountCalculation,omitempty"`
}

// Validate checks a coupon against a base price. Read-only: the usage counter
// is only ever incremented by Consume, at payment commit time.
//
// Check order matters — the first failure wins and no further checks run:
// usage quota, then expiry, then discount configuration.
func Validate(coupon *Coupon, basePrice float64, now time.Time) Validation {
	if coupon.CurrentUses >= coupon.MaxUses {
		return Validation{Message: MsgUsageLimit}
	}
	if now.After(coupon.ExpiresAt) {
		return Validation{Message: MsgExpired}
	}
	if !coupon.Active {
		return Validation{Message: MsgInvalidConfig}
	}

	// Percentages are validated at coupon creation, so a failure here means
	// a malformed record, not bad user input.
	d, err := pricing.CalculateDiscount(basePrice, coupon.DiscountPercentage, coupon.MaxDiscount)
	if err != nil {
		return Validation{Message: MsgInvalidConfig}
	}

	return Validation{IsValid: true, Message: MsgApplied, Discount: &d}
}

// Consume spends one use of the coupon inside the caller's transaction. The
// quota guard in the WHERE clause serializes concurrent redemptions on the
// row: the loser sees zero affected rows, gets ErrExhausted, and its whole
// transaction rolls back.
func Consume(tx *gorm.DB, couponID uint) error {
	res := tx.Model(&Coupon{}).
		Where("id = ? AND current_uses < max_uses", couponID).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrExhausted
	}
	return nil
}
