package billing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/domain/coupons"
	"assessment-app/internal/domain/pricing"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	// ErrAmountMismatch means the client-submitted amount diverged from the
	// server-computed price by more than a cent. Never silently corrected.
	ErrAmountMismatch = errors.New("submitted amount does not match computed price")
)

// CouponRejectedError carries the user-facing reason a coupon was refused.
type CouponRejectedError struct {
	Message string
}

func (e *CouponRejectedError) Error() string { return e.Message }

type CreateParams struct {
	UserID         uint
	AssessmentID   string
	Method         string
	CouponCode     string
	IdempotencyKey string
	Amount         float64
}

// CreatePayment prices an assessment, applies an optional coupon and writes
// the payment row. The coupon-usage increment, the payment insert and the
// assessment price update commit or roll back as one transaction — a coupon
// is never marked used without its discount durably attached to a payment.
//
// A replayed idempotency key returns the previously created payment without
// recomputing anything or touching the coupon again. An assessment whose
// checkout expired keeps its payment row: a retry with a fresh key resets the
// failed row in place instead of inserting a second one.
func CreatePayment(db *gorm.DB, p CreateParams) (*Payment, error) {
	var existing Payment
	err := db.Where("idempotency_key = ?", p.IdempotencyKey).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var a assessments.Assessment
	if err := db.Where("id = ? AND user_id = ?", p.AssessmentID, p.UserID).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}

	// One payment row per assessment. A live (non-failed) row answers the
	// retry as-is; a failed row — an expired checkout — is reset in place
	// below rather than inserted over the unique index.
	var prior Payment
	err = db.Where("assessment_id = ?", a.ID).First(&prior).Error
	switch {
	case err == nil && prior.Status != StatusFailed:
		return &prior, nil
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	// The tier table is authoritative for purchases, not the stored price.
	base := pricing.TierPrice(a.Tier)
	final := base

	var coupon *coupons.Coupon
	if p.CouponCode != "" {
		var cp coupons.Coupon
		if err := db.Where("code = ?", p.CouponCode).First(&cp).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &CouponRejectedError{Message: "Coupon not found"}
			}
			return nil, err
		}
		v := coupons.Validate(&cp, base, time.Now())
		if !v.IsValid {
			return nil, &CouponRejectedError{Message: v.Message}
		}
		coupon = &cp
		final = v.Discount.FinalPrice
	}

	if math.Abs(p.Amount-final) > 0.01 {
		log.WithFields(log.Fields{
			"assessment_id": p.AssessmentID,
			"submitted":     pricing.FormatCurrency(p.Amount),
			"computed":      pricing.FormatCurrency(final),
		}).Warn("payment amount mismatch")
		return nil, ErrAmountMismatch
	}

	payment := &Payment{
		UserID:         p.UserID,
		AssessmentID:   a.ID,
		Amount:         final,
		Status:         StatusPending,
		Method:         p.Method,
		IdempotencyKey: p.IdempotencyKey,
	}
	if coupon != nil {
		payment.CouponID = &coupon.ID
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if coupon != nil {
			if err := coupons.Consume(tx, coupon.ID); err != nil {
				return err
			}
			if err := tx.Model(&assessments.Assessment{}).
				Where("id = ?", a.ID).
				Update("price", final).Error; err != nil {
				return err
			}
		}
		if prior.ID != 0 {
			res := tx.Model(&Payment{}).
				Where("id = ? AND status = ?", prior.ID, StatusFailed).
				Updates(map[string]interface{}{
					"amount":            final,
					"status":            StatusPending,
					"method":            p.Method,
					"coupon_id":         payment.CouponID,
					"idempotency_key":   p.IdempotencyKey,
					"stripe_session_id": nil,
					"receipt_url":       nil,
				})
			if res.Error != nil {
				return res.Error
			}
			// a webhook won the race and the row is no longer failed
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		}
		return tx.Create(payment).Error
	})
	if err != nil {
		// A concurrent request may have committed the same key between our
		// short-circuit check and the insert; the winner's row is the answer.
		var winner Payment
		if ferr := db.Where("idempotency_key = ?", p.IdempotencyKey).First(&winner).Error; ferr == nil {
			return &winner, nil
		}
		if errors.Is(err, coupons.ErrExhausted) {
			return nil, &CouponRejectedError{Message: coupons.MsgUsageLimit}
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if prior.ID != 0 {
		if err := db.First(payment, prior.ID).Error; err != nil {
			return nil, err
		}
	}
	return payment, nil
}
