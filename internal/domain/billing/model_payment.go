package billing

import (
	"time"

	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/domain/coupons"
	"assessment-app/internal/domain/users"
)

// Payment status values
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type Payment struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint
	User   users.User

	// One payment per assessment.
	AssessmentID string `gorm:"type:uuid;not null;uniqueIndex:idx_payments_assessment"`
	Assessment   assessments.Assessment

	// Final post-discount price. The Amount, not the base price, is what the
	// gateway charges and what commission display uses.
	Amount float64
	Status string `gorm:"not null;default:'pending'"`
	Method string

	CouponID *uint
	Coupon   *coupons.Coupon

	// Client-supplied; the unique index is what makes retried requests safe.
	IdempotencyKey string `gorm:"not null;uniqueIndex:idx_payments_idempotency_key"`

	StripeSessionID *string `gorm:"uniqueIndex:idx_payments_stripe_session"`
	ReceiptURL      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
