package referrals

import (
	"time"

	"assessment-app/internal/domain/users"
)

// Referral status values
const (
	StatusPending = "pending" // referred user signed up, nothing purchased yet
	StatusEarned  = "earned"  // commission recorded after a completed payment
	StatusPaid    = "paid"    // commission paid out to the affiliate
)

type Referral struct {
	ID             uint       `gorm:"primaryKey"`
	AffiliateID    uint       `gorm:"not null;index"`
	Affiliate      users.User `gorm:"foreignKey:AffiliateID"`
	ReferredUserID uint       `gorm:"not null;uniqueIndex:idx_referrals_referred_user"`
	ReferredUser   users.User `gorm:"foreignKey:ReferredUserID"`
	Code           string     `gorm:"not null;index"`
	Status         string     `gorm:"not null;default:'pending'"`

	// Looked up from the commission table when the payment completes.
	CommissionAmount float64
	CommissionRate   float64

	EarnedAt  *time.Time
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
