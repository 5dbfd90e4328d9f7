package users

import "time"

// Role values
const (
	RoleUser      = "user"
	RoleClerk     = "clerk"
	RoleAffiliate = "affiliate"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Tel          string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	// Affiliates share this code in signup links; set when the affiliate
	// first asks for it.
	ReferralCode *string `gorm:"uniqueIndex:idx_users_referral_code"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
