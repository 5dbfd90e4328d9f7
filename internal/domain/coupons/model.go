package coupons

import "time"

type Coupon struct {
	ID                 uint    `gorm:"primaryKey"`
	Code               string  `gorm:"not null;uniqueIndex:idx_coupons_code"`
	DiscountPercentage float64 `gorm:"not null"`
	MaxDiscount        *float64
	CurrentUses        int `gorm:"not null;default:0"`
	MaxUses            int `gorm:"not null"`
	ExpiresAt          time.Time
	Active             bool `gorm:"not null;default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
