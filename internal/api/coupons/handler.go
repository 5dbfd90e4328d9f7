package coupons

import (
	"net/http"
	"time"

	"assessment-app/database"
	"assessment-app/internal/domain/coupons"
	"assessment-app/internal/domain/pricing"

	"github.com/gin-gonic/gin"
)

// ValidateCoupon is the public preview endpoint: read-only, never spends a
// use. The real consumption happens when the payment is created.
func ValidateCoupon(c *gin.Context) {
	var body struct {
		Code string `json:"code" binding:"required"`
		Tier string `json:"tier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code or tier"})
		return
	}

	var coupon coupons.Coupon
	if err := database.DB.Where("code = ?", body.Code).First(&coupon).Error; err != nil {
		c.JSON(http.StatusOK, coupons.Validation{Message: "Coupon not found"})
		return
	}

	v := coupons.Validate(&coupon, pricing.TierPrice(body.Tier), time.Now())
	c.JSON(http.StatusOK, v)
}

// --- admin CRUD ---

func CreateCoupon(c *gin.Context) {
	var body struct {
		Code               string   `json:"code" binding:"required"`
		DiscountPercentage float64  `json:"discount_percentage" binding:"required"`
		MaxDiscount        *float64 `json:"max_discount"`
		MaxUses            int      `json:"max_uses" binding:"required"`
		ExpiresAt          string   `json:"expires_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required coupon fields"})
		return
	}

	// percentages are validated here so stored coupons never trip the
	// discount engine later
	if body.DiscountPercentage < 1 || body.DiscountPercentage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount percentage must be between 1 and 100"})
		return
	}
	if body.MaxDiscount != nil && *body.MaxDiscount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Max discount cannot be negative"})
		return
	}
	if body.MaxUses < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Max uses must be at least 1"})
		return
	}

	expiresAt, err := time.Parse(time.RFC3339, body.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at must be RFC3339"})
		return
	}
	if expiresAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expiry must be in the future"})
		return
	}

	coupon := coupons.Coupon{
		Code:               body.Code,
		DiscountPercentage: body.DiscountPercentage,
		MaxDiscount:        body.MaxDiscount,
		MaxUses:            body.MaxUses,
		ExpiresAt:          expiresAt,
		Active:             true,
	}
	if err := database.DB.Create(&coupon).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Coupon code may already exist"})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

func ListCoupons(c *gin.Context) {
	var list []coupons.Coupon
	if err := database.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load coupons"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeactivateCoupon retires a coupon without deleting it; payments keep their
// coupon reference for audit.
func DeactivateCoupon(c *gin.Context) {
	res := database.DB.Model(&coupons.Coupon{}).
		Where("id = ?", c.Param("id")).
		Update("active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate coupon"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon deactivated"})
}
