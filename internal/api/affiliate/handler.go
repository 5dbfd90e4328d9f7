package affiliate

import (
	"net/http"
	"strings"

	"assessment-app/database"
	"assessment-app/internal/domain/referrals"
	"assessment-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardStats struct {
	TotalReferrals   int64   `json:"total_referrals"`
	PendingReferrals int64   `json:"pending_referrals"`
	EarnedTotal      float64 `json:"earned_total"`
	PaidTotal        float64 `json:"paid_total"`
}

// GetDashboard aggregates the affiliate's referral pipeline and commission
// totals.
func GetDashboard(c *gin.Context) {
	affiliateID := c.GetUint("user_id")
	if affiliateID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var stats DashboardStats
	db := database.DB.Model(&referrals.Referral{}).Where("affiliate_id = ?", affiliateID)

	if err := db.Count(&stats.TotalReferrals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	database.DB.Model(&referrals.Referral{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, referrals.StatusPending).
		Count(&stats.PendingReferrals)
	database.DB.Model(&referrals.Referral{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, referrals.StatusEarned).
		Select("COALESCE(SUM(commission_amount), 0)").
		Scan(&stats.EarnedTotal)
	database.DB.Model(&referrals.Referral{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, referrals.StatusPaid).
		Select("COALESCE(SUM(commission_amount), 0)").
		Scan(&stats.PaidTotal)

	c.JSON(http.StatusOK, stats)
}

func ListReferrals(c *gin.Context) {
	affiliateID := c.GetUint("user_id")

	var list []referrals.Referral
	if err := database.DB.
		Preload("ReferredUser").
		Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load referrals"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetReferralCode returns the affiliate's share code, minting one on first
// request.
func GetReferralCode(c *gin.Context) {
	affiliateID := c.GetUint("user_id")

	var user users.User
	if err := database.DB.Where("id = ?", affiliateID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if user.ReferralCode == nil || *user.ReferralCode == "" {
		code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		if err := database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("referral_code", code).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate referral code"})
			return
		}
		user.ReferralCode = &code
	}

	c.JSON(http.StatusOK, gin.H{"referral_code": *user.ReferralCode})
}
