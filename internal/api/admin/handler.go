package admin

import (
	"net/http"
	"time"

	"assessment-app/database"
	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/domain/billing"
	"assessment-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Lastname     string  `json:"lastname"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	IsVerified   bool    `json:"is_verified"`
	ReferralCode *string `json:"referral_code,omitempty"`
}

type AdminPayment struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	AssessmentID string  `json:"assessment_id"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	CouponCode   *string `json:"coupon_code,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers           int64            `json:"total_users"`
	TotalRevenue         float64          `json:"total_revenue"`
	RecentRevenue        float64          `json:"recent_revenue"`
	AssessmentsPerStatus map[string]int64 `json:"assessments_per_status"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	database.DB.Model(&users.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&billing.Payment{}).
		Where("status = ?", billing.StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalRevenue)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at > ?", billing.StatusCompleted, time.Now().AddDate(0, -1, 0)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.RecentRevenue)

	stats.AssessmentsPerStatus = map[string]int64{}
	type statusCount struct {
		Status string
		N      int64
	}
	var counts []statusCount
	database.DB.Model(&assessments.Assessment{}).
		Select("status, COUNT(*) as n").
		Group("status").
		Scan(&counts)
	for _, sc := range counts {
		stats.AssessmentsPerStatus[sc.Status] = sc.N
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var out []AdminUser
	for _, u := range all {
		out = append(out, AdminUser{
			ID:           u.ID,
			Name:         u.Name,
			Lastname:     u.Lastname,
			Email:        u.Email,
			Role:         u.Role,
			IsVerified:   u.IsVerified,
			ReferralCode: u.ReferralCode,
		})
	}

	c.JSON(http.StatusOK, out)
}

func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := database.DB.
		Preload("User").
		Preload("Coupon").
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var out []AdminPayment
	for _, p := range payments {
		ap := AdminPayment{
			ID:           p.ID,
			Email:        p.User.Email,
			AssessmentID: p.AssessmentID,
			Amount:       p.Amount,
			Status:       p.Status,
			CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		}
		if p.Coupon != nil {
			ap.CouponCode = &p.Coupon.Code
		}
		out = append(out, ap)
	}

	c.JSON(http.StatusOK, out)
}

func GetUserDetails(c *gin.Context) {
	var user users.User
	if err := database.DB.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var userAssessments []assessments.Assessment
	database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&userAssessments)

	var payments []billing.Payment
	database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&payments)

	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"assessments": userAssessments,
		"payments":    payments,
	})
}
