package users

import (
	"net/http"

	"assessment-app/config"
	"assessment-app/database"
	"assessment-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type MeResponse struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Lastname     string  `json:"lastname"`
	Tel          *string `json:"tel,omitempty"`
	Role         string  `json:"role"`
	IsVerified   bool    `json:"is_verified"`
	ReferralCode *string `json:"referral_code,omitempty"`
}

func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Lastname:     user.Lastname,
		Tel:          stringPtrIfNotEmpty(user.Tel),
		Role:         user.Role,
		IsVerified:   user.IsVerified,
		ReferralCode: user.ReferralCode,
	})
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.Where("token = ?", token).First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&t)

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/signin")
}
