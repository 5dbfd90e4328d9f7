package routes

import (
	adminapi "assessment-app/internal/api/admin"
	affiliateapi "assessment-app/internal/api/affiliate"
	assessmentsapi "assessment-app/internal/api/assessments"
	authapi "assessment-app/internal/api/auth"
	"assessment-app/internal/api/billing"
	clerkapi "assessment-app/internal/api/clerk"
	couponsapi "assessment-app/internal/api/coupons"
	stripewebhooks "assessment-app/internal/api/stripewebhook"
	"assessment-app/internal/api/users"
	"assessment-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/catalog", assessmentsapi.ListCatalog)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)
	public.POST("/coupons/validate", couponsapi.ValidateCoupon)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/assessments", assessmentsapi.CreateAssessment)
	auth.GET("/assessments", assessmentsapi.ListMyAssessments)
	auth.GET("/assessments/:id", assessmentsapi.GetAssessment)
	auth.POST("/assessments/:id/submit", assessmentsapi.SubmitResponses)
	auth.GET("/assessments/:id/results", assessmentsapi.GetResults)
	auth.POST("/assessments/:id/retry", assessmentsapi.RetryProcessing)

	auth.POST("/payments", billing.CreatePayment)
	auth.GET("/payments", billing.GetPaymentHistory)

	// Clerk panel
	clerk := r.Group("/clerk")
	clerk.Use(middleware.AuthMiddleware(), middleware.RequireRole("clerk"))
	clerk.GET("/queue", clerkapi.ListReviewQueue)
	clerk.GET("/queue/:id", clerkapi.GetReviewItem)
	clerk.POST("/queue/:id/review", clerkapi.SubmitReview)

	// Affiliate dashboard
	affiliate := r.Group("/affiliate")
	affiliate.Use(middleware.AuthMiddleware(), middleware.RequireRole("affiliate"))
	affiliate.GET("/dashboard", affiliateapi.GetDashboard)
	affiliate.GET("/referrals", affiliateapi.ListReferrals)
	affiliate.GET("/code", affiliateapi.GetReferralCode)

	// Admin panel
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.POST("/coupons", couponsapi.CreateCoupon)
	admin.GET("/coupons", couponsapi.ListCoupons)
	admin.DELETE("/coupons/:id", couponsapi.DeactivateCoupon)
	admin.POST("/assessments/repair", adminapi.RepairAssessments)
}
