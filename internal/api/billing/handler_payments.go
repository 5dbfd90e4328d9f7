package billing

import (
	"errors"
	"math"
	"net/http"
	"os"

	"assessment-app/config"
	"assessment-app/database"
	"assessment-app/internal/domain/billing"
	"assessment-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

// CreatePayment prices the assessment server-side, applies the coupon inside
// one transaction and returns a Stripe hosted payment page. Replaying the
// same idempotency key returns the original payment and its hosted URL.
func CreatePayment(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		AssessmentID   string  `json:"assessment_id" binding:"required"`
		Method         string  `json:"method"`
		CouponCode     string  `json:"coupon_code"`
		IdempotencyKey string  `json:"idempotency_key" binding:"required"`
		Amount         float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing assessment_id or idempotency_key"})
		return
	}

	payment, err := billing.CreatePayment(database.DB, billing.CreateParams{
		UserID:         userID,
		AssessmentID:   body.AssessmentID,
		Method:         body.Method,
		CouponCode:     body.CouponCode,
		IdempotencyKey: body.IdempotencyKey,
		Amount:         body.Amount,
	})
	if err != nil {
		var rejected *billing.CouponRejectedError
		switch {
		case errors.As(err, &rejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": rejected.Message})
		case errors.Is(err, billing.ErrAmountMismatch):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Submitted amount does not match the price"})
		case errors.Is(err, billing.ErrAssessmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Assessment not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		}
		return
	}

	// replay of an already-checkout'd payment: hand back the same page
	if payment.StripeSessionID != nil {
		c.JSON(http.StatusOK, gin.H{"payment": payment, "url": hostedURLFor(payment)})
		return
	}

	url, err := createHostedPage(payment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment": payment, "url": url})
}

func createHostedPage(payment *billing.Payment) (string, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		return "", errors.New("stripe key not configured")
	}

	var user users.User
	if err := database.DB.Where("id = ?", payment.UserID).First(&user).Error; err != nil {
		return "", err
	}

	appURL := config.APP_URL

	params := &stripe.CheckoutSessionParams{
		SuccessURL:    stripe.String(appURL + "/payment/success?assessment=" + payment.AssessmentID),
		CancelURL:     stripe.String(appURL + "/payment/canceled"),
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(user.Email),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("myr"),
					UnitAmount: stripe.Int64(int64(math.Round(payment.Amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Career assessment (" + payment.AssessmentID + ")"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},

		ClientReferenceID: stripe.String(payment.AssessmentID),
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		return "", err
	}

	if err := database.DB.Model(&billing.Payment{}).
		Where("id = ?", payment.ID).
		Update("stripe_session_id", s.ID).Error; err != nil {
		return "", err
	}
	payment.StripeSessionID = &s.ID

	return s.URL, nil
}

// hostedURLFor re-resolves the hosted page for an existing session. Sessions
// are short-lived, so a failed lookup returns an empty URL and the client
// starts over with a fresh idempotency key.
func hostedURLFor(payment *billing.Payment) string {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" || payment.StripeSessionID == nil {
		return ""
	}
	s, err := checkoutsession.Get(*payment.StripeSessionID, nil)
	if err != nil {
		return ""
	}
	return s.URL
}

func GetPaymentHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.
		Preload("Coupon").
		Preload("Assessment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
