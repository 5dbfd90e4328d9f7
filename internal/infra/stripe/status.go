package stripe

import (
	"strings"

	"assessment-app/internal/domain/billing"
)

// PaymentStatusFromSession maps a Stripe checkout-session payment_status to
// our payment status vocabulary.
func PaymentStatusFromSession(s string) string {
	switch strings.TrimSpace(s) {
	case "paid", "no_payment_required":
		return billing.StatusCompleted
	case "unpaid":
		return billing.StatusPending
	default:
		return billing.StatusProcessing
	}
}
