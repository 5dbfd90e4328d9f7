package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"assessment-app/database"
	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/domain/billing"
	"assessment-app/internal/domain/referrals"
	"assessment-app/internal/domain/users"
	"assessment-app/internal/infra/notify"
	stripeinfra "assessment-app/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// handleCheckoutSessionCompleted marks the payment completed, freezes the
// assessment price and records the affiliate commission — all in one
// transaction. Replayed events are acknowledged without re-applying anything.
func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	var payment billing.Payment
	if err := database.DB.Where("stripe_session_id = ?", session.ID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// not a payment we created; acknowledge so Stripe stops retrying
			return nil
		}
		return fmt.Errorf("payment lookup failed: %w", err)
	}

	if payment.Status == billing.StatusCompleted {
		return nil
	}

	// the completed event can arrive while the payment is still async
	// (e.g. FPX); only finalize once Stripe reports it paid
	if stripeinfra.PaymentStatusFromSession(string(session.PaymentStatus)) != billing.StatusCompleted {
		return nil
	}

	var a assessments.Assessment
	if err := database.DB.Where("id = ?", payment.AssessmentID).First(&a).Error; err != nil {
		return fmt.Errorf("assessment not found for payment %d: %w", payment.ID, err)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": billing.StatusCompleted}
		if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
			receipt := "https://dashboard.stripe.com/payments/" + session.PaymentIntent.ID
			updates["receipt_url"] = receipt
		}
		if err := tx.Model(&billing.Payment{}).
			Where("id = ?", payment.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		// completed payment freezes the assessment price
		if err := tx.Model(&assessments.Assessment{}).
			Where("id = ?", a.ID).
			Update("price", payment.Amount).Error; err != nil {
			return err
		}

		return recordCommission(tx, &payment)
	})
	if err != nil {
		return fmt.Errorf("failed to finalize payment %d: %w", payment.ID, err)
	}

	var user users.User
	if err := database.DB.Where("id = ?", payment.UserID).First(&user).Error; err == nil && notify.Default != nil {
		notify.Default.SendPaymentReceipt(user.Email, payment.Amount, a.Type)
	}

	return nil
}

// recordCommission looks up the fixed payout for the amount actually paid
// and marks the payer's referral earned. Payers who were never referred, or
// whose referral already converted, are skipped.
func recordCommission(tx *gorm.DB, payment *billing.Payment) error {
	var ref referrals.Referral
	err := tx.Where("referred_user_id = ? AND status = ?", payment.UserID, referrals.StatusPending).
		First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	commission := referrals.CalculateCommission(payment.Amount)
	if commission.Amount == 0 {
		return nil
	}

	now := time.Now()
	return tx.Model(&referrals.Referral{}).
		Where("id = ?", ref.ID).
		Updates(map[string]interface{}{
			"status":            referrals.StatusEarned,
			"commission_amount": commission.Amount,
			"commission_rate":   commission.Rate,
			"earned_at":         &now,
		}).Error
}

// handleCheckoutSessionExpired marks an abandoned checkout failed so the
// client can start over with a fresh idempotency key.
func handleCheckoutSessionExpired(session *stripe.CheckoutSession) error {
	res := database.DB.Model(&billing.Payment{}).
		Where("stripe_session_id = ? AND status = ?", session.ID, billing.StatusPending).
		Update("status", billing.StatusFailed)
	return res.Error
}
