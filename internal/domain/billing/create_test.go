package billing

import (
	"testing"
	"time"

	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/domain/coupons"
	"assessment-app/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&assessments.Assessment{},
		&coupons.Coupon{},
		&Payment{},
	))
	return db
}

func seedAssessment(t *testing.T, db *gorm.DB, tier string, price float64) (users.User, assessments.Assessment) {
	t.Helper()
	u := users.User{Name: "Aida", Email: uuid.NewString() + "@example.com", Role: users.RoleUser, IsVerified: true}
	require.NoError(t, db.Create(&u).Error)

	a := assessments.Assessment{
		ID:               uuid.NewString(),
		UserID:           u.ID,
		Type:             assessments.TypeCareerInterest,
		Tier:             tier,
		Price:            price,
		Status:           assessments.StatusPending,
		ManualProcessing: assessments.ManualProcessingFor(tier, price),
	}
	require.NoError(t, db.Create(&a).Error)
	return u, a
}

func seedCoupon(t *testing.T, db *gorm.DB, c coupons.Coupon) coupons.Coupon {
	t.Helper()
	require.NoError(t, db.Create(&c).Error)
	return c
}

func TestCreatePaymentNoCoupon(t *testing.T) {
	db := testDB(t)
	u, a := seedAssessment(t, db, "basic", 50)

	p, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		IdempotencyKey: uuid.NewString(),
		Amount:         50,
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, p.Amount)
	assert.Equal(t, StatusPending, p.Status)
	assert.Nil(t, p.CouponID)
}

func TestCreatePaymentAppliesCouponAtomically(t *testing.T) {
	db := testDB(t)
	u, a := seedAssessment(t, db, "standard", 100)
	c := seedCoupon(t, db, coupons.Coupon{
		Code:               "SAVE20",
		DiscountPercentage: 20,
		MaxUses:            5,
		ExpiresAt:          time.Now().Add(time.Hour),
		Active:             true,
	})

	p, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		CouponCode:     "SAVE20",
		IdempotencyKey: uuid.NewString(),
		Amount:         80,
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, p.Amount)
	require.NotNil(t, p.CouponID)
	assert.Equal(t, c.ID, *p.CouponID)

	// the same transaction updated the coupon and the assessment price
	var cp coupons.Coupon
	require.NoError(t, db.First(&cp, c.ID).Error)
	assert.Equal(t, 1, cp.CurrentUses)

	var got assessments.Assessment
	require.NoError(t, db.First(&got, "id = ?", a.ID).Error)
	assert.Equal(t, 80.0, got.Price)
}

func TestCreatePaymentIdempotentReplay(t *testing.T) {
	db := testDB(t)
	u, a := seedAssessment(t, db, "standard", 100)
	c := seedCoupon(t, db, coupons.Coupon{
		Code:               "ONCE",
		DiscountPercentage: 10,
		MaxUses:            10,
		ExpiresAt:          time.Now().Add(time.Hour),
		Active:             true,
	})

	key := uuid.NewString()
	params := CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		CouponCode:     "ONCE",
		IdempotencyKey: key,
		Amount:         90,
	}

	first, err := CreatePayment(db, params)
	require.NoError(t, err)

	second, err := CreatePayment(db, params)
	require.NoError(t, err)

	// identical response, and the coupon was consumed exactly once
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Amount, second.Amount)

	var cp coupons.Coupon
	require.NoError(t, db.First(&cp, c.ID).Error)
	assert.Equal(t, 1, cp.CurrentUses)
}

func TestCreatePaymentAmountMismatch(t *testing.T) {
	db := testDB(t)
	u, a := seedAssessment(t, db, "premium", 250)

	_, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		IdempotencyKey: uuid.NewString(),
		Amount:         240, // client lies
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)

	// a cent of float drift is tolerated
	p, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		IdempotencyKey: uuid.NewString(),
		Amount:         250.009,
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, p.Amount)
}

func TestCreatePaymentRejectsExhaustedCoupon(t *testing.T) {
	db := testDB(t)
	u, a := seedAssessment(t, db, "basic", 50)
	seedCoupon(t, db, coupons.Coupon{
		Code:               "SPENT",
		DiscountPercentage: 10,
		CurrentUses:        3,
		MaxUses:            3,
		ExpiresAt:          time.Now().Add(time.Hour),
		Active:             true,
	})

	_, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		CouponCode:     "SPENT",
		IdempotencyKey: uuid.NewString(),
		Amount:         45,
	})

	var rejected *CouponRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, coupons.MsgUsageLimit, rejected.Message)
}

func TestCreatePaymentRetryAfterExpiredCheckout(t *testing.T) {
	db := testDB(t)
	u, a := seedAssessment(t, db, "standard", 100)

	first, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "fpx",
		IdempotencyKey: uuid.NewString(),
		Amount:         100,
	})
	require.NoError(t, err)

	// checkout expired; the webhook marks the payment failed
	session := "cs_test_expired"
	require.NoError(t, db.Model(&Payment{}).Where("id = ?", first.ID).
		Updates(map[string]interface{}{"status": StatusFailed, "stripe_session_id": session}).Error)

	retry, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		IdempotencyKey: uuid.NewString(),
		Amount:         100,
	})
	require.NoError(t, err)

	// the failed row was reset in place, not duplicated
	assert.Equal(t, first.ID, retry.ID)
	assert.Equal(t, StatusPending, retry.Status)
	assert.Equal(t, "card", retry.Method)
	assert.Nil(t, retry.StripeSessionID)

	var count int64
	require.NoError(t, db.Model(&Payment{}).Where("assessment_id = ?", a.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreatePaymentReturnsLiveRowForFreshKey(t *testing.T) {
	db := testDB(t)
	u, a := seedAssessment(t, db, "basic", 50)

	first, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		IdempotencyKey: uuid.NewString(),
		Amount:         50,
	})
	require.NoError(t, err)

	// a second attempt while the first is still pending gets the same payment
	second, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   a.ID,
		Method:         "card",
		IdempotencyKey: uuid.NewString(),
		Amount:         50,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, StatusPending, second.Status)
}

func TestCreatePaymentUnknownAssessment(t *testing.T) {
	db := testDB(t)
	u, _ := seedAssessment(t, db, "basic", 50)

	_, err := CreatePayment(db, CreateParams{
		UserID:         u.ID,
		AssessmentID:   uuid.NewString(),
		IdempotencyKey: uuid.NewString(),
		Amount:         50,
	})
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}
