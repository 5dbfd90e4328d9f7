package database

import (
	"fmt"
	"log"
	"os"

	"assessment-app/internal/domain/assessments"
	"assessment-app/internal/domain/billing"
	"assessment-app/internal/domain/coupons"
	"assessment-app/internal/domain/referrals"
	"assessment-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&users.VerificationToken{},
		&assessments.Assessment{},
		&coupons.Coupon{},
		&billing.Payment{},
		&referrals.Referral{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
