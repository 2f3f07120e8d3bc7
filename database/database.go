package database

import (
	"fmt"
	"log"
	"os"

	"sheet2bill/internal/domain/billing"
	"sheet2bill/internal/domain/briefs"
	"sheet2bill/internal/domain/clients"
	"sheet2bill/internal/domain/inquiries"
	"sheet2bill/internal/domain/invoices"
	"sheet2bill/internal/domain/library"
	"sheet2bill/internal/domain/plans"
	"sheet2bill/internal/domain/users"

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

	// ✅ REQUIRED for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	// ✅ Auto-migrate all domain models
	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},
		&billing.Payment{},

		// freelancer data
		&clients.Client{},
		&library.Item{},
		&briefs.Brief{},
		&briefs.BriefLine{},
		&invoices.Invoice{},
		&invoices.InvoiceLine{},
		&inquiries.Inquiry{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
