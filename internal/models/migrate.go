package models

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreditCardID is the id of the seeded payment method.
var CreditCardID = uuid.MustParse("27bc20f4-6d32-43fa-ab75-6920b6b3f39e")

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Product{},
		&AppUser{},
		&UserRole{},
		&RefreshToken{},
		&PaymentMethod{},
		&Achieve{},
	)
}

// Seed inserts the reference rows. Existing rows are left alone.
func Seed(ctx context.Context, db *gorm.DB) error {
	pm := PaymentMethod{ID: CreditCardID, Name: "Credit Card"}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&pm).Error; err != nil {
		return fmt.Errorf("seed payment methods: %w", err)
	}
	return nil
}
