package repo

import (
	"context"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"gorm.io/gorm"
)

type CheckoutRepo struct {
	DB *gorm.DB
}

// SaveCheckoutHistory inserts every line in one batch and returns the rows written.
func (r *CheckoutRepo) SaveCheckoutHistory(ctx context.Context, lines []models.Achieve) (int64, error) {
	if len(lines) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).CreateInBatches(&lines, 100)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

type PaymentMethodRepo struct {
	DB *gorm.DB
}

// GetPaymentMethods lists payment methods oldest first.
func (r *PaymentMethodRepo) GetPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var items []models.PaymentMethod
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
