package service

import (
	"context"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/transport"
)

type PaymentMethodLister interface {
	GetPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
}

type PaymentMethodService struct {
	Repo PaymentMethodLister
}

// GetPaymentMethods returns the methods oldest first, or an empty slice.
func (s *PaymentMethodService) GetPaymentMethods(ctx context.Context) ([]transport.GetPaymentMethod, error) {
	items, err := s.Repo.GetPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	return transport.FromPaymentMethods(items), nil
}
