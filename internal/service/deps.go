package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrValidation = errors.New("validation error")

// EventPublisher is satisfied by *events.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key, eventType string, payload any) error
}

// ProductIndexer is satisfied by *search.Products.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type PaymentGateway interface {
	Pay(ctx context.Context, total decimal.Decimal, products []models.Product, lines []transport.ProcessCart, idempotencyKey string) transport.ServiceResponse
}

type IdempotencyStore interface {
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

func response(affected int64, success, failure string) transport.ServiceResponse {
	if affected > 0 {
		return transport.ServiceResponse{Flag: true, Message: success}
	}
	return transport.ServiceResponse{Flag: false, Message: failure}
}
