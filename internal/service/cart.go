package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/ecommerce/internal/events"
	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	msgInvalidPaymentMethod = "Invalid payment method"
	msgCartEmpty            = "Cart is empty"

	idempotencyScope = "checkout"
)

type CheckoutHistory interface {
	SaveCheckoutHistory(ctx context.Context, lines []models.Achieve) (int64, error)
}

type CartService struct {
	Products       repo.Generic[models.Product]
	PaymentMethods *PaymentMethodService
	History        CheckoutHistory
	Gateway        PaymentGateway
	Idempotency    IdempotencyStore
	Events         EventPublisher
	PaymentTimeout time.Duration
}

// Checkout prices the cart against current products and opens a payment
// session. Lines for unknown products are ignored.
func (s *CartService) Checkout(ctx context.Context, userID uuid.UUID, checkout transport.Checkout, idempotencyKey string) (transport.ServiceResponse, error) {
	l := logging.FromContext(ctx).With("op", "cart.checkout", "user_id", userID)

	all, err := s.Products.GetAll(ctx)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	lines := MergeLines(checkout.Carts)
	products, total := CalculateTotal(all, lines)

	methods, err := s.PaymentMethods.GetPaymentMethods(ctx)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	if len(methods) == 0 || checkout.PaymentMethodID != methods[0].ID {
		l.Warn("checkout_rejected", "reason", "invalid payment method", "payment_method_id", checkout.PaymentMethodID)
		return transport.ServiceResponse{Message: msgInvalidPaymentMethod}, nil
	}
	if len(products) == 0 {
		l.Warn("checkout_rejected", "reason", "no resolvable products")
		return transport.ServiceResponse{Message: msgCartEmpty}, nil
	}

	scope := idempotencyScope + ":" + userID.String()
	if idempotencyKey != "" && s.Idempotency != nil {
		url, ok, err := s.Idempotency.Recall(ctx, scope, idempotencyKey)
		if err != nil {
			l.Error("idempotency_recall_failed", "error", err)
		} else if ok {
			l.Info("checkout_replayed", "idempotency_key", idempotencyKey)
			return transport.ServiceResponse{Flag: true, Message: url}, nil
		}
	}

	payCtx := ctx
	if s.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		payCtx, cancel = context.WithTimeout(ctx, s.PaymentTimeout)
		defer cancel()
	}

	gatewayKey := ""
	if idempotencyKey != "" {
		gatewayKey = userID.String() + ":" + idempotencyKey
	}
	resp := s.Gateway.Pay(payCtx, total, products, lines, gatewayKey)
	if !resp.Flag {
		l.Warn("checkout_failed", "reason", resp.Message, "total", total.StringFixed(2))
		return resp, nil
	}

	if idempotencyKey != "" && s.Idempotency != nil {
		if err := s.Idempotency.Remember(ctx, scope, idempotencyKey, resp.Message); err != nil {
			l.Error("idempotency_remember_failed", "error", err)
		}
	}

	publish(ctx, s.Events, events.TopicCheckout, userID.String(), "checkout_started", map[string]any{
		"userId": userID,
		"total":  total.StringFixed(2),
		"lines":  lines,
	})
	l.Info("checkout_started", "total", total.StringFixed(2), "products", len(products))
	return resp, nil
}

// SaveCheckoutHistory records the lines of a completed checkout for userID.
// Every line must belong to that user.
func (s *CartService) SaveCheckoutHistory(ctx context.Context, userID uuid.UUID, lines []transport.CreateAchieve) (transport.ServiceResponse, error) {
	rows := make([]models.Achieve, 0, len(lines))
	for i, line := range lines {
		if line.UserID != userID {
			return transport.ServiceResponse{}, fmt.Errorf("%w: line %d: userId does not match the signed-in user", ErrValidation, i)
		}
		rows = append(rows, line.ToModel())
	}
	n, err := s.History.SaveCheckoutHistory(ctx, rows)
	if err != nil {
		return transport.ServiceResponse{}, err
	}
	return response(n, "Checkout Achieved", "Error occurred in saving"), nil
}

// MergeLines folds lines for the same product into one, keeping first-seen order.
func MergeLines(lines []transport.ProcessCart) []transport.ProcessCart {
	out := make([]transport.ProcessCart, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}

// CalculateTotal resolves lines against products. It returns the products
// referenced by the cart, in cart order, and the sum of quantity times price.
func CalculateTotal(products []models.Product, lines []transport.ProcessCart) ([]models.Product, decimal.Decimal) {
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := decimal.Zero
	resolved := make([]models.Product, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		if !seen[p.ID] {
			seen[p.ID] = true
			resolved = append(resolved, p)
		}
	}
	return resolved, total
}
