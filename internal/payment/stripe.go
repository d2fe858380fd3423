package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

const currency = "usd"

type Config struct {
	SecretKey  string
	APIURL     string
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration
}

// StripeGateway creates hosted checkout sessions.
type StripeGateway struct {
	Sessions   session.Client
	SuccessURL string
	CancelURL  string
}

func NewStripeGateway(cfg Config) *StripeGateway {
	bc := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.APIURL != "" {
		bc.URL = stripe.String(cfg.APIURL)
	}
	return &StripeGateway{
		Sessions: session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, bc),
			Key: cfg.SecretKey,
		},
		SuccessURL: cfg.SuccessURL,
		CancelURL:  cfg.CancelURL,
	}
}

// Pay opens a checkout session for the resolved products. On success the
// response message is the session URL the buyer is redirected to.
func (g *StripeGateway) Pay(ctx context.Context, total decimal.Decimal, products []models.Product, lines []transport.ProcessCart, idempotencyKey string) transport.ServiceResponse {
	l := logging.FromContext(ctx).With("component", "payment.stripe")

	items, err := lineItems(products, lines)
	if err != nil {
		l.Warn("checkout_session_rejected", "reason", "cart line missing", "error", err)
		return transport.ServiceResponse{Message: err.Error()}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          items,
		SuccessURL:         stripe.String(g.SuccessURL),
		CancelURL:          stripe.String(g.CancelURL),
	}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}

	s, err := g.Sessions.New(params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Msg != "" {
			l.Error("checkout_session_failed", "status", se.HTTPStatusCode, "reason", se.Msg, "error", err)
			return transport.ServiceResponse{Message: se.Msg}
		}
		l.Error("checkout_session_failed", "reason", "gateway unreachable", "error", err)
		return transport.ServiceResponse{Message: err.Error()}
	}

	l.Info("checkout_session_created", "session_id", s.ID, "total", total.StringFixed(2), "items", len(items))
	return transport.ServiceResponse{Flag: true, Message: s.URL}
}

func lineItems(products []models.Product, lines []transport.ProcessCart) ([]*stripe.CheckoutSessionLineItemParams, error) {
	quantities := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		if _, seen := quantities[line.ProductID]; !seen {
			quantities[line.ProductID] = line.Quantity
		}
	}

	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(products))
	for _, p := range products {
		qty, ok := quantities[p.ID]
		if !ok {
			return nil, fmt.Errorf("no cart line for product %s", p.ID)
		}
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(p.Name),
					Description: stripe.String(p.Description),
				},
				UnitAmount: stripe.Int64(Cents(p.Price)),
			},
			Quantity: stripe.Int64(int64(qty)),
		})
	}
	return items, nil
}

// Cents converts a price to the smallest currency unit, truncating fractions of a cent.
func Cents(price decimal.Decimal) int64 {
	return price.Shift(2).IntPart()
}
