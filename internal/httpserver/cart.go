package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/middleware/auth"
	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/labstack/echo/v4"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.checkout")

	userID, ok := auth.UserID(c)
	if !ok {
		l.Warn("checkout_failed", "status", 401, "reason", "no user in context")
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.Checkout
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.Svc.Checkout(c.Request().Context(), userID, req, c.Request().Header.Get(HeaderIdempotencyKey))
	if err != nil {
		return err
	}
	if !resp.Flag {
		l.Warn("checkout_failed", "status", 400, "user_id", userID, "reason", resp.Message)
	}
	return result(c, resp)
}

func (h *CartHTTP) SaveCheckout(c echo.Context) error {
	var req []transport.CreateAchieve
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	for i := range req {
		if err := validate(c, &req[i]); err != nil {
			return err
		}
	}

	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	resp, err := h.Svc.SaveCheckoutHistory(c.Request().Context(), userID, req)
	if errors.Is(err, service.ErrValidation) {
		logging.FromContext(c.Request().Context()).With("handler", "cart.save_checkout").
			Warn("save_checkout_rejected", "status", 400, "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "userId must match the signed-in user")
	}
	if err != nil {
		return err
	}
	return result(c, resp)
}

type PaymentMethodsHTTP struct {
	Svc *service.PaymentMethodService
}

func (h *PaymentMethodsHTTP) List(c echo.Context) error {
	items, err := h.Svc.GetPaymentMethods(c.Request().Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No payment methods found")
	}
	return c.JSON(http.StatusOK, items)
}
