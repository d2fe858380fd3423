package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc *service.AuthenticationService
}

func (h *AuthHTTP) Create(c echo.Context) error {
	var req transport.CreateUser
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.Svc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return err
	}
	if !resp.Flag {
		logging.FromContext(c.Request().Context()).With("handler", "auth.create").
			Warn("create_user_failed", "status", 400, "reason", resp.Message)
	}
	return result(c, resp)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	var req transport.LoginUser
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.Svc.LoginUser(c.Request().Context(), req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return c.JSON(http.StatusBadRequest, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHTTP) RefreshToken(c echo.Context) error {
	resp, err := h.Svc.ReviveToken(c.Request().Context(), c.Param("refreshToken"))
	if err != nil {
		return err
	}
	if !resp.Success {
		return c.JSON(http.StatusBadRequest, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	resp, err := h.Svc.Logout(c.Request().Context(), c.Param("refreshToken"))
	if err != nil {
		return err
	}
	return result(c, resp)
}
