package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/labstack/echo/v4"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) GetAll(c echo.Context) error {
	items, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No categories found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHTTP) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cat, err := h.Svc.GetByID(c.Request().Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) Add(c echo.Context) error {
	var req transport.CreateCategory
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return result(c, resp)
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	var req transport.UpdateCategory
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.Svc.Update(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return result(c, resp)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	resp, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return result(c, resp)
}
