package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	"github.com/Skotchmaster/ecommerce/internal/search"
	"github.com/Skotchmaster/ecommerce/internal/service"
	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/labstack/echo/v4"
)

// ProductSearcher is satisfied by *search.Products.
type ProductSearcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []transport.GetProduct, error)
}

type ProductHTTP struct {
	Svc    *service.ProductService
	Search ProductSearcher
}

func (h *ProductHTTP) GetAll(c echo.Context) error {
	items, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No products found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	p, err := h.Svc.GetByID(c.Request().Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) Add(c echo.Context) error {
	var req transport.CreateProduct
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return result(c, resp)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	var req transport.UpdateProduct
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.Svc.Update(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return result(c, resp)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
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

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "product.search")

	if h.Search == nil {
		l.Warn("search_failed", "status", 503, "reason", "search index not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	page := search.ParseIntDefault(c.QueryParam("page"), 1)
	size := search.ParseIntDefault(c.QueryParam("size"), search.DefaultPageSize)
	from, size := search.Calculate(page, size)
	if page < 1 {
		page = 1
	}

	total, items, err := h.Search.Search(c.Request().Context(), q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 502, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search backend error")
	}

	totalPages := (total + int64(size) - 1) / int64(size)
	return c.JSON(http.StatusOK, transport.SearchProductsResponse{
		Data: items,
		Meta: transport.PageMeta{
			Page:       page,
			Size:       size,
			Total:      total,
			TotalPages: totalPages,
			HasPrev:    page > 1,
			HasNext:    int64(page) < totalPages,
		},
	})
}
