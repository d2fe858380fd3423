package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const readyTimeout = 2 * time.Second

type Deps struct {
	DB             *gorm.DB
	Auth           *AuthHTTP
	Products       *ProductHTTP
	Categories     *CategoryHTTP
	Carts          *CartHTTP
	PaymentMethods *PaymentMethodsHTTP

	RequireAuth  echo.MiddlewareFunc
	RequireAdmin echo.MiddlewareFunc
	Metrics      echo.HandlerFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", ready(d.DB))
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics)
	}

	api := e.Group("/api")

	authentication := api.Group("/authentication")
	authentication.POST("/create", d.Auth.Create)
	authentication.POST("/login", d.Auth.Login)
	authentication.GET("/refreshToken/:refreshToken", d.Auth.RefreshToken)
	authentication.POST("/logout/:refreshToken", d.Auth.Logout)

	product := api.Group("/product")
	product.GET("/all", d.Products.GetAll)
	product.GET("/single/:id", d.Products.GetByID)
	product.GET("/search", d.Products.SearchProducts)
	product.POST("/add", d.Products.Add, d.RequireAdmin)
	product.PUT("/update", d.Products.Update, d.RequireAdmin)
	product.DELETE("/Delete/:id", d.Products.Delete, d.RequireAdmin)

	category := api.Group("/category")
	category.GET("/all", d.Categories.GetAll)
	category.GET("/single/:id", d.Categories.GetByID)
	category.POST("/add", d.Categories.Add, d.RequireAdmin)
	category.PUT("/update", d.Categories.Update, d.RequireAdmin)
	category.DELETE("/Delete/:id", d.Categories.Delete, d.RequireAdmin)

	carts := api.Group("/carts", d.RequireAuth)
	carts.POST("/checkout", d.Carts.Checkout)
	carts.POST("/SaveCheckout", d.Carts.SaveCheckout)

	api.GET("/paymentmethods/payment-methods", d.PaymentMethods.List)
}

// ready pings the database.
func ready(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if db == nil {
			return c.NoContent(http.StatusOK)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	}
}
