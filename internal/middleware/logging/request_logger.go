package loggingmw

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce/internal/logging"
)

// quietPrefixes are probe and scrape endpoints that only log failures.
var quietPrefixes = []string{"/health/", "/metrics"}

// RequestLogger puts a request scoped logger into the context and writes one
// http_request line per request. Errors are rendered here through the echo
// error handler so the final status is known. Attributes added further down
// the chain, like user_id from the auth middleware, appear on that line.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", req.Method,
				"route", c.Path(),
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			status := c.Response().Status
			done := logging.FromContext(c.Request().Context())
			attrs := []any{"status", status, "latency_ms", time.Since(start).Milliseconds(), "bytes_out", c.Response().Size}
			switch {
			case status >= 500:
				done.Error("http_request", attrs...)
			case status >= 400:
				done.Warn("http_request", attrs...)
			case quiet(req.URL.Path):
			default:
				done.Info("http_request", attrs...)
			}
			return nil
		}
	}
}

func quiet(path string) bool {
	for _, p := range quietPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
