package auth

import (
	"net/http"
	"strings"

	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/tokens"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
	ctxEmail  = "email"
)

// TokenParser is satisfied by *tokens.Manager.
type TokenParser interface {
	ParseToken(raw string) (*tokens.Claims, error)
}

type ValidatorFunc func(claims *tokens.Claims) error

type Middleware struct {
	Tokens TokenParser
}

func New(p TokenParser) *Middleware {
	return &Middleware{Tokens: p}
}

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.Claims) error {
		if claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *Middleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "auth")

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_failed", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := m.Tokens.ParseToken(raw)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "invalid access token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				l.Warn("auth_failed", "status", 403, "reason", "not enough rights", "role", claims.Role)
				return err
			}
		}

		if err := setUserContext(c, claims); err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "bad subject", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}
		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}

func setUserContext(c echo.Context, claims *tokens.Claims) error {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return err
	}
	c.Set(ctxUserID, id)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxEmail, claims.Email)

	ctx := logging.With(c.Request().Context(), "user_id", id.String())
	c.SetRequest(c.Request().WithContext(ctx))
	return nil
}

func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ctxUserID).(uuid.UUID)
	return id, ok
}

func Role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}
