package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/tokens"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens() *tokens.Manager {
	return &tokens.Manager{
		Secret:   []byte("test-secret"),
		Issuer:   "ecommerce",
		Audience: "ecommerce",
		TTL:      time.Hour,
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestRequireAuthAndAdmin(t *testing.T) {
	t.Parallel()
	tm := newTokens()
	mw := New(tm)
	userID := uuid.New()

	admin, err := tm.GenerateToken(tokens.UserClaims{UserID: userID, Role: models.RoleAdmin})
	require.NoError(t, err)
	user, err := tm.GenerateToken(tokens.UserClaims{UserID: userID, Role: models.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name   string
		mw     echo.MiddlewareFunc
		header string
		code   int
	}{
		{"auth ok", mw.RequireAuth, "Bearer " + user, http.StatusOK},
		{"auth missing", mw.RequireAuth, "", http.StatusUnauthorized},
		{"auth garbage", mw.RequireAuth, "Bearer nope", http.StatusUnauthorized},
		{"admin ok", mw.RequireAdmin, "Bearer " + admin, http.StatusOK},
		{"admin forbidden", mw.RequireAdmin, "Bearer " + user, http.StatusForbidden},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := tt.mw(func(c echo.Context) error {
				id, ok := UserID(c)
				require.True(t, ok)
				assert.Equal(t, userID, id)
				assert.NotEmpty(t, Role(c))
				return c.NoContent(http.StatusOK)
			})

			err := h(c)
			if tt.code == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.code, he.Code)
		})
	}
}
