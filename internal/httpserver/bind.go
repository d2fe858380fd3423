package httpserver

import (
	"errors"
	"net/http"

	"github.com/Skotchmaster/ecommerce/internal/transport"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the body into dst and runs the echo validator.
// Field failures become a 400 carrying the per-field messages.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return validate(c, dst)
}

func validate(c echo.Context, dst any) error {
	if err := c.Validate(dst); err != nil {
		var fe transport.FieldErrors
		if errors.As(err, &fe) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]string(fe))
		}
		return err
	}
	return nil
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// result writes a ServiceResponse as 200 when it succeeded and 400 otherwise.
func result(c echo.Context, resp transport.ServiceResponse) error {
	if resp.Flag {
		return c.JSON(http.StatusOK, resp)
	}
	return c.JSON(http.StatusBadRequest, resp)
}
