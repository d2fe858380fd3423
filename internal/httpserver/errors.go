package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Skotchmaster/ecommerce/internal/logging"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// msgInternal is all a client learns about an unclassified error; the detail
// goes to the log.
const msgInternal = "An error occurred."

const (
	pgUniqueViolation     = "23505"
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
)

type classifier struct {
	name    string
	match   func(error) bool
	status  int
	message string
}

var classifiers = []classifier{
	{
		name: "unique_violation",
		match: func(err error) bool {
			return errors.Is(err, gorm.ErrDuplicatedKey) || hasSQLState(err, pgUniqueViolation, "UNIQUE constraint failed")
		},
		status:  http.StatusConflict,
		message: "Unique constraint violation.",
	},
	{
		name:    "not_null_violation",
		match:   func(err error) bool { return hasSQLState(err, pgNotNullViolation, "NOT NULL constraint failed") },
		status:  http.StatusBadRequest,
		message: "Can't insert null.",
	},
	{
		name: "foreign_key_violation",
		match: func(err error) bool {
			return errors.Is(err, gorm.ErrForeignKeyViolated) || hasSQLState(err, pgForeignKeyViolation, "FOREIGN KEY constraint failed")
		},
		status:  http.StatusConflict,
		message: "Foreign key constraint violation.",
	},
}

// hasSQLState reports whether err carries the given Postgres SQLSTATE from
// either driver, or the equivalent SQLite message.
func hasSQLState(err error, code, sqliteMsg string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return strings.Contains(err.Error(), sqliteMsg)
}

// Classify maps an error to the status and message sent to the client.
// The first matching classifier wins; anything else is a 500.
func Classify(err error) (int, string, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, msg, "http_error"
	}
	for _, c := range classifiers {
		if c.match(err) {
			return c.status, c.message, c.name
		}
	}
	return http.StatusInternalServerError, msgInternal, "unhandled"
}

// ErrorHandler is the echo HTTPErrorHandler. Database and unhandled errors are
// logged; client errors raised by handlers were already logged where they arose.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg, kind := Classify(err)
	l := logging.FromContext(c.Request().Context()).With("handler", "error_handler")
	switch kind {
	case "http_error":
		if status >= http.StatusInternalServerError {
			l.Error("request_failed", "status", status, "error", err)
		}
	case "unhandled":
		l.Error("request_failed", "status", status, "kind", kind, "error", err)
	default:
		l.Warn("sql_exception", "status", status, "kind", kind, "reason", msg, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(map[string]string); ok {
			_ = c.JSON(status, m)
			return
		}
	}
	_ = c.JSON(status, map[string]string{"message": msg})
}
