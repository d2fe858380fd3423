package config

import (
	"errors"
	"fmt"
)

var ErrMissing = errors.New("missing required env")

// Validate reports every required setting that is empty, not only the first.
func (c Config) Validate() error {
	var errs []error
	need := func(ok bool, env string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w %s", ErrMissing, env))
		}
	}

	need(c.DatabaseURL != "" || c.DBDriver == "sqlite", "DATABASE_URL")
	need(len(c.JWTSecret) > 0, "JWT_SECRET")
	need(c.StripeSecretKey != "", "STRIPE_SECRET_KEY")
	need(c.DBDriver == "postgres" || c.DBDriver == "sqlite", "DB_DRIVER (postgres|sqlite)")
	need(c.JWTTTL > 0 && c.RefreshTTL > 0, "JWT_TTL/REFRESH_TTL (positive durations)")

	return errors.Join(errs...)
}
