// Package currency resolves conversion rates from a posting's native
// currency to the base currency used for cross-provider salary comparison.
package currency

import (
	"context"
	"errors"
	"time"
)

// ErrRateUnavailable is returned when a currency code is unknown to the rate
// source or the source is unreachable. Callers must never substitute a
// default rate: 1 and 0 both carry meaning elsewhere (base currency /
// unknown salary).
var ErrRateUnavailable = errors.New("currency rate unavailable")

// Gateway resolves the conversion rate to the base currency for a currency
// code on a given date. The returned rate is always > 0 on success.
type Gateway interface {
	Rate(ctx context.Context, code string, asOf time.Time) (float64, error)
}
