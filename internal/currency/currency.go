// Package currency converts foreign-currency amounts to the home currency
// (TRY) at transaction-insert time. Each transaction snapshots the rate it was
// normalized with; a stored home amount is never recomputed against a newer
// rate.
package currency

import (
	"github.com/shopspring/decimal"

	apperrors "defter/internal/errors"
	"defter/internal/models"
)

// eurUSDSpread approximates EUR via the USD rate; the client only fetches a
// USD/TRY rate, so EUR amounts are normalized as amount * 1.1 * usdRate.
var eurUSDSpread = decimal.NewFromFloat(1.1)

// Normalize returns the TRY equivalent of amount in the given currency.
// TRY amounts pass through unchanged and ignore the rate. Foreign amounts
// require a positive rate; a nil or non-positive rate is an INVALID_RATE
// error.
func Normalize(amount decimal.Decimal, cur models.Currency, rate *decimal.Decimal) (decimal.Decimal, error) {
	if !cur.IsForeign() {
		return amount, nil
	}

	if rate == nil || !rate.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidRate
	}

	switch cur {
	case models.CurrencyUSD:
		return amount.Mul(*rate), nil
	case models.CurrencyEUR:
		return amount.Mul(eurUSDSpread).Mul(*rate), nil
	default:
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "unsupported currency "+string(cur))
	}
}
