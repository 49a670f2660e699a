package kernel

import (
	"fmt"

	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for currency amounts (paise, cents).
const MoneyScale = 2

// RoundMoney rounds an amount half away from zero to MoneyScale digits.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// ValidateMoney rejects negative amounts.
func ValidateMoney(paramName string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", amount.String()))
	}
	return nil
}

// ValidateRate accepts fractional rates in [0, 1], e.g. 0.18 for 18% GST.
func ValidateRate(paramName string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return errs.NewValueIsOutOfRangeError(paramName, rate.String(), 0, 1)
	}
	return nil
}
