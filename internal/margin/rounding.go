package margin

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RoundUpToIncrement rounds value up to the nearest multiple of increment.
// Used for CALL amounts: the secured party never under-calls.
//
//	RoundUpToIncrement(1234567.89, 10000) -> 1240000
func RoundUpToIncrement(value, increment decimal.Decimal) (decimal.Decimal, error) {
	if increment.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("rounding increment must be greater than 0, got %s", increment)
	}
	return value.Div(increment).Ceil().Mul(increment), nil
}

// RoundDownToIncrement rounds value down to the nearest multiple of
// increment. Used for RETURN amounts: excess below one increment stays put.
//
//	RoundDownToIncrement(1234567.89, 10000) -> 1230000
func RoundDownToIncrement(value, increment decimal.Decimal) (decimal.Decimal, error) {
	if increment.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("rounding increment must be greater than 0, got %s", increment)
	}
	return value.Div(increment).Floor().Mul(increment), nil
}
