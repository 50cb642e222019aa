package interest

import (
	"fmt"

	cosmosmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	SecondsPerHour = 3_600
	SecondsPerDay  = 24 * SecondsPerHour
	SecondsPerYear = 31_536_000
	EulerPrecision = 18

	// ZeroInterestRate is the rate string for a market that pays nothing.
	ZeroInterestRate = "0"
)

// CalculateInterestEarned returns the interest a lending position of size principal
// earns over periodSeconds at the annual rate, compounded continuously:
//
//	interest = P * (e^(r*t) - 1),  t = periodSeconds / SecondsPerYear
//
// Negative rates yield a negative amount (the position loses value). The result is
// truncated toward zero.
func CalculateInterestEarned(principal sdk.Coin, rate string, periodSeconds int64) (cosmosmath.Int, error) {
	if periodSeconds <= 0 {
		return cosmosmath.Int{}, fmt.Errorf("periodSeconds must be positive, got %d", periodSeconds)
	}

	r, err := cosmosmath.LegacyNewDecFromStr(rate)
	if err != nil {
		return cosmosmath.Int{}, fmt.Errorf("invalid rate string %q: %w", rate, err)
	}
	if principal.Amount.IsNil() || principal.Amount.IsZero() {
		return cosmosmath.ZeroInt(), nil
	}

	p := cosmosmath.LegacyNewDecFromInt(principal.Amount)
	t := cosmosmath.LegacyNewDec(periodSeconds).QuoInt64(SecondsPerYear)

	growth := ExpDec(r.Mul(t), EulerPrecision).Sub(cosmosmath.LegacyOneDec())
	return p.Mul(growth).TruncateInt(), nil
}

// ExpDec calculates e^x using the Maclaurin series expansion up to `terms` terms.
// Safe for on-chain use (fully deterministic).
//
//	e^x = 1 + x + x^2/2! + x^3/3! + ... + x^n/n!
func ExpDec(x cosmosmath.LegacyDec, terms int) cosmosmath.LegacyDec {
	result := cosmosmath.LegacyOneDec()
	power := cosmosmath.LegacyOneDec()
	factorial := cosmosmath.LegacyOneDec()

	for i := 1; i <= terms; i++ {
		power = power.Mul(x)
		factorial = factorial.MulInt64(int64(i))
		result = result.Add(power.Quo(factorial))
	}

	return result
}
