package utils

import (
	"math/big"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/provlabs/strategy/types"
)

// MaxAmount is the largest amount a math.Int can hold (2^256 - 1). It is the
// deposit ceiling reported for every receiver.
var MaxAmount = math.NewIntFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), math.MaxBitLen), big.NewInt(1)),
)

// MulDiv returns floor(a * b / denominator). The product is computed at full width and
// fails with ErrArithmeticOverflow when it does not fit in 256 bits.
func MulDiv(a, b, denominator math.Int) (math.Int, error) {
	product, err := a.SafeMul(b)
	if err != nil {
		return math.Int{}, errors.Wrapf(types.ErrArithmeticOverflow, "%s * %s", a, b)
	}
	quotient, err := product.SafeQuo(denominator)
	if err != nil {
		return math.Int{}, errors.Wrapf(types.ErrInvalidRequest, "%s / %s: %s", product, denominator, err)
	}
	return quotient, nil
}

// ConvertToShares returns the number of shares that correspond to assets at the
// current price.
//
// Formula (integer, floor):
//
//	if totalSupply == 0:
//	    shares = assets
//	else:
//	    shares = floor( assets * totalSupply / totalAssets )
//
// A positive supply with no backing assets has no defined price and fails with
// ErrZeroAssetsWithSupply. Error if any input is negative.
func ConvertToShares(assets, totalAssets, totalSupply math.Int) (math.Int, error) {
	if err := validateInputs(assets, totalAssets, totalSupply); err != nil {
		return math.Int{}, err
	}
	if totalSupply.IsZero() {
		return assets, nil
	}
	if totalAssets.IsZero() {
		return math.Int{}, errors.Wrapf(types.ErrZeroAssetsWithSupply, "total supply %s", totalSupply)
	}
	return MulDiv(assets, totalSupply, totalAssets)
}

// ConvertToAssets returns the amount of assets that correspond to shares at the
// current price.
//
// Formula (integer, floor):
//
//	if totalSupply == 0:
//	    assets = shares
//	else:
//	    assets = floor( shares * totalAssets / totalSupply )
//
// Error if any input is negative.
func ConvertToAssets(shares, totalAssets, totalSupply math.Int) (math.Int, error) {
	if err := validateInputs(shares, totalAssets, totalSupply); err != nil {
		return math.Int{}, err
	}
	if totalSupply.IsZero() {
		return shares, nil
	}
	return MulDiv(shares, totalAssets, totalSupply)
}

func validateInputs(values ...math.Int) error {
	for _, v := range values {
		if v.IsNil() {
			return errors.Wrap(types.ErrInvalidRequest, "invalid input: nil value")
		}
		if v.IsNegative() {
			return errors.Wrap(types.ErrInvalidRequest, "invalid input: negative values not allowed")
		}
	}
	return nil
}
