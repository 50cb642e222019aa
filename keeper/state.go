package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
)

// GetStrategies is a helper function for retrieving all strategies from state.
func (k *Keeper) GetStrategies(ctx context.Context) ([]types.Strategy, error) {
	strategies := []types.Strategy{}

	err := k.Strategies.Walk(ctx, nil, func(_ sdk.AccAddress, strategy types.Strategy) (stop bool, err error) {
		strategies = append(strategies, strategy)
		return false, nil
	})

	return strategies, err
}

// SetStrategy stores a strategy in the Strategies collection, keyed by its bech32 address.
// NOTE: should only be called by genesis and at strategy creation.
func (k *Keeper) SetStrategy(ctx context.Context, strategy types.Strategy) error {
	if err := strategy.Validate(); err != nil {
		return err
	}
	return k.Strategies.Set(ctx, strategy.GetAddress(), strategy)
}

// BalanceOf returns the share balance of holder in the strategy. Unknown holders have zero shares.
func (k Keeper) BalanceOf(ctx context.Context, strategyAddr, holder sdk.AccAddress) (math.Int, error) {
	balance, err := k.Balances.Get(ctx, collections.Join(strategyAddr, holder))
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return balance, err
}

// GetTotalSupply returns the outstanding shares of the strategy.
func (k Keeper) GetTotalSupply(ctx context.Context, strategyAddr sdk.AccAddress) (math.Int, error) {
	supply, err := k.TotalSupply.Get(ctx, strategyAddr)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return supply, err
}

// mintShares credits shares to holder and grows the supply by the same amount.
func (k Keeper) mintShares(ctx context.Context, strategyAddr, holder sdk.AccAddress, shares math.Int) error {
	if shares.IsNegative() {
		return fmt.Errorf("cannot mint negative shares: %s", shares)
	}
	balance, err := k.BalanceOf(ctx, strategyAddr, holder)
	if err != nil {
		return err
	}
	supply, err := k.GetTotalSupply(ctx, strategyAddr)
	if err != nil {
		return err
	}
	if err := k.setBalance(ctx, strategyAddr, holder, balance.Add(shares)); err != nil {
		return err
	}
	return k.TotalSupply.Set(ctx, strategyAddr, supply.Add(shares))
}

// burnShares debits shares from holder and shrinks the supply by the same amount.
func (k Keeper) burnShares(ctx context.Context, strategyAddr, holder sdk.AccAddress, shares math.Int) error {
	if shares.IsNegative() {
		return fmt.Errorf("cannot burn negative shares: %s", shares)
	}
	balance, err := k.BalanceOf(ctx, strategyAddr, holder)
	if err != nil {
		return err
	}
	if balance.LT(shares) {
		return fmt.Errorf("insufficient shares: %s < %s", balance, shares)
	}
	supply, err := k.GetTotalSupply(ctx, strategyAddr)
	if err != nil {
		return err
	}
	if err := k.setBalance(ctx, strategyAddr, holder, balance.Sub(shares)); err != nil {
		return err
	}
	return k.TotalSupply.Set(ctx, strategyAddr, supply.Sub(shares))
}

// setBalance writes a share balance, dropping the entry when it reaches zero.
func (k Keeper) setBalance(ctx context.Context, strategyAddr, holder sdk.AccAddress, shares math.Int) error {
	key := collections.Join(strategyAddr, holder)
	if shares.IsZero() {
		return k.Balances.Remove(ctx, key)
	}
	return k.Balances.Set(ctx, key, shares)
}

// GetHolders returns every non-zero share balance of the strategy.
func (k Keeper) GetHolders(ctx context.Context, strategyAddr sdk.AccAddress) ([]types.Holder, error) {
	holders := []types.Holder{}
	rng := collections.NewPrefixedPairRange[sdk.AccAddress, sdk.AccAddress](strategyAddr)
	err := k.Balances.Walk(ctx, rng, func(key collections.Pair[sdk.AccAddress, sdk.AccAddress], shares math.Int) (stop bool, err error) {
		holders = append(holders, types.Holder{Address: key.K2().String(), Shares: shares})
		return false, nil
	})
	return holders, err
}
