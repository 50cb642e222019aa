package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
	"github.com/provlabs/strategy/utils"
)

// position is a point-in-time read of everything that prices a strategy's shares.
// Operations take one position up front and never re-read it.
type position struct {
	// Idle is the asset held directly by the strategy account.
	Idle math.Int
	// Deployed is the strategy's claim on the lending pool, including accrued interest.
	Deployed math.Int
	// Available is what the lending pool can pay out right now.
	Available math.Int
	// TotalSupply is the outstanding share supply.
	TotalSupply math.Int
}

// TotalAssets is idle plus deployed assets.
func (p position) TotalAssets() math.Int {
	return p.Idle.Add(p.Deployed)
}

// Liquidity is the amount the strategy could pay out right now: everything idle plus the
// part of its pool claim the pool can actually honor.
func (p position) Liquidity() math.Int {
	return p.Idle.Add(math.MinInt(p.Available, p.Deployed))
}

// ConvertToShares converts assets to shares at this position's price.
func (p position) ConvertToShares(assets math.Int) (math.Int, error) {
	return utils.ConvertToShares(assets, p.TotalAssets(), p.TotalSupply)
}

// ConvertToAssets converts shares to assets at this position's price.
func (p position) ConvertToAssets(shares math.Int) (math.Int, error) {
	return utils.ConvertToAssets(shares, p.TotalAssets(), p.TotalSupply)
}

// readPosition snapshots the strategy's idle balance, pool claim, pool liquidity and share supply.
func (k Keeper) readPosition(ctx sdk.Context, strategy types.Strategy) (position, error) {
	addr := strategy.GetAddress()

	deployed, err := k.LendingPool.BalanceOf(ctx, addr, strategy.Asset)
	if err != nil {
		return position{}, fmt.Errorf("failed to get lending pool balance: %w", err)
	}
	available, err := k.LendingPool.AvailableLiquidity(ctx, strategy.Asset)
	if err != nil {
		return position{}, fmt.Errorf("failed to get lending pool liquidity: %w", err)
	}
	supply, err := k.GetTotalSupply(ctx, addr)
	if err != nil {
		return position{}, fmt.Errorf("failed to get total supply: %w", err)
	}

	return position{
		Idle:        k.BankKeeper.GetBalance(ctx, addr, strategy.Asset).Amount,
		Deployed:    deployed,
		Available:   available,
		TotalSupply: supply,
	}, nil
}

// IdleAssets returns the asset balance held by the strategy account itself.
func (k Keeper) IdleAssets(ctx sdk.Context, strategy types.Strategy) math.Int {
	return k.BankKeeper.GetBalance(ctx, strategy.GetAddress(), strategy.Asset).Amount
}

// DeployedAssets returns the strategy's claim on the lending pool.
func (k Keeper) DeployedAssets(ctx sdk.Context, strategy types.Strategy) (math.Int, error) {
	return k.LendingPool.BalanceOf(ctx, strategy.GetAddress(), strategy.Asset)
}

// TotalAssets returns idle plus deployed assets. Interest accrued by the pool shows up
// here without any action by this module.
func (k Keeper) TotalAssets(ctx sdk.Context, strategy types.Strategy) (math.Int, error) {
	pos, err := k.readPosition(ctx, strategy)
	if err != nil {
		return math.Int{}, err
	}
	return pos.TotalAssets(), nil
}

// ConvertToShares returns the shares assets are worth at the current price.
//
//	shares = assets                                  if totalSupply == 0
//	shares = floor(assets * totalSupply / totalAssets) otherwise
func (k Keeper) ConvertToShares(ctx sdk.Context, strategy types.Strategy, assets math.Int) (math.Int, error) {
	pos, err := k.readPosition(ctx, strategy)
	if err != nil {
		return math.Int{}, err
	}
	return pos.ConvertToShares(assets)
}

// ConvertToAssets returns the assets shares are worth at the current price.
//
//	assets = shares                                  if totalSupply == 0
//	assets = floor(shares * totalAssets / totalSupply) otherwise
func (k Keeper) ConvertToAssets(ctx sdk.Context, strategy types.Strategy, shares math.Int) (math.Int, error) {
	pos, err := k.readPosition(ctx, strategy)
	if err != nil {
		return math.Int{}, err
	}
	return pos.ConvertToAssets(shares)
}

// MaxDeposit returns the deposit ceiling for receiver. Deposits are not capped.
func (k Keeper) MaxDeposit(_ sdk.Context, _ types.Strategy, _ sdk.AccAddress) math.Int {
	return utils.MaxAmount
}
