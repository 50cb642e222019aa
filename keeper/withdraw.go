package keeper

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
)

// maxWithdraw caps the holder's claim by what the strategy can pay out right now. A cap that
// prices to zero shares cannot be withdrawn, so it is reported as zero.
func (p position) maxWithdraw(balance math.Int) (math.Int, error) {
	claim, err := p.ConvertToAssets(balance)
	if err != nil {
		return math.Int{}, err
	}
	capped := math.MinInt(claim, p.Liquidity())
	if capped.IsZero() {
		return capped, nil
	}
	shares, err := p.ConvertToShares(capped)
	if err != nil {
		return math.Int{}, err
	}
	if shares.IsZero() {
		return math.ZeroInt(), nil
	}
	return capped, nil
}

// MaxWithdraw returns the most owner can withdraw right now:
//
//	min(ConvertToAssets(balanceOf(owner)), idle + min(poolAvailable, poolBalance))
//
// When the lending pool is drawn down this is lower than the owner's full claim. It is zero
// when the capped claim is worth less than one share.
func (k Keeper) MaxWithdraw(ctx sdk.Context, strategy types.Strategy, owner sdk.AccAddress) (math.Int, error) {
	pos, err := k.readPosition(ctx, strategy)
	if err != nil {
		return math.Int{}, err
	}
	balance, err := k.BalanceOf(ctx, strategy.GetAddress(), owner)
	if err != nil {
		return math.Int{}, err
	}
	return pos.maxWithdraw(balance)
}

// Withdraw burns owner's shares for assets and pays the assets to receiver.
//
// It performs the following steps:
//  1. Retrieves the strategy, checks that caller is owner and validates the coin.
//  2. Snapshots the position and rejects requests above MaxWithdraw.
//  3. Prices the burn at the pre-withdraw rate and burns the shares from owner.
//  4. Pays receiver from the idle balance first, then from the lending pool.
//  5. Emits a Withdraw event.
//
// Steps 3 and 4 run in a cached context that is written only when both succeed. A withdraw
// capped by pool liquidity burns only the shares for the assets paid; the rest of the
// owner's claim stays outstanding. The burned shares are rounded down, so rounding favours
// the owner by less than one share. Returns the burned share amount.
func (k *Keeper) Withdraw(ctx sdk.Context, strategyAddr, caller, receiver, owner sdk.AccAddress, assets sdk.Coin) (math.Int, error) {
	strategy, err := k.GetStrategy(ctx, strategyAddr)
	if err != nil {
		return math.Int{}, err
	}
	if !caller.Equals(owner) {
		return math.Int{}, sdkerrors.Wrapf(types.ErrUnauthorized, "%s cannot withdraw on behalf of %s", caller, owner)
	}
	if err := strategy.ValidateAcceptedCoin(assets); err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
	}

	pos, err := k.readPosition(ctx, *strategy)
	if err != nil {
		return math.Int{}, err
	}
	balance, err := k.BalanceOf(ctx, strategyAddr, owner)
	if err != nil {
		return math.Int{}, err
	}
	maxAssets, err := pos.maxWithdraw(balance)
	if err != nil {
		return math.Int{}, err
	}
	if assets.Amount.GT(maxAssets) {
		return math.Int{}, sdkerrors.Wrapf(types.ErrExceedsMaxWithdraw, "%s > %s", assets.Amount, maxAssets)
	}

	shares, err := pos.ConvertToShares(assets.Amount)
	if err != nil {
		return math.Int{}, err
	}
	if shares.IsZero() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrInvalidRequest, "withdraw too small: %s converts to zero shares", assets)
	}

	cacheCtx, writeCache := ctx.CacheContext()
	if err := k.burnShares(cacheCtx, strategyAddr, owner, shares); err != nil {
		return math.Int{}, err
	}
	if err := k.payOut(cacheCtx, *strategy, pos, receiver, assets.Amount); err != nil {
		k.logCritical(ctx, strategy.Address, err)
		return math.Int{}, err
	}
	writeCache()

	k.emitEvent(ctx, types.NewEventWithdraw(strategy.Address, caller.String(), receiver.String(), owner.String(), assets, shares))
	k.getLogger(ctx).Info("strategy withdraw", "strategy", strategy.Address, "owner", owner.String(), "receiver", receiver.String(), "assets", assets.String(), "shares", shares.String())
	return shares, nil
}

// payOut sends amount to receiver, taking it from the snapshot's idle balance first and the
// lending pool for the remainder.
func (k Keeper) payOut(ctx sdk.Context, strategy types.Strategy, pos position, receiver sdk.AccAddress, amount math.Int) error {
	fromIdle := math.MinInt(amount, pos.Idle)
	if fromIdle.IsPositive() {
		if err := k.BankKeeper.SendCoins(ctx, strategy.GetAddress(), receiver, sdk.NewCoins(sdk.NewCoin(strategy.Asset, fromIdle))); err != nil {
			return sdkerrors.Wrapf(types.ErrTransferUnauthorized, "idle payout of %s%s: %s", fromIdle, strategy.Asset, err)
		}
	}

	fromPool := amount.Sub(fromIdle)
	if fromPool.IsPositive() {
		if err := k.LendingPool.Withdraw(ctx, strategy.GetAddress(), receiver, sdk.NewCoin(strategy.Asset, fromPool)); err != nil {
			return types.CriticalErr("failed to withdraw from lending pool", err)
		}
	}
	return nil
}
