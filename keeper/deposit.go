package keeper

import (
	"errors"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
)

// Deposit pulls assets from caller into the strategy and mints the matching shares to receiver.
//
// It performs the following steps:
//  1. Retrieves the strategy and validates the coin against its asset.
//  2. Snapshots the position and prices the deposit at the pre-deposit rate.
//  3. Mints the shares to receiver.
//  4. Sends the assets from caller to the strategy account.
//  5. Supplies the whole idle balance of the strategy to the lending pool.
//  6. Emits a Deposit event.
//
// Steps 3 to 5 run in a cached context that is written only when all of them succeed.
// Returns the minted share amount.
func (k *Keeper) Deposit(ctx sdk.Context, strategyAddr, caller, receiver sdk.AccAddress, assets sdk.Coin) (math.Int, error) {
	strategy, err := k.GetStrategy(ctx, strategyAddr)
	if err != nil {
		return math.Int{}, err
	}
	if err := strategy.ValidateAcceptedCoin(assets); err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
	}
	if maxDeposit := k.MaxDeposit(ctx, *strategy, receiver); assets.Amount.GT(maxDeposit) {
		return math.Int{}, sdkerrors.Wrapf(types.ErrInvalidRequest, "deposit %s exceeds max deposit %s", assets.Amount, maxDeposit)
	}

	pos, err := k.readPosition(ctx, *strategy)
	if err != nil {
		return math.Int{}, err
	}
	shares, err := pos.ConvertToShares(assets.Amount)
	if err != nil {
		return math.Int{}, err
	}
	if shares.IsZero() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrInvalidRequest, "deposit too small: %s converts to zero shares", assets)
	}

	cacheCtx, writeCache := ctx.CacheContext()
	if err := k.mintShares(cacheCtx, strategyAddr, receiver, shares); err != nil {
		return math.Int{}, err
	}
	if err := k.BankKeeper.SendCoins(cacheCtx, caller, strategyAddr, sdk.NewCoins(assets)); err != nil {
		return math.Int{}, sdkerrors.Wrapf(types.ErrTransferUnauthorized, "%s from %s: %s", assets, caller, err)
	}
	if err := k.supplyIdle(cacheCtx, *strategy); err != nil {
		k.logCritical(ctx, strategy.Address, err)
		return math.Int{}, err
	}
	writeCache()

	k.emitEvent(ctx, types.NewEventDeposit(strategy.Address, caller.String(), receiver.String(), assets, shares))
	k.getLogger(ctx).Info("strategy deposit", "strategy", strategy.Address, "receiver", receiver.String(), "assets", assets.String(), "shares", shares.String())
	return shares, nil
}

// supplyIdle forwards every idle asset held by the strategy account to the lending pool.
func (k Keeper) supplyIdle(ctx sdk.Context, strategy types.Strategy) error {
	idle := k.IdleAssets(ctx, strategy)
	if !idle.IsPositive() {
		return nil
	}
	if err := k.LendingPool.Supply(ctx, strategy.GetAddress(), sdk.NewCoin(strategy.Asset, idle)); err != nil {
		return types.CriticalErr("failed to supply idle assets to lending pool", err)
	}
	return nil
}

// logCritical logs err at error level when it marks a failed lending pool step.
func (k Keeper) logCritical(ctx sdk.Context, strategy string, err error) {
	var critical *types.CriticalError
	if errors.As(err, &critical) {
		k.getLogger(ctx).Error("CRITICAL: "+critical.Reason, "strategy", strategy, "err", critical.Err)
	}
}
