package keeper

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
)

// CurrentDebt returns what the strategy owes its parent vault: the vault's shares priced at
// the current rate.
func (k Keeper) CurrentDebt(ctx sdk.Context, strategy types.Strategy) (math.Int, error) {
	pos, err := k.readPosition(ctx, strategy)
	if err != nil {
		return math.Int{}, err
	}
	balance, err := k.BalanceOf(ctx, strategy.GetAddress(), strategy.GetVaultAddress())
	if err != nil {
		return math.Int{}, err
	}
	return pos.ConvertToAssets(balance)
}

// UpdateDebt moves the parent vault's position in the strategy towards targetDebt.
//
// Above the current debt the vault deposits the difference. Below it the vault withdraws the
// difference, capped by MaxWithdraw, so a drawn down lending pool leaves part of the debt in
// place. Only the parent vault may call it. Returns the debt after the update.
func (k *Keeper) UpdateDebt(ctx sdk.Context, strategyAddr, caller sdk.AccAddress, targetDebt math.Int) (math.Int, error) {
	strategy, err := k.GetStrategy(ctx, strategyAddr)
	if err != nil {
		return math.Int{}, err
	}
	if !strategy.IsVault(caller) {
		return math.Int{}, sdkerrors.Wrapf(types.ErrUnauthorized, "%s is not the vault of strategy %s", caller, strategy.Address)
	}
	if targetDebt.IsNil() || targetDebt.IsNegative() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrInvalidRequest, "invalid target debt %s", targetDebt)
	}

	vault := strategy.GetVaultAddress()
	current, err := k.CurrentDebt(ctx, *strategy)
	if err != nil {
		return math.Int{}, err
	}

	switch {
	case targetDebt.GT(current):
		amount := sdk.NewCoin(strategy.Asset, targetDebt.Sub(current))
		if _, err := k.Deposit(ctx, strategyAddr, vault, vault, amount); err != nil {
			return math.Int{}, err
		}
	case targetDebt.LT(current):
		maxAssets, err := k.MaxWithdraw(ctx, *strategy, vault)
		if err != nil {
			return math.Int{}, err
		}
		amount := math.MinInt(current.Sub(targetDebt), maxAssets)
		if amount.IsPositive() {
			if _, err := k.Withdraw(ctx, strategyAddr, vault, vault, vault, sdk.NewCoin(strategy.Asset, amount)); err != nil {
				return math.Int{}, err
			}
		}
	}

	debt, err := k.CurrentDebt(ctx, *strategy)
	if err != nil {
		return math.Int{}, err
	}

	k.emitEvent(ctx, types.NewEventDebtUpdated(strategy.Address, strategy.Vault, targetDebt, debt))
	k.getLogger(ctx).Info("strategy debt updated", "strategy", strategy.Address, "target", targetDebt.String(), "debt", debt.String())
	return debt, nil
}
