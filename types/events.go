package types

import (
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeStrategyCreated = "strategy_created"
	EventTypeDeposit         = "strategy_deposit"
	EventTypeWithdraw        = "strategy_withdraw"
	EventTypeDebtUpdated     = "strategy_debt_updated"

	AttributeKeyStrategy  = "strategy"
	AttributeKeyName      = "name"
	AttributeKeyAsset     = "asset"
	AttributeKeyVault     = "vault"
	AttributeKeyCaller    = "caller"
	AttributeKeyReceiver  = "receiver"
	AttributeKeyOwner     = "owner"
	AttributeKeyAssets    = "assets"
	AttributeKeyShares    = "shares"
	AttributeKeyDebtAfter = "debt"
	AttributeKeyTarget    = "target_debt"
)

// NewEventStrategyCreated creates a new strategy_created event.
func NewEventStrategyCreated(strategy Strategy) sdk.Event {
	return sdk.NewEvent(
		EventTypeStrategyCreated,
		sdk.NewAttribute(AttributeKeyStrategy, strategy.Address),
		sdk.NewAttribute(AttributeKeyName, strategy.Name),
		sdk.NewAttribute(AttributeKeyAsset, strategy.Asset),
		sdk.NewAttribute(AttributeKeyVault, strategy.Vault),
	)
}

// NewEventDeposit creates a new strategy_deposit event.
func NewEventDeposit(strategyAddress, caller, receiver string, assets sdk.Coin, shares math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeDeposit,
		sdk.NewAttribute(AttributeKeyStrategy, strategyAddress),
		sdk.NewAttribute(AttributeKeyCaller, caller),
		sdk.NewAttribute(AttributeKeyReceiver, receiver),
		sdk.NewAttribute(AttributeKeyAssets, assets.String()),
		sdk.NewAttribute(AttributeKeyShares, shares.String()),
	)
}

// NewEventWithdraw creates a new strategy_withdraw event.
func NewEventWithdraw(strategyAddress, caller, receiver, owner string, assets sdk.Coin, shares math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeWithdraw,
		sdk.NewAttribute(AttributeKeyStrategy, strategyAddress),
		sdk.NewAttribute(AttributeKeyCaller, caller),
		sdk.NewAttribute(AttributeKeyReceiver, receiver),
		sdk.NewAttribute(AttributeKeyOwner, owner),
		sdk.NewAttribute(AttributeKeyAssets, assets.String()),
		sdk.NewAttribute(AttributeKeyShares, shares.String()),
	)
}

// NewEventDebtUpdated creates a new strategy_debt_updated event.
func NewEventDebtUpdated(strategyAddress, vault string, target, debt math.Int) sdk.Event {
	return sdk.NewEvent(
		EventTypeDebtUpdated,
		sdk.NewAttribute(AttributeKeyStrategy, strategyAddress),
		sdk.NewAttribute(AttributeKeyVault, vault),
		sdk.NewAttribute(AttributeKeyTarget, target.String()),
		sdk.NewAttribute(AttributeKeyDebtAfter, debt.String()),
	)
}
