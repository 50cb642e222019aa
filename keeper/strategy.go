package keeper

import (
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	sdkerrors "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
)

// CreateStrategy registers a new strategy and creates its account.
//
// The strategy address is derived from the name, so names are unique. An account that
// already exists at the derived address is reused.
func (k *Keeper) CreateStrategy(ctx sdk.Context, name, asset, vault string) (*types.Strategy, error) {
	strategy := types.NewStrategy(name, asset, vault)
	if err := strategy.Validate(); err != nil {
		return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
	}

	addr := strategy.GetAddress()
	found, err := k.Strategies.Has(ctx, addr)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, sdkerrors.Wrapf(types.ErrStrategyExists, "strategy %q at %s", name, strategy.Address)
	}

	if !k.AuthKeeper.HasAccount(ctx, addr) {
		k.AuthKeeper.SetAccount(ctx, k.AuthKeeper.NewAccountWithAddress(ctx, addr))
	}

	if err := k.SetStrategy(ctx, strategy); err != nil {
		return nil, fmt.Errorf("failed to store new strategy: %w", err)
	}

	k.emitEvent(ctx, types.NewEventStrategyCreated(strategy))
	k.getLogger(ctx).Info("strategy created", "strategy", strategy.Address, "name", name, "asset", asset, "vault", vault)
	return &strategy, nil
}

// GetStrategy finds a strategy by its account address.
//
// Returns ErrStrategyNotFound if nothing is registered at this address.
func (k Keeper) GetStrategy(ctx sdk.Context, address sdk.AccAddress) (*types.Strategy, error) {
	strategy, err := k.Strategies.Get(ctx, address)
	if errors.Is(err, collections.ErrNotFound) {
		return nil, sdkerrors.Wrapf(types.ErrStrategyNotFound, "strategy with address %s", address)
	}
	if err != nil {
		return nil, err
	}
	return &strategy, nil
}
