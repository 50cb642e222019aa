package keeper

import (
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
)

type Keeper struct {
	schema       collections.Schema
	addressCodec address.Codec
	authority    []byte

	AuthKeeper  types.AccountKeeper
	BankKeeper  types.BankKeeper
	LendingPool types.LendingPool

	// Strategies is the registry of strategies, keyed by strategy account address.
	Strategies collections.Map[sdk.AccAddress, types.Strategy]
	// Balances is the share ledger, keyed by (strategy, holder).
	Balances collections.Map[collections.Pair[sdk.AccAddress, sdk.AccAddress], math.Int]
	// TotalSupply is the outstanding share supply of each strategy.
	TotalSupply collections.Map[sdk.AccAddress, math.Int]
}

func NewKeeper(
	storeService store.KVStoreService,
	addressCodec address.Codec,
	authority []byte,
	authKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
	lendingPool types.LendingPool,
) *Keeper {
	if _, err := addressCodec.BytesToString(authority); err != nil {
		panic(fmt.Sprintf("invalid authority address %s: %s", authority, err))
	}

	builder := collections.NewSchemaBuilder(storeService)

	keeper := &Keeper{
		addressCodec: addressCodec,
		authority:    authority,
		AuthKeeper:   authKeeper,
		BankKeeper:   bankKeeper,
		LendingPool:  lendingPool,
		Strategies: collections.NewMap(builder, types.StrategiesKeyPrefix, types.StrategiesName,
			sdk.AccAddressKey, types.StrategyValue),
		Balances: collections.NewMap(builder, types.BalancesKeyPrefix, types.BalancesName,
			collections.PairKeyCodec(sdk.AccAddressKey, sdk.AccAddressKey), sdk.IntValue),
		TotalSupply: collections.NewMap(builder, types.TotalSupplyKeyPrefix, types.TotalSupplyName,
			sdk.AccAddressKey, sdk.IntValue),
	}

	schema, err := builder.Build()
	if err != nil {
		panic(err)
	}

	keeper.schema = schema
	return keeper
}

// GetAuthority returns the module's authority.
func (k Keeper) GetAuthority() []byte {
	return k.authority
}

// getLogger returns a logger with strategy module context.
func (k Keeper) getLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

func (k Keeper) emitEvent(ctx sdk.Context, event sdk.Event) {
	ctx.EventManager().EmitEvent(event)
}
