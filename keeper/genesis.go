package keeper

import (
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
	"github.com/provlabs/strategy/utils"
)

// InitGenesis initializes the strategy module state from genesis.
//
// Strategy accounts are created when missing and the total supply of every strategy is
// rebuilt from its share balances.
func (k Keeper) InitGenesis(ctx sdk.Context, genState *types.GenesisState) {
	if genState == nil {
		return
	}

	if err := genState.Validate(); err != nil {
		panic(fmt.Errorf("invalid strategy genesis state: %w", err))
	}

	for i, s := range genState.Strategies {
		addr := s.GetAddress()
		if !k.AuthKeeper.HasAccount(ctx, addr) {
			k.AuthKeeper.SetAccount(ctx, k.AuthKeeper.NewAccountWithAddress(ctx, addr))
		}
		if err := k.SetStrategy(ctx, s); err != nil {
			panic(fmt.Errorf("failed to store strategy at index %d: %w", i, err))
		}
	}

	for _, b := range genState.Balances {
		strategyAddr := sdk.MustAccAddressFromBech32(b.StrategyAddress)
		holder := sdk.MustAccAddressFromBech32(b.Holder)
		if err := k.mintShares(ctx, strategyAddr, holder, b.Shares); err != nil {
			panic(fmt.Errorf("failed to import shares of %s in %s: %w", b.Holder, b.StrategyAddress, err))
		}
	}
}

// ExportGenesis exports the current state of the strategy module.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	strategies, err := k.GetStrategies(ctx)
	if err != nil {
		panic(fmt.Errorf("failed to get strategies: %w", err))
	}

	balances := []types.GenesisBalance{}
	err = k.Balances.Walk(ctx, nil, func(key collections.Pair[sdk.AccAddress, sdk.AccAddress], shares math.Int) (stop bool, err error) {
		balances = append(balances, types.GenesisBalance{
			StrategyAddress: key.K1().String(),
			Holder:          key.K2().String(),
			Shares:          shares,
		})
		return false, nil
	})
	if err != nil {
		panic(fmt.Errorf("failed to get share balances: %w", err))
	}

	return &types.GenesisState{
		Strategies: strategies,
		Balances:   balances,
	}
}

// CheckLedger verifies that the share balances of every strategy add up to its total supply.
func (k Keeper) CheckLedger(ctx sdk.Context) error {
	strategies, err := k.GetStrategies(ctx)
	if err != nil {
		return err
	}
	for s := range utils.Map(strategies, func(s types.Strategy) sdk.AccAddress { return s.GetAddress() }) {
		holders, err := k.GetHolders(ctx, s)
		if err != nil {
			return err
		}
		sum := utils.SumInts(utils.Map(holders, func(h types.Holder) math.Int { return h.Shares }))
		supply, err := k.GetTotalSupply(ctx, s)
		if err != nil {
			return err
		}
		if !sum.Equal(supply) {
			return fmt.Errorf("strategy %s: balances sum to %s but total supply is %s", s, sum, supply)
		}
	}
	return nil
}
