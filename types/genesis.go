package types

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState defines the strategy module's genesis state.
type GenesisState struct {
	Strategies []Strategy       `json:"strategies"`
	Balances   []GenesisBalance `json:"balances"`
}

// GenesisBalance is a share balance held by Holder in the strategy at StrategyAddress.
type GenesisBalance struct {
	StrategyAddress string   `json:"strategy_address"`
	Holder          string   `json:"holder"`
	Shares          math.Int `json:"shares"`
}

// DefaultGenesisState returns the default genesis state
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Strategies: []Strategy{},
		Balances:   []GenesisBalance{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	strategies := make(map[string]struct{}, len(gs.Strategies))
	names := make(map[string]struct{}, len(gs.Strategies))
	for i, s := range gs.Strategies {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("invalid strategy at index %d: %w", i, err)
		}
		if _, ok := names[s.Name]; ok {
			return fmt.Errorf("duplicate strategy name %q", s.Name)
		}
		names[s.Name] = struct{}{}
		strategies[s.Address] = struct{}{}
	}

	seen := make(map[string]struct{}, len(gs.Balances))
	for i, b := range gs.Balances {
		if _, ok := strategies[b.StrategyAddress]; !ok {
			return fmt.Errorf("balance at index %d references unknown strategy %s", i, b.StrategyAddress)
		}
		if _, err := sdk.AccAddressFromBech32(b.Holder); err != nil {
			return fmt.Errorf("invalid holder address at index %d: %w", i, err)
		}
		if b.Shares.IsNil() || !b.Shares.IsPositive() {
			return fmt.Errorf("balance at index %d must be positive", i)
		}
		key := b.StrategyAddress + "/" + b.Holder
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate balance for holder %s in strategy %s", b.Holder, b.StrategyAddress)
		}
		seen[key] = struct{}{}
	}
	return nil
}
