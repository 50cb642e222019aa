package types

import (
	"cosmossdk.io/collections"
	"github.com/cometbft/cometbft/crypto"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "strategy"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// GovModuleName duplicates the gov module's name to avoid a dependency with x/gov.
	// It should be synced with the gov module's name if it is ever changed.
	// See: https://github.com/cosmos/cosmos-sdk/blob/v0.52.0-beta.2/x/gov/types/keys.go#L9
	GovModuleName = "gov"
)

var (
	// StrategiesKeyPrefix is the prefix to retrieve all Strategies
	StrategiesKeyPrefix = collections.NewPrefix(0)
	// StrategiesName is a human-readable name for the strategies collection.
	StrategiesName = "strategies"
	// BalancesKeyPrefix is the prefix of the (strategy, holder) share balances.
	BalancesKeyPrefix = collections.NewPrefix(1)
	// BalancesName is a human-readable name for the share balances collection.
	BalancesName = "balances"
	// TotalSupplyKeyPrefix is the prefix of the per-strategy share supply.
	TotalSupplyKeyPrefix = collections.NewPrefix(2)
	// TotalSupplyName is a human-readable name for the total supply collection.
	TotalSupplyName = "total_supply"
)

// GetStrategyAddress returns the account address for the strategy with the given name.
func GetStrategyAddress(name string) sdk.AccAddress {
	return sdk.AccAddress(crypto.AddressHash([]byte(ModuleName + "/" + name)))
}
