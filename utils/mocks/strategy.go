package mocks

import (
	"testing"
	"time"

	"cosmossdk.io/core/header"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	codectestutil "github.com/cosmos/cosmos-sdk/codec/testutil"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/std"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	moduletestutil "github.com/cosmos/cosmos-sdk/types/module/testutil"
	"github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/provlabs/strategy/keeper"
	"github.com/provlabs/strategy/types"
)

const (
	accountStoreKey = "acc"
	bankStoreKey    = "bank"
	poolStoreKey    = "lendingpool"
)

// Collaborators are the mocked keepers a strategy keeper is wired to.
type Collaborators struct {
	AccountKeeper *AccountKeeper
	BankKeeper    *BankKeeper
	LendingPool   *LendingPool
}

// NewStrategyKeeper returns an instance of the Keeper with all dependencies mocked.
// Every mock keeps its state in its own store of the returned context's multistore.
func NewStrategyKeeper(
	t testing.TB,
) (sdk.Context, *keeper.Keeper, Collaborators) {
	t.Helper()

	keys := storetypes.NewKVStoreKeys(types.StoreKey, accountStoreKey, bankStoreKey, poolStoreKey)
	ctx := testutil.DefaultContextWithKeys(keys, nil, nil)

	bank := NewBankKeeper(runtime.NewKVStoreService(keys[bankStoreKey]))
	mocks := Collaborators{
		AccountKeeper: NewAccountKeeper(runtime.NewKVStoreService(keys[accountStoreKey])),
		BankKeeper:    bank,
		LendingPool:   NewLendingPool(runtime.NewKVStoreService(keys[poolStoreKey]), bank),
	}

	k := keeper.NewKeeper(
		runtime.NewKVStoreService(keys[types.StoreKey]),
		addresscodec.NewBech32Codec("cosmos"),
		authtypes.NewModuleAddress(types.GovModuleName),
		mocks.AccountKeeper,
		mocks.BankKeeper,
		mocks.LendingPool,
	)

	now := time.Now().UTC()
	ctx = ctx.WithBlockHeight(1).WithBlockTime(now).WithHeaderInfo(header.Info{Height: 1, Time: now})
	return ctx, k, mocks
}

// MakeTestEncodingConfig is a modified testutil.MakeTestEncodingConfig that
// sets a custom Bech32 prefix in the interface registry.
func MakeTestEncodingConfig(prefix string, modules ...module.AppModuleBasic) moduletestutil.TestEncodingConfig {
	aminoCodec := codec.NewLegacyAmino()
	interfaceRegistry := codectestutil.CodecOptions{
		AccAddressPrefix: prefix,
	}.NewInterfaceRegistry()
	protoCodec := codec.NewProtoCodec(interfaceRegistry)

	encCfg := moduletestutil.TestEncodingConfig{
		InterfaceRegistry: interfaceRegistry,
		Codec:             protoCodec,
		TxConfig:          tx.NewTxConfig(protoCodec, tx.DefaultSignModes),
		Amino:             aminoCodec,
	}

	mb := module.NewBasicManager(modules...)

	std.RegisterLegacyAminoCodec(encCfg.Amino)
	std.RegisterInterfaces(encCfg.InterfaceRegistry)
	mb.RegisterLegacyAminoCodec(encCfg.Amino)
	mb.RegisterInterfaces(encCfg.InterfaceRegistry)

	return encCfg
}
