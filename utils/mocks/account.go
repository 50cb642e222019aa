package mocks

import (
	"context"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/provlabs/strategy/types"
)

var _ types.AccountKeeper = &AccountKeeper{}

// AccountKeeper is a store-backed account registry that records account numbers.
type AccountKeeper struct {
	Accounts      collections.Map[sdk.AccAddress, uint64]
	AccountNumber collections.Sequence
}

// NewAccountKeeper creates an AccountKeeper on the given store.
func NewAccountKeeper(storeService store.KVStoreService) *AccountKeeper {
	builder := collections.NewSchemaBuilder(storeService)
	a := &AccountKeeper{
		Accounts:      collections.NewMap(builder, collections.NewPrefix(0), "accounts", sdk.AccAddressKey, collections.Uint64Value),
		AccountNumber: collections.NewSequence(builder, collections.NewPrefix(1), "account_number"),
	}
	if _, err := builder.Build(); err != nil {
		panic(err)
	}
	return a
}

// HasAccount reports whether an account was stored at addr.
func (a *AccountKeeper) HasAccount(ctx context.Context, addr sdk.AccAddress) bool {
	found, err := a.Accounts.Has(ctx, addr)
	if err != nil {
		panic(err)
	}
	return found
}

// NewAccountWithAddress returns a base account at addr with the next account number.
func (a *AccountKeeper) NewAccountWithAddress(ctx context.Context, addr sdk.AccAddress) sdk.AccountI {
	num, err := a.AccountNumber.Next(ctx)
	if err != nil {
		panic(err)
	}
	acc := authtypes.NewBaseAccountWithAddress(addr)
	if err := acc.SetAccountNumber(num); err != nil {
		panic(err)
	}
	return acc
}

// SetAccount stores acc.
func (a *AccountKeeper) SetAccount(ctx context.Context, acc sdk.AccountI) {
	if err := a.Accounts.Set(ctx, acc.GetAddress(), acc.GetAccountNumber()); err != nil {
		panic(err)
	}
}
