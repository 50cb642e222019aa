package mocks

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/provlabs/strategy/types"
)

var _ types.BankKeeper = &BankKeeper{}

// BankKeeper is a store-backed bank. Balances live in the multistore, so writes made in a
// cached context are discarded along with it.
type BankKeeper struct {
	Balances collections.Map[collections.Pair[sdk.AccAddress, string], math.Int]
}

// NewBankKeeper creates a BankKeeper on the given store.
func NewBankKeeper(storeService store.KVStoreService) *BankKeeper {
	builder := collections.NewSchemaBuilder(storeService)
	b := &BankKeeper{
		Balances: collections.NewMap(builder, collections.NewPrefix(0), "balances",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey), sdk.IntValue),
	}
	if _, err := builder.Build(); err != nil {
		panic(err)
	}
	return b
}

// GetBalance returns the balance of addr in denom.
func (b *BankKeeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, b.balance(ctx, addr, denom))
}

// SendCoins moves amt from fromAddr to toAddr, failing with insufficient funds when the
// sender cannot cover every coin.
func (b *BankKeeper) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amt.String())
	}
	for _, coin := range amt {
		have := b.balance(ctx, fromAddr, coin.Denom)
		if have.LT(coin.Amount) {
			return sdkerrors.ErrInsufficientFunds.Wrapf("spendable balance %s%s is smaller than %s", have, coin.Denom, coin)
		}
	}
	for _, coin := range amt {
		if err := b.add(ctx, fromAddr, coin.Denom, coin.Amount.Neg()); err != nil {
			return err
		}
		if err := b.add(ctx, toAddr, coin.Denom, coin.Amount); err != nil {
			return err
		}
	}
	return nil
}

// MintCoins creates amt out of thin air and credits it to addr.
func (b *BankKeeper) MintCoins(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return sdkerrors.ErrInvalidCoins.Wrap(amt.String())
	}
	for _, coin := range amt {
		if err := b.add(ctx, addr, coin.Denom, coin.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (b *BankKeeper) balance(ctx context.Context, addr sdk.AccAddress, denom string) math.Int {
	amt, err := b.Balances.Get(ctx, collections.Join(addr, denom))
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt()
	}
	if err != nil {
		panic(fmt.Errorf("failed to read balance of %s: %w", addr, err))
	}
	return amt
}

func (b *BankKeeper) add(ctx context.Context, addr sdk.AccAddress, denom string, delta math.Int) error {
	next := b.balance(ctx, addr, denom).Add(delta)
	if next.IsNegative() {
		return sdkerrors.ErrInsufficientFunds.Wrapf("%s%s", delta.Neg(), denom)
	}
	key := collections.Join(addr, denom)
	if next.IsZero() {
		return b.Balances.Remove(ctx, key)
	}
	return b.Balances.Set(ctx, key, next)
}
