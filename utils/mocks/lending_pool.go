package mocks

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/provlabs/strategy/interest"
	"github.com/provlabs/strategy/types"
)

// LendingPoolName names the reserve account of the simulated pool.
const LendingPoolName = "lendingpool"

var _ types.LendingPool = &LendingPool{}

// LendingPool simulates a money market. Supplied assets sit in the Reserve account and
// every supplier holds a claim on them. Claims grow with Accrue and liquidity shrinks
// with Borrow, which is how tests move the pool's reported balance and available
// liquidity independently of the strategy.
type LendingPool struct {
	Bank    *BankKeeper
	Reserve sdk.AccAddress
	Claims  collections.Map[collections.Pair[sdk.AccAddress, string], math.Int]
}

// NewLendingPool creates a pool on the given store that holds its reserve in bank.
func NewLendingPool(storeService store.KVStoreService, bank *BankKeeper) *LendingPool {
	builder := collections.NewSchemaBuilder(storeService)
	p := &LendingPool{
		Bank:    bank,
		Reserve: authtypes.NewModuleAddress(LendingPoolName),
		Claims: collections.NewMap(builder, collections.NewPrefix(0), "claims",
			collections.PairKeyCodec(sdk.AccAddressKey, collections.StringKey), sdk.IntValue),
	}
	if _, err := builder.Build(); err != nil {
		panic(err)
	}
	return p
}

// Supply moves amount from supplier into the reserve and grows the supplier's claim.
func (p *LendingPool) Supply(ctx context.Context, supplier sdk.AccAddress, amount sdk.Coin) error {
	if !amount.IsPositive() {
		return fmt.Errorf("supply amount must be positive: %s", amount)
	}
	if err := p.Bank.SendCoins(ctx, supplier, p.Reserve, sdk.NewCoins(amount)); err != nil {
		return fmt.Errorf("failed to supply %s: %w", amount, err)
	}
	return p.addClaim(ctx, supplier, amount.Denom, amount.Amount)
}

// Withdraw pays amount out of the reserve to recipient against supplier's claim.
func (p *LendingPool) Withdraw(ctx context.Context, supplier, recipient sdk.AccAddress, amount sdk.Coin) error {
	if !amount.IsPositive() {
		return fmt.Errorf("withdraw amount must be positive: %s", amount)
	}
	claim, err := p.BalanceOf(ctx, supplier, amount.Denom)
	if err != nil {
		return err
	}
	if claim.LT(amount.Amount) {
		return fmt.Errorf("insufficient claim: %s < %s", claim, amount.Amount)
	}
	available, err := p.AvailableLiquidity(ctx, amount.Denom)
	if err != nil {
		return err
	}
	if available.LT(amount.Amount) {
		return fmt.Errorf("insufficient liquidity: %s < %s", available, amount.Amount)
	}
	if err := p.Bank.SendCoins(ctx, p.Reserve, recipient, sdk.NewCoins(amount)); err != nil {
		return err
	}
	return p.addClaim(ctx, supplier, amount.Denom, amount.Amount.Neg())
}

// BalanceOf returns supplier's claim on the pool.
func (p *LendingPool) BalanceOf(ctx context.Context, supplier sdk.AccAddress, denom string) (math.Int, error) {
	claim, err := p.Claims.Get(ctx, collections.Join(supplier, denom))
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return claim, err
}

// AvailableLiquidity returns what the reserve can pay out right now.
func (p *LendingPool) AvailableLiquidity(ctx context.Context, denom string) (math.Int, error) {
	return p.Bank.GetBalance(ctx, p.Reserve, denom).Amount, nil
}

// Accrue compounds supplier's claim at the annual rate for periodSeconds. Positive interest
// is minted into the reserve as if borrowers had repaid it. Returns the interest applied.
func (p *LendingPool) Accrue(ctx context.Context, supplier sdk.AccAddress, denom, rate string, periodSeconds int64) (math.Int, error) {
	claim, err := p.BalanceOf(ctx, supplier, denom)
	if err != nil {
		return math.Int{}, err
	}
	earned, err := interest.CalculateInterestEarned(sdk.NewCoin(denom, claim), rate, periodSeconds)
	if err != nil {
		return math.Int{}, err
	}
	if earned.IsPositive() {
		if err := p.Bank.MintCoins(ctx, p.Reserve, sdk.NewCoins(sdk.NewCoin(denom, earned))); err != nil {
			return math.Int{}, err
		}
	}
	if claim.Add(earned).IsNegative() {
		earned = claim.Neg()
	}
	return earned, p.addClaim(ctx, supplier, denom, earned)
}

// Borrow lends amount out of the reserve to borrower. Claims are unchanged, so the pool's
// available liquidity drops below what suppliers are owed.
func (p *LendingPool) Borrow(ctx context.Context, borrower sdk.AccAddress, amount sdk.Coin) error {
	return p.Bank.SendCoins(ctx, p.Reserve, borrower, sdk.NewCoins(amount))
}

// DrainTo borrows everything but floor out of the reserve, leaving floor available.
func (p *LendingPool) DrainTo(ctx context.Context, borrower sdk.AccAddress, denom string, floor math.Int) error {
	available, err := p.AvailableLiquidity(ctx, denom)
	if err != nil {
		return err
	}
	if available.LTE(floor) {
		return nil
	}
	return p.Borrow(ctx, borrower, sdk.NewCoin(denom, available.Sub(floor)))
}

func (p *LendingPool) addClaim(ctx context.Context, supplier sdk.AccAddress, denom string, delta math.Int) error {
	claim, err := p.BalanceOf(ctx, supplier, denom)
	if err != nil {
		return err
	}
	key := collections.Join(supplier, denom)
	next := claim.Add(delta)
	if next.IsZero() {
		return p.Claims.Remove(ctx, key)
	}
	return p.Claims.Set(ctx, key, next)
}
