package types

import (
	context "context"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AccountKeeper defines the account functionality needed to register strategy accounts.
type AccountKeeper interface {
	HasAccount(ctx context.Context, addr sdk.AccAddress) bool
	NewAccountWithAddress(ctx context.Context, addr sdk.AccAddress) sdk.AccountI
	SetAccount(ctx context.Context, acc sdk.AccountI)
}

// BankKeeper defines the bank functionality needed to move the underlying asset.
type BankKeeper interface {
	SendCoins(ctx context.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// LendingPool is the external money market the strategy deploys its assets into.
//
// BalanceOf is the amount a supplier can claim, including accrued interest. It moves
// outside of this module's control. AvailableLiquidity is what the pool can pay out
// right now and may be lower than the sum of all claims when borrowers have drawn the
// pool down.
type LendingPool interface {
	Supply(ctx context.Context, supplier sdk.AccAddress, amount sdk.Coin) error
	Withdraw(ctx context.Context, supplier, recipient sdk.AccAddress, amount sdk.Coin) error
	BalanceOf(ctx context.Context, supplier sdk.AccAddress, denom string) (math.Int, error)
	AvailableLiquidity(ctx context.Context, denom string) (math.Int, error)
}
