package keeper

import (
	"bytes"
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
)

var _ types.MsgServer = &msgServer{}

type msgServer struct {
	*Keeper
}

func NewMsgServer(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// CreateStrategy registers a new strategy. Only the module authority may create strategies.
func (k msgServer) CreateStrategy(goCtx context.Context, msg *types.MsgCreateStrategy) (*types.MsgCreateStrategyResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
	}
	if err := k.validateAuthority(msg.Authority); err != nil {
		return nil, err
	}

	strategy, err := k.Keeper.CreateStrategy(ctx, msg.Name, msg.Asset, msg.Vault)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateStrategyResponse{StrategyAddress: strategy.Address}, nil
}

// Deposit deposits assets into a strategy.
func (k msgServer) Deposit(goCtx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
	}

	shares, err := k.Keeper.Deposit(ctx,
		sdk.MustAccAddressFromBech32(msg.StrategyAddress),
		sdk.MustAccAddressFromBech32(msg.Caller),
		sdk.MustAccAddressFromBech32(msg.Receiver),
		msg.Assets,
	)
	if err != nil {
		return nil, err
	}

	return &types.MsgDepositResponse{Shares: shares}, nil
}

// Withdraw withdraws assets from a strategy.
func (k msgServer) Withdraw(goCtx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
	}

	shares, err := k.Keeper.Withdraw(ctx,
		sdk.MustAccAddressFromBech32(msg.StrategyAddress),
		sdk.MustAccAddressFromBech32(msg.Caller),
		sdk.MustAccAddressFromBech32(msg.Receiver),
		sdk.MustAccAddressFromBech32(msg.Owner),
		msg.Assets,
	)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawResponse{Shares: shares}, nil
}

// UpdateDebt moves the parent vault's position in a strategy towards the target debt.
func (k msgServer) UpdateDebt(goCtx context.Context, msg *types.MsgUpdateDebt) (*types.MsgUpdateDebtResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, sdkerrors.Wrap(types.ErrInvalidRequest, err.Error())
	}

	debt, err := k.Keeper.UpdateDebt(ctx,
		sdk.MustAccAddressFromBech32(msg.StrategyAddress),
		sdk.MustAccAddressFromBech32(msg.Vault),
		msg.TargetDebt,
	)
	if err != nil {
		return nil, err
	}

	return &types.MsgUpdateDebtResponse{Debt: debt}, nil
}

// validateAuthority checks that addr is the module authority.
func (k msgServer) validateAuthority(addr string) error {
	authority, err := k.addressCodec.StringToBytes(addr)
	if err != nil {
		return sdkerrors.Wrapf(types.ErrInvalidRequest, "invalid authority address %q: %s", addr, err)
	}
	if !bytes.Equal(authority, k.authority) {
		expected, _ := k.addressCodec.BytesToString(k.authority)
		return sdkerrors.Wrapf(types.ErrUnauthorized, "expected authority %s, got %s", expected, addr)
	}
	return nil
}
