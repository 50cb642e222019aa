package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/provlabs/strategy/types"
)

var _ types.QueryServer = &queryServer{}

type queryServer struct {
	*Keeper
}

// NewQueryServer creates a new QueryServer for the module.
func NewQueryServer(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

// Strategies returns a paginated list of all strategies.
func (k queryServer) Strategies(goCtx context.Context, req *types.QueryStrategiesRequest) (*types.QueryStrategiesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategies, pageRes, err := query.CollectionPaginate(
		ctx,
		k.Keeper.Strategies,
		req.Pagination,
		func(_ sdk.AccAddress, strategy types.Strategy) (types.Strategy, error) {
			return strategy, nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryStrategiesResponse{
		Strategies: strategies,
		Pagination: pageRes,
	}, nil
}

// Strategy returns the configuration and accounting state of a specific strategy.
func (k queryServer) Strategy(goCtx context.Context, req *types.QueryStrategyRequest) (*types.QueryStrategyResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}

	pos, err := k.readPosition(ctx, *strategy)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to read strategy position: %v", err)
	}

	return &types.QueryStrategyResponse{
		Strategy:       *strategy,
		TotalAssets:    pos.TotalAssets(),
		IdleAssets:     pos.Idle,
		DeployedAssets: pos.Deployed,
		TotalSupply:    pos.TotalSupply,
	}, nil
}

// Balance returns a holder's shares, what they are worth and how much of it can be withdrawn now.
func (k queryServer) Balance(goCtx context.Context, req *types.QueryBalanceRequest) (*types.QueryBalanceResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}
	holder, err := sdk.AccAddressFromBech32(req.Holder)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid holder: %v", err)
	}

	pos, err := k.readPosition(ctx, *strategy)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to read strategy position: %v", err)
	}
	shares, err := k.BalanceOf(ctx, strategy.GetAddress(), holder)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	assets, err := pos.ConvertToAssets(shares)
	if err != nil {
		return nil, toStatus(err)
	}
	maxAssets, err := pos.maxWithdraw(shares)
	if err != nil {
		return nil, toStatus(err)
	}

	return &types.QueryBalanceResponse{
		Shares:      shares,
		Assets:      assets,
		MaxWithdraw: maxAssets,
	}, nil
}

// Holders returns a paginated list of the share holders of a strategy.
func (k queryServer) Holders(goCtx context.Context, req *types.QueryHoldersRequest) (*types.QueryHoldersResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}

	holders, pageRes, err := query.CollectionPaginate(
		ctx,
		k.Keeper.Balances,
		req.Pagination,
		func(key collections.Pair[sdk.AccAddress, sdk.AccAddress], shares math.Int) (types.Holder, error) {
			return types.Holder{Address: key.K2().String(), Shares: shares}, nil
		},
		query.WithCollectionPaginationPairPrefix[sdk.AccAddress, sdk.AccAddress](strategy.GetAddress()),
	)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &types.QueryHoldersResponse{
		Holders:    holders,
		Pagination: pageRes,
	}, nil
}

// ConvertToShares returns the shares an amount of assets is worth at the current price.
func (k queryServer) ConvertToShares(goCtx context.Context, req *types.QueryConvertToSharesRequest) (*types.QueryConvertToSharesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	if req.Assets.IsNil() {
		return nil, status.Error(codes.InvalidArgument, "assets must be provided")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}

	shares, err := k.Keeper.ConvertToShares(ctx, *strategy, req.Assets)
	if err != nil {
		return nil, toStatus(err)
	}

	return &types.QueryConvertToSharesResponse{Shares: shares}, nil
}

// ConvertToAssets returns the assets an amount of shares is worth at the current price.
func (k queryServer) ConvertToAssets(goCtx context.Context, req *types.QueryConvertToAssetsRequest) (*types.QueryConvertToAssetsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	if req.Shares.IsNil() {
		return nil, status.Error(codes.InvalidArgument, "shares must be provided")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}

	assets, err := k.Keeper.ConvertToAssets(ctx, *strategy, req.Shares)
	if err != nil {
		return nil, toStatus(err)
	}

	return &types.QueryConvertToAssetsResponse{Assets: assets}, nil
}

// MaxDeposit returns the deposit ceiling for a receiver.
func (k queryServer) MaxDeposit(goCtx context.Context, req *types.QueryMaxDepositRequest) (*types.QueryMaxDepositResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}
	receiver, err := sdk.AccAddressFromBech32(req.Receiver)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid receiver: %v", err)
	}

	return &types.QueryMaxDepositResponse{Assets: k.Keeper.MaxDeposit(ctx, *strategy, receiver)}, nil
}

// MaxWithdraw returns the most an owner can withdraw right now.
func (k queryServer) MaxWithdraw(goCtx context.Context, req *types.QueryMaxWithdrawRequest) (*types.QueryMaxWithdrawResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}
	owner, err := sdk.AccAddressFromBech32(req.Owner)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid owner: %v", err)
	}

	assets, err := k.Keeper.MaxWithdraw(ctx, *strategy, owner)
	if err != nil {
		return nil, toStatus(err)
	}

	return &types.QueryMaxWithdrawResponse{Assets: assets}, nil
}

// EstimateDeposit estimates the shares a deposit of the given assets would mint.
func (k queryServer) EstimateDeposit(goCtx context.Context, req *types.QueryEstimateDepositRequest) (*types.QueryEstimateDepositResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}
	if err := strategy.ValidateAcceptedCoin(req.Assets); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid asset for strategy: %v", err)
	}

	shares, err := k.Keeper.ConvertToShares(ctx, *strategy, req.Assets.Amount)
	if err != nil {
		return nil, toStatus(err)
	}

	return &types.QueryEstimateDepositResponse{
		Shares: shares,
		Height: ctx.BlockHeight(),
		Time:   ctx.BlockTime().UTC(),
	}, nil
}

// EstimateWithdraw estimates the shares a withdrawal of the given assets would burn.
func (k queryServer) EstimateWithdraw(goCtx context.Context, req *types.QueryEstimateWithdrawRequest) (*types.QueryEstimateWithdrawResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}

	ctx := sdk.UnwrapSDKContext(goCtx)

	strategy, err := k.lookupStrategy(ctx, req.StrategyAddress)
	if err != nil {
		return nil, err
	}
	if err := strategy.ValidateAcceptedCoin(req.Assets); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid asset for strategy: %v", err)
	}

	shares, err := k.Keeper.ConvertToShares(ctx, *strategy, req.Assets.Amount)
	if err != nil {
		return nil, toStatus(err)
	}

	return &types.QueryEstimateWithdrawResponse{
		Shares: shares,
		Height: ctx.BlockHeight(),
		Time:   ctx.BlockTime().UTC(),
	}, nil
}

// lookupStrategy parses a strategy address and loads the strategy, returning gRPC status errors.
func (k queryServer) lookupStrategy(ctx sdk.Context, address string) (*types.Strategy, error) {
	if address == "" {
		return nil, status.Error(codes.InvalidArgument, "strategy_address must be provided")
	}
	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid strategy_address: %v", err)
	}
	strategy, err := k.GetStrategy(ctx, addr)
	if errors.Is(err, types.ErrStrategyNotFound) {
		return nil, status.Errorf(codes.NotFound, "strategy with address %q not found", address)
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return strategy, nil
}

// toStatus maps conversion failures to gRPC status errors.
func toStatus(err error) error {
	switch {
	case errors.Is(err, types.ErrZeroAssetsWithSupply):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, types.ErrArithmeticOverflow):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, types.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
