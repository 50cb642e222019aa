package types

import "context"

// MsgServer is the transaction service of the strategy module.
type MsgServer interface {
	CreateStrategy(context.Context, *MsgCreateStrategy) (*MsgCreateStrategyResponse, error)
	Deposit(context.Context, *MsgDeposit) (*MsgDepositResponse, error)
	Withdraw(context.Context, *MsgWithdraw) (*MsgWithdrawResponse, error)
	UpdateDebt(context.Context, *MsgUpdateDebt) (*MsgUpdateDebtResponse, error)
}

// QueryServer is the query service of the strategy module.
type QueryServer interface {
	Strategies(context.Context, *QueryStrategiesRequest) (*QueryStrategiesResponse, error)
	Strategy(context.Context, *QueryStrategyRequest) (*QueryStrategyResponse, error)
	Balance(context.Context, *QueryBalanceRequest) (*QueryBalanceResponse, error)
	Holders(context.Context, *QueryHoldersRequest) (*QueryHoldersResponse, error)
	ConvertToShares(context.Context, *QueryConvertToSharesRequest) (*QueryConvertToSharesResponse, error)
	ConvertToAssets(context.Context, *QueryConvertToAssetsRequest) (*QueryConvertToAssetsResponse, error)
	MaxDeposit(context.Context, *QueryMaxDepositRequest) (*QueryMaxDepositResponse, error)
	MaxWithdraw(context.Context, *QueryMaxWithdrawRequest) (*QueryMaxWithdrawResponse, error)
	EstimateDeposit(context.Context, *QueryEstimateDepositRequest) (*QueryEstimateDepositResponse, error)
	EstimateWithdraw(context.Context, *QueryEstimateWithdrawRequest) (*QueryEstimateWithdrawResponse, error)
}
