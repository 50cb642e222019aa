package types

import (
	"time"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
)

// Holder is a single share ledger entry.
type Holder struct {
	Address string   `json:"address"`
	Shares  math.Int `json:"shares"`
}

// QueryStrategiesRequest requests a page of registered strategies.
type QueryStrategiesRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// QueryStrategiesResponse is the response of the Strategies query.
type QueryStrategiesResponse struct {
	Strategies []Strategy          `json:"strategies"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryStrategyRequest requests a strategy and its current accounting state.
type QueryStrategyRequest struct {
	StrategyAddress string `json:"strategy_address"`
}

// QueryStrategyResponse is the response of the Strategy query.
type QueryStrategyResponse struct {
	Strategy       Strategy `json:"strategy"`
	TotalAssets    math.Int `json:"total_assets"`
	IdleAssets     math.Int `json:"idle_assets"`
	DeployedAssets math.Int `json:"deployed_assets"`
	TotalSupply    math.Int `json:"total_supply"`
}

// QueryBalanceRequest requests the share balance of a holder.
type QueryBalanceRequest struct {
	StrategyAddress string `json:"strategy_address"`
	Holder          string `json:"holder"`
}

// QueryBalanceResponse is the response of the Balance query.
type QueryBalanceResponse struct {
	Shares      math.Int `json:"shares"`
	Assets      math.Int `json:"assets"`
	MaxWithdraw math.Int `json:"max_withdraw"`
}

// QueryHoldersRequest requests a page of share holders of a strategy.
type QueryHoldersRequest struct {
	StrategyAddress string             `json:"strategy_address"`
	Pagination      *query.PageRequest `json:"pagination,omitempty"`
}

// QueryHoldersResponse is the response of the Holders query.
type QueryHoldersResponse struct {
	Holders    []Holder            `json:"holders"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

// QueryConvertToSharesRequest requests the shares an asset amount is worth.
type QueryConvertToSharesRequest struct {
	StrategyAddress string   `json:"strategy_address"`
	Assets          math.Int `json:"assets"`
}

// QueryConvertToSharesResponse is the response of the ConvertToShares query.
type QueryConvertToSharesResponse struct {
	Shares math.Int `json:"shares"`
}

// QueryConvertToAssetsRequest requests the assets a share amount is worth.
type QueryConvertToAssetsRequest struct {
	StrategyAddress string   `json:"strategy_address"`
	Shares          math.Int `json:"shares"`
}

// QueryConvertToAssetsResponse is the response of the ConvertToAssets query.
type QueryConvertToAssetsResponse struct {
	Assets math.Int `json:"assets"`
}

// QueryMaxDepositRequest requests the deposit ceiling for a receiver.
type QueryMaxDepositRequest struct {
	StrategyAddress string `json:"strategy_address"`
	Receiver        string `json:"receiver"`
}

// QueryMaxDepositResponse is the response of the MaxDeposit query.
type QueryMaxDepositResponse struct {
	Assets math.Int `json:"assets"`
}

// QueryMaxWithdrawRequest requests the withdrawal ceiling for an owner.
type QueryMaxWithdrawRequest struct {
	StrategyAddress string `json:"strategy_address"`
	Owner           string `json:"owner"`
}

// QueryMaxWithdrawResponse is the response of the MaxWithdraw query.
type QueryMaxWithdrawResponse struct {
	Assets math.Int `json:"assets"`
}

// QueryEstimateDepositRequest requests the shares a deposit would mint.
type QueryEstimateDepositRequest struct {
	StrategyAddress string   `json:"strategy_address"`
	Assets          sdk.Coin `json:"assets"`
}

// QueryEstimateDepositResponse is the response of the EstimateDeposit query.
type QueryEstimateDepositResponse struct {
	Shares math.Int  `json:"shares"`
	Height int64     `json:"height"`
	Time   time.Time `json:"time"`
}

// QueryEstimateWithdrawRequest requests the shares a withdrawal would burn.
type QueryEstimateWithdrawRequest struct {
	StrategyAddress string   `json:"strategy_address"`
	Assets          sdk.Coin `json:"assets"`
}

// QueryEstimateWithdrawResponse is the response of the EstimateWithdraw query.
type QueryEstimateWithdrawResponse struct {
	Shares math.Int  `json:"shares"`
	Height int64     `json:"height"`
	Time   time.Time `json:"time"`
}
