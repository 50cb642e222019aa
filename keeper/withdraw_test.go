package keeper_test

import (
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/interest"
	"github.com/provlabs/strategy/types"
)

func (s *TestSuite) TestMaxWithdraw() {
	strategy := s.createStrategy("strategy_name")

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")
	s.Assert().True(maxAssets.IsZero(), "MaxWithdraw before any debt")

	newDebt := vaultFunds.QuoRaw(2)
	s.provideDebt(strategy, newDebt)

	maxAssets, err = s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")
	s.Assert().Equal(newDebt.String(), maxAssets.String(), "MaxWithdraw with full liquidity")
}

func (s *TestSuite) TestMaxWithdrawNoLiquidity() {
	strategy := s.createStrategy("strategy_name")
	newDebt := vaultFunds.QuoRaw(2)
	s.provideDebt(strategy, newDebt)

	s.drainPool()

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")
	s.Assert().Equal(unit.String(), maxAssets.String(), "MaxWithdraw capped by pool liquidity")

	// the claim itself is untouched by the drain
	assets, err := s.k.ConvertToAssets(s.ctx, strategy, newDebt)
	s.Require().NoError(err, "ConvertToAssets")
	s.Assert().Equal(newDebt.String(), assets.String(), "full claim")
}

func (s *TestSuite) TestMaxWithdrawCountsIdle() {
	strategy := s.createStrategy("strategy_name")
	s.provideDebt(strategy, unit.MulRaw(100))
	s.drainPool()
	s.fund(strategy.GetAddress(), unit.MulRaw(3))

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")
	s.Assert().Equal(unit.MulRaw(4).String(), maxAssets.String(), "idle plus available pool liquidity")
}

func (s *TestSuite) TestWithdrawMoreThanMax() {
	strategy := s.createStrategy("strategy_name")
	newDebt := vaultFunds.QuoRaw(2)
	s.provideDebt(strategy, newDebt)

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")

	_, err = s.k.Withdraw(s.ctx, strategy.GetAddress(), s.vaultAddr, s.vaultAddr, s.vaultAddr, s.coin(maxAssets.Add(unit)))
	s.Require().ErrorIs(err, types.ErrExceedsMaxWithdraw, "Withdraw")
	s.Assert().ErrorContains(err, "withdraw more than max", "Withdraw error message")

	s.assertShares(strategy, s.vaultAddr, newDebt)
	s.assertTotalSupply(strategy, newDebt)
	s.assertPoolClaim(strategy, newDebt)
	s.assertBalance(s.vaultAddr, vaultFunds.Sub(newDebt))
}

func (s *TestSuite) TestWithdraw() {
	strategy := s.createStrategy("strategy_name")
	newDebt := vaultFunds.QuoRaw(2)
	s.provideDebt(strategy, newDebt)

	s.assertShares(strategy, s.vaultAddr, newDebt)
	s.assertTotalSupply(strategy, newDebt)
	s.assertBalance(strategy.GetAddress(), sdkmath.ZeroInt())
	s.assertBalance(s.vaultAddr, vaultFunds.QuoRaw(2))
	s.assertPoolClaim(strategy, newDebt)

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")
	shares, err := s.k.Withdraw(s.ctx, strategy.GetAddress(), s.vaultAddr, s.vaultAddr, s.vaultAddr, s.coin(maxAssets))
	s.Require().NoError(err, "Withdraw")
	s.Assert().Equal(newDebt.String(), shares.String(), "shares burned")

	s.assertShares(strategy, s.vaultAddr, sdkmath.ZeroInt())
	s.assertTotalSupply(strategy, sdkmath.ZeroInt())
	s.assertBalance(strategy.GetAddress(), sdkmath.ZeroInt())
	s.assertBalance(s.vaultAddr, vaultFunds)
	s.assertPoolClaim(strategy, sdkmath.ZeroInt())

	event := s.requireEvent(types.EventTypeWithdraw)
	s.Assert().Contains(event.Attributes, abciAttr(types.AttributeKeyShares, newDebt.String()), "shares attribute")
	s.Assert().Contains(event.Attributes, abciAttr(types.AttributeKeyOwner, s.vaultAddr.String()), "owner attribute")
}

func (s *TestSuite) TestWithdrawWithInterest() {
	strategy := s.createStrategy("strategy_name")
	newDebt := unit.MulRaw(100)
	s.provideDebt(strategy, newDebt)

	earned, err := s.mocks.LendingPool.Accrue(s.ctx, strategy.GetAddress(), assetDenom, "0.10", interest.SecondsPerYear/2)
	s.Require().NoError(err, "Accrue")
	s.Require().True(earned.IsPositive(), "interest should be positive")

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")
	s.Assert().Equal(newDebt.Add(earned).String(), maxAssets.String(), "MaxWithdraw includes interest")

	_, err = s.k.Withdraw(s.ctx, strategy.GetAddress(), s.vaultAddr, s.vaultAddr, s.vaultAddr, s.coin(maxAssets))
	s.Require().NoError(err, "Withdraw")

	s.assertShares(strategy, s.vaultAddr, sdkmath.ZeroInt())
	s.assertTotalSupply(strategy, sdkmath.ZeroInt())
	s.assertBalance(s.vaultAddr, vaultFunds.Add(earned))
}

func (s *TestSuite) TestWithdrawLowLiquidity() {
	strategy := s.createStrategy("strategy_name")
	newDebt := vaultFunds
	s.provideDebt(strategy, newDebt)

	s.assertShares(strategy, s.vaultAddr, newDebt)
	s.assertTotalSupply(strategy, newDebt)
	s.assertBalance(strategy.GetAddress(), sdkmath.ZeroInt())
	s.assertBalance(s.vaultAddr, sdkmath.ZeroInt())
	s.assertPoolClaim(strategy, newDebt)

	s.drainPool()

	burned, err := s.k.ConvertToShares(s.ctx, strategy, unit)
	s.Require().NoError(err, "ConvertToShares")
	supplyAfterWithdraw := newDebt.Sub(burned)

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")
	s.Require().Equal(unit.String(), maxAssets.String(), "MaxWithdraw")

	shares, err := s.k.Withdraw(s.ctx, strategy.GetAddress(), s.vaultAddr, s.vaultAddr, s.vaultAddr, s.coin(maxAssets))
	s.Require().NoError(err, "Withdraw")
	s.Assert().Equal(burned.String(), shares.String(), "only the shares for the paid assets are burned")

	s.assertShares(strategy, s.vaultAddr, newDebt.Sub(unit))
	s.assertTotalSupply(strategy, supplyAfterWithdraw)
	s.assertBalance(strategy.GetAddress(), sdkmath.ZeroInt())
	s.assertBalance(s.vaultAddr, unit)
	s.assertPoolClaim(strategy, newDebt.Sub(unit))

	// the residual claim is still worth its share of the assets
	residual, err := s.k.ConvertToAssets(s.ctx, strategy, newDebt.Sub(unit))
	s.Require().NoError(err, "ConvertToAssets")
	s.Assert().Equal(newDebt.Sub(unit).String(), residual.String(), "residual claim")
}

func (s *TestSuite) TestWithdrawPaysIdleFirst() {
	strategy := s.createStrategy("strategy_name")
	s.provideDebt(strategy, unit.MulRaw(1_000))
	s.fund(strategy.GetAddress(), unit.MulRaw(100))

	shares, err := s.k.Withdraw(s.ctx, strategy.GetAddress(), s.vaultAddr, s.vaultAddr, s.vaultAddr, s.coin(unit.MulRaw(50)))
	s.Require().NoError(err, "Withdraw")

	// 50 * 1000 / 1100, floored
	s.Assert().Equal(sdkmath.NewInt(45_454_545).String(), shares.String(), "shares burned")
	s.assertBalance(strategy.GetAddress(), unit.MulRaw(50))
	s.assertPoolClaim(strategy, unit.MulRaw(1_000))

	// the remainder comes out of the pool
	shares, err = s.k.Withdraw(s.ctx, strategy.GetAddress(), s.vaultAddr, s.vaultAddr, s.vaultAddr, s.coin(unit.MulRaw(70)))
	s.Require().NoError(err, "second Withdraw")
	s.Assert().True(shares.IsPositive(), "second withdraw burns shares")
	s.assertBalance(strategy.GetAddress(), sdkmath.ZeroInt())
	s.assertPoolClaim(strategy, unit.MulRaw(980))
}

func (s *TestSuite) TestWithdrawErrors() {
	strategy := s.createStrategy("strategy_name")
	s.provideDebt(strategy, unit.MulRaw(100))
	other := sdk.AccAddress("other_______________")

	tests := []struct {
		name     string
		strategy sdk.AccAddress
		caller   sdk.AccAddress
		owner    sdk.AccAddress
		assets   sdk.Coin
		expErr   error
	}{
		{
			name:     "unknown strategy",
			strategy: sdk.AccAddress("missing_____________"),
			caller:   s.vaultAddr,
			owner:    s.vaultAddr,
			assets:   s.coin(unit),
			expErr:   types.ErrStrategyNotFound,
		},
		{
			name:     "caller is not owner",
			strategy: strategy.GetAddress(),
			caller:   other,
			owner:    s.vaultAddr,
			assets:   s.coin(unit),
			expErr:   types.ErrUnauthorized,
		},
		{
			name:     "wrong denom",
			strategy: strategy.GetAddress(),
			caller:   s.vaultAddr,
			owner:    s.vaultAddr,
			assets:   sdk.NewCoin("uatom", unit),
			expErr:   types.ErrInvalidRequest,
		},
		{
			name:     "owner without shares",
			strategy: strategy.GetAddress(),
			caller:   other,
			owner:    other,
			assets:   s.coin(unit),
			expErr:   types.ErrExceedsMaxWithdraw,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := s.k.Withdraw(s.ctx, tc.strategy, tc.caller, tc.caller, tc.owner, tc.assets)
			s.Require().ErrorIs(err, tc.expErr, "Withdraw error")
			s.assertShares(strategy, s.vaultAddr, unit.MulRaw(100))
			s.assertTotalSupply(strategy, unit.MulRaw(100))
			s.assertPoolClaim(strategy, unit.MulRaw(100))
		})
	}
}

func (s *TestSuite) TestMaxWithdrawBelowOneShare() {
	strategy := types.NewStrategy("uneven", assetDenom, s.vaultAddr.String())
	s.k.InitGenesis(s.ctx, &types.GenesisState{
		Strategies: []types.Strategy{strategy},
		Balances: []types.GenesisBalance{
			{StrategyAddress: strategy.Address, Holder: s.vaultAddr.String(), Shares: sdkmath.NewInt(2)},
			{StrategyAddress: strategy.Address, Holder: s.userAddr.String(), Shares: sdkmath.NewInt(1)},
		},
	})
	// 10 assets over 3 shares: one share claims 3 assets, and 3 assets price to 0 shares.
	s.fund(strategy.GetAddress(), sdkmath.NewInt(10))

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.userAddr)
	s.Require().NoError(err, "MaxWithdraw for one share")
	s.Assert().True(maxAssets.IsZero(), "MaxWithdraw should be zero when the claim is worth less than one share, got %s", maxAssets)

	_, err = s.k.Withdraw(s.ctx, strategy.GetAddress(), s.userAddr, s.userAddr, s.userAddr, s.coin(sdkmath.NewInt(3)))
	s.Assert().ErrorIs(err, types.ErrExceedsMaxWithdraw, "Withdraw of the unpriceable claim")
	s.assertShares(strategy, s.userAddr, sdkmath.NewInt(1))

	maxAssets, err = s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw for two shares")
	s.Assert().Equal("6", maxAssets.String(), "MaxWithdraw for two shares")

	shares, err := s.k.Withdraw(s.ctx, strategy.GetAddress(), s.vaultAddr, s.vaultAddr, s.vaultAddr, s.coin(maxAssets))
	s.Require().NoError(err, "Withdraw of the advertised max")
	s.Assert().Equal("1", shares.String(), "burned shares")
}

func (s *TestSuite) TestWithdrawLendingPoolFailureRollsBack() {
	strategy := s.createStrategy("strategy_name")
	s.provideDebt(strategy, vaultFunds)
	// idle assets are paid out first, so the pool step fails after a bank send in the cache
	s.fund(strategy.GetAddress(), unit)

	s.k.LendingPool = failingPool{LendingPool: s.mocks.LendingPool, failWithdraw: true}
	s.ctx = s.ctx.WithEventManager(sdk.NewEventManager())

	_, err := s.k.Withdraw(s.ctx, strategy.GetAddress(), s.vaultAddr, s.userAddr, s.vaultAddr, s.coin(unit.MulRaw(2)))
	s.Require().ErrorIs(err, errPoolPaused, "Withdraw error")
	var critical *types.CriticalError
	s.Require().ErrorAs(err, &critical, "Withdraw error should be critical")
	s.Assert().Equal("failed to withdraw from lending pool", critical.Reason, "critical reason")

	s.assertShares(strategy, s.vaultAddr, vaultFunds)
	s.assertTotalSupply(strategy, vaultFunds)
	s.assertPoolClaim(strategy, vaultFunds)
	s.assertBalance(strategy.GetAddress(), unit)
	s.assertBalance(s.userAddr, sdkmath.ZeroInt())
	s.assertNoEvent(types.EventTypeWithdraw)
}
