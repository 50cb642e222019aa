package keeper_test

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/provlabs/strategy/interest"
	"github.com/provlabs/strategy/types"
	"github.com/provlabs/strategy/utils"
)

var magnitudes = []sdkmath.Int{
	sdkmath.NewInt(1_000_000),
	sdkmath.NewInt(100_000_000),
	sdkmath.NewInt(1_000_000_000_000),
	sdkmath.NewInt(1_000_000_000_000_000_000),
}

func (s *TestSuite) TestMaxDeposit() {
	strategy := s.createStrategy("strategy_name")
	s.Assert().Equal(utils.MaxAmount, s.k.MaxDeposit(s.ctx, strategy, s.vaultAddr), "MaxDeposit")
}

func (s *TestSuite) TestConvertNoSupply() {
	strategy := s.createStrategy("strategy_name")

	for _, amount := range magnitudes {
		s.Run(amount.String(), func() {
			shares, err := s.k.ConvertToShares(s.ctx, strategy, amount)
			s.Require().NoError(err, "ConvertToShares")
			s.Assert().Equal(amount.String(), shares.String(), "ConvertToShares at no supply")

			assets, err := s.k.ConvertToAssets(s.ctx, strategy, amount)
			s.Require().NoError(err, "ConvertToAssets")
			s.Assert().Equal(amount.String(), assets.String(), "ConvertToAssets at no supply")
		})
	}
}

func (s *TestSuite) TestConvertWithSupply() {
	for _, amount := range magnitudes {
		s.Run(amount.String(), func() {
			s.SetupTest()
			strategy := s.createStrategy("strategy_name")

			total, err := s.k.TotalAssets(s.ctx, strategy)
			s.Require().NoError(err, "TotalAssets")
			s.Require().True(total.IsZero(), "new strategy should hold nothing")

			newDebt := vaultFunds.QuoRaw(2)
			s.provideDebt(strategy, newDebt)

			shares, err := s.k.ConvertToShares(s.ctx, strategy, amount)
			s.Require().NoError(err, "ConvertToShares at 1.0")
			s.Assert().Equal(amount.String(), shares.String(), "ConvertToShares at 1.0")
			assets, err := s.k.ConvertToAssets(s.ctx, strategy, amount)
			s.Require().NoError(err, "ConvertToAssets at 1.0")
			s.Assert().Equal(amount.String(), assets.String(), "ConvertToAssets at 1.0")

			// a plain transfer doubles the price per share
			s.fund(strategy.GetAddress(), newDebt)
			s.assertBalance(strategy.GetAddress(), newDebt)

			assets, err = s.k.ConvertToAssets(s.ctx, strategy, amount)
			s.Require().NoError(err, "ConvertToAssets at 2.0")
			s.Assert().Equal(amount.MulRaw(2).String(), assets.String(), "ConvertToAssets at 2.0")
			shares, err = s.k.ConvertToShares(s.ctx, strategy, amount)
			s.Require().NoError(err, "ConvertToShares at 2.0")
			s.Assert().Equal(amount.QuoRaw(2).String(), shares.String(), "ConvertToShares at 2.0")
		})
	}
}

func (s *TestSuite) TestTotalAssets() {
	strategy := s.createStrategy("strategy_name")

	total, err := s.k.TotalAssets(s.ctx, strategy)
	s.Require().NoError(err, "TotalAssets")
	s.Assert().True(total.IsZero(), "TotalAssets of new strategy")

	s.provideDebt(strategy, vaultFunds)

	total, err = s.k.TotalAssets(s.ctx, strategy)
	s.Require().NoError(err, "TotalAssets")
	s.Assert().Equal(vaultFunds.String(), total.String(), "TotalAssets")
	s.assertBalance(s.vaultAddr, sdkmath.ZeroInt())
	s.assertBalance(strategy.GetAddress(), sdkmath.ZeroInt())
	s.assertPoolClaim(strategy, vaultFunds)

	deployed, err := s.k.DeployedAssets(s.ctx, strategy)
	s.Require().NoError(err, "DeployedAssets")
	s.Assert().Equal(vaultFunds.String(), deployed.String(), "DeployedAssets")
	s.Assert().True(s.k.IdleAssets(s.ctx, strategy).IsZero(), "IdleAssets")
}

func (s *TestSuite) TestTotalAssetsFollowsInterest() {
	strategy := s.createStrategy("strategy_name")
	s.provideDebt(strategy, unit.MulRaw(100))

	earned, err := s.mocks.LendingPool.Accrue(s.ctx, strategy.GetAddress(), assetDenom, "0.05", interest.SecondsPerYear)
	s.Require().NoError(err, "Accrue")
	s.Require().Equal(sdkmath.NewInt(5_127_109).String(), earned.String(), "interest earned")

	total, err := s.k.TotalAssets(s.ctx, strategy)
	s.Require().NoError(err, "TotalAssets")
	s.Assert().Equal(unit.MulRaw(100).Add(earned).String(), total.String(), "TotalAssets after accrual")

	assets, err := s.k.ConvertToAssets(s.ctx, strategy, unit.MulRaw(100))
	s.Require().NoError(err, "ConvertToAssets")
	s.Assert().Equal(total.String(), assets.String(), "all shares are worth all assets")
}

func (s *TestSuite) TestBalanceOf() {
	strategy := s.createStrategy("strategy_name")

	newDebt := vaultFunds.QuoRaw(2)
	s.provideDebt(strategy, newDebt)
	s.assertShares(strategy, s.vaultAddr, newDebt)

	more := vaultFunds.QuoRaw(4)
	s.provideDebt(strategy, newDebt.Add(more))
	s.assertShares(strategy, s.vaultAddr, newDebt.Add(more))
}

func (s *TestSuite) TestZeroAssetsWithSupply() {
	strategy := types.NewStrategy("orphaned", assetDenom, s.vaultAddr.String())
	s.k.InitGenesis(s.ctx, &types.GenesisState{
		Strategies: []types.Strategy{strategy},
		Balances: []types.GenesisBalance{
			{StrategyAddress: strategy.Address, Holder: s.vaultAddr.String(), Shares: unit},
		},
	})

	_, err := s.k.ConvertToShares(s.ctx, strategy, unit)
	s.Assert().ErrorIs(err, types.ErrZeroAssetsWithSupply, "ConvertToShares")

	assets, err := s.k.ConvertToAssets(s.ctx, strategy, unit)
	s.Require().NoError(err, "ConvertToAssets")
	s.Assert().True(assets.IsZero(), "ConvertToAssets should value shares at zero")

	maxAssets, err := s.k.MaxWithdraw(s.ctx, strategy, s.vaultAddr)
	s.Require().NoError(err, "MaxWithdraw")
	s.Assert().True(maxAssets.IsZero(), "MaxWithdraw")

	s.fund(s.userAddr, unit)
	_, err = s.k.Deposit(s.ctx, strategy.GetAddress(), s.userAddr, s.userAddr, s.coin(unit))
	s.Assert().ErrorIs(err, types.ErrZeroAssetsWithSupply, "Deposit")
	s.assertBalance(s.userAddr, unit)
}

func (s *TestSuite) TestConvertOverflow() {
	strategy := s.createStrategy("strategy_name")
	s.provideDebt(strategy, unit)

	_, err := s.k.ConvertToShares(s.ctx, strategy, utils.MaxAmount)
	s.Assert().ErrorIs(err, types.ErrArithmeticOverflow, "ConvertToShares")

	_, err = s.k.ConvertToAssets(s.ctx, strategy, utils.MaxAmount)
	s.Assert().ErrorIs(err, types.ErrArithmeticOverflow, "ConvertToAssets")
}

func (s *TestSuite) TestConvertRejectsNegative() {
	strategy := s.createStrategy("strategy_name")
	for _, amount := range []sdkmath.Int{sdkmath.NewInt(-1), unit.Neg()} {
		s.Run(fmt.Sprintf("assets %s", amount), func() {
			_, err := s.k.ConvertToShares(s.ctx, strategy, amount)
			s.Assert().ErrorIs(err, types.ErrInvalidRequest, "ConvertToShares")
			_, err = s.k.ConvertToAssets(s.ctx, strategy, amount)
			s.Assert().ErrorIs(err, types.ErrInvalidRequest, "ConvertToAssets")
		})
	}
}
