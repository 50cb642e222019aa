package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provlabs/strategy/types"
)

func (s *TestSuite) TestStrategyGenesis_InitAndExport() {
	strategy := types.NewStrategy("genesis_strategy", assetDenom, s.vaultAddr.String())
	genesis := &types.GenesisState{
		Strategies: []types.Strategy{strategy},
		Balances: []types.GenesisBalance{
			{StrategyAddress: strategy.Address, Holder: s.vaultAddr.String(), Shares: unit.MulRaw(70)},
			{StrategyAddress: strategy.Address, Holder: s.userAddr.String(), Shares: unit.MulRaw(30)},
		},
	}

	s.k.InitGenesis(s.ctx, genesis)

	got, err := s.k.GetStrategy(s.ctx, strategy.GetAddress())
	s.Require().NoError(err, "GetStrategy")
	s.Assert().Equal(strategy, *got, "stored strategy")
	s.Assert().True(s.mocks.AccountKeeper.HasAccount(s.ctx, strategy.GetAddress()), "strategy account should be created")
	s.assertShares(strategy, s.vaultAddr, unit.MulRaw(70))
	s.assertShares(strategy, s.userAddr, unit.MulRaw(30))
	s.assertTotalSupply(strategy, unit.MulRaw(100))
	s.Require().NoError(s.k.CheckLedger(s.ctx), "CheckLedger")

	exported := s.k.ExportGenesis(s.ctx)
	s.Require().Len(exported.Strategies, 1, "exported strategies")
	s.Assert().Equal(strategy, exported.Strategies[0], "exported strategy")
	s.Require().Len(exported.Balances, 2, "exported balances")
	for _, b := range exported.Balances {
		s.Assert().Equal(strategy.Address, b.StrategyAddress, "exported balance strategy")
		switch b.Holder {
		case s.vaultAddr.String():
			s.Assert().Equal(unit.MulRaw(70).String(), b.Shares.String(), "exported vault shares")
		case s.userAddr.String():
			s.Assert().Equal(unit.MulRaw(30).String(), b.Shares.String(), "exported user shares")
		default:
			s.Failf("unexpected holder", "holder %s", b.Holder)
		}
	}
	s.Require().NoError(exported.Validate(), "exported genesis should validate")
}

func (s *TestSuite) TestStrategyGenesis_RoundTrip() {
	strategy := s.createStrategy("strategy_name")
	s.provideDebt(strategy, unit.MulRaw(100))
	other := sdk.AccAddress("other_______________")
	_, err := s.k.Deposit(s.ctx, strategy.GetAddress(), s.vaultAddr, other, s.coin(unit))
	s.Require().NoError(err, "Deposit")

	exported := s.k.ExportGenesis(s.ctx)

	s.SetupTest()
	s.k.InitGenesis(s.ctx, exported)

	s.assertShares(strategy, s.vaultAddr, unit.MulRaw(100))
	s.assertShares(strategy, other, unit)
	s.assertTotalSupply(strategy, unit.MulRaw(101))
	s.Assert().Equal(exported, s.k.ExportGenesis(s.ctx), "second export")
}

func (s *TestSuite) TestStrategyGenesis_ExistingAccountIsKept() {
	strategy := types.NewStrategy("genesis_strategy", assetDenom, s.vaultAddr.String())
	account := s.mocks.AccountKeeper.NewAccountWithAddress(s.ctx, strategy.GetAddress())
	s.mocks.AccountKeeper.SetAccount(s.ctx, account)

	s.k.InitGenesis(s.ctx, &types.GenesisState{Strategies: []types.Strategy{strategy}})

	s.Assert().True(s.mocks.AccountKeeper.HasAccount(s.ctx, strategy.GetAddress()), "strategy account")
	s.assertTotalSupply(strategy, unit.MulRaw(0))
}

func (s *TestSuite) TestStrategyGenesis_Nil() {
	s.Require().NotPanics(func() { s.k.InitGenesis(s.ctx, nil) }, "InitGenesis(nil)")

	exported := s.k.ExportGenesis(s.ctx)
	s.Assert().Empty(exported.Strategies, "strategies")
	s.Assert().Empty(exported.Balances, "balances")
}

func (s *TestSuite) TestStrategyGenesis_InvalidPanics() {
	strategy := types.NewStrategy("genesis_strategy", assetDenom, s.vaultAddr.String())

	tests := []struct {
		name    string
		genesis *types.GenesisState
		panic   string
	}{
		{
			name: "balance of unknown strategy",
			genesis: &types.GenesisState{
				Balances: []types.GenesisBalance{
					{StrategyAddress: strategy.Address, Holder: s.vaultAddr.String(), Shares: unit},
				},
			},
			panic: "references unknown strategy",
		},
		{
			name: "duplicate strategy",
			genesis: &types.GenesisState{
				Strategies: []types.Strategy{strategy, strategy},
			},
			panic: "duplicate strategy name",
		},
		{
			name: "zero balance",
			genesis: &types.GenesisState{
				Strategies: []types.Strategy{strategy},
				Balances: []types.GenesisBalance{
					{StrategyAddress: strategy.Address, Holder: s.vaultAddr.String(), Shares: unit.MulRaw(0)},
				},
			},
			panic: "must be positive",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			defer func() {
				r := recover()
				s.Require().NotNil(r, "InitGenesis should panic")
				err, ok := r.(error)
				s.Require().True(ok, "panic value should be an error")
				s.Assert().ErrorContains(err, tc.panic, "panic message")
			}()
			s.k.InitGenesis(s.ctx, tc.genesis)
		})
	}
}

func (s *TestSuite) TestCheckLedger() {
	strategy := s.createStrategy("strategy_name")
	s.provideDebt(strategy, unit.MulRaw(10))
	s.Require().NoError(s.k.CheckLedger(s.ctx), "CheckLedger on a consistent ledger")

	err := s.k.TotalSupply.Set(s.ctx, strategy.GetAddress(), unit.MulRaw(11))
	s.Require().NoError(err, "TotalSupply.Set")
	s.Assert().ErrorContains(s.k.CheckLedger(s.ctx), "balances sum to", "CheckLedger after corrupting the supply")
}
