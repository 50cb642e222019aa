package types

import (
	fmt "fmt"
	"strings"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgCreateStrategy registers a new lending-pool strategy. Only the module authority may send it.
type MsgCreateStrategy struct {
	Authority string `json:"authority"`
	Name      string `json:"name"`
	Asset     string `json:"asset"`
	Vault     string `json:"vault"`
}

// MsgCreateStrategyResponse is the response of MsgCreateStrategy.
type MsgCreateStrategyResponse struct {
	StrategyAddress string `json:"strategy_address"`
}

// MsgDeposit deposits assets from Caller and mints shares to Receiver.
type MsgDeposit struct {
	Caller          string   `json:"caller"`
	StrategyAddress string   `json:"strategy_address"`
	Receiver        string   `json:"receiver"`
	Assets          sdk.Coin `json:"assets"`
}

// MsgDepositResponse is the response of MsgDeposit.
type MsgDepositResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgWithdraw burns Owner's shares and pays Assets out to Receiver.
type MsgWithdraw struct {
	Caller          string   `json:"caller"`
	StrategyAddress string   `json:"strategy_address"`
	Receiver        string   `json:"receiver"`
	Owner           string   `json:"owner"`
	Assets          sdk.Coin `json:"assets"`
}

// MsgWithdrawResponse is the response of MsgWithdraw.
type MsgWithdrawResponse struct {
	Shares math.Int `json:"shares"`
}

// MsgUpdateDebt moves the parent vault's position in a strategy towards TargetDebt.
type MsgUpdateDebt struct {
	Vault           string   `json:"vault"`
	StrategyAddress string   `json:"strategy_address"`
	TargetDebt      math.Int `json:"target_debt"`
}

// MsgUpdateDebtResponse is the response of MsgUpdateDebt.
type MsgUpdateDebtResponse struct {
	Debt math.Int `json:"debt"`
}

// ValidateBasic performs stateless validation of MsgCreateStrategy.
func (m MsgCreateStrategy) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Authority); err != nil {
		return fmt.Errorf("invalid authority address: %q: %w", m.Authority, err)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("invalid name: %q: name cannot be empty", m.Name)
	}
	if len(m.Name) > MaxNameLength {
		return fmt.Errorf("invalid name: longer than %d characters", MaxNameLength)
	}
	if err := sdk.ValidateDenom(m.Asset); err != nil {
		return fmt.Errorf("invalid asset: %q: %w", m.Asset, err)
	}
	if _, err := sdk.AccAddressFromBech32(m.Vault); err != nil {
		return fmt.Errorf("invalid vault address: %q: %w", m.Vault, err)
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgDeposit.
func (m MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Caller); err != nil {
		return fmt.Errorf("invalid caller address: %q: %w", m.Caller, err)
	}
	if _, err := sdk.AccAddressFromBech32(m.StrategyAddress); err != nil {
		return fmt.Errorf("invalid strategy address: %q: %w", m.StrategyAddress, err)
	}
	if _, err := sdk.AccAddressFromBech32(m.Receiver); err != nil {
		return fmt.Errorf("invalid receiver address: %q: %w", m.Receiver, err)
	}
	if err := validatePositiveCoin(m.Assets); err != nil {
		return fmt.Errorf("invalid assets: %w", err)
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgWithdraw.
func (m MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Caller); err != nil {
		return fmt.Errorf("invalid caller address: %q: %w", m.Caller, err)
	}
	if _, err := sdk.AccAddressFromBech32(m.StrategyAddress); err != nil {
		return fmt.Errorf("invalid strategy address: %q: %w", m.StrategyAddress, err)
	}
	if _, err := sdk.AccAddressFromBech32(m.Receiver); err != nil {
		return fmt.Errorf("invalid receiver address: %q: %w", m.Receiver, err)
	}
	if _, err := sdk.AccAddressFromBech32(m.Owner); err != nil {
		return fmt.Errorf("invalid owner address: %q: %w", m.Owner, err)
	}
	if err := validatePositiveCoin(m.Assets); err != nil {
		return fmt.Errorf("invalid assets: %w", err)
	}
	return nil
}

// ValidateBasic performs stateless validation of MsgUpdateDebt.
func (m MsgUpdateDebt) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Vault); err != nil {
		return fmt.Errorf("invalid vault address: %q: %w", m.Vault, err)
	}
	if _, err := sdk.AccAddressFromBech32(m.StrategyAddress); err != nil {
		return fmt.Errorf("invalid strategy address: %q: %w", m.StrategyAddress, err)
	}
	if m.TargetDebt.IsNil() || m.TargetDebt.IsNegative() {
		return fmt.Errorf("invalid target debt: must be non-negative")
	}
	return nil
}

func validatePositiveCoin(coin sdk.Coin) error {
	if err := sdk.ValidateDenom(coin.Denom); err != nil {
		return err
	}
	if coin.Amount.IsNil() || !coin.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
