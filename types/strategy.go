package types

import (
	"errors"
	fmt "fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxNameLength is the longest strategy name accepted.
const MaxNameLength = 128

// Strategy is the configuration of a single lending-pool strategy.
//
// Share balances and supply live in the keeper's ledger; asset balances are read from
// the bank and the lending pool. Nothing derived from them is stored here.
type Strategy struct {
	// Address is the bech32 address of the strategy account, derived from Name.
	Address string `json:"address"`
	// Name is the human readable, unique name of the strategy.
	Name string `json:"name"`
	// Asset is the denom of the underlying asset managed by the strategy.
	Asset string `json:"asset"`
	// Vault is the bech32 address of the parent vault that funds the strategy.
	Vault string `json:"vault"`
}

// NewStrategy creates a new strategy with its address derived from the name.
func NewStrategy(name, asset, vault string) Strategy {
	return Strategy{
		Address: GetStrategyAddress(name).String(),
		Name:    name,
		Asset:   asset,
		Vault:   vault,
	}
}

// GetAddress returns the strategy account address.
func (s Strategy) GetAddress() sdk.AccAddress {
	return sdk.MustAccAddressFromBech32(s.Address)
}

// GetVaultAddress returns the parent vault address.
func (s Strategy) GetVaultAddress() sdk.AccAddress {
	return sdk.MustAccAddressFromBech32(s.Vault)
}

// IsVault reports whether addr is the strategy's parent vault.
func (s Strategy) IsVault(addr sdk.AccAddress) bool {
	vault, err := sdk.AccAddressFromBech32(s.Vault)
	if err != nil {
		return false
	}
	return vault.Equals(addr)
}

// Validate performs basic validation on the strategy fields.
func (s Strategy) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("strategy name cannot be empty")
	}
	if len(s.Name) > MaxNameLength {
		return fmt.Errorf("strategy name cannot be longer than %d characters", MaxNameLength)
	}
	addr, err := sdk.AccAddressFromBech32(s.Address)
	if err != nil {
		return fmt.Errorf("invalid strategy address: %w", err)
	}
	if !addr.Equals(GetStrategyAddress(s.Name)) {
		return fmt.Errorf("strategy address %s does not match name %q", s.Address, s.Name)
	}
	if err := sdk.ValidateDenom(s.Asset); err != nil {
		return fmt.Errorf("invalid asset denom: %w", err)
	}
	if _, err := sdk.AccAddressFromBech32(s.Vault); err != nil {
		return fmt.Errorf("invalid vault address: %w", err)
	}
	return nil
}

// ValidateAcceptedCoin checks that coin is a positive amount of the strategy asset.
func (s Strategy) ValidateAcceptedCoin(coin sdk.Coin) error {
	if coin.Denom != s.Asset {
		return fmt.Errorf("%s denom not supported for strategy, expected %s", coin.Denom, s.Asset)
	}
	if coin.Amount.IsNil() || !coin.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %s", coin)
	}
	return nil
}
