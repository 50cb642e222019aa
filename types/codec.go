package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"

	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the module's messages on the provided LegacyAmino codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreateStrategy{}, "strategy/MsgCreateStrategy", nil)
	cdc.RegisterConcrete(&MsgDeposit{}, "strategy/MsgDeposit", nil)
	cdc.RegisterConcrete(&MsgWithdraw{}, "strategy/MsgWithdraw", nil)
	cdc.RegisterConcrete(&MsgUpdateDebt{}, "strategy/MsgUpdateDebt", nil)
}

// StrategyValue is the collections value codec for Strategy records.
var StrategyValue collcodec.ValueCodec[Strategy] = jsonValue[Strategy]{name: "strategy.Strategy"}

// jsonValue stores plain Go types as canonical JSON.
type jsonValue[T any] struct {
	name string
}

func (j jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (j jsonValue[T]) Decode(b []byte) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %w", collcodec.ErrEncoding, j.name, err)
	}
	return v, nil
}

func (j jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return j.Encode(value)
}

func (j jsonValue[T]) DecodeJSON(b []byte) (T, error) {
	return j.Decode(b)
}

func (j jsonValue[T]) Stringify(value T) string {
	bz, err := j.Encode(value)
	if err != nil {
		return fmt.Sprintf("%+v", value)
	}
	return string(bz)
}

func (j jsonValue[T]) ValueType() string {
	return j.name
}
