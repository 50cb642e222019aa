package strategy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/provlabs/strategy/types"
)

// unmarshalGenesis decodes a genesis document, rejecting fields the module does not know.
func unmarshalGenesis(bz json.RawMessage) (*types.GenesisState, error) {
	var genesis types.GenesisState
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&genesis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return &genesis, nil
}
