package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// PendingRequestEntry is the exported form of one registry entry.
type PendingRequestEntry struct {
	Id     string `json:"id"`
	Oracle string `json:"oracle"`
}

// GenesisState defines the linkclient module genesis state.
type GenesisState struct {
	Nonce           uint64                `json:"nonce"`
	PendingRequests []PendingRequestEntry `json:"pending_requests"`
	TokenAddress    string                `json:"token_address,omitempty"`
	OracleAddress   string                `json:"oracle_address,omitempty"`
}

// NewGenesisState creates a new genesis state instance.
func NewGenesisState(nonce uint64, pending []PendingRequestEntry, token, oracle string) GenesisState {
	return GenesisState{
		Nonce:           nonce,
		PendingRequests: pending,
		TokenAddress:    token,
		OracleAddress:   oracle,
	}
}

// DefaultGenesisState returns the default genesis state: nonce counter
// initialized to 1, empty registry, no bound addresses.
func DefaultGenesisState() GenesisState {
	return GenesisState{Nonce: 1}
}

// Validate performs basic validation of genesis data.
func (gs GenesisState) Validate() error {
	if gs.Nonce == 0 {
		return fmt.Errorf("nonce counter must be initialized to at least 1")
	}

	seen := make(map[common.Hash]struct{}, len(gs.PendingRequests))
	for _, entry := range gs.PendingRequests {
		id, err := ParseRequestID(entry.Id)
		if err != nil {
			return fmt.Errorf("pending request id %q: %w", entry.Id, err)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate pending request id %s", entry.Id)
		}
		seen[id] = struct{}{}

		if !common.IsHexAddress(entry.Oracle) {
			return fmt.Errorf("invalid oracle address %q for request %s", entry.Oracle, entry.Id)
		}
	}

	if gs.TokenAddress != "" && !common.IsHexAddress(gs.TokenAddress) {
		return fmt.Errorf("invalid token address %q", gs.TokenAddress)
	}
	if gs.OracleAddress != "" && !common.IsHexAddress(gs.OracleAddress) {
		return fmt.Errorf("invalid oracle address %q", gs.OracleAddress)
	}

	return nil
}
