package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

// InitGenesis restores the nonce counter, the pending-request registry
// and the bound collaborator addresses. Genesis data is expected to be
// validated already.
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) {
	k.SetNonce(ctx, data.Nonce)

	for _, entry := range data.PendingRequests {
		id, err := types.ParseRequestID(entry.Id)
		if err != nil {
			panic(err)
		}
		k.setPendingRequest(ctx, id, common.HexToAddress(entry.Oracle))
	}

	if data.TokenAddress != "" {
		k.SetTokenAddress(ctx, common.HexToAddress(data.TokenAddress))
	}
	if data.OracleAddress != "" {
		k.SetOracleAddress(ctx, common.HexToAddress(data.OracleAddress))
	}
}

// ExportGenesis returns the module state as genesis data.
func (k Keeper) ExportGenesis(ctx sdk.Context) types.GenesisState {
	data := types.GenesisState{
		Nonce: k.GetNonce(ctx),
	}

	k.IteratePendingRequests(ctx, func(id common.Hash, oracle common.Address) bool {
		data.PendingRequests = append(data.PendingRequests, types.PendingRequestEntry{
			Id:     id.Hex(),
			Oracle: oracle.Hex(),
		})
		return false
	})

	if addr, ok := k.GetTokenAddress(ctx); ok {
		data.TokenAddress = addr.Hex()
	}
	if addr, ok := k.GetOracleAddress(ctx); ok {
		data.OracleAddress = addr.Hex()
	}

	return data
}
