package linkclient

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/datalink-global/datalink/x/linkclient/keeper"
	"github.com/datalink-global/datalink/x/linkclient/types"
)

// InitGenesis new linkclient genesis
func InitGenesis(ctx sdk.Context, k keeper.Keeper, data types.GenesisState) {
	if err := data.Validate(); err != nil {
		panic(err)
	}
	k.InitGenesis(ctx, data)
}

// ExportGenesis returns a GenesisState for a given context and keeper.
func ExportGenesis(ctx sdk.Context, k keeper.Keeper) types.GenesisState {
	return k.ExportGenesis(ctx)
}
