package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// ModuleCdc is the legacy amino codec used for message sign bytes.
var ModuleCdc = codec.NewLegacyAmino()

// RegisterLegacyAminoCodec registers the module's concrete message types.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgFulfillRequest{}, "linkclient/MsgFulfillRequest", nil)
	cdc.RegisterConcrete(&MsgCancelRequest{}, "linkclient/MsgCancelRequest", nil)
}

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
}
