package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

// MsgServer implementation
var _ types.MsgServer = Keeper{}

// FulfillRequest is the fulfillment entry point invoked by the
// authorized oracle with the response value.
func (k Keeper) FulfillRequest(c context.Context, msg *types.MsgFulfillRequest) (*types.MsgFulfillRequestResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, err
	}
	id, err := types.ParseRequestID(msg.RequestId)
	if err != nil {
		return nil, err
	}
	selector, err := types.ParseSelector(msg.CallbackSelector)
	if err != nil {
		return nil, err
	}
	data, err := types.ParseHexData(msg.Data)
	if err != nil {
		return nil, err
	}

	caller := common.BytesToAddress(sender.Bytes())
	if err := k.Fulfill(ctx, caller, id, selector, data); err != nil {
		return nil, err
	}

	return &types.MsgFulfillRequestResponse{}, nil
}

// CancelRequest removes a stale pending request and notifies the oracle.
func (k Keeper) CancelRequest(c context.Context, msg *types.MsgCancelRequest) (*types.MsgCancelRequestResponse, error) {
	ctx := sdk.UnwrapSDKContext(c)

	id, err := types.ParseRequestID(msg.RequestId)
	if err != nil {
		return nil, err
	}
	selector, err := types.ParseSelector(msg.CallbackSelector)
	if err != nil {
		return nil, err
	}
	payment, ok := math.NewIntFromString(msg.Payment)
	if !ok {
		return nil, types.ErrInvalidRequest
	}

	if err := k.Cancel(ctx, id, payment, selector, msg.Expiration); err != nil {
		return nil, err
	}

	return &types.MsgCancelRequestResponse{}, nil
}
