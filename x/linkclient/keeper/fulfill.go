package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

// ValidateAndClear checks that caller is the oracle registered for id
// and deletes the entry so the request cannot be fulfilled twice. Every
// fulfillment entry point must call this before acting on the response
// value.
func (k Keeper) ValidateAndClear(ctx sdk.Context, id common.Hash, caller common.Address) error {
	oracle, found := k.GetPendingOracle(ctx, id)
	if !found || oracle != caller {
		return errorsmod.Wrapf(types.ErrUnauthorized, "request %s, caller %s", id, caller)
	}

	k.deletePendingRequest(ctx, id)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFulfilled,
			sdk.NewAttribute(types.AttributeKeyRequestId, id.Hex()),
		),
	)

	return nil
}

// Fulfill validates and clears the pending entry, then hands the
// response to the handler registered for the callback selector. A
// handler error rolls the whole fulfillment back, leaving the entry
// pending and no event emitted.
func (k Keeper) Fulfill(ctx sdk.Context, caller common.Address, id common.Hash, callbackSelector [4]byte, data []byte) error {
	handler, ok := k.callbacks[callbackSelector]
	if !ok {
		return errorsmod.Wrapf(types.ErrInvalidRequest, "no fulfillment handler for selector %s", types.FormatSelector(callbackSelector))
	}

	cacheCtx, commit := k.branch(ctx)

	if err := k.ValidateAndClear(cacheCtx, id, caller); err != nil {
		return err
	}
	if err := handler(cacheCtx, id, data); err != nil {
		return err
	}

	commit()
	return nil
}
