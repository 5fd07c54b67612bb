package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

// Dispatch consumes a request descriptor: derives the request
// identifier from the consumer address and the current nonce, registers
// the pending entry, and forwards payment plus the encoded payload to
// the target oracle through the token transfer. The whole operation is
// all-or-nothing; a failed transfer leaves no registry entry, no nonce
// increment and no event.
func (k Keeper) Dispatch(ctx sdk.Context, req *types.Request, oracle common.Address, payment math.Int) (common.Hash, error) {
	if req == nil {
		return common.Hash{}, errorsmod.Wrap(types.ErrInvalidRequest, "nil request descriptor")
	}
	if payment.IsNil() || payment.IsNegative() {
		return common.Hash{}, errorsmod.Wrapf(types.ErrInvalidRequest, "payment %s", payment)
	}

	nonce := k.GetNonce(ctx)
	id := types.DeriveRequestID(k.self, nonce)
	req.Nonce = nonce

	cacheCtx, commit := k.branch(ctx)

	// unreachable given the derivation, but the registry defends anyway
	if k.HasPendingRequest(cacheCtx, id) {
		return common.Hash{}, errorsmod.Wrapf(types.ErrDuplicateRequest, "%s", id)
	}
	k.setPendingRequest(cacheCtx, id, oracle)

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRequested,
			sdk.NewAttribute(types.AttributeKeyRequestId, id.Hex()),
			sdk.NewAttribute(types.AttributeKeyOracle, oracle.Hex()),
		),
	)

	payload, err := types.EncodeOracleRequestCall(id, req)
	if err != nil {
		return common.Hash{}, err
	}

	if err := k.tokenKeeper.TransferAndCall(cacheCtx, k.self, oracle, payment, payload); err != nil {
		return common.Hash{}, errorsmod.Wrapf(types.ErrTransferFailed, "%s", err)
	}

	k.SetNonce(cacheCtx, nonce+1)
	commit()

	return id, nil
}

// DispatchExternal registers a request identifier that originated
// elsewhere, without deriving a new one or moving payment.
func (k Keeper) DispatchExternal(ctx sdk.Context, oracle common.Address, id common.Hash) error {
	if k.HasPendingRequest(ctx, id) {
		return errorsmod.Wrapf(types.ErrDuplicateRequest, "%s", id)
	}
	k.setPendingRequest(ctx, id, oracle)
	return nil
}

// Cancel removes the registry entry for id if present and forwards the
// cancellation notice to the oracle so it can refund payment and drop
// its copy of the request. No ownership check is performed here; it is
// the caller's responsibility to cancel only requests it created. When
// the entry is already gone the registry removal is a no-op but the
// notice is still forwarded.
func (k Keeper) Cancel(ctx sdk.Context, id common.Hash, payment math.Int, callbackSelector [4]byte, expiration uint64) error {
	oracle, found := k.GetPendingOracle(ctx, id)

	cacheCtx, commit := k.branch(ctx)

	if found {
		k.deletePendingRequest(cacheCtx, id)
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCancelled,
			sdk.NewAttribute(types.AttributeKeyRequestId, id.Hex()),
		),
	)

	if err := k.oracleChannel.CancelOracleRequest(cacheCtx, oracle, id, payment, callbackSelector, expiration); err != nil {
		return err
	}

	commit()
	return nil
}
