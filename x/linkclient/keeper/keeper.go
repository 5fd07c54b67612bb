package keeper

import (
	"encoding/binary"
	"fmt"

	"github.com/cosmos/cosmos-sdk/store/prefix"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

// Keeper owns the consumer's request bookkeeping: the monotonic dispatch
// nonce and the pending-request registry mapping request identifiers to
// the oracle authorized to fulfill them. The registry is mutated only
// through Dispatch, DispatchExternal, ValidateAndClear and Cancel.
type Keeper struct {
	storeKey storetypes.StoreKey

	// self is the consumer address request identifiers are derived from.
	self common.Address

	tokenKeeper   types.TokenKeeper
	oracleChannel types.OracleChannel

	callbacks map[[4]byte]types.FulfillHandler
}

// NewKeeper creates a linkclient keeper bound to one consumer address.
func NewKeeper(
	key storetypes.StoreKey,
	self common.Address,
	tk types.TokenKeeper,
	oc types.OracleChannel,
) Keeper {
	if tk == nil {
		panic("the linkclient token keeper has not been set")
	}
	if oc == nil {
		panic("the linkclient oracle channel has not been set")
	}

	return Keeper{
		storeKey:      key,
		self:          self,
		tokenKeeper:   tk,
		oracleChannel: oc,
		callbacks:     make(map[[4]byte]types.FulfillHandler),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// SelfAddress returns the consumer address this keeper dispatches from.
func (k Keeper) SelfAddress() common.Address {
	return k.self
}

// GetNonce returns the dispatch nonce counter. The counter starts at 1
// and is never decremented or reused, even after cancellation.
func (k Keeper) GetNonce(ctx sdk.Context) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyNonce)
	if len(bz) == 0 {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetNonce stores the dispatch nonce counter.
func (k Keeper) SetNonce(ctx sdk.Context, nonce uint64) {
	store := ctx.KVStore(k.storeKey)
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, nonce)
	store.Set(types.KeyNonce, bz)
}

// HasPendingRequest reports whether a live registry entry exists for id.
func (k Keeper) HasPendingRequest(ctx sdk.Context, id common.Hash) bool {
	return ctx.KVStore(k.storeKey).Has(types.GetPendingRequestKey(id))
}

// GetPendingOracle returns the oracle authorized to fulfill id.
func (k Keeper) GetPendingOracle(ctx sdk.Context, id common.Hash) (common.Address, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.GetPendingRequestKey(id))
	if len(bz) == 0 {
		return common.Address{}, false
	}
	return common.BytesToAddress(bz), true
}

func (k Keeper) setPendingRequest(ctx sdk.Context, id common.Hash, oracle common.Address) {
	ctx.KVStore(k.storeKey).Set(types.GetPendingRequestKey(id), oracle.Bytes())
}

func (k Keeper) deletePendingRequest(ctx sdk.Context, id common.Hash) {
	ctx.KVStore(k.storeKey).Delete(types.GetPendingRequestKey(id))
}

// IteratePendingRequests walks every live registry entry.
func (k Keeper) IteratePendingRequests(ctx sdk.Context, fn func(id common.Hash, oracle common.Address) bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPendingRequest)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		id := common.BytesToHash(iterator.Key())
		oracle := common.BytesToAddress(iterator.Value())
		if fn(id, oracle) {
			break
		}
	}
}

// GetTokenAddress returns the active token address, if bound.
func (k Keeper) GetTokenAddress(ctx sdk.Context) (common.Address, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.KeyTokenAddress)
	if len(bz) == 0 {
		return common.Address{}, false
	}
	return common.BytesToAddress(bz), true
}

// SetTokenAddress binds the active token address.
func (k Keeper) SetTokenAddress(ctx sdk.Context, addr common.Address) {
	ctx.KVStore(k.storeKey).Set(types.KeyTokenAddress, addr.Bytes())
}

// GetOracleAddress returns the active oracle address, if bound.
func (k Keeper) GetOracleAddress(ctx sdk.Context) (common.Address, bool) {
	bz := ctx.KVStore(k.storeKey).Get(types.KeyOracleAddress)
	if len(bz) == 0 {
		return common.Address{}, false
	}
	return common.BytesToAddress(bz), true
}

// SetOracleAddress binds the active oracle address.
func (k Keeper) SetOracleAddress(ctx sdk.Context, addr common.Address) {
	ctx.KVStore(k.storeKey).Set(types.KeyOracleAddress, addr.Bytes())
}

// RegisterCallback installs the fulfillment handler for a callback
// selector. A selector can be bound once.
func (k Keeper) RegisterCallback(selector [4]byte, handler types.FulfillHandler) error {
	if handler == nil {
		return fmt.Errorf("nil fulfillment handler for selector %s", types.FormatSelector(selector))
	}
	if _, ok := k.callbacks[selector]; ok {
		return fmt.Errorf("fulfillment handler already registered for selector %s", types.FormatSelector(selector))
	}
	k.callbacks[selector] = handler
	return nil
}

// branch returns a context whose store writes and events are staged
// until commit is called; abandoning it discards everything. This is
// the all-or-nothing wrapper around every externally triggered
// operation.
func (k Keeper) branch(ctx sdk.Context) (sdk.Context, func()) {
	cacheCtx, write := ctx.CacheContext()
	em := sdk.NewEventManager()
	cacheCtx = cacheCtx.WithEventManager(em)

	commit := func() {
		ctx.EventManager().EmitEvents(em.Events())
		write()
	}
	return cacheCtx, commit
}
