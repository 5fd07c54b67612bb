package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	tmdb "github.com/tendermint/tm-db"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

var (
	testSelf   = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testOracle = common.HexToAddress("0x2222222222222222222222222222222222222222")
	testTarget = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

type tokenCall struct {
	from, to common.Address
	amount   math.Int
	data     []byte
}

// fakeTokenKeeper records TransferAndCall invocations and can be primed
// to fail.
type fakeTokenKeeper struct {
	err   error
	calls []tokenCall
}

func (f *fakeTokenKeeper) TransferAndCall(ctx sdk.Context, from, to common.Address, amount math.Int, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, tokenCall{from: from, to: to, amount: amount, data: data})
	return nil
}

type cancelCall struct {
	oracle     common.Address
	id         common.Hash
	payment    math.Int
	selector   [4]byte
	expiration uint64
}

// fakeOracleChannel records forwarded cancellation notices and can be
// primed to fail.
type fakeOracleChannel struct {
	err   error
	calls []cancelCall
}

func (f *fakeOracleChannel) CancelOracleRequest(ctx sdk.Context, oracle common.Address, id common.Hash, payment math.Int, callbackSelector [4]byte, expiration uint64) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, cancelCall{
		oracle:     oracle,
		id:         id,
		payment:    payment,
		selector:   callbackSelector,
		expiration: expiration,
	})
	return nil
}

// setupKeeper creates a new Keeper instance and context for testing
func setupKeeper(t *testing.T) (Keeper, sdk.Context, *fakeTokenKeeper, *fakeOracleChannel) {
	storeKey := sdk.NewKVStoreKey(types.StoreKey)

	db := tmdb.NewMemDB()
	stateStore := store.NewCommitMultiStore(db)
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, tmproto.Header{}, false, log.NewNopLogger())

	tk := &fakeTokenKeeper{}
	oc := &fakeOracleChannel{}
	keeper := NewKeeper(storeKey, testSelf, tk, oc)

	return keeper, ctx, tk, oc
}

func TestNewKeeperNilCollaborators(t *testing.T) {
	storeKey := sdk.NewKVStoreKey(types.StoreKey)

	require.Panics(t, func() {
		NewKeeper(storeKey, testSelf, nil, &fakeOracleChannel{})
	})
	require.Panics(t, func() {
		NewKeeper(storeKey, testSelf, &fakeTokenKeeper{}, nil)
	})
}

// TestSetAndGetNonce tests the dispatch nonce counter round-trip
func TestSetAndGetNonce(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)

	// Fresh store starts the counter at 1, not 0
	assert.Equal(t, uint64(1), keeper.GetNonce(ctx))

	keeper.SetNonce(ctx, 42)
	assert.Equal(t, uint64(42), keeper.GetNonce(ctx))
}

// TestPendingRequestRegistry tests set, lookup and delete on the registry
func TestPendingRequestRegistry(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)

	id := types.DeriveRequestID(testSelf, 1)

	assert.False(t, keeper.HasPendingRequest(ctx, id))
	_, found := keeper.GetPendingOracle(ctx, id)
	assert.False(t, found)

	keeper.setPendingRequest(ctx, id, testOracle)

	assert.True(t, keeper.HasPendingRequest(ctx, id))
	oracle, found := keeper.GetPendingOracle(ctx, id)
	require.True(t, found)
	assert.Equal(t, testOracle, oracle)

	keeper.deletePendingRequest(ctx, id)
	assert.False(t, keeper.HasPendingRequest(ctx, id))
}

// TestIteratePendingRequests tests that iteration visits every live entry
func TestIteratePendingRequests(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)

	expected := map[common.Hash]common.Address{
		types.DeriveRequestID(testSelf, 1): testOracle,
		types.DeriveRequestID(testSelf, 2): testOracle,
		types.DeriveRequestID(testSelf, 3): testTarget,
	}
	for id, oracle := range expected {
		keeper.setPendingRequest(ctx, id, oracle)
	}

	visited := make(map[common.Hash]common.Address)
	keeper.IteratePendingRequests(ctx, func(id common.Hash, oracle common.Address) bool {
		visited[id] = oracle
		return false
	})

	assert.Equal(t, expected, visited)
}

// TestSetAndGetBoundAddresses tests the token and oracle address slots
func TestSetAndGetBoundAddresses(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)

	_, ok := keeper.GetTokenAddress(ctx)
	assert.False(t, ok)
	_, ok = keeper.GetOracleAddress(ctx)
	assert.False(t, ok)

	keeper.SetTokenAddress(ctx, testTarget)
	keeper.SetOracleAddress(ctx, testOracle)

	token, ok := keeper.GetTokenAddress(ctx)
	require.True(t, ok)
	assert.Equal(t, testTarget, token)

	oracle, ok := keeper.GetOracleAddress(ctx)
	require.True(t, ok)
	assert.Equal(t, testOracle, oracle)
}

// TestRegisterCallback tests handler registration constraints
func TestRegisterCallback(t *testing.T) {
	keeper, _, _, _ := setupKeeper(t)

	selector := [4]byte{0xde, 0xad, 0xbe, 0xef}
	handler := func(ctx sdk.Context, id common.Hash, data []byte) error { return nil }

	require.Error(t, keeper.RegisterCallback(selector, nil))
	require.NoError(t, keeper.RegisterCallback(selector, handler))

	// a selector can be bound once
	require.Error(t, keeper.RegisterCallback(selector, handler))
}

// eventsOfType filters emitted events by type.
func eventsOfType(ctx sdk.Context, eventType string) []sdk.Event {
	var out []sdk.Event
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// attributeValue returns the value of the named event attribute.
func attributeValue(ev sdk.Event, key string) string {
	for _, attr := range ev.Attributes {
		if string(attr.Key) == key {
			return string(attr.Value)
		}
	}
	return ""
}
