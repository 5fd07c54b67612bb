package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

var fulfillSelector = [4]byte{0xab, 0xcd, 0xef, 0x01}

type recordedFulfillment struct {
	id   common.Hash
	data []byte
}

func dispatchPending(t *testing.T, keeper Keeper, ctx sdk.Context) common.Hash {
	t.Helper()
	id, err := keeper.Dispatch(ctx, newTestRequest(), testOracle, math.NewInt(1))
	require.NoError(t, err)
	return id
}

// TestValidateAndClear tests the authorization and exactly-once gate
func TestValidateAndClear(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)
	id := dispatchPending(t, keeper, ctx)

	// wrong caller is rejected and the entry stays
	err := keeper.ValidateAndClear(ctx, id, testTarget)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
	assert.True(t, keeper.HasPendingRequest(ctx, id))

	// unknown identifier is rejected the same way
	err = keeper.ValidateAndClear(ctx, types.DeriveRequestID(testSelf, 99), testOracle)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))

	// the registered oracle clears the entry
	require.NoError(t, keeper.ValidateAndClear(ctx, id, testOracle))
	assert.False(t, keeper.HasPendingRequest(ctx, id))

	events := eventsOfType(ctx, types.EventTypeFulfilled)
	require.Len(t, events, 1)
	assert.Equal(t, id.Hex(), attributeValue(events[0], types.AttributeKeyRequestId))

	// second attempt finds no entry: exactly-once
	err = keeper.ValidateAndClear(ctx, id, testOracle)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
}

// TestFulfill tests handler delivery through the registered callback
func TestFulfill(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)

	var got []recordedFulfillment
	require.NoError(t, keeper.RegisterCallback(fulfillSelector, func(ctx sdk.Context, id common.Hash, data []byte) error {
		got = append(got, recordedFulfillment{id: id, data: data})
		return nil
	}))

	id := dispatchPending(t, keeper, ctx)
	response := []byte("42000")

	require.NoError(t, keeper.Fulfill(ctx, testOracle, id, fulfillSelector, response))

	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].id)
	assert.Equal(t, response, got[0].data)
	assert.False(t, keeper.HasPendingRequest(ctx, id))
	require.Len(t, eventsOfType(ctx, types.EventTypeFulfilled), 1)

	// replay is rejected, handler not invoked again
	err := keeper.Fulfill(ctx, testOracle, id, fulfillSelector, response)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
	assert.Len(t, got, 1)
}

// TestFulfillUnauthorizedCaller tests that only the registered oracle
// may deliver
func TestFulfillUnauthorizedCaller(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)

	invoked := false
	require.NoError(t, keeper.RegisterCallback(fulfillSelector, func(ctx sdk.Context, id common.Hash, data []byte) error {
		invoked = true
		return nil
	}))

	id := dispatchPending(t, keeper, ctx)

	err := keeper.Fulfill(ctx, testTarget, id, fulfillSelector, []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnauthorized))
	assert.False(t, invoked)
	assert.True(t, keeper.HasPendingRequest(ctx, id))
}

// TestFulfillUnknownSelector tests delivery against an unregistered
// callback selector
func TestFulfillUnknownSelector(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)
	id := dispatchPending(t, keeper, ctx)

	err := keeper.Fulfill(ctx, testOracle, id, [4]byte{0xff, 0xff, 0xff, 0xff}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidRequest))
	assert.True(t, keeper.HasPendingRequest(ctx, id))
}

// TestFulfillHandlerFailure tests that a handler error rolls the whole
// fulfillment back
func TestFulfillHandlerFailure(t *testing.T) {
	keeper, ctx, _, _ := setupKeeper(t)

	require.NoError(t, keeper.RegisterCallback(fulfillSelector, func(ctx sdk.Context, id common.Hash, data []byte) error {
		return errors.New("malformed response")
	}))

	id := dispatchPending(t, keeper, ctx)

	require.Error(t, keeper.Fulfill(ctx, testOracle, id, fulfillSelector, []byte("bad")))

	// entry still pending, no fulfilled event leaked
	assert.True(t, keeper.HasPendingRequest(ctx, id))
	assert.Empty(t, eventsOfType(ctx, types.EventTypeFulfilled))

	// the request remains deliverable after the failed attempt
	require.NoError(t, keeper.RegisterCallback([4]byte{0x00, 0x00, 0x00, 0x01}, func(ctx sdk.Context, id common.Hash, data []byte) error {
		return nil
	}))
	oracle, found := keeper.GetPendingOracle(ctx, id)
	require.True(t, found)
	assert.Equal(t, testOracle, oracle)
}
