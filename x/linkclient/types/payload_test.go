package types

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSelector tests selector derivation against known values
func TestSelector(t *testing.T) {
	// ERC-20 transfer, the canonical reference selector
	assert.Equal(t, [4]byte{0xa9, 0x05, 0x9c, 0xbb}, Selector("transfer(address,uint256)"))

	assert.Equal(t, [4]byte{0x29, 0x09, 0x5c, 0xb4}, OracleRequestSelector)
	assert.Equal(t, [4]byte{0x6e, 0xe4, 0xd5, 0x53}, CancelOracleRequestSelector)
}

// word returns ABI head word i of the payload body after the selector.
func word(payload []byte, i int) []byte {
	return payload[4+32*i : 4+32*(i+1)]
}

// TestEncodeOracleRequestCall tests the ABI layout of the outbound payload
func TestEncodeOracleRequestCall(t *testing.T) {
	self := common.HexToAddress("0x1111111111111111111111111111111111111111")
	jobID := common.HexToHash("0x3163363566666434363230383463313262636664313639343664316263333262")
	target := common.HexToAddress("0x3333333333333333333333333333333333333333")
	selector := [4]byte{0xab, 0xcd, 0xef, 0x01}

	req := NewRequest(jobID, target, selector)
	req.Nonce = 7
	require.NoError(t, req.Add("path", "USD"))

	id := DeriveRequestID(self, req.Nonce)

	payload, err := EncodeOracleRequestCall(id, req)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(payload, OracleRequestSelector[:]))

	// nine head words, then the dynamic bytes tail
	params := req.Params.Bytes()
	paddedLen := (len(params) + 31) / 32 * 32
	require.Len(t, payload, 4+9*32+32+paddedLen)

	// sender and amount slots are zero sentinels for the token contract
	assert.Equal(t, make([]byte, 32), word(payload, 0))
	assert.Equal(t, make([]byte, 32), word(payload, 1))

	assert.Equal(t, jobID.Bytes(), word(payload, 2))
	assert.Equal(t, id.Bytes(), word(payload, 3))

	// address is right-aligned, selector left-aligned in its word
	assert.Equal(t, target.Bytes(), word(payload, 4)[12:])
	assert.Equal(t, selector[:], word(payload, 5)[:4])

	assert.Equal(t, uint64(7), new(big.Int).SetBytes(word(payload, 6)).Uint64())
	assert.Equal(t, uint64(DataVersion), new(big.Int).SetBytes(word(payload, 7)).Uint64())

	// the bytes argument points just past the head
	assert.Equal(t, uint64(9*32), new(big.Int).SetBytes(word(payload, 8)).Uint64())
	tail := payload[4+9*32:]
	assert.Equal(t, uint64(len(params)), new(big.Int).SetBytes(tail[:32]).Uint64())
	assert.Equal(t, params, tail[32:32+len(params)])
}

// TestEncodeOracleRequestCallDeterminism tests byte-identical output for
// identical descriptors
func TestEncodeOracleRequestCallDeterminism(t *testing.T) {
	build := func() []byte {
		req := NewRequest(common.Hash{0x01}, common.Address{0x02}, [4]byte{0x03})
		req.Nonce = 1
		require.NoError(t, req.Add("get", "https://example.com"))

		payload, err := EncodeOracleRequestCall(DeriveRequestID(common.Address{0x02}, 1), req)
		require.NoError(t, err)
		return payload
	}

	assert.Equal(t, build(), build())
}

// TestEncodeOracleRequestCallNilDescriptor tests nil input rejection
func TestEncodeOracleRequestCallNilDescriptor(t *testing.T) {
	_, err := EncodeOracleRequestCall(common.Hash{}, nil)
	require.Error(t, err)

	_, err = EncodeOracleRequestCall(common.Hash{}, &Request{})
	require.Error(t, err)
}
