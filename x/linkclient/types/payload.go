package types

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DataVersion is the protocol version tag carried in every outbound
// request payload.
const DataVersion = 1

// Entry point selectors on the oracle contract.
var (
	// OracleRequestSelector prefixes the payload delivered through the
	// token transfer callback.
	OracleRequestSelector = Selector("oracleRequest(address,uint256,bytes32,bytes32,address,bytes4,uint256,uint256,bytes)")

	// CancelOracleRequestSelector identifies the oracle's cancellation
	// entry point.
	CancelOracleRequestSelector = Selector("cancelOracleRequest(bytes32,uint256,bytes4,uint256)")
)

// Selector returns the 4-byte function selector for a signature.
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

var oracleRequestArgs = abi.Arguments{
	{Name: "sender", Type: mustNewType("address")},
	{Name: "amount", Type: mustNewType("uint256")},
	{Name: "jobId", Type: mustNewType("bytes32")},
	{Name: "requestId", Type: mustNewType("bytes32")},
	{Name: "callbackTarget", Type: mustNewType("address")},
	{Name: "callbackSelector", Type: mustNewType("bytes4")},
	{Name: "nonce", Type: mustNewType("uint256")},
	{Name: "dataVersion", Type: mustNewType("uint256")},
	{Name: "data", Type: mustNewType("bytes")},
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// EncodeOracleRequestCall builds the outbound payload handed to the
// token transfer: the oracle's request selector followed by the
// ABI-encoded arguments. The sender and amount slots are zero
// sentinels; the token contract overwrites them with the verified
// sender and transferred amount on delivery.
func EncodeOracleRequestCall(id common.Hash, req *Request) ([]byte, error) {
	if req == nil || req.Params == nil {
		return nil, errorsmod.Wrap(ErrInvalidRequest, "nil request descriptor")
	}

	packed, err := oracleRequestArgs.Pack(
		common.Address{},
		new(big.Int),
		[32]byte(req.JobID),
		[32]byte(id),
		req.CallbackTarget,
		req.CallbackSelector,
		new(big.Int).SetUint64(req.Nonce),
		big.NewInt(DataVersion),
		req.Params.Bytes(),
	)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidRequest, "encode payload: %s", err)
	}

	return append(OracleRequestSelector[:], packed...), nil
}
