package types

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Request is an in-flight oracle request descriptor. It has no identity
// of its own: its fields are folded into the outbound payload when the
// dispatcher consumes it, and the descriptor is then discarded.
type Request struct {
	// JobID selects which off-chain job spec the oracle should run.
	JobID common.Hash
	// CallbackTarget is the address that must receive the fulfillment call.
	CallbackTarget common.Address
	// CallbackSelector identifies the fulfillment entry point on the target.
	CallbackSelector [4]byte
	// Nonce is assigned by the dispatcher at dispatch time.
	Nonce uint64
	// Params is the ordered parameter buffer shipped to the oracle.
	Params *ParamBuffer
}

// NewRequest initializes a request descriptor with an empty parameter
// buffer and an unset nonce.
func NewRequest(jobID common.Hash, callbackTarget common.Address, callbackSelector [4]byte) *Request {
	return &Request{
		JobID:            jobID,
		CallbackTarget:   callbackTarget,
		CallbackSelector: callbackSelector,
		Params:           NewParamBuffer(),
	}
}

// Add appends a string-valued parameter in call order.
func (r *Request) Add(key, value string) error {
	return r.Params.AddString(key, value)
}

// AddBytes appends a raw-bytes-valued parameter in call order.
func (r *Request) AddBytes(key string, value []byte) error {
	return r.Params.AddBytes(key, value)
}

// AddInt appends a signed-integer-valued parameter in call order.
func (r *Request) AddInt(key string, value int64) error {
	return r.Params.AddInt(key, value)
}

// AddUint appends an unsigned-integer-valued parameter in call order.
func (r *Request) AddUint(key string, value uint64) error {
	return r.Params.AddUint(key, value)
}

// DeriveRequestID computes the request identifier for a dispatch:
// keccak256(self || uint256(nonce)). Unpredictable to third parties and
// collision-resistant across the consumer's lifetime.
func DeriveRequestID(self common.Address, nonce uint64) common.Hash {
	var buf [52]byte
	copy(buf[:20], self.Bytes())
	binary.BigEndian.PutUint64(buf[44:], nonce)
	return crypto.Keccak256Hash(buf[:])
}
