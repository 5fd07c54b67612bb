package types

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	// ModuleName defines the module name
	ModuleName = "linkclient"

	// StoreKey is the default store key for the module
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// KV Store key prefix bytes
const (
	prefixNonce = iota + 1
	prefixPendingRequest
	prefixTokenAddress
	prefixOracleAddress
)

// KV Store key prefixes
var (
	KeyNonce          = []byte{prefixNonce}
	KeyPendingRequest = []byte{prefixPendingRequest}
	KeyTokenAddress   = []byte{prefixTokenAddress}
	KeyOracleAddress  = []byte{prefixOracleAddress}
)

// GetPendingRequestKey returns the store key for the pending request entry
// registered under the given request identifier.
func GetPendingRequestKey(id common.Hash) []byte {
	return append(KeyPendingRequest, id.Bytes()...)
}
