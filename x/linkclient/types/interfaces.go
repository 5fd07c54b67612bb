package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// TokenKeeper defines the contract needed from the fungible token
// collaborator: an atomic transfer-with-callback. A nil error means the
// transfer succeeded and the payload was delivered to the recipient.
type TokenKeeper interface {
	TransferAndCall(ctx sdk.Context, from, to common.Address, amount math.Int, data []byte) error
}

// OracleChannel defines the contract needed from the oracle-request
// collaborator to forward cancellation notices.
type OracleChannel interface {
	CancelOracleRequest(ctx sdk.Context, oracle common.Address, id common.Hash, payment math.Int, callbackSelector [4]byte, expiration uint64) error
}

// NameService is a pluggable address-resolution strategy. Deployments
// that bind concretely-configured addresses simply never call it.
type NameService interface {
	Resolver(ctx sdk.Context, node common.Hash) (AddressResolver, error)
}

// AddressResolver resolves a name node to a registered address.
type AddressResolver interface {
	Addr(ctx sdk.Context, node common.Hash) (common.Address, error)
}

// FulfillHandler consumes a validated oracle response. An error rolls
// back the fulfillment, leaving the request pending.
type FulfillHandler func(ctx sdk.Context, id common.Hash, data []byte) error

// Subnode labels under the name-resolution root, distinct salts for the
// two resolved roles.
var (
	TokenSubnodeLabel  = crypto.Keccak256Hash([]byte("token"))
	OracleSubnodeLabel = crypto.Keccak256Hash([]byte("oracle"))
)

// SubnodeHash derives the subnode for a label under the given root node.
func SubnodeHash(node, label common.Hash) common.Hash {
	return crypto.Keccak256Hash(node.Bytes(), label.Bytes())
}
