package keeper

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

// ResolveAndSetToken looks up the token address registered under the
// "token" subnode of node and binds it as the active token address. A
// resolver failure or zero address leaves the stored address unchanged.
func (k Keeper) ResolveAndSetToken(ctx sdk.Context, ns types.NameService, node common.Hash) error {
	addr, err := resolveAddress(ctx, ns, types.SubnodeHash(node, types.TokenSubnodeLabel))
	if err != nil {
		return err
	}
	k.SetTokenAddress(ctx, addr)
	return nil
}

// ResolveAndSetOracle looks up the oracle address registered under the
// "oracle" subnode of node and binds it as the active oracle address.
func (k Keeper) ResolveAndSetOracle(ctx sdk.Context, ns types.NameService, node common.Hash) error {
	addr, err := resolveAddress(ctx, ns, types.SubnodeHash(node, types.OracleSubnodeLabel))
	if err != nil {
		return err
	}
	k.SetOracleAddress(ctx, addr)
	return nil
}

func resolveAddress(ctx sdk.Context, ns types.NameService, node common.Hash) (common.Address, error) {
	if ns == nil {
		return common.Address{}, errorsmod.Wrap(types.ErrResolutionFailed, "name service not configured")
	}

	resolver, err := ns.Resolver(ctx, node)
	if err != nil {
		return common.Address{}, errorsmod.Wrapf(types.ErrResolutionFailed, "resolver lookup: %s", err)
	}
	if resolver == nil {
		return common.Address{}, errorsmod.Wrapf(types.ErrResolutionFailed, "no resolver for node %s", node)
	}

	addr, err := resolver.Addr(ctx, node)
	if err != nil {
		return common.Address{}, errorsmod.Wrapf(types.ErrResolutionFailed, "address lookup: %s", err)
	}
	if addr == (common.Address{}) {
		return common.Address{}, errorsmod.Wrapf(types.ErrResolutionFailed, "zero address for node %s", node)
	}

	return addr, nil
}
