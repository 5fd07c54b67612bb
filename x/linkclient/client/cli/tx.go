package cli

import (
	"fmt"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/spf13/cobra"

	"github.com/datalink-global/datalink/x/linkclient/types"
)

func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      fmt.Sprintf("%s transactions subcommands", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.AddCommand(NewFulfillRequestTxCmd())
	cmd.AddCommand(NewCancelRequestTxCmd())
	return cmd
}

func NewFulfillRequestTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fulfill [request_id] [callback_selector] [data] --from oracle_key",
		Short: "Deliver a response for a pending oracle request",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {

			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := types.ParseRequestID(args[0])
			if err != nil {
				return err
			}

			selector, err := types.ParseSelector(args[1])
			if err != nil {
				return err
			}

			data, err := types.ParseHexData(args[2])
			if err != nil {
				return err
			}

			msg := types.NewMsgFulfillRequest(clientCtx.GetFromAddress(), id, selector, data)

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func NewCancelRequestTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel [request_id] [payment] [callback_selector] [expiration] --from consumer_key",
		Short: "Cancel a stale oracle request and notify the oracle",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {

			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			id, err := types.ParseRequestID(args[0])
			if err != nil {
				return err
			}

			payment, ok := math.NewIntFromString(args[1])
			if !ok {
				return errorsmod.Wrapf(types.ErrInvalidRequest, "payment %q", args[1])
			}

			selector, err := types.ParseSelector(args[2])
			if err != nil {
				return err
			}

			expiration, err := strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				return err
			}

			msg := types.NewMsgCancelRequest(clientCtx.GetFromAddress(), id, payment, selector, expiration)

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
