package types

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"
)

// linkclient message types
const (
	TypeMsgFulfillRequest = ModuleName + "_fulfill_request"
	TypeMsgCancelRequest  = ModuleName + "_cancel_request"
)

// MsgServer defines the linkclient message handlers.
type MsgServer interface {
	FulfillRequest(ctx context.Context, msg *MsgFulfillRequest) (*MsgFulfillRequestResponse, error)
	CancelRequest(ctx context.Context, msg *MsgCancelRequest) (*MsgCancelRequestResponse, error)
}

// MsgFulfillRequest is the fulfillment entry point invoked by the
// authorized oracle. Data carries the hex-encoded response value.
type MsgFulfillRequest struct {
	Sender           string `json:"sender"`
	RequestId        string `json:"request_id"`
	CallbackSelector string `json:"callback_selector"`
	Data             string `json:"data"`
}

// MsgFulfillRequestResponse is the response type of MsgFulfillRequest.
type MsgFulfillRequestResponse struct{}

// MsgCancelRequest removes a stale pending request and forwards the
// cancellation notice to the oracle. No ownership check is enforced
// beyond message signing; callers must cancel only their own requests.
type MsgCancelRequest struct {
	Sender           string `json:"sender"`
	RequestId        string `json:"request_id"`
	Payment          string `json:"payment"`
	CallbackSelector string `json:"callback_selector"`
	Expiration       uint64 `json:"expiration"`
}

// MsgCancelRequestResponse is the response type of MsgCancelRequest.
type MsgCancelRequestResponse struct{}

var _ sdk.Msg = &MsgFulfillRequest{}

// NewMsgFulfillRequest - construct a msg to fulfill a pending request.
func NewMsgFulfillRequest(sender sdk.AccAddress, id common.Hash, callbackSelector [4]byte, data []byte) *MsgFulfillRequest {
	return &MsgFulfillRequest{
		Sender:           sender.String(),
		RequestId:        id.Hex(),
		CallbackSelector: FormatSelector(callbackSelector),
		Data:             "0x" + hex.EncodeToString(data),
	}
}

// Route Implements Msg.
func (msg MsgFulfillRequest) Route() string { return RouterKey }

// Type Implements Msg.
func (msg MsgFulfillRequest) Type() string { return TypeMsgFulfillRequest }

// ValidateBasic Implements Msg.
func (msg MsgFulfillRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, " sender address, %s", err)
	}
	if _, err := ParseRequestID(msg.RequestId); err != nil {
		return err
	}
	if _, err := ParseSelector(msg.CallbackSelector); err != nil {
		return err
	}
	if _, err := ParseHexData(msg.Data); err != nil {
		return err
	}
	return nil
}

// GetSignBytes Implements Msg.
func (msg MsgFulfillRequest) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

// GetSigners Implements Msg.
func (msg MsgFulfillRequest) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

var _ sdk.Msg = &MsgCancelRequest{}

// NewMsgCancelRequest - construct a msg to cancel a stale request.
func NewMsgCancelRequest(sender sdk.AccAddress, id common.Hash, payment math.Int, callbackSelector [4]byte, expiration uint64) *MsgCancelRequest {
	return &MsgCancelRequest{
		Sender:           sender.String(),
		RequestId:        id.Hex(),
		Payment:          payment.String(),
		CallbackSelector: FormatSelector(callbackSelector),
		Expiration:       expiration,
	}
}

// Route Implements Msg.
func (msg MsgCancelRequest) Route() string { return RouterKey }

// Type Implements Msg.
func (msg MsgCancelRequest) Type() string { return TypeMsgCancelRequest }

// ValidateBasic Implements Msg.
func (msg MsgCancelRequest) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Sender); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, " sender address, %s", err)
	}
	if _, err := ParseRequestID(msg.RequestId); err != nil {
		return err
	}
	if _, err := ParseSelector(msg.CallbackSelector); err != nil {
		return err
	}
	payment, ok := math.NewIntFromString(msg.Payment)
	if !ok || payment.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidRequest, "payment %q", msg.Payment)
	}
	return nil
}

// GetSignBytes Implements Msg.
func (msg MsgCancelRequest) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&msg))
}

// GetSigners Implements Msg.
func (msg MsgCancelRequest) GetSigners() []sdk.AccAddress {
	sender, _ := sdk.AccAddressFromBech32(msg.Sender)
	return []sdk.AccAddress{sender}
}

// ParseRequestID parses a 0x-prefixed 32-byte hex request identifier.
func ParseRequestID(s string) (common.Hash, error) {
	raw := strings.TrimPrefix(s, "0x")
	bz, err := hex.DecodeString(raw)
	if err != nil || len(bz) != common.HashLength {
		return common.Hash{}, errorsmod.Wrapf(ErrInvalidRequest, "request id %q", s)
	}
	return common.BytesToHash(bz), nil
}

// ParseSelector parses a 0x-prefixed 4-byte hex function selector.
func ParseSelector(s string) ([4]byte, error) {
	var sel [4]byte
	raw := strings.TrimPrefix(s, "0x")
	bz, err := hex.DecodeString(raw)
	if err != nil || len(bz) != len(sel) {
		return sel, errorsmod.Wrapf(ErrInvalidRequest, "callback selector %q", s)
	}
	copy(sel[:], bz)
	return sel, nil
}

// FormatSelector renders a selector as 0x-prefixed hex.
func FormatSelector(sel [4]byte) string {
	return "0x" + hex.EncodeToString(sel[:])
}

// ParseHexData parses an optionally 0x-prefixed hex payload.
func ParseHexData(s string) ([]byte, error) {
	bz, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidRequest, "data %q", s)
	}
	return bz, nil
}

// proto.Message implementation for the hand-written messages; the
// module has no generated types.

func (msg *MsgFulfillRequest) Reset()        { *msg = MsgFulfillRequest{} }
func (msg *MsgFulfillRequest) ProtoMessage() {}
func (msg *MsgFulfillRequest) String() string {
	return fmt.Sprintf("fulfill{%s %s}", msg.Sender, msg.RequestId)
}

func (msg *MsgCancelRequest) Reset()        { *msg = MsgCancelRequest{} }
func (msg *MsgCancelRequest) ProtoMessage() {}
func (msg *MsgCancelRequest) String() string {
	return fmt.Sprintf("cancel{%s %s}", msg.Sender, msg.RequestId)
}

func (msg *MsgFulfillRequestResponse) Reset()         { *msg = MsgFulfillRequestResponse{} }
func (msg *MsgFulfillRequestResponse) ProtoMessage()  {}
func (msg *MsgFulfillRequestResponse) String() string { return "fulfill_response{}" }

func (msg *MsgCancelRequestResponse) Reset()         { *msg = MsgCancelRequestResponse{} }
func (msg *MsgCancelRequestResponse) ProtoMessage()  {}
func (msg *MsgCancelRequestResponse) String() string { return "cancel_response{}" }
