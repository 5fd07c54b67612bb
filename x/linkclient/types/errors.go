package types

import (
	errorsmod "cosmossdk.io/errors"
)

// errors
var (
	ErrDuplicateRequest = errorsmod.Register(ModuleName, 2, "request is already pending")
	ErrUnauthorized     = errorsmod.Register(ModuleName, 3, "source must be the oracle of the request")
	ErrTransferFailed   = errorsmod.Register(ModuleName, 4, "unable to transfer and call to oracle")
	ErrResolutionFailed = errorsmod.Register(ModuleName, 5, "name service returned no usable address")
	ErrDuplicateParam   = errorsmod.Register(ModuleName, 6, "duplicate request parameter key")
	ErrInvalidRequest   = errorsmod.Register(ModuleName, 7, "invalid oracle request")
)
