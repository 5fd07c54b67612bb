package types

// linkclient module event types
const (
	// event types
	EventTypeRequested = ModuleName + "_requested"
	EventTypeFulfilled = ModuleName + "_fulfilled"
	EventTypeCancelled = ModuleName + "_cancelled"

	// event attributes
	AttributeKeyRequestId = "request_id"
	AttributeKeyOracle    = "oracle"
)
