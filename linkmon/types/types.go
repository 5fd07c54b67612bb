package types

import (
	"github.com/ethereum/go-ethereum/common"
	coretypes "github.com/tendermint/tendermint/rpc/core/types"

	"github.com/datalink-global/datalink/linkmon/log"
	linkclienttypes "github.com/datalink-global/datalink/x/linkclient/types"
)

// Record is one observed request lifecycle transition.
type Record struct {
	Kind   RecordKind
	ID     common.Hash
	Oracle common.Address
}

type RecordKind byte

const (
	Requested RecordKind = iota
	Fulfilled
	Cancelled
)

func (k RecordKind) String() string {
	switch k {
	case Requested:
		return "requested"
	case Fulfilled:
		return "fulfilled"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

var (
	requestedID     = linkclienttypes.EventTypeRequested + "." + linkclienttypes.AttributeKeyRequestId
	requestedOracle = linkclienttypes.EventTypeRequested + "." + linkclienttypes.AttributeKeyOracle

	fulfilledID = linkclienttypes.EventTypeFulfilled + "." + linkclienttypes.AttributeKeyRequestId

	cancelledID = linkclienttypes.EventTypeCancelled + "." + linkclienttypes.AttributeKeyRequestId
)

// MakeRecords converts one subscription event into lifecycle records.
func MakeRecords(event coretypes.ResultEvent) []*Record {
	log.Debugf("start making records")

	records := make([]*Record, 0)
	eventsMap := event.Events

	if _, ok := eventsMap[requestedID]; ok {
		records = append(records, makeRequestedRecords(eventsMap)...)
	}
	if _, ok := eventsMap[fulfilledID]; ok {
		records = append(records, makeClearingRecords(eventsMap, fulfilledID, Fulfilled)...)
	}
	if _, ok := eventsMap[cancelledID]; ok {
		records = append(records, makeClearingRecords(eventsMap, cancelledID, Cancelled)...)
	}

	log.Debugf("end making records, %d", len(records))

	if len(records) == 0 {
		return nil
	}

	return records
}

func makeRequestedRecords(eventMap map[string][]string) []*Record {
	records := make([]*Record, 0)
	oracles := eventMap[requestedOracle]

	for i, raw := range eventMap[requestedID] {
		id, err := linkclienttypes.ParseRequestID(raw)
		if err != nil {
			log.Errorf("failed to parse request id: %v", err)
			continue
		}

		if i >= len(oracles) || !common.IsHexAddress(oracles[i]) {
			log.Errorf("requested event %s carries no oracle address", raw)
			continue
		}

		records = append(records, &Record{
			Kind:   Requested,
			ID:     id,
			Oracle: common.HexToAddress(oracles[i]),
		})
	}

	return records
}

func makeClearingRecords(eventMap map[string][]string, key string, kind RecordKind) []*Record {
	records := make([]*Record, 0)

	for _, raw := range eventMap[key] {
		id, err := linkclienttypes.ParseRequestID(raw)
		if err != nil {
			log.Errorf("failed to parse request id: %v", err)
			continue
		}

		records = append(records, &Record{
			Kind: kind,
			ID:   id,
		})
	}

	return records
}
