package subscribe

import (
	"context"
	"fmt"
	"sync"

	"github.com/tendermint/tendermint/rpc/client/http"
	coretypes "github.com/tendermint/tendermint/rpc/core/types"

	"github.com/datalink-global/datalink/linkmon/config"
	"github.com/datalink-global/datalink/linkmon/log"
	linkclienttypes "github.com/datalink-global/datalink/x/linkclient/types"
)

type SubscribeManager struct {
	subscriptions     map[string]<-chan coretypes.ResultEvent
	subscriptionsLock sync.RWMutex
	channelSize       int
	ctx               context.Context
}

// NewSubscribeManager creates a new subscription manager for request
// lifecycle events
func NewSubscribeManager(ctx context.Context) *SubscribeManager {
	return &SubscribeManager{
		subscriptions:     make(map[string]<-chan coretypes.ResultEvent),
		subscriptionsLock: sync.RWMutex{},
		channelSize:       config.ChannelSize(),
		ctx:               ctx,
	}
}

// SetSubscribe establishes subscriptions to the three lifecycle events
func (sm *SubscribeManager) SetSubscribe(client *http.HTTP) error {
	log.Debugf("start setting subscribe")
	sm.subscriptionsLock.Lock()
	defer sm.subscriptionsLock.Unlock()

	for _, eventType := range []string{
		linkclienttypes.EventTypeRequested,
		linkclienttypes.EventTypeFulfilled,
		linkclienttypes.EventTypeCancelled,
	} {
		query := fmt.Sprintf("tm.event='Tx' AND %s.%s EXISTS", eventType, linkclienttypes.AttributeKeyRequestId)
		ch, err := client.Subscribe(sm.ctx, eventType, query, sm.channelSize)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
		sm.subscriptions[eventType] = ch
	}

	log.Debugf("end setting subscribe")

	return nil
}

// Subscribe returns the next lifecycle event from any subscription, or
// nil when none is ready
func (sm *SubscribeManager) Subscribe() *coretypes.ResultEvent {
	sm.subscriptionsLock.RLock()
	defer sm.subscriptionsLock.RUnlock()

	select {
	case event := <-sm.subscriptions[linkclienttypes.EventTypeRequested]:
		return &event
	case event := <-sm.subscriptions[linkclienttypes.EventTypeFulfilled]:
		return &event
	case event := <-sm.subscriptions[linkclienttypes.EventTypeCancelled]:
		return &event
	case <-sm.ctx.Done():
		return nil
	default:
		return nil
	}
}
