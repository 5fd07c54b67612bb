package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/tendermint/tendermint/rpc/client/http"

	"github.com/datalink-global/datalink/linkmon/config"
	"github.com/datalink-global/datalink/linkmon/log"
	"github.com/datalink-global/datalink/linkmon/subscribe"
	"github.com/datalink-global/datalink/linkmon/tracker"
	"github.com/datalink-global/datalink/linkmon/types"
)

type Daemon struct {
	client *http.HTTP

	subscribeManager *subscribe.SubscribeManager
	requestTracker   *tracker.Tracker

	ctx context.Context
}

// New creates a new request monitor daemon instance with initialized
// components
func New(ctx context.Context) (*Daemon, error) {
	d := new(Daemon)
	d.ctx = ctx

	clt, err := http.New(config.ChainEndpoint(), "/websocket")
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	d.client = clt

	d.subscribeManager = subscribe.NewSubscribeManager(d.ctx)
	d.requestTracker = tracker.NewTracker()

	return d, nil
}

// Start connects the client and subscribes to the lifecycle events
func (d *Daemon) Start() error {
	err := d.client.Start()
	if err != nil {
		return fmt.Errorf("failed to start client: %w", err)
	}

	err = d.subscribeManager.SetSubscribe(d.client)
	if err != nil {
		return fmt.Errorf("failed to set subscribe: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the daemon components
func (d *Daemon) Stop() {
	if err := d.client.Stop(); err != nil {
		log.Errorf("failed to stop client: %v", err)
	}
}

// Tracker exposes the mirrored outstanding-request set.
func (d *Daemon) Tracker() *tracker.Tracker {
	return d.requestTracker
}

// Monitor continuously folds lifecycle events into the tracker and
// reports requests that outlive the stale threshold
func (d *Daemon) Monitor() {
	ticker := time.NewTicker(config.StaleThreshold() / 2)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			return
		case now := <-ticker.C:
			for _, stale := range d.requestTracker.Stale(now, config.StaleThreshold()) {
				log.Warnf("request %s to oracle %s outstanding for %s, consider cancelling",
					stale.ID, stale.Oracle.Hex(), stale.Age.Round(time.Second))
			}
		default:
			event := d.subscribeManager.Subscribe()
			if event == nil {
				continue
			}

			now := time.Now()
			for _, record := range types.MakeRecords(*event) {
				log.Infof("request %s %s", record.ID, record.Kind)
				d.requestTracker.Apply(record, now)
			}
		}
	}
}
