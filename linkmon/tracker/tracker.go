package tracker

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/datalink-global/datalink/linkmon/log"
	"github.com/datalink-global/datalink/linkmon/types"
)

type entry struct {
	oracle    common.Address
	firstSeen time.Time
}

// StaleRequest is an outstanding request older than the configured
// threshold, a candidate for cancellation.
type StaleRequest struct {
	ID     common.Hash
	Oracle common.Address
	Age    time.Duration
}

// Tracker mirrors the on-chain pending-request registry from observed
// lifecycle events.
type Tracker struct {
	mu      sync.Mutex
	pending map[common.Hash]entry
}

func NewTracker() *Tracker {
	return &Tracker{
		pending: make(map[common.Hash]entry),
	}
}

// Apply folds one lifecycle record into the outstanding set.
func (t *Tracker) Apply(record *types.Record, now time.Time) {
	if record == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch record.Kind {
	case types.Requested:
		if _, ok := t.pending[record.ID]; ok {
			log.Warnf("request %s reported twice, keeping first-seen time", record.ID)
			return
		}
		t.pending[record.ID] = entry{oracle: record.Oracle, firstSeen: now}
	case types.Fulfilled, types.Cancelled:
		if _, ok := t.pending[record.ID]; !ok {
			log.Debugf("%s for unknown request %s", record.Kind, record.ID)
			return
		}
		delete(t.pending, record.ID)
	}
}

// Outstanding returns the number of requests awaiting fulfillment.
func (t *Tracker) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.pending)
}

// Has reports whether a request is currently outstanding.
func (t *Tracker) Has(id common.Hash) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.pending[id]
	return ok
}

// Stale returns the outstanding requests older than threshold.
func (t *Tracker) Stale(now time.Time, threshold time.Duration) []StaleRequest {
	t.mu.Lock()
	defer t.mu.Unlock()

	stale := make([]StaleRequest, 0)
	for id, e := range t.pending {
		if age := now.Sub(e.firstSeen); age >= threshold {
			stale = append(stale, StaleRequest{ID: id, Oracle: e.oracle, Age: age})
		}
	}

	if len(stale) == 0 {
		return nil
	}

	return stale
}
