package subscription

import (
	"sync"
	"time"
)

// Table holds up to MaxSubscriptions live subscriptions.
type Table struct {
	mu     sync.Mutex
	subs   map[uint32]*Subscription
	nextID uint32
}

// NewTable returns an empty subscription table.
func NewTable() *Table {
	return &Table{subs: make(map[uint32]*Subscription)}
}

// Add registers a new subscription, returning ErrTableFull at
// capacity. The subscription id is monotonic and unique for the
// process lifetime.
func (t *Table) Add(sessionID uint16, endpoint uint8, clusterID, attributeID uint32, minInterval, maxInterval time.Duration, now time.Time) (*Subscription, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.subs) >= MaxSubscriptions {
		return nil, ErrTableFull
	}

	t.nextID++
	sub := &Subscription{
		ID:          t.nextID,
		SessionID:   sessionID,
		Endpoint:    endpoint,
		ClusterID:   clusterID,
		AttributeID: attributeID,
		MinInterval: minInterval,
		MaxInterval: maxInterval,
		lastReport:  now,
		active:      true,
	}
	t.subs[sub.ID] = sub
	return sub, nil
}

// Remove ends a subscription (explicit cancellation).
func (t *Table) Remove(id uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.subs[id]; !ok {
		return ErrNotFound
	}
	delete(t.subs, id)
	return nil
}

// RemoveForSession ends every subscription owned by a session, called
// when the underlying secure session closes.
func (t *Table) RemoveForSession(sessionID uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, sub := range t.subs {
		if sub.SessionID == sessionID {
			delete(t.subs, id)
		}
	}
}

// Clear removes every subscription (device reset).
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = make(map[uint32]*Subscription)
}

// Count returns the number of live subscriptions.
func (t *Table) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// MarkChanged flags every subscription watching (endpoint, cluster,
// attribute) as having a pending change to report.
func (t *Table) MarkChanged(endpoint uint8, clusterID, attributeID uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sub := range t.subs {
		if sub.Endpoint == endpoint && sub.ClusterID == clusterID && sub.AttributeID == attributeID {
			sub.pending = true
		}
	}
}

// DueReport describes a subscription ready to emit a report.
type DueReport struct {
	Subscription *Subscription
	Endpoint     uint8
	ClusterID    uint32
	AttributeID  uint32
}

// DueForReport returns every subscription that should report now: a
// pending change once MinInterval has elapsed since the last report,
// or a keep-alive report once MaxInterval has elapsed with no change.
// Matching subscriptions have their report clock reset as part of this
// call.
func (t *Table) DueForReport(now time.Time) []DueReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	var due []DueReport
	for _, sub := range t.subs {
		elapsed := now.Sub(sub.lastReport)
		if sub.pending && elapsed >= sub.MinInterval {
			due = append(due, DueReport{Subscription: sub, Endpoint: sub.Endpoint, ClusterID: sub.ClusterID, AttributeID: sub.AttributeID})
			sub.pending = false
			sub.lastReport = now
			continue
		}
		if !sub.pending && elapsed >= sub.MaxInterval {
			due = append(due, DueReport{Subscription: sub, Endpoint: sub.Endpoint, ClusterID: sub.ClusterID, AttributeID: sub.AttributeID})
			sub.lastReport = now
		}
	}
	return due
}
