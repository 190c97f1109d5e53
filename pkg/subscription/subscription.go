// Package subscription implements the subscription table described in
// Section 4.9: per-attribute subscriptions with min/max report
// interval timing, bounded to a fixed capacity.
package subscription

import (
	"errors"
	"time"
)

// MaxSubscriptions is the fixed subscription table capacity.
const MaxSubscriptions = 10

var (
	// ErrTableFull is returned by Add at capacity.
	ErrTableFull = errors.New("subscription: table full")
	// ErrNotFound is returned when an id has no matching subscription.
	ErrNotFound = errors.New("subscription: not found")
)

// Subscription is a single attribute subscription.
type Subscription struct {
	ID          uint32
	SessionID   uint16
	Endpoint    uint8
	ClusterID   uint32
	AttributeID uint32
	MinInterval time.Duration
	MaxInterval time.Duration

	lastReport time.Time
	pending    bool
	active     bool
}

// Active reports whether the subscription is still live.
func (s *Subscription) Active() bool { return s.active }
