package sensor

import (
	"sync"
	"time"
)

// Ticker is a synthetic Source that emits samples on a fixed interval,
// for local testing and the reference binary (Section 4.12). Each tick
// calls Next to produce the next sample; the default Next sweeps a
// slow triangle-wave temperature with the fan and flame state held fixed,
// which is enough to exercise reads, subscriptions, and report
// notifications end to end.
type Ticker struct {
	interval time.Duration
	next     func() Sample

	mu      sync.Mutex
	samples chan Sample
	stopCh  chan struct{}
	started bool
}

// NewTicker creates a Ticker that emits every interval. A nil next
// uses DefaultNext.
func NewTicker(interval time.Duration, next func() Sample) *Ticker {
	if next == nil {
		next = DefaultNext()
	}
	return &Ticker{
		interval: interval,
		next:     next,
		samples:  make(chan Sample, 1),
		stopCh:   make(chan struct{}),
	}
}

// DefaultNext returns a Next function producing a slow temperature
// ramp between 20.00C and 30.00C, flame false, fan at 50%.
func DefaultNext() func() Sample {
	temp := int16(2000)
	rising := true
	return func() Sample {
		s := Sample{Flame: false, Fan: 50, Temp: temp}
		if rising {
			temp += 10
			if temp >= 3000 {
				rising = false
			}
		} else {
			temp -= 10
			if temp <= 2000 {
				rising = true
			}
		}
		return s
	}
}

// Samples returns the channel new samples are delivered on.
func (t *Ticker) Samples() <-chan Sample {
	return t.samples
}

// Start begins emitting samples every interval until Stop is called.
// Calling Start twice is a no-op.
func (t *Ticker) Start() {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stopCh:
				return
			case <-ticker.C:
				sample := t.next()
				select {
				case t.samples <- sample:
				default:
					// Drop the stale sample to make room for the
					// newest one.
					select {
					case <-t.samples:
					default:
					}
					select {
					case t.samples <- sample:
					default:
					}
				}
			}
		}
	}()
}

// Stop halts emission. Safe to call once; a second call is a no-op.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	t.mu.Unlock()
	close(t.stopCh)
}

var _ Source = (*Ticker)(nil)
