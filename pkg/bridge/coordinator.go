// Package bridge implements the protocol coordinator described in
// Section 4.11: the single task that owns the UDP transport, session
// manager, PASE engine, and interaction handlers, and the sensor
// ingestion side of the two-context concurrency model from Section 5.
package bridge

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pion/logging"

	"flarebridge/matter-core/pkg/attrstore"
	"flarebridge/matter-core/pkg/commissioning"
	"flarebridge/matter-core/pkg/im"
	"flarebridge/matter-core/pkg/message"
	"flarebridge/matter-core/pkg/sensor"
	"flarebridge/matter-core/pkg/session"
	"flarebridge/matter-core/pkg/subscription"
	"flarebridge/matter-core/pkg/transport"
)

// SweepInterval is how often the coordinator loop sweeps expired
// sessions, independent of whether a packet was just processed
// (Section 5: "sessions older than 3600 s are garbage-collected").
const SweepInterval = 30 * time.Second

// idleMinBackoff and idleMaxBackoff bound the cooperative yield taken
// when a loop iteration did no work (Section 4.11, step 8).
const (
	idleMinBackoff = 1 * time.Millisecond
	idleMaxBackoff = 20 * time.Millisecond
)

// Config bundles the collaborators the coordinator loop dispatches
// across. Every field is required except LoggerFactory.
type Config struct {
	Transport     *transport.Transport
	Sessions      *session.Manager
	Commissioning *commissioning.Coordinator
	Attributes    im.AttributeReader
	Subscriptions *subscription.Table
	Store         *attrstore.Store
	Sensors       sensor.Source

	LoggerFactory logging.LoggerFactory
}

// Coordinator runs the protocol task loop and the sensor ingestion
// goroutine described in Section 5. It is not reusable after Stop.
type Coordinator struct {
	transport     *transport.Transport
	sessions      *session.Manager
	commissioning *commissioning.Coordinator
	attrs         im.AttributeReader
	subs          *subscription.Table
	store         *attrstore.Store
	sensors       sensor.Source
	log           logging.LeveledLogger
	peers         *peerDirectory

	// counters sequences message counters and exchange ids for traffic
	// this device originates unsecured (session id 0), since the
	// session manager only tracks counters for sessions that already
	// exist.
	counters message.Counters

	closeCh chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// New validates cfg and returns an unstarted Coordinator.
func New(cfg Config) (*Coordinator, error) {
	if cfg.Transport == nil || cfg.Sessions == nil || cfg.Commissioning == nil ||
		cfg.Attributes == nil || cfg.Subscriptions == nil || cfg.Store == nil || cfg.Sensors == nil {
		return nil, ErrIncompleteConfig
	}

	c := &Coordinator{
		transport:     cfg.Transport,
		sessions:      cfg.Sessions,
		commissioning: cfg.Commissioning,
		attrs:         cfg.Attributes,
		subs:          cfg.Subscriptions,
		store:         cfg.Store,
		sensors:       cfg.Sensors,
		peers:         newPeerDirectory(),
		closeCh:       make(chan struct{}),
	}
	if cfg.LoggerFactory != nil {
		c.log = cfg.LoggerFactory.NewLogger("bridge")
	}
	return c, nil
}

// Start launches the sensor ingestion goroutine and the protocol
// coordinator loop. Both run until Stop is called.
func (c *Coordinator) Start() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	c.wg.Add(2)
	go c.ingestLoop()
	go c.coordinatorLoop()
	return nil
}

// Stop signals both goroutines to exit and waits for them to do so.
func (c *Coordinator) Stop() error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return ErrClosed
	}
	c.stopped = true
	c.mu.Unlock()

	close(c.closeCh)
	c.wg.Wait()
	return nil
}

// coordinatorLoop is the task from Section 4.11: poll, decode,
// decrypt, dispatch, encode, send, check subscriptions, yield.
func (c *Coordinator) coordinatorLoop() {
	defer c.wg.Done()

	idle := &backoff.ExponentialBackOff{
		InitialInterval:     idleMinBackoff,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         idleMaxBackoff,
		MaxElapsedTime:      0,
		Clock:               backoff.SystemClock,
	}
	idle.Reset()

	lastSweep := time.Now()

	for {
		select {
		case <-c.closeCh:
			return
		default:
		}

		didWork := c.step()

		now := time.Now()
		if now.Sub(lastSweep) >= SweepInterval {
			c.sessions.RemoveExpired(now)
			lastSweep = now
		}

		if didWork {
			idle.Reset()
			continue
		}

		select {
		case <-c.closeCh:
			return
		case <-time.After(idle.NextBackOff()):
		}
	}
}

// step processes at most one queued packet and one batch of due
// subscription reports, reporting whether any work was done.
func (c *Coordinator) step() bool {
	didWork := false

	if pkt, ok := c.transport.Receive(); ok {
		c.handlePacket(pkt)
		didWork = true
	}

	now := time.Now()
	for _, due := range c.subs.DueForReport(now) {
		c.sendDueReport(due)
		didWork = true
	}

	return didWork
}
