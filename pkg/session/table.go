// Package session implements the keyed AES-128-CCM secure session table
// described in Section 4.4 of the core specification: a small,
// fixed-capacity table of sessions, each good for encrypt/decrypt under
// a single 16-byte key with a monotonic replay window, evicted by idle
// timeout or explicit destruction.
package session

import (
	"sync"
	"time"
)

// MaxSessions bounds the number of concurrently active secure sessions
// (Section 3), a deliberate upper bound driven by memory budgets.
const MaxSessions = 5

// KeySize is the length of a session's AES-128-CCM key.
const KeySize = 16

// IdleTimeout is how long a session may go unused before
// Table.RemoveExpired evicts it (Section 4.4).
const IdleTimeout = 1 * time.Hour

// Context is one secure session record (Section 3). The zero value is
// not meaningful; construct via Table.Add.
type Context struct {
	ID            uint16
	key           [KeySize]byte
	TxCounter     uint32
	lastRxCounter uint32
	haveRx        bool
	LastUsed      time.Time
	Active        bool
}

// Key returns a copy of the session's symmetric key.
func (c *Context) Key() [KeySize]byte {
	return c.key
}

// zeroize overwrites key material, called on removal (Section 4.4).
func (c *Context) zeroize() {
	for i := range c.key {
		c.key[i] = 0
	}
	c.TxCounter = 0
	c.lastRxCounter = 0
}

// replayed reports whether counter falls at or before the last accepted
// value for this session, without updating any state. Callers must only
// treat a message as authentic after the payload has decrypted
// successfully, so this check never advances the window by itself.
func (c *Context) replayed(counter uint32) bool {
	return c.haveRx && counter <= c.lastRxCounter
}

// checkAndAcceptCounter records counter as the last accepted value for
// this session. Callers must call replayed first and only call this
// after the message has been authenticated, per Section 3: accepting a
// counter before verifying the CCM tag would let a forged packet
// permanently desync the replay window.
func (c *Context) checkAndAcceptCounter(counter uint32) {
	c.lastRxCounter = counter
	c.haveRx = true
}

// Table holds up to MaxSessions concurrently active sessions. A Table is
// safe for concurrent use.
type Table struct {
	mu       sync.Mutex
	sessions map[uint16]*Context
	nextID   uint16
}

// NewTable creates an empty session table.
func NewTable() *Table {
	return &Table{sessions: make(map[uint16]*Context, MaxSessions), nextID: 1}
}

// Add installs a new session with the given id and key. If id is 0, the
// table allocates the next available id itself (starting at 1, per
// Section 4.8's "first call uses 1").
func (t *Table) Add(id uint16, key [KeySize]byte) (*Context, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.sessions) >= MaxSessions {
		return nil, ErrSessionLimitReached
	}

	if id == 0 {
		id = t.allocateIDLocked()
	} else if id == invalidSessionID {
		return nil, ErrInvalidSessionID
	}

	ctx := &Context{ID: id, key: key, LastUsed: time.Now(), Active: true}
	t.sessions[id] = ctx
	return ctx, nil
}

const invalidSessionID = 0

func (t *Table) allocateIDLocked() uint16 {
	for {
		id := t.nextID
		t.nextID++
		if t.nextID == 0 {
			t.nextID = 1
		}
		if id == 0 {
			continue
		}
		if _, exists := t.sessions[id]; !exists {
			return id
		}
	}
}

// Get returns the session for id, or ErrSessionNotFound.
func (t *Table) Get(id uint16) (*Context, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx, ok := t.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return ctx, nil
}

// Remove destroys a session, zeroizing its key material.
func (t *Table) Remove(id uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ctx, ok := t.sessions[id]; ok {
		ctx.zeroize()
		ctx.Active = false
		delete(t.sessions, id)
	}
}

// Count returns the number of active sessions.
func (t *Table) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// IsFull reports whether the table is at MaxSessions capacity.
func (t *Table) IsFull() bool {
	return t.Count() >= MaxSessions
}

// RemoveExpired sweeps sessions whose LastUsed predates now-IdleTimeout
// (Section 4.4), returning the ids it removed.
func (t *Table) RemoveExpired(now time.Time) []uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var expired []uint16
	cutoff := now.Add(-IdleTimeout)
	for id, ctx := range t.sessions {
		if ctx.LastUsed.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		t.sessions[id].zeroize()
		delete(t.sessions, id)
	}
	return expired
}

// Clear removes and zeroizes every session.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ctx := range t.sessions {
		ctx.zeroize()
	}
	t.sessions = make(map[uint16]*Context, MaxSessions)
}
