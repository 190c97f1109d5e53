package session

import (
	"time"

	"flarebridge/matter-core/pkg/crypto"
)

// Manager ties the session table to AES-128-CCM encrypt/decrypt
// (Section 4.4). A Manager is safe for concurrent use; the underlying
// Table serializes session access.
type Manager struct {
	table *Table
}

// NewManager creates a Manager around a fresh session table.
func NewManager() *Manager {
	return &Manager{table: NewTable()}
}

// Table returns the underlying session table.
func (m *Manager) Table() *Table {
	return m.table
}

// Install adds a session with the given key, installing it under id (or
// allocating one if id is 0), per Section 4.8.
func (m *Manager) Install(id uint16, key [KeySize]byte) (*Context, error) {
	return m.table.Add(id, key)
}

// Encrypt seals plaintext under sessionID's key, returning
// ciphertext||tag. It advances the session's tx counter and reports the
// message counter value the caller must place in the message header so
// the receiver can reconstruct the same nonce.
func (m *Manager) Encrypt(sessionID uint16, plaintext []byte) (sealed []byte, messageCounter uint32, err error) {
	ctx, err := m.table.Get(sessionID)
	if err != nil {
		return nil, 0, err
	}

	counter := ctx.TxCounter
	nonce := crypto.BuildSessionNonce(sessionID, counter)

	ccm, err := crypto.NewAESCCM(ctx.key[:])
	if err != nil {
		return nil, 0, err
	}
	sealed, err = ccm.Seal(nonce[:], plaintext, nil)
	if err != nil {
		return nil, 0, err
	}

	ctx.TxCounter++
	ctx.LastUsed = time.Now()
	return sealed, counter, nil
}

// Decrypt opens a sealed message received with the given sessionID and
// messageCounter (taken from the message header). On success it
// advances the session's replay window. Authentication failure and
// replay both return without partial output, per Section 7's policy of
// silently dropping such packets.
func (m *Manager) Decrypt(sessionID uint16, messageCounter uint32, sealed []byte) ([]byte, error) {
	ctx, err := m.table.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if ctx.replayed(messageCounter) {
		return nil, ErrReplayDetected
	}

	nonce := crypto.BuildSessionNonce(sessionID, messageCounter)
	ccm, err := crypto.NewAESCCM(ctx.key[:])
	if err != nil {
		return nil, err
	}
	plaintext, err := ccm.Open(nonce[:], sealed, nil)
	if err != nil {
		return nil, ErrAuthFailure
	}

	ctx.checkAndAcceptCounter(messageCounter)
	ctx.LastUsed = time.Now()
	return plaintext, nil
}

// RemoveExpired sweeps and zeroizes sessions idle past IdleTimeout.
func (m *Manager) RemoveExpired(now time.Time) []uint16 {
	return m.table.RemoveExpired(now)
}
