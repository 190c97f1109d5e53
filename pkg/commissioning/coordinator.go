// Package commissioning orchestrates the device side of PASE
// (Section 4.8): routing SecureChannel opcodes into the PASE engine,
// installing the resulting session key, and persisting the fabric
// table and discriminator through the storage interface. CASE,
// attestation, NOC issuance, and onboarding payload encoding are a
// controller's job and out of scope here.
package commissioning

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"flarebridge/matter-core/pkg/fabric"
	"flarebridge/matter-core/pkg/message"
	"flarebridge/matter-core/pkg/pase"
	"flarebridge/matter-core/pkg/session"
	"flarebridge/matter-core/pkg/storage"
)

// MaxDiscriminator is the largest valid 12-bit discriminator value.
const MaxDiscriminator = 0xFFF

// Coordinator is the device-side commissioning context (Section 3):
// PASE state, the fabric table, and the persisted discriminator.
type Coordinator struct {
	mu sync.Mutex

	pin     []byte
	store   storage.Storage
	engine  *pase.Engine
	session *session.Manager
	fabrics *fabric.Table

	discriminator uint16
	state         State
}

// New creates a Coordinator bound to setup PIN pin, loading any
// persisted fabrics and discriminator from store (Section 4.8: "load
// on init; missing record = no fabrics").
func New(pin []byte, store storage.Storage, sessions *session.Manager) (*Coordinator, error) {
	engine, err := pase.NewEngine(pin)
	if err != nil {
		return nil, err
	}

	fabrics := fabric.NewTable(store)
	if err := fabrics.Load(); err != nil {
		return nil, err
	}

	discriminator, err := loadOrGenerateDiscriminator(store)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		pin:           pin,
		store:         store,
		engine:        engine,
		session:       sessions,
		fabrics:       fabrics,
		discriminator: discriminator,
		state:         StateIdle,
	}
	if fabrics.Commissioned() {
		c.state = StateCommissioned
	}
	return c, nil
}

// Discriminator returns the persisted 12-bit discriminator (Section 3).
func (c *Coordinator) Discriminator() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discriminator
}

// State returns the current commissioning context state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Fabrics returns the underlying fabric table.
func (c *Coordinator) Fabrics() *fabric.Table {
	return c.fabrics
}

// Commissioned reports whether the device has at least one active
// fabric.
func (c *Coordinator) Commissioned() bool {
	return c.fabrics.Commissioned()
}

// HandleSecureChannel routes a SecureChannel opcode/payload into the
// PASE engine and returns the response opcode, TLV payload, and the
// session id the response must be sent under, per Section 4.8's
// "emitting responses with opcode = request+1". PBKDFParamResponse and
// PAKE2 travel unsecured (session id 0); the PAKEStatusReport answering
// PAKE3 travels under the session the handshake just installed (the
// table allocates starting at 1 on the first installed session).
func (c *Coordinator) HandleSecureChannel(opcode uint8, payload []byte) (respOpcode uint8, respPayload []byte, sessionID uint16, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch opcode {
	case message.OpcodePBKDFParamRequest:
		resp, err := c.engine.HandlePBKDFParamRequest(payload, 0)
		if err != nil {
			c.state = StateError
			return 0, nil, 0, err
		}
		c.state = StatePaseStarted
		return message.OpcodePBKDFParamResponse, resp, 0, nil

	case message.OpcodePAKE1:
		resp, err := c.engine.HandlePake1(payload)
		if err != nil {
			c.state = StateError
			return 0, nil, 0, err
		}
		return message.OpcodePAKE2, resp, 0, nil

	case message.OpcodePAKE3:
		installedID, err := c.engine.HandlePake3(payload, 0, c.session)
		if err != nil {
			c.state = StateError
			return 0, nil, 0, err
		}

		if !c.fabrics.Commissioned() {
			f, err := newPASEFabric()
			if err != nil {
				c.state = StateError
				return 0, nil, 0, err
			}
			if err := c.fabrics.Add(f); err != nil {
				c.state = StateError
				return 0, nil, 0, err
			}
			if err := c.fabrics.Save(); err != nil {
				c.state = StateError
				return 0, nil, 0, err
			}
		}

		c.state = StateCommissioned
		return message.OpcodePAKEStatusReport, nil, installedID, nil

	default:
		return 0, nil, 0, ErrUnsupportedOpcode
	}
}

// Reset clears all fabrics, persists the empty set, and returns the
// PASE engine and state to Idle (Section 4.8's "reset()").
func (c *Coordinator) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fabrics.Clear()
	if err := c.fabrics.Save(); err != nil {
		return err
	}
	c.engine.Reset()
	c.state = StateIdle
	return nil
}

// newPASEFabric builds the fabric record installed when a PASE handshake
// completes. This core stops at PASE (Section 1's scope excludes CASE
// and NOC issuance), so there is no certificate to carry a real fabric
// or vendor identity; the fabric id is simply a random 64-bit value,
// enough to make the device "commissioned" per Section 3 and to give
// Reset something concrete to clear.
func newPASEFabric() (fabric.Fabric, error) {
	var idBytes [8]byte
	if _, err := rand.Read(idBytes[:]); err != nil {
		return fabric.Fabric{}, err
	}
	return fabric.Fabric{
		Active:   true,
		FabricID: binary.BigEndian.Uint64(idBytes[:]),
	}, nil
}

func loadOrGenerateDiscriminator(store storage.Storage) (uint16, error) {
	buf := make([]byte, 2)
	n, err := store.Read(storage.KeyDiscriminator, buf)
	if err == nil && n == 2 {
		return binary.BigEndian.Uint16(buf), nil
	}
	if err != nil && err != storage.ErrNotFound {
		return 0, err
	}

	var raw [2]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return 0, err
	}
	discriminator := binary.BigEndian.Uint16(raw[:]) & MaxDiscriminator

	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, discriminator)
	if err := store.Write(storage.KeyDiscriminator, out); err != nil {
		return 0, err
	}
	return discriminator, nil
}
