package fabric

import (
	"errors"
	"sync"

	"flarebridge/matter-core/pkg/storage"
)

// MaxFabrics is the fixed fabric table capacity (Section 3 / 9).
const MaxFabrics = 5

var (
	// ErrTableFull is returned when Add is called at capacity.
	ErrTableFull = errors.New("fabric: table full")
	// ErrNotFound is returned when a fabric id has no matching entry.
	ErrNotFound = errors.New("fabric: not found")
)

// Table holds up to MaxFabrics fabrics and persists them through a
// storage.Storage as a single blob. A device with at least one active
// fabric is considered commissioned.
type Table struct {
	mu      sync.RWMutex
	fabrics []Fabric
	store   storage.Storage
}

// NewTable creates an empty, unpersisted table.
func NewTable(store storage.Storage) *Table {
	return &Table{store: store}
}

// Load replaces the table's contents with the fabrics persisted under
// storage.KeyFabrics. A missing record is not an error and leaves the
// table empty.
func (t *Table) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	buf := make([]byte, 1+MaxFabrics*encodedLen)
	n, err := t.store.Read(storage.KeyFabrics, buf)
	if err == storage.ErrNotFound {
		t.fabrics = nil
		return nil
	}
	if err != nil {
		return err
	}

	fabrics, err := DecodeBlob(buf[:n])
	if err != nil {
		return err
	}
	t.fabrics = fabrics
	return nil
}

// Save persists the current fabric set.
func (t *Table) Save() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.store.Write(storage.KeyFabrics, EncodeBlob(t.fabrics))
}

// Add inserts f, returning ErrTableFull at capacity. Callers are
// responsible for calling Save afterward to persist the change.
func (t *Table) Add(f Fabric) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.fabrics) >= MaxFabrics {
		return ErrTableFull
	}
	t.fabrics = append(t.fabrics, f)
	return nil
}

// Get returns the fabric with the given fabric ID.
func (t *Table) Get(fabricID uint64) (Fabric, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, f := range t.fabrics {
		if f.FabricID == fabricID {
			return f, nil
		}
	}
	return Fabric{}, ErrNotFound
}

// List returns a copy of all fabrics currently in the table.
func (t *Table) List() []Fabric {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Fabric, len(t.fabrics))
	copy(out, t.fabrics)
	return out
}

// Count returns the number of fabrics in the table.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.fabrics)
}

// Commissioned reports whether the device has at least one active
// fabric.
func (t *Table) Commissioned() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, f := range t.fabrics {
		if f.Active {
			return true
		}
	}
	return false
}

// Clear removes all fabrics (factory reset). Callers are responsible
// for calling Save afterward to persist the empty set.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fabrics = nil
}
