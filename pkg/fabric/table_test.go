package fabric

import (
	"testing"

	"flarebridge/matter-core/pkg/storage"
)

func makeFabric(id uint64) Fabric {
	f := Fabric{Active: true, FabricID: id, VendorID: 0xFFF1, LastSeen: 1000}
	for i := range f.RootPublicKey {
		f.RootPublicKey[i] = byte(id) + byte(i)
	}
	return f
}

func TestTableAddAndGet(t *testing.T) {
	tbl := NewTable(storage.NewMemoryStorage())
	if err := tbl.Add(makeFabric(1)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := tbl.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FabricID != 1 || !got.Active {
		t.Fatalf("unexpected fabric: %+v", got)
	}
	if !tbl.Commissioned() {
		t.Fatal("expected Commissioned() true")
	}
}

func TestTableFull(t *testing.T) {
	tbl := NewTable(storage.NewMemoryStorage())
	for i := uint64(1); i <= MaxFabrics; i++ {
		if err := tbl.Add(makeFabric(i)); err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
	}
	if err := tbl.Add(makeFabric(MaxFabrics + 1)); err != ErrTableFull {
		t.Fatalf("expected ErrTableFull, got %v", err)
	}
}

// TestFabricPersistence covers Testable Property 11: after
// add_fabric(F); save(); load(), get_fabric(F.id) = F.
func TestFabricPersistence(t *testing.T) {
	store := storage.NewMemoryStorage()

	tbl := NewTable(store)
	f := makeFabric(42)
	if err := tbl.Add(f); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := tbl.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewTable(store)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got, err := reloaded.Get(42)
	if err != nil {
		t.Fatalf("Get after reload: %v", err)
	}
	if got != f {
		t.Fatalf("reloaded fabric mismatch: got %+v want %+v", got, f)
	}
}

func TestTableLoadMissingRecordIsEmpty(t *testing.T) {
	tbl := NewTable(storage.NewMemoryStorage())
	if err := tbl.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Count() != 0 {
		t.Fatalf("expected empty table, got %d fabrics", tbl.Count())
	}
	if tbl.Commissioned() {
		t.Fatal("expected Commissioned() false with no fabrics")
	}
}

func TestTableClearPersists(t *testing.T) {
	store := storage.NewMemoryStorage()
	tbl := NewTable(store)
	tbl.Add(makeFabric(1))
	tbl.Save()

	tbl.Clear()
	if err := tbl.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewTable(store)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Count() != 0 {
		t.Fatalf("expected 0 fabrics after clear, got %d", reloaded.Count())
	}
}
