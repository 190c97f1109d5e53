package transport

import "testing"

func TestRingBufferFIFOOrder(t *testing.T) {
	var r ringBuffer
	for i := 0; i < RingCapacity; i++ {
		if !r.push(Packet{Port: 5540 + i}) {
			t.Fatalf("push %d: unexpected drop", i)
		}
	}
	for i := 0; i < RingCapacity; i++ {
		p, ok := r.pop()
		if !ok || p.Port != 5540+i {
			t.Fatalf("pop %d: got (%+v, %v)", i, p, ok)
		}
	}
	if _, ok := r.pop(); ok {
		t.Fatal("expected empty buffer")
	}
}

// TestRingBufferDropsOnOverflow covers the Section 4.3 overflow
// policy: the incoming packet is dropped, queued data is untouched.
func TestRingBufferDropsOnOverflow(t *testing.T) {
	var r ringBuffer
	for i := 0; i < RingCapacity; i++ {
		r.push(Packet{Port: i})
	}
	if r.push(Packet{Port: 999}) {
		t.Fatal("expected overflow push to be dropped")
	}
	if r.len() != RingCapacity {
		t.Fatalf("len = %d, want %d", r.len(), RingCapacity)
	}

	p, ok := r.pop()
	if !ok || p.Port != 0 {
		t.Fatalf("oldest queued packet was overwritten: got (%+v, %v)", p, ok)
	}
}
