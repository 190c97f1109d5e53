package subscription

import (
	"testing"
	"time"
)

func TestAddAndCapacity(t *testing.T) {
	tbl := NewTable()
	now := time.Unix(1000, 0)

	for i := 0; i < MaxSubscriptions; i++ {
		if _, err := tbl.Add(1, 1, 0x0006, 0, time.Second, time.Minute, now); err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
	}
	if _, err := tbl.Add(1, 1, 0x0006, 0, time.Second, time.Minute, now); err != ErrTableFull {
		t.Fatalf("expected ErrTableFull, got %v", err)
	}
}

// TestMinIntervalThrottlesReports covers Testable Property 8: a
// pending change is not reported before MinInterval has elapsed.
func TestMinIntervalThrottlesReports(t *testing.T) {
	tbl := NewTable()
	now := time.Unix(1000, 0)
	sub, err := tbl.Add(1, 1, 0x0006, 0, 10*time.Second, time.Minute, now)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	tbl.MarkChanged(1, 0x0006, 0)

	early := now.Add(5 * time.Second)
	if due := tbl.DueForReport(early); len(due) != 0 {
		t.Fatalf("expected no due reports before MinInterval, got %d", len(due))
	}

	late := now.Add(11 * time.Second)
	due := tbl.DueForReport(late)
	if len(due) != 1 || due[0].Subscription.ID != sub.ID {
		t.Fatalf("expected subscription due after MinInterval, got %+v", due)
	}
}

// TestMaxIntervalForcesKeepAlive covers Testable Property 9: with no
// change, a report still fires once MaxInterval elapses.
func TestMaxIntervalForcesKeepAlive(t *testing.T) {
	tbl := NewTable()
	now := time.Unix(1000, 0)
	if _, err := tbl.Add(1, 1, 0x0402, 0, time.Second, 30*time.Second, now); err != nil {
		t.Fatalf("Add: %v", err)
	}

	before := now.Add(20 * time.Second)
	if due := tbl.DueForReport(before); len(due) != 0 {
		t.Fatalf("expected no keep-alive before MaxInterval, got %d", len(due))
	}

	after := now.Add(31 * time.Second)
	due := tbl.DueForReport(after)
	if len(due) != 1 {
		t.Fatalf("expected keep-alive report, got %d", len(due))
	}
}

func TestRemoveForSessionEndsSubscriptions(t *testing.T) {
	tbl := NewTable()
	now := time.Unix(1000, 0)
	tbl.Add(1, 1, 0x0006, 0, time.Second, time.Minute, now)
	tbl.Add(2, 1, 0x0006, 0, time.Second, time.Minute, now)

	tbl.RemoveForSession(1)
	if tbl.Count() != 1 {
		t.Fatalf("got %d subscriptions, want 1", tbl.Count())
	}
}

func TestClearRemovesAll(t *testing.T) {
	tbl := NewTable()
	now := time.Unix(1000, 0)
	tbl.Add(1, 1, 0x0006, 0, time.Second, time.Minute, now)
	tbl.Clear()
	if tbl.Count() != 0 {
		t.Fatalf("got %d subscriptions after Clear, want 0", tbl.Count())
	}
}

func TestSubscriptionIDsAreMonotonicAndUnique(t *testing.T) {
	tbl := NewTable()
	now := time.Unix(1000, 0)
	s1, _ := tbl.Add(1, 1, 0x0006, 0, time.Second, time.Minute, now)
	tbl.Remove(s1.ID)
	s2, _ := tbl.Add(1, 1, 0x0006, 0, time.Second, time.Minute, now)
	if s2.ID <= s1.ID {
		t.Fatalf("expected monotonic ids, got %d then %d", s1.ID, s2.ID)
	}
}
