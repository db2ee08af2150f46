package signalqueue

import (
	"sync"
	"testing"
)

func TestTrySendReceiveRoundTrip(t *testing.T) {
	q := New[string](4)
	if !q.TrySend("a") {
		t.Fatalf("TrySend(a) = false")
	}
	k, ok := q.Receive()
	if !ok || k != "a" {
		t.Fatalf("Receive() = %v, %v; want a, true", k, ok)
	}
}

func TestTrySendDropsWhenFull(t *testing.T) {
	q := New[int](2)
	if !q.TrySend(1) || !q.TrySend(2) {
		t.Fatalf("expected first two sends to succeed")
	}
	if q.TrySend(3) {
		t.Fatalf("TrySend(3) = true on a full queue; want dropped")
	}
	if q.Dropped() != 1 {
		t.Fatalf("Dropped() = %d; want 1", q.Dropped())
	}
}

func TestDrainUpToRespectsLimit(t *testing.T) {
	q := New[int](10)
	for i := 0; i < 5; i++ {
		q.TrySend(i)
	}
	got := q.DrainUpTo(nil, 3)
	if len(got) != 3 {
		t.Fatalf("DrainUpTo returned %d items; want 3", len(got))
	}
	got = q.DrainUpTo(got, 10)
	if len(got) != 5 {
		t.Fatalf("DrainUpTo cumulative = %d; want 5", len(got))
	}
}

func TestCloseIsIdempotentAndUnblocksReceive(t *testing.T) {
	q := New[int](2)
	q.Close()
	q.Close() // must not panic

	_, ok := q.Receive()
	if ok {
		t.Fatalf("Receive() after Close = ok; want closed")
	}
}

func TestTrySendAfterCloseDropsWithoutPanicking(t *testing.T) {
	q := New[int](2)
	q.Close()
	if q.TrySend(1) {
		t.Fatalf("TrySend after Close = true; want dropped")
	}
	if q.Dropped() != 1 {
		t.Fatalf("Dropped() = %d; want 1", q.Dropped())
	}
}

// TestConcurrentSendersRacingCloseNeverPanic races many senders against
// a concurrent Close, the scenario TrySend's recover() exists for.
func TestConcurrentSendersRacingCloseNeverPanic(t *testing.T) {
	q := New[int](16)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			q.TrySend(k)
		}(i)
	}
	go q.Close()
	wg.Wait()
}
