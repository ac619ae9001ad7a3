package network

import (
	"testing"
	"time"
)

func TestPollLogRoundTrip(t *testing.T) {
	pl := NewPollLog()
	t0 := time.Unix(100, 0)

	a := pl.Begin(t0)
	b := pl.Begin(t0.Add(500 * time.Millisecond))
	if a == b {
		t.Fatalf("Expected distinct sequence numbers, got %d twice", a)
	}
	if got := pl.InFlight(); got != 2 {
		t.Errorf("Expected 2 in flight, got %d", got)
	}

	// Results may arrive out of order.
	pl.End(b, t0.Add(600*time.Millisecond), false)
	pl.End(a, t0.Add(300*time.Millisecond), false)

	if got := pl.InFlight(); got != 0 {
		t.Errorf("Expected 0 in flight, got %d", got)
	}
	if got := pl.AverageRTT(); got != 200*time.Millisecond {
		t.Errorf("Expected 200ms average, got %v", got)
	}

	rec, ok := pl.Get(a)
	if !ok || rec.RTT() != 300*time.Millisecond {
		t.Errorf("Expected record a with 300ms RTT, got %+v ok=%v", rec, ok)
	}
}

func TestPollLogFailuresExcludedFromAverage(t *testing.T) {
	pl := NewPollLog()
	t0 := time.Unix(0, 0)
	ok := pl.Begin(t0)
	bad := pl.Begin(t0)
	pl.End(ok, t0.Add(100*time.Millisecond), false)
	pl.End(bad, t0.Add(5*time.Second), true)

	if got := pl.AverageRTT(); got != 100*time.Millisecond {
		t.Errorf("Expected 100ms, got %v", got)
	}
}

func TestPollLogOverwrite(t *testing.T) {
	pl := NewPollLog()
	t0 := time.Unix(0, 0)
	first := pl.Begin(t0)
	for i := 0; i < pollLogSize; i++ {
		pl.Begin(t0)
	}
	if _, ok := pl.Get(first); ok {
		t.Error("Expected first record to be overwritten")
	}
	// Ending an overwritten poll must not touch the new occupant.
	pl.End(first, t0.Add(time.Second), false)
	if got := pl.InFlight(); got != pollLogSize {
		t.Errorf("Expected %d in flight, got %d", pollLogSize, got)
	}

	pl.Reset()
	if got := pl.InFlight(); got != 0 {
		t.Errorf("Expected empty log after reset, got %d in flight", got)
	}
}
