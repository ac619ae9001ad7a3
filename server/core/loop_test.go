package core

import (
	"testing"
	"time"

	"github.com/envtester/chaos-invaders/shared/netconfig"
)

func TestRecoveryLoopTicksFleet(t *testing.T) {
	f := NewSimulatedFleet(1, 3)
	f.profiles = map[netconfig.KillMethod]RecoveryProfile{
		netconfig.KillSIGTERM: {Min: time.Millisecond, Max: time.Millisecond},
	}
	if err := f.Kill(f.Healthy()[0].ID, netconfig.KillSIGTERM); err != nil {
		t.Fatalf("Expected kill to succeed, got %v", err)
	}

	loop := NewRecoveryLoop(f, 5*time.Millisecond)
	go loop.Run()

	deadline := time.Now().Add(2 * time.Second)
	for f.Pending() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	loop.Stop()

	if f.Pending() != 0 {
		t.Fatalf("Expected recovery resolved by the loop, got %d pending", f.Pending())
	}
	if got := f.Stats()[0].State; got != netconfig.RecoveryRecovered {
		t.Errorf("Expected RECOVERED, got %s", got)
	}
}
