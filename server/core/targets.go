package core

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/shared/netconfig"
)

var (
	ErrUnknownTarget = errors.New("unknown target")
	ErrTargetDown    = errors.New("target already down")
)

// DefaultFailAfter is how long a killed target may take to come back before
// it is recorded as failed.
const DefaultFailAfter = 30 * time.Second

// TargetBackend is the fleet the controller shoots at.
type TargetBackend interface {
	// Healthy lists targets that are up, in a stable order.
	Healthy() []messages.EntityInfo
	Kill(id string, method netconfig.KillMethod) error
	// Stats returns one measurement per finished recovery.
	Stats() []messages.RecoveryData
	// Wait blocks until every outstanding recovery has finished.
	Wait(ctx context.Context) error
	Reset()
}

type target struct {
	info      messages.EntityInfo
	down      bool
	lost      bool
	method    netconfig.KillMethod
	killedAt  time.Time
	recoverAt time.Time // Zero when the target will not come back on its own
}

// RecoveryProfile is the simulated restart behaviour for one kill method.
type RecoveryProfile struct {
	Min, Max    time.Duration
	FailureRate float64 // Chance the target never comes back
}

// DefaultProfiles are the simulated restart delays per kill method.
var DefaultProfiles = map[netconfig.KillMethod]RecoveryProfile{
	netconfig.KillSIGTERM: {Min: 500 * time.Millisecond, Max: 2 * time.Second},
	netconfig.KillSIGKILL: {Min: 1 * time.Second, Max: 4 * time.Second},
	netconfig.KillSIGSEGV: {Min: 2 * time.Second, Max: 6 * time.Second, FailureRate: 0.15},
}

// SimulatedFleet is an in-memory TargetBackend. Killed targets go down and come
// back after a randomized delay; Tick drives the clock.
type SimulatedFleet struct {
	mu        sync.Mutex
	targets   []*target
	stats     []messages.RecoveryData
	pending   int
	rng       *mrand.Rand
	profiles  map[netconfig.KillMethod]RecoveryProfile
	failAfter time.Duration
	now       func() time.Time
	size      int
}

func NewSimulatedFleet(size int, seed uint64) *SimulatedFleet {
	f := &SimulatedFleet{
		rng:       mrand.New(mrand.NewPCG(seed, seed^0x5851f42d4c957f2d)),
		profiles:  DefaultProfiles,
		failAfter: DefaultFailAfter,
		now:       time.Now,
		size:      size,
	}
	f.Reset()
	return f
}

func newTargetID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x", b)
}

// Reset brings up a fresh set of healthy targets and forgets all measurements.
func (f *SimulatedFleet) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.targets = make([]*target, 0, f.size)
	for i := 0; i < f.size; i++ {
		f.targets = append(f.targets, &target{info: messages.EntityInfo{
			ID:   newTargetID(),
			Name: fmt.Sprintf("/chaos-target-%d", i+1),
		}})
	}
	f.stats = nil
	f.pending = 0
}

func (f *SimulatedFleet) Healthy() []messages.EntityInfo {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]messages.EntityInfo, 0, len(f.targets))
	for _, t := range f.targets {
		if !t.down && !t.lost {
			result = append(result, t.info)
		}
	}
	return result
}

func (f *SimulatedFleet) Kill(id string, method netconfig.KillMethod) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := f.find(id)
	if t == nil || t.lost {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, id)
	}
	if t.down {
		return fmt.Errorf("%w: %s", ErrTargetDown, id)
	}

	now := f.now()
	t.down = true
	t.method = method
	t.killedAt = now
	t.recoverAt = time.Time{}

	profile := f.profiles[method]
	if f.rng.Float64() >= profile.FailureRate {
		spread := profile.Max - profile.Min
		delay := profile.Min
		if spread > 0 {
			delay += time.Duration(f.rng.Int64N(int64(spread)))
		}
		t.recoverAt = now.Add(delay)
	}
	f.pending++

	log.Printf("[fleet] %s %s", method, t.info.DisplayName())
	return nil
}

func (f *SimulatedFleet) find(id string) *target {
	for _, t := range f.targets {
		if t.info.ID == id {
			return t
		}
	}
	return nil
}

// Tick resolves every recovery that finished or timed out by now.
func (f *SimulatedFleet) Tick(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.targets {
		if !t.down {
			continue
		}
		switch {
		case !t.recoverAt.IsZero() && !now.Before(t.recoverAt):
			t.down = false
			f.record(t, t.recoverAt.Sub(t.killedAt), netconfig.RecoveryRecovered)
		case now.Sub(t.killedAt) >= f.failAfter:
			t.down = false
			t.lost = true
			f.record(t, now.Sub(t.killedAt), netconfig.RecoveryFailed)
		}
	}
}

func (f *SimulatedFleet) record(t *target, ttr time.Duration, state string) {
	f.stats = append(f.stats, messages.RecoveryData{
		Container:     t.info,
		KillMethod:    string(t.method),
		TimeToRecover: ttr,
		State:         state,
	})
	f.pending--
	log.Printf("[fleet] %s %s after %s", t.info.DisplayName(), state, ttr.Round(time.Millisecond))
}

func (f *SimulatedFleet) Stats() []messages.RecoveryData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]messages.RecoveryData(nil), f.stats...)
}

// Pending returns the number of recoveries still being measured.
func (f *SimulatedFleet) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

func (f *SimulatedFleet) Wait(ctx context.Context) error {
	return waitIdle(ctx, f.Pending)
}

// waitIdle polls pending until it reaches zero or ctx is done.
func waitIdle(ctx context.Context, pending func() int) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if pending() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
