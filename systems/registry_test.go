package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/envtester/chaos-invaders/components"
	"github.com/envtester/chaos-invaders/shared/gamemath"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/systems/factory"
	"github.com/yohamta/donburi"
)

func newTestRegistry(seed uint64) *Registry {
	world := donburi.NewWorld()
	space := components.Space.Get(factory.CreateSpace(world, 801, 601, 16, 16))
	placement := gamemath.Placement{
		Region:      gamemath.Rect{X: 50, Y: 50, W: 700, H: 250},
		Padding:     10,
		MaxAttempts: gamemath.DefaultPlacementAttempts,
	}
	return NewRegistry(world, space, placement, rand.New(rand.NewPCG(seed, seed+1)), 40, 40)
}

func infos(ids ...string) []messages.EntityInfo {
	out := make([]messages.EntityInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, messages.EntityInfo{ID: id})
	}
	return out
}

func TestReconcileIdempotent(t *testing.T) {
	r := newTestRegistry(1)

	created, removed := r.Reconcile(infos("a", "b", "c"))
	if created != 3 || removed != 0 {
		t.Fatalf("Expected 3 created 0 removed, got %d and %d", created, removed)
	}

	created, removed = r.Reconcile(infos("a", "b", "c"))
	if created != 0 || removed != 0 {
		t.Errorf("Expected no changes on repeat, got %d created %d removed", created, removed)
	}
}

func TestReconcileRemovesAbsentEvenWhenPending(t *testing.T) {
	r := newTestRegistry(2)
	r.Reconcile(infos("a", "b"))
	a, _ := r.Get("a")
	components.Enemy.Get(a).KillPending = true

	_, removed := r.Reconcile(infos("b"))

	if removed != 1 {
		t.Errorf("Expected 1 removal, got %d", removed)
	}
	if _, ok := r.Get("a"); ok {
		t.Error("Expected pending enemy to be removed")
	}
	if a.Valid() {
		t.Error("Expected the removed entity to be gone from the world")
	}
}

func TestReconcileKeepsInsertionOrder(t *testing.T) {
	r := newTestRegistry(3)
	r.Reconcile(infos("a", "b", "c"))
	r.Reconcile(infos("c", "d", "a"))

	var got []string
	for _, e := range r.Entries() {
		got = append(got, components.Enemy.Get(e).ID)
	}
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
}

func TestReconcileDuplicateIDsClears(t *testing.T) {
	r := newTestRegistry(4)
	r.Reconcile(infos("a", "b"))

	created, removed := r.Reconcile(infos("a", "c", "a"))

	if created != 0 || removed != 2 {
		t.Errorf("Expected 0 created 2 removed, got %d and %d", created, removed)
	}
	if r.Len() != 0 {
		t.Errorf("Expected empty registry, got %d", r.Len())
	}
}

func TestReconcilePlacementDoesNotOverlap(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		r := newTestRegistry(seed)
		r.Reconcile(infos("a", "b", "c", "d", "e"))

		entries := r.Entries()
		for i := range entries {
			bi := components.Object.Get(entries[i]).Footprint()
			if bi.X < 50 || bi.Y < 50 || bi.X+bi.W > 750 || bi.Y+bi.H > 300 {
				t.Errorf("seed %d: box %+v outside spawn band", seed, bi)
			}
			for j := i + 1; j < len(entries); j++ {
				bj := components.Object.Get(entries[j]).Footprint()
				if bi.Pad(10).Overlaps(bj.Pad(10)) {
					t.Errorf("seed %d: padded boxes %+v and %+v overlap", seed, bi, bj)
				}
			}
		}
	}
}

func TestClearEmptiesSpace(t *testing.T) {
	r := newTestRegistry(5)
	r.Reconcile(infos("a", "b"))

	if n := r.Clear(); n != 2 {
		t.Errorf("Expected 2 cleared, got %d", n)
	}
	if r.Len() != 0 || len(r.Entries()) != 0 {
		t.Error("Expected registry to be empty")
	}
	if len(r.space.Objects()) != 0 {
		t.Errorf("Expected no footprints left in space, got %d", len(r.space.Objects()))
	}
}
