package systems

import (
	"log"
	"math/rand/v2"

	"github.com/envtester/chaos-invaders/components"
	"github.com/envtester/chaos-invaders/shared/gamemath"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/systems/factory"
	"github.com/envtester/chaos-invaders/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Registry mirrors the server's target list. It is the only code that creates
// or removes enemies; combat only flips KillPending.
type Registry struct {
	world     donburi.World
	space     *resolv.Space
	placement gamemath.Placement
	rng       *rand.Rand
	w, h      float64

	byID  map[string]donburi.Entity
	order []donburi.Entity // Insertion order, used for hit tie-breaks
}

func NewRegistry(world donburi.World, space *resolv.Space, placement gamemath.Placement, rng *rand.Rand, w, h float64) *Registry {
	return &Registry{
		world:     world,
		space:     space,
		placement: placement,
		rng:       rng,
		w:         w,
		h:         h,
		byID:      make(map[string]donburi.Entity),
	}
}

// Reconcile makes the registry match a snapshot. Unseen ids are placed and
// created in snapshot order; ids missing from the snapshot are removed even if
// a kill is pending. Persisting enemies keep their entity and position.
// A snapshot listing the same id twice is treated as empty.
func (r *Registry) Reconcile(snapshot []messages.EntityInfo) (created, removed int) {
	seen := make(map[string]struct{}, len(snapshot))
	for _, info := range snapshot {
		if _, dup := seen[info.ID]; dup {
			log.Printf("[registry] duplicate id %q in snapshot, clearing", info.ID)
			return 0, r.Clear()
		}
		seen[info.ID] = struct{}{}
	}

	// Remove first so freed space is available to new placements.
	var toRemove []donburi.Entity
	for _, e := range r.order {
		entry := r.world.Entry(e)
		if _, ok := seen[components.Enemy.Get(entry).ID]; !ok {
			toRemove = append(toRemove, e)
		}
	}
	for _, e := range toRemove {
		r.remove(e)
		removed++
	}

	for _, info := range snapshot {
		if _, ok := r.byID[info.ID]; ok {
			continue
		}
		x, y, ok := r.placement.Find(r.rng, r.w, r.h, r.blocked)
		if !ok {
			log.Printf("[registry] no free spot for %s after %d attempts, overlapping", info.ID, r.placement.MaxAttempts)
		}
		entry := factory.CreateEnemy(r.world, r.space, info.ID, info.DisplayName(), x, y, r.w, r.h)
		r.byID[info.ID] = entry.Entity()
		r.order = append(r.order, entry.Entity())
		created++
	}
	return created, removed
}

// blocked reports whether a padded candidate overlaps any padded footprint.
// The space narrows the search to nearby cells before the exact test.
func (r *Registry) blocked(candidate gamemath.Rect) bool {
	reach := candidate.Pad(r.placement.Padding)
	probe := resolv.NewObject(reach.X, reach.Y, reach.W, reach.H, tags.ResolvProbe)
	r.space.Add(probe)
	defer r.space.Remove(probe)

	check := probe.Check(0, 0, tags.ResolvEnemy)
	if check == nil {
		return false
	}
	for _, obj := range check.ObjectsByTags(tags.ResolvEnemy) {
		if candidate.Overlaps(gamemath.RectOf(obj).Pad(r.placement.Padding)) {
			return true
		}
	}
	return false
}

// Clear removes every enemy and returns how many were removed.
func (r *Registry) Clear() int {
	n := len(r.order)
	for _, e := range append([]donburi.Entity(nil), r.order...) {
		r.remove(e)
	}
	r.order = r.order[:0]
	clear(r.byID)
	return n
}

func (r *Registry) remove(e donburi.Entity) {
	if r.world.Valid(e) {
		entry := r.world.Entry(e)
		delete(r.byID, components.Enemy.Get(entry).ID)
		factory.DestroyEnemy(r.world, r.space, entry)
	}
	for i, o := range r.order {
		if o == e {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Entries returns live enemies in insertion order.
func (r *Registry) Entries() []*donburi.Entry {
	entries := make([]*donburi.Entry, 0, len(r.order))
	for _, e := range r.order {
		entries = append(entries, r.world.Entry(e))
	}
	return entries
}

// Get returns the enemy with the given server id.
func (r *Registry) Get(id string) (*donburi.Entry, bool) {
	e, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return r.world.Entry(e), true
}

func (r *Registry) Len() int {
	return len(r.order)
}
