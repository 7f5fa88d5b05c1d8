package sensor

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/joeycumines/npcmind/internal/awareness"
	"github.com/joeycumines/npcmind/internal/geom"
)

// ErrDuplicateTarget is returned when registering an ID twice.
var ErrDuplicateTarget = errors.New("target already registered")

// Detectable is an entity sensors can perceive.
type Detectable interface {
	ID() awareness.TargetID
	Position() geom.Vec3
}

// Registry is the set of detectable targets in a world.
type Registry struct {
	mu      sync.RWMutex
	targets map[awareness.TargetID]Detectable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[awareness.TargetID]Detectable)}
}

// Register adds d.
func (r *Registry) Register(d Detectable) error {
	if d == nil {
		return errors.New("nil detectable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := d.ID()
	if _, ok := r.targets[id]; ok {
		return fmt.Errorf("register %q: %w", id, ErrDuplicateTarget)
	}
	r.targets[id] = d
	return nil
}

// Deregister removes the target with id. Unknown IDs are ignored.
func (r *Registry) Deregister(id awareness.TargetID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.targets, id)
}

// Lookup returns the target with id.
func (r *Registry) Lookup(id awareness.TargetID) (Detectable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.targets[id]
	return d, ok
}

// All returns every target sorted by ID.
func (r *Registry) All() []Detectable {
	r.mu.RLock()
	out := make([]Detectable, 0, len(r.targets))
	for _, d := range r.targets {
		out = append(out, d)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}
