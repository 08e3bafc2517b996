package physics

import (
	"sync"

	"github.com/lixenwraith/farmcycle/core"
)

// ColliderConstructor selects how the host engine derives shapes from a model
type ColliderConstructor uint8

const (
	ConvexHullFromMesh ColliderConstructor = iota
	ConvexDecompositionFromMesh
)

// BodyKind is the rigid body mode attached to a collider hierarchy
type BodyKind uint8

const (
	BodyStatic BodyKind = iota
	BodyDynamic
)

// Collider is one shape attached to an entity's visual subtree
type Collider struct {
	Constructor ColliderConstructor
	Body        BodyKind
	Model       string
	Density     float64
}

// Colliders is the host engine's collider regenerator
// Remove drops shapes of the old model; Regenerate computes shapes from a loaded model
type Colliders interface {
	RemoveColliders(e core.Entity)
	RegenerateColliders(e core.Entity, model string)
}

// HullRegistry is an in-memory Colliders that records one convex hull per model swap
type HullRegistry struct {
	mu          sync.Mutex
	bodies      map[core.Entity][]Collider
	removed     int
	regenerated int
}

// NewHullRegistry creates an empty registry
func NewHullRegistry() *HullRegistry {
	return &HullRegistry{bodies: make(map[core.Entity][]Collider)}
}

// RemoveColliders drops every shape attached to e
func (r *HullRegistry) RemoveColliders(e core.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bodies[e]; ok {
		delete(r.bodies, e)
		r.removed++
	}
}

// RegenerateColliders replaces e's shapes with a static hull built from model
func (r *HullRegistry) RegenerateColliders(e core.Entity, model string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bodies[e] = []Collider{{
		Constructor: ConvexHullFromMesh,
		Body:        BodyStatic,
		Model:       model,
		Density:     1.0,
	}}
	r.regenerated++
}

// Get returns a copy of e's shapes
func (r *HullRegistry) Get(e core.Entity) []Collider {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := r.bodies[e]
	out := make([]Collider, len(src))
	copy(out, src)
	return out
}

// Stats returns removal and regeneration counts
func (r *HullRegistry) Stats() (removed, regenerated int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removed, r.regenerated
}
