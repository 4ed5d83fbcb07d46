// server/src/registry.go
package main

import "strings"

// Registry is the immutable table of celestial bodies. It is built once at
// startup and shared read-only across all requests; no locking is needed.
type Registry struct {
	byID   map[string]CelestialBody
	byName map[string]CelestialBody
	order  []string
}

// NewRegistry builds a registry from a body table. Later entries with a
// duplicate id replace earlier ones.
func NewRegistry(bodies []CelestialBody) *Registry {
	r := &Registry{
		byID:   make(map[string]CelestialBody, len(bodies)),
		byName: make(map[string]CelestialBody, len(bodies)),
	}
	for _, b := range bodies {
		if _, seen := r.byID[b.ID]; !seen {
			r.order = append(r.order, b.ID)
		}
		r.byID[b.ID] = b
		r.byName[strings.ToLower(b.Name)] = b
	}
	return r
}

// Lookup returns the body with the given id.
func (r *Registry) Lookup(id string) (CelestialBody, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// LookupName returns the body with the given display name, case-insensitive.
func (r *Registry) LookupName(name string) (CelestialBody, bool) {
	b, ok := r.byName[strings.ToLower(name)]
	return b, ok
}

// Moons returns the moons whose parent is the given body id, in table order.
func (r *Registry) Moons(parentID string) []CelestialBody {
	moons := make([]CelestialBody, 0, 8)
	for _, id := range r.order {
		b := r.byID[id]
		if b.Kind == KindMoon && b.ParentID == parentID {
			moons = append(moons, b)
		}
	}
	return moons
}

// All returns every body in table order.
func (r *Registry) All() []CelestialBody {
	out := make([]CelestialBody, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int {
	return len(r.order)
}
