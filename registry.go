package vellum

import (
	"sync"

	"github.com/google/uuid"
)

// Identified is anything addressable through a Registry.
type Identified interface {
	ID() uuid.UUID
}

// Registry is the UUID-keyed arena owned by a Renderer. It resolves weak
// references (a Point's face, shared styles) without owning the objects:
// entries are removed when their shape leaves its scene.
type Registry struct {
	mu      sync.RWMutex
	objects map[uuid.UUID]Identified
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{objects: make(map[uuid.UUID]Identified)}
}

// Register adds o under its id, replacing any previous entry.
func (r *Registry) Register(o Identified) {
	r.mu.Lock()
	r.objects[o.ID()] = o
	r.mu.Unlock()
}

// Unregister removes the entry for id.
func (r *Registry) Unregister(id uuid.UUID) {
	r.mu.Lock()
	delete(r.objects, id)
	r.mu.Unlock()
}

// Lookup returns the object registered under id.
func (r *Registry) Lookup(id uuid.UUID) (Identified, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.objects[id]
	return o, ok
}

// Shape returns the shape registered under id.
func (r *Registry) Shape(id uuid.UUID) (Shape, bool) {
	o, ok := r.Lookup(id)
	if !ok {
		return nil, false
	}
	s, ok := o.(Shape)
	return s, ok
}

// Style returns the style registered under id.
func (r *Registry) Style(id uuid.UUID) (*Style, bool) {
	o, ok := r.Lookup(id)
	if !ok {
		return nil, false
	}
	s, ok := o.(*Style)
	return s, ok
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

// registerTree registers s, its style and, for composites, every
// descendant.
func (r *Registry) registerTree(s Shape) {
	r.Register(s)
	if st := s.Style(); st != nil {
		r.Register(st)
	}
	if c, ok := s.(composite); ok {
		for _, child := range c.Children() {
			r.registerTree(child)
		}
	}
}

func (r *Registry) unregisterTree(s Shape) {
	r.Unregister(s.ID())
	if c, ok := s.(composite); ok {
		for _, child := range c.Children() {
			r.unregisterTree(child)
		}
	}
}
