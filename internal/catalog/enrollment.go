// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import "sync"

// Enrollments is the set of course ids the user has joined, kept in the
// order they were first added.
type Enrollments struct {
	mu    sync.RWMutex
	ids   map[string]struct{}
	order []string
}

// NewEnrollments returns an empty set.
func NewEnrollments() *Enrollments {
	return &Enrollments{ids: make(map[string]struct{})}
}

// Add inserts id and reports whether it was new. Adding a present id is a no-op.
func (e *Enrollments) Add(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.ids[id]; ok {
		return false
	}
	e.ids[id] = struct{}{}
	e.order = append(e.order, id)
	return true
}

// Has reports membership.
func (e *Enrollments) Has(id string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.ids[id]
	return ok
}

// Len returns the set size.
func (e *Enrollments) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.order)
}

// IDs returns the members in insertion order.
func (e *Enrollments) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}
