// Package store keeps the canonical in-memory list for one entity
// collection and reconciles optimistic mutations with their eventual
// backend outcomes.
//
// All methods must be called from the event loop that owns the store
// (the TUI Update loop). Backend calls run elsewhere and feed results
// back in as Commit/Rollback against the ticket issued when the
// optimistic change was staged. Each staged mutation gets a per-id
// version; a completion whose version has been superseded is discarded,
// so a slow response for an old request can never clobber a newer
// optimistic value.
package store

import "errors"

var ErrNotFound = errors.New("entity not found")

// Store holds an ordered collection of entities keyed by id.
type Store[T any] struct {
	idOf     func(T) string
	items    []T
	versions map[string]uint64
}

// New creates an empty store. idOf must return a stable unique id.
func New[T any](idOf func(T) string) *Store[T] {
	return &Store[T]{
		idOf:     idOf,
		versions: make(map[string]uint64),
	}
}

// Replace resets the collection to the given order, typically from a
// fetch or a reorder. Pending versions survive so in-flight mutations
// still reconcile.
func (s *Store[T]) Replace(items []T) {
	s.items = make([]T, len(items))
	copy(s.items, items)
}

// Items returns a snapshot of the current order.
func (s *Store[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Len() int { return len(s.items) }

// Get returns the entity with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Prepend inserts a newly created entity at the head, matching the
// newest-first placement the views use after a create.
func (s *Store[T]) Prepend(item T) {
	s.items = append([]T{item}, s.items...)
}

// Append inserts at the tail.
func (s *Store[T]) Append(item T) {
	s.items = append(s.items, item)
}

// Remove drops the entity with the given id, after the backend has
// confirmed a delete.
func (s *Store[T]) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.versions, id)
	return true
}

// Ticket identifies one staged optimistic mutation.
type Ticket[T any] struct {
	ID      string
	version uint64
	prior   T
}

// Prior returns the value the entity held before the mutation.
func (t Ticket[T]) Prior() T { return t.prior }

// StageUpdate applies patch to the entity immediately and returns a
// ticket for reconciling the backend outcome. Returns ErrNotFound if
// the id is not present.
func (s *Store[T]) StageUpdate(id string, patch func(*T)) (Ticket[T], error) {
	i := s.indexOf(id)
	if i < 0 {
		return Ticket[T]{}, ErrNotFound
	}
	prior := s.items[i]
	patch(&s.items[i])
	s.versions[id]++
	return Ticket[T]{ID: id, version: s.versions[id], prior: prior}, nil
}

// Commit acknowledges a confirmed mutation. The optimistic value is
// already in place; Commit reports whether this ticket was still the
// newest write for its entity.
func (s *Store[T]) Commit(t Ticket[T]) bool {
	return s.versions[t.ID] == t.version
}

// Rollback restores the pre-mutation value after a backend failure.
// A stale ticket (superseded by a newer staged update) is discarded and
// Rollback reports false: the newer optimistic value wins and its own
// outcome will reconcile it.
func (s *Store[T]) Rollback(t Ticket[T]) bool {
	if s.versions[t.ID] != t.version {
		return false
	}
	i := s.indexOf(t.ID)
	if i < 0 {
		return false
	}
	s.items[i] = t.prior
	return true
}

func (s *Store[T]) indexOf(id string) int {
	for i, item := range s.items {
		if s.idOf(item) == id {
			return i
		}
	}
	return -1
}
