// Package store implements the ordered, identity-unique entity collections
// that back the roster. A Store is a slot map: every element occupies a slot
// with a stable Handle that survives replacement, including replacement by a
// value with a different identity. Every mutation is reported to an emitter
// as an explicit Change so observers never have to diff values.
package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Entity is the constraint for values held in a Store. ID returns the
// identity key; Clone returns a copy that shares no mutable state.
type Entity[K comparable, T any] interface {
	ID() K
	Clone() T
}

// Handle identifies a slot. It is assigned on Add and kept by Replace.
type Handle string

// ChangeKind describes what happened to a slot.
type ChangeKind int

// Change kinds.
const (
	Added ChangeKind = iota + 1
	Removed
	Replaced
	Reset
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change reports one slot mutation. Old is the zero value for Added, New is
// the zero value for Removed. Reset carries neither; Position is -1.
type Change[T any] struct {
	Kind     ChangeKind
	Handle   Handle
	Position int
	Old      T
	New      T
}

type slot[K comparable, T any] struct {
	key    K
	handle Handle
	value  T
}

// Store is an ordered collection holding at most one element per identity.
// It is not safe for concurrent use; the coordinator is its only writer.
type Store[K comparable, T Entity[K, T]] struct {
	slots []slot[K, T]
	pos   map[K]int
	emit  func(Change[T])
}

// New returns an empty Store. emit receives every Change; it may be nil.
func New[K comparable, T Entity[K, T]](emit func(Change[T])) *Store[K, T] {
	return &Store[K, T]{
		pos:  make(map[K]int),
		emit: emit,
	}
}

// newHandle generates a UUID v7 handle.
func newHandle() Handle {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return Handle(uuid.New().String())
	}
	return Handle(id.String())
}

func (s *Store[K, T]) notify(c Change[T]) {
	if s.emit != nil {
		s.emit(c)
	}
}

// Add appends x. Returns ErrDuplicateIdentity if x's identity is present.
func (s *Store[K, T]) Add(x T) error {
	key := x.ID()
	if _, ok := s.pos[key]; ok {
		return fmt.Errorf("%w: %v", types.ErrDuplicateIdentity, key)
	}
	sl := slot[K, T]{key: key, handle: newHandle(), value: x.Clone()}
	s.slots = append(s.slots, sl)
	s.pos[key] = len(s.slots) - 1
	s.notify(Change[T]{Kind: Added, Handle: sl.handle, Position: len(s.slots) - 1, New: x.Clone()})
	return nil
}

// Remove deletes the element with identity id and returns it.
// Returns ErrNotFound if id is absent.
func (s *Store[K, T]) Remove(id K) (T, error) {
	p, ok := s.pos[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %v", types.ErrNotFound, id)
	}
	removed := s.slots[p]
	s.slots = append(s.slots[:p], s.slots[p+1:]...)
	delete(s.pos, id)
	for i := p; i < len(s.slots); i++ {
		s.pos[s.slots[i].key] = i
	}
	s.notify(Change[T]{Kind: Removed, Handle: removed.handle, Position: p, Old: removed.value.Clone()})
	return removed.value.Clone(), nil
}

// CheckReplace reports the error Replace would return without changing
// anything.
func (s *Store[K, T]) CheckReplace(oldID K, next T) error {
	if _, ok := s.pos[oldID]; !ok {
		return fmt.Errorf("%w: %v", types.ErrNotFound, oldID)
	}
	newID := next.ID()
	if newID != oldID {
		if _, taken := s.pos[newID]; taken {
			return fmt.Errorf("%w: %v", types.ErrDuplicateIdentity, newID)
		}
	}
	return nil
}

// Replace puts next in the slot held by oldID, keeping its position and
// Handle. Returns ErrNotFound if oldID is absent and ErrDuplicateIdentity if
// next's identity belongs to a different element.
func (s *Store[K, T]) Replace(oldID K, next T) error {
	if err := s.CheckReplace(oldID, next); err != nil {
		return err
	}
	p := s.pos[oldID]
	prev := s.slots[p]
	newID := next.ID()
	if newID != oldID {
		delete(s.pos, oldID)
		s.pos[newID] = p
	}
	s.slots[p] = slot[K, T]{key: newID, handle: prev.handle, value: next.Clone()}
	s.notify(Change[T]{Kind: Replaced, Handle: prev.handle, Position: p, Old: prev.value.Clone(), New: next.Clone()})
	return nil
}

// Reset replaces the whole content with list, in order. Returns
// ErrDuplicateIdentity, leaving the store untouched, if list repeats an identity.
func (s *Store[K, T]) Reset(list []T) error {
	pos := make(map[K]int, len(list))
	slots := make([]slot[K, T], 0, len(list))
	for i, x := range list {
		key := x.ID()
		if _, ok := pos[key]; ok {
			return fmt.Errorf("%w: %v", types.ErrDuplicateIdentity, key)
		}
		pos[key] = i
		slots = append(slots, slot[K, T]{key: key, handle: newHandle(), value: x.Clone()})
	}
	s.slots = slots
	s.pos = pos
	s.notify(Change[T]{Kind: Reset, Position: -1})
	return nil
}

// Contains reports whether an element with identity id is present.
func (s *Store[K, T]) Contains(id K) bool {
	_, ok := s.pos[id]
	return ok
}

// Get returns a copy of the element with identity id.
func (s *Store[K, T]) Get(id K) (T, bool) {
	p, ok := s.pos[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.slots[p].value.Clone(), true
}

// Position returns the display position of id.
func (s *Store[K, T]) Position(id K) (int, bool) {
	p, ok := s.pos[id]
	return p, ok
}

// Handle returns the slot handle of id.
func (s *Store[K, T]) Handle(id K) (Handle, bool) {
	p, ok := s.pos[id]
	if !ok {
		return "", false
	}
	return s.slots[p].handle, true
}

// Keys returns every identity in display order.
func (s *Store[K, T]) Keys() []K {
	keys := make([]K, len(s.slots))
	for i, sl := range s.slots {
		keys[i] = sl.key
	}
	return keys
}

// List returns copies of every element in display order.
func (s *Store[K, T]) List() []T {
	out := make([]T, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.value.Clone()
	}
	return out
}

// Len returns the number of elements.
func (s *Store[K, T]) Len() int {
	return len(s.slots)
}
