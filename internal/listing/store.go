// Package listing holds paginated list state and reference catalogs.
package listing

import (
	"sync"

	"github.com/naveenspark/arena/pkg/domain"
)

// State is a point-in-time copy of a list store. Items is owned by the
// caller.
type State[T any] struct {
	Items   []T
	Cursor  *domain.Cursor
	HasMore bool
	Loading bool
}

// Store is the observable state of one cursor-paginated list. Items keep the
// order the server returned them in; appends never reorder or de-duplicate.
type Store[T any] struct {
	mu     sync.Mutex
	items  []T
	cursor *domain.Cursor
	more   bool
	busy   bool
	subs   map[int]func(State[T])
	nextID int
}

// NewStore returns an empty store. HasMore starts true so the first page
// can be requested.
func NewStore[T any]() *Store[T] {
	return &Store[T]{more: true, subs: make(map[int]func(State[T]))}
}

// Snapshot returns a copy of the current state.
func (s *Store[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len returns the number of items without copying them.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn to be called with the new state after every
// mutation. The returned func unregisters it.
func (s *Store[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetItems replaces the items with a copy of list. Cursor and HasMore are
// left alone.
func (s *Store[T]) SetItems(list []T) {
	s.update(func() { s.items = clone(list) })
}

// AddItems appends list after the existing items.
func (s *Store[T]) AddItems(list []T) {
	s.update(func() { s.items = appendCopy(s.items, list) })
}

// SetCursor replaces both cursor parts at once.
func (s *Store[T]) SetCursor(date string, id int64) {
	s.update(func() { s.cursor = &domain.Cursor{Date: date, ID: id} })
}

// ClearCursor drops the cursor so the next fetch starts from the top.
func (s *Store[T]) ClearCursor() {
	s.update(func() { s.cursor = nil })
}

// SetHasMore records whether another page is available.
func (s *Store[T]) SetHasMore(v bool) {
	s.update(func() { s.more = v })
}

// SetLoading marks a fetch affecting this list as in flight or finished.
func (s *Store[T]) SetLoading(v bool) {
	s.update(func() { s.busy = v })
}

// Replace swaps in a complete result set: items replaced, cursor cleared,
// HasMore set and Loading released, all in one mutation.
func (s *Store[T]) Replace(list []T, hasMore bool) {
	s.update(func() {
		s.items = clone(list)
		s.cursor = nil
		s.more = hasMore
		s.busy = false
	})
}

// Reload swaps in a first page and its cursor in one mutation. A nil cursor
// clears it.
func (s *Store[T]) Reload(list []T, cursor *domain.Cursor, hasMore bool) {
	s.update(func() {
		s.items = clone(list)
		s.cursor = copyCursor(cursor)
		s.more = hasMore
		s.busy = false
	})
}

// Append adds a following page and moves the cursor in one mutation. A nil
// cursor clears it.
func (s *Store[T]) Append(list []T, cursor *domain.Cursor, hasMore bool) {
	s.update(func() {
		s.items = appendCopy(s.items, list)
		s.cursor = copyCursor(cursor)
		s.more = hasMore
		s.busy = false
	})
}

// Reset returns the store to its initial state.
func (s *Store[T]) Reset() {
	s.update(func() {
		s.items = nil
		s.cursor = nil
		s.more = true
		s.busy = false
	})
}

func (s *Store[T]) update(mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshot()
	subs := make([]func(State[T]), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store[T]) snapshot() State[T] {
	return State[T]{
		Items:   clone(s.items),
		Cursor:  copyCursor(s.cursor),
		HasMore: s.more,
		Loading: s.busy,
	}
}

func clone[T any](list []T) []T {
	if list == nil {
		return nil
	}
	return append(make([]T, 0, len(list)), list...)
}

// appendCopy never writes into the backing array of a previously published
// snapshot.
func appendCopy[T any](dst, src []T) []T {
	out := make([]T, 0, len(dst)+len(src))
	out = append(out, dst...)
	return append(out, src...)
}

func copyCursor(c *domain.Cursor) *domain.Cursor {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
