// Package session holds the signed-in identity and the auth flows that
// change it.
package session

import (
	"errors"
	"sync"

	"github.com/naveenspark/arena/pkg/domain"
)

// Guard errors returned by RequireAuthenticated and RequireSuperuser.
var (
	ErrNotAuthenticated = errors.New("not signed in")
	ErrForbidden        = errors.New("superuser access required")
)

// State is a point-in-time copy of the store.
type State struct {
	User                 *domain.User
	IsAuthenticated      bool
	Loading              bool
	AwaitingVerification bool
	EmailVerifyingLoader bool
}

// Store is the observable auth state. The zero value is not usable; call
// NewStore. Every mutation replaces whole fields under the lock and then
// notifies observers with the resulting snapshot.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// NewStore returns a store in the "checking session" state: no user and
// Loading set until the startup check resolves it.
func NewStore() *Store {
	return &Store{
		state: State{Loading: true},
		subs:  make(map[int]func(State)),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to be called after every mutation. Observers run
// synchronously on the mutating goroutine and must not call back into the
// store's setters. The returned func unregisters fn.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
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

// SetUser stores the signed-in identity and ends loading.
func (s *Store) SetUser(u *domain.User) {
	s.update(func(st *State) {
		if u == nil {
			st.User = nil
		} else {
			cp := *u
			st.User = &cp
		}
		st.IsAuthenticated = st.User != nil
		st.Loading = false
	})
}

// Logout clears the identity and ends loading.
func (s *Store) Logout() {
	s.update(func(st *State) {
		st.User = nil
		st.IsAuthenticated = false
		st.Loading = false
	})
}

// SetLoading marks an auth-affecting call as in flight or finished.
func (s *Store) SetLoading(v bool) {
	s.update(func(st *State) { st.Loading = v })
}

// SetAwaitingVerification toggles the "check your inbox" state after signup.
func (s *Store) SetAwaitingVerification(v bool) {
	s.update(func(st *State) { st.AwaitingVerification = v })
}

// SetEmailVerifyingLoader toggles the email verification spinner.
func (s *Store) SetEmailVerifyingLoader(v bool) {
	s.update(func(st *State) { st.EmailVerifyingLoader = v })
}

// RequireAuthenticated returns the current user or ErrNotAuthenticated.
func (s *Store) RequireAuthenticated() (*domain.User, error) {
	st := s.Snapshot()
	if !st.IsAuthenticated {
		return nil, ErrNotAuthenticated
	}
	return st.User, nil
}

// RequireSuperuser returns the current user when it may reach admin screens.
func (s *Store) RequireSuperuser() (*domain.User, error) {
	u, err := s.RequireAuthenticated()
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, ErrForbidden
	}
	return u, nil
}

func (s *Store) update(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snap := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (st State) clone() State {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
