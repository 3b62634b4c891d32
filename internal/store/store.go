// Package store is the view-state container for the dashboard.
//
// It holds the latest successful response per resource group, one loading
// flag per group and a single shared error message. Views read snapshots and
// call fetch actions; actions call the API, replace the group's data on
// success or record a static message on failure, and always clear the
// group's loading flag when they settle.
//
// Fetches are neither deduplicated nor sequenced. Two fetches for the same
// group may run concurrently and whichever resolves last wins, regardless of
// the order they were issued in. Nothing is cancelled when parameters change.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rewired-gh/lookingglass/internal/logger"
)

// Store holds dashboard state and exposes fetch actions.
type Store struct {
	api API

	// notifyMu serializes change-and-deliver so subscribers observe
	// snapshots in mutation order. It is always taken before mu.
	notifyMu sync.Mutex

	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int
}

// New creates an empty store fetching through a.
func New(a API) *Store {
	return &Store{
		api:   a,
		state: initialState(),
		subs:  make(map[int]func(State)),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change and must not block.
// Deliveries are serialized in mutation order; fn may call Snapshot but must
// not call fetch actions synchronously.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update applies mutate under mu and delivers the resulting snapshot before
// any later change is applied.
func (s *Store) update(mutate func(*State)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

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

func (s *Store) setLoading(g Group, loading bool) {
	s.update(func(st *State) {
		st.Loading[g] = loading
	})
}

// Async runs action on a new goroutine and returns a channel closed when it settles.
func Async(action func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		action()
	}()
	return done
}

// run is the uniform action contract shared by every fetch action.
func run[T any](ctx context.Context, s *Store, g Group, name, failMsg string, call func(context.Context) (T, error), apply func(*State, T)) {
	s.setLoading(g, true)
	defer s.setLoading(g, false)

	requestID := uuid.New().String()
	logger.Debug("%s [%s] started", name, requestID)

	result, err := call(ctx)
	if err != nil {
		logger.Warn("%s [%s] failed: %v", name, requestID, err)
		s.update(func(st *State) {
			st.Error = failMsg
		})
		return
	}

	s.update(func(st *State) {
		apply(st, result)
		st.Error = ""
	})
	logger.Debug("%s [%s] applied", name, requestID)
}
