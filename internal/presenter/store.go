// Package presenter holds the screen state machines of the client. Each
// presenter owns an immutable state snapshot, a stream of one-shot effects
// and a cancellable scope for the work it launches.
package presenter

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"
)

const effectBuffer = 64

// LoadingState is the coarse progress indicator shared by all screens.
type LoadingState int

// Loading states.
const (
	Idle LoadingState = iota
	Loading
	Refreshing
	LoadingMore
)

func (l LoadingState) String() string {
	switch l {
	case Loading:
		return "LOADING"
	case Refreshing:
		return "REFRESHING"
	case LoadingMore:
		return "LOADING_MORE"
	default:
		return "IDLE"
	}
}

// EffectKind names a one-shot event for the screen.
type EffectKind int

// Effect kinds.
const (
	ShowSnackbar EffectKind = iota
	ShowSuccessMessage
	SyncSuccess
	BackgroundSyncFailed
	LocationFetched
	OpenGPSSettings
	NavigateToHome
	NavigateToRegister
	NavigateToLogin
	NavigateToForgotPassword
)

// Effect is consumed exactly once by whoever reads Effects.
type Effect struct {
	Kind    EffectKind
	Message string
}

// store is the state holder embedded in every presenter.
type store[S any] struct {
	mu        sync.RWMutex
	state     S
	listeners []func(S)

	effects chan Effect
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *zap.Logger
}

func newStore[S any](initial S, log *zap.Logger) *store[S] {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &store[S]{
		state:   initial,
		effects: make(chan Effect, effectBuffer),
		ctx:     ctx,
		cancel:  cancel,
		log:     log,
	}
}

// State returns the current snapshot.
func (s *store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Effects returns the effect stream. It is never closed; stop reading
// when Done is closed.
func (s *store[S]) Effects() <-chan Effect {
	return s.effects
}

// Done is closed once the presenter is closed.
func (s *store[S]) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Subscribe registers fn to receive every new snapshot.
func (s *store[S]) Subscribe(fn func(S)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Wait blocks until every launched task has returned.
func (s *store[S]) Wait() {
	s.wg.Wait()
}

// Close cancels the scope and waits for in-flight tasks.
func (s *store[S]) Close() {
	s.cancel()
	s.wg.Wait()
}

// update applies fn to a copy of the state and publishes the copy.
func (s *store[S]) update(fn func(st *S)) {
	s.mu.Lock()
	next := s.state
	fn(&next)
	s.state = next
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
}

func (s *store[S]) emit(e Effect) {
	select {
	case s.effects <- e:
	case <-s.ctx.Done():
	}
}

// launch runs fn in the presenter scope. Nothing is started once the
// presenter is closed.
func (s *store[S]) launch(fn func(ctx context.Context)) {
	if s.ctx.Err() != nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}
