package di

import (
	"context"
	"errors"
	"sync"
)

// Scope is a lifetime boundary. It owns a cancellable context for background
// tasks and a finalizer stack for constructed capabilities; Close cancels the
// context, waits for forked tasks, then runs finalizers in reverse
// registration order, so dependents are torn down before their dependencies.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	wg         sync.WaitGroup
	finalizers []finalizer
	closed     bool
}

type finalizer struct {
	name string
	fn   func(context.Context) error
}

// NewScope creates a scope whose context is derived from parent.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context returns the scope's context. It is cancelled when the scope closes.
func (s *Scope) Context() context.Context { return s.ctx }

// Done exposes the cancellation channel, for selects.
func (s *Scope) Done() <-chan struct{} { return s.ctx.Done() }

// Go forks a background task bound to the scope. The task receives the
// scope's context and must return when it is cancelled. Close waits for all
// forked tasks before running finalizers. Forking on a closed scope is a
// silent no-op; the work would be cancelled immediately anyway.
func (s *Scope) Go(fn func(ctx context.Context)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Defer registers a finalizer. Finalizers run on Close in reverse order.
func (s *Scope) Defer(name string, fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// Run-away registration after close would never execute; fail loudly.
		panic("di: Defer on closed scope: " + name)
	}
	s.finalizers = append(s.finalizers, finalizer{name: name, fn: fn})
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels the scope, waits for background tasks, and runs finalizers
// in reverse registration order. Finalizer errors are joined, not
// short-circuited; every finalizer runs. Close is idempotent.
func (s *Scope) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	fins := s.finalizers
	s.finalizers = nil
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	var errs error
	for i := len(fins) - 1; i >= 0; i-- {
		if err := fins[i].fn(ctx); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
