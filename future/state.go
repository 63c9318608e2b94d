package future

import (
	"context"
	"sync"
)

// state is the shared store between a Promise and its Futures. The done
// channel doubles as the resolution flag and the synchronization point.
type state[T any] struct {
	mu   sync.Mutex
	done chan struct{}

	val T
	err error

	cbs []func(T, error)
}

func newState[T any]() *state[T] {
	return &state[T]{done: make(chan struct{})}
}

func (s *state[T]) set(val T, err error) bool {
	s.mu.Lock()
	if s.isDone() {
		s.mu.Unlock()
		return false
	}
	s.val = val
	s.err = err
	cbs := s.cbs
	s.cbs = nil
	close(s.done)
	s.mu.Unlock()

	for _, cb := range cbs {
		cb(val, err)
	}
	return true
}

func (s *state[T]) get() (T, error) {
	<-s.done
	return s.val, s.err
}

func (s *state[T]) getCtx(ctx context.Context) (T, error) {
	select {
	case <-s.done:
		return s.val, s.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (s *state[T]) subscribe(cb func(T, error)) {
	s.mu.Lock()
	if s.isDone() {
		s.mu.Unlock()
		cb(s.val, s.err)
		return
	}
	s.cbs = append(s.cbs, cb)
	s.mu.Unlock()
}

func (s *state[T]) isDone() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
