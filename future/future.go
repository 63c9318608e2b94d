// Package future provides a minimal Promise-Future pair used to deliver the
// result of an asynchronous operation exactly once.
package future

import "context"

// Promise is the write end of the pair: the operation that produces the
// result stores it here, at most once. Setting the value synchronizes-with
// every Get and Subscribe on the associated Future.
//
// A Promise must not be copied after first use.
type Promise[T any] struct {
	state *state[T]
}

// NewPromise creates an unresolved Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{state: newState[T]()}
}

// Set resolves the promise. It panics if the promise is already resolved.
func (p *Promise[T]) Set(val T, err error) {
	if !p.state.set(val, err) {
		panic("future: promise already resolved")
	}
}

// SetSafety resolves the promise and reports false if it was already
// resolved.
func (p *Promise[T]) SetSafety(val T, err error) bool {
	return p.state.set(val, err)
}

// Future returns the read end of the promise.
func (p *Promise[T]) Future() *Future[T] {
	return &Future[T]{state: p.state}
}

// IsFree returns true while the promise is unresolved.
func (p *Promise[T]) IsFree() bool {
	return !p.state.isDone()
}

// Future is the read end of the pair: consumers query, wait for, or
// subscribe to the result of the asynchronous operation.
type Future[T any] struct {
	state *state[T]
}

// Done returns a future already resolved with val.
func Done[T any](val T) *Future[T] {
	return Done2(val, nil)
}

// Done2 returns a future already resolved with val and err.
func Done2[T any](val T, err error) *Future[T] {
	s := newState[T]()
	s.set(val, err)
	return &Future[T]{state: s}
}

// Get blocks until the future is resolved.
func (f *Future[T]) Get() (T, error) {
	return f.state.get()
}

// GetCtx blocks until the future is resolved or ctx is done, in which case
// it returns ctx.Err.
func (f *Future[T]) GetCtx(ctx context.Context) (T, error) {
	return f.state.getCtx(ctx)
}

// Subscribe registers cb to run once the future resolves. cb runs in the
// goroutine that resolves the promise, or synchronously if the future is
// already resolved; it should not block.
func (f *Future[T]) Subscribe(cb func(val T, err error)) {
	f.state.subscribe(cb)
}

// IsDone returns true once the future is resolved.
func (f *Future[T]) IsDone() bool {
	return f.state.isDone()
}
