// Package future provides the one-shot result primitive the call state
// machines suspend on.
//
// New returns a connected Future/Promise pair backed by a single buffered
// channel. The producer side completes, fails, or abandons the promise
// exactly once; the consumer side polls or waits. An abandoned promise
// closes the channel, which the future reports as a Canceled error — a
// dropped responder is never silently swallowed.
package future

import (
	"context"

	"simple-rpc/rpcerror"
)

type result[T any] struct {
	value T
	err   error
}

// Future is the consuming end of a one-shot asynchronous result.
//
// A future belongs to exactly one caller; it is not safe for concurrent
// use. Discarding a future mid-flight aborts the call silently — the
// promise side never blocks, so nothing leaks.
type Future[T any] struct {
	ch       <-chan result[T]
	resolved bool
	res      result[T]
}

// Promise is the producing end of a one-shot asynchronous result.
// Exactly one of Complete, Fail, or Abandon takes effect; later calls are
// no-ops. A promise belongs to a single producer goroutine.
type Promise[T any] struct {
	ch   chan result[T]
	done bool
}

// New creates a connected Future/Promise pair.
func New[T any]() (*Future[T], *Promise[T]) {
	ch := make(chan result[T], 1)
	return &Future[T]{ch: ch}, &Promise[T]{ch: ch}
}

// Resolved returns a future that is already complete with v.
func Resolved[T any](v T) *Future[T] {
	f, p := New[T]()
	p.Complete(v)
	return f
}

// Failed returns a future that is already complete with err.
func Failed[T any](err error) *Future[T] {
	f, p := New[T]()
	p.Fail(err)
	return f
}

// Complete fulfills the promise with a value.
func (p *Promise[T]) Complete(v T) {
	if p.done {
		return
	}
	p.done = true
	p.ch <- result[T]{value: v}
	close(p.ch)
}

// Fail fulfills the promise with an error.
func (p *Promise[T]) Fail(err error) {
	if p.done {
		return
	}
	p.done = true
	p.ch <- result[T]{err: err}
	close(p.ch)
}

// Abandon drops the promise without a result. The future observes this as
// a Canceled error.
func (p *Promise[T]) Abandon() {
	if p.done {
		return
	}
	p.done = true
	close(p.ch)
}

// Poll reports the result if it is available. It never blocks: while the
// producer is still working it returns ready == false, and the caller
// relies on Await for wake-up rather than spinning.
func (f *Future[T]) Poll() (value T, ready bool, err error) {
	if f.resolved {
		return f.res.value, true, f.res.err
	}
	select {
	case r, ok := <-f.ch:
		f.resolve(r, ok)
		return f.res.value, true, f.res.err
	default:
		var zero T
		return zero, false, nil
	}
}

// Await blocks until the result is available or ctx is done. A nil return
// means a subsequent Poll will report ready. If ctx ends first, Await
// returns a Canceled error and the future stays unresolved.
func (f *Future[T]) Await(ctx context.Context) error {
	if f.resolved {
		return nil
	}
	select {
	case r, ok := <-f.ch:
		f.resolve(r, ok)
		return nil
	case <-ctx.Done():
		return rpcerror.Canceled()
	}
}

// Wait blocks until the result is available and returns it.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	if err := f.Await(ctx); err != nil {
		var zero T
		return zero, err
	}
	v, _, err := f.Poll()
	return v, err
}

func (f *Future[T]) resolve(r result[T], ok bool) {
	f.resolved = true
	if ok {
		f.res = r
	} else {
		// Channel closed without a value: the promise was abandoned.
		f.res = result[T]{err: rpcerror.Canceled()}
	}
}
