// Package client implements the caller-side lifecycle of a single RPC.
//
// A Call is an explicit three-state machine:
//
//	stateEncode ──encode input, invoke handler──▶ stateAwait ──decode reply──▶ stateDone
//
// Each state owns its data exclusively and hands it off when the
// transition commits; no state is ever revisited. Generated client
// wrappers construct a Call per method invocation and either Wait on it or
// drive it by hand with Poll.
package client

import (
	"context"
	"errors"

	"google.golang.org/protobuf/proto"

	"simple-rpc/codec"
	"simple-rpc/descriptor"
	"simple-rpc/future"
	"simple-rpc/handler"
	"simple-rpc/rpcerror"
)

// ErrCompleted is returned by Poll or Wait after the call has already
// yielded its result. Re-polling a finished call is a caller bug, but it
// is reported as a plain error rather than a crash.
var ErrCompleted = errors.New("client: call already completed")

type state uint8

const (
	stateEncode state = iota
	stateAwait
	stateDone
)

// Call is one in-flight client call. It is owned by exactly one goroutine
// at a time and must not be shared. Discarding a Call before completion
// cancels it silently; no result is delivered and nothing leaks.
type Call[In, Out proto.Message] struct {
	state     state
	input     In
	h         handler.Handler
	method    descriptor.Method
	pending   *future.Future[[]byte]
	newOutput func() Out
}

// New seeds a call with the typed input, the handler that will carry it,
// and the target method descriptor. newOutput supplies the empty message
// the response is decoded into.
func New[In, Out proto.Message](h handler.Handler, method descriptor.Method, input In, newOutput func() Out) *Call[In, Out] {
	return &Call[In, Out]{
		state:     stateEncode,
		input:     input,
		h:         h,
		method:    method,
		newOutput: newOutput,
	}
}

// Method returns the descriptor this call targets.
func (c *Call[In, Out]) Method() descriptor.Method {
	return c.method
}

// Poll advances the call as far as possible without blocking.
//
// While the handler's operation is still in flight, Poll returns
// ready == false; the caller should block in Wait (or on its own
// scheduler) rather than spin. Once ready, the typed output or the call's
// error is returned and the call is terminal: any further Poll reports
// ErrCompleted.
//
// Error layering: a local encode or decode failure surfaces as a leaf
// Encode/Decode error. Any failure the handler reports is wrapped whole in
// a fresh Execution error, whatever its own tag was. Cancellation of the
// in-flight operation surfaces as Canceled.
func (c *Call[In, Out]) Poll(ctx context.Context) (out Out, ready bool, err error) {
	var zero Out
	switch c.state {
	case stateEncode:
		payload, encErr := codec.Encode(c.input)
		if encErr != nil {
			c.finish()
			return zero, true, rpcerror.Encode(encErr)
		}
		// The Encode state's data is consumed here: the handler takes the
		// payload, and the machine keeps only the in-flight future.
		c.pending = c.h.Call(ctx, c.method, payload)
		var zeroIn In
		c.input = zeroIn
		c.h = nil
		c.state = stateAwait
		return c.pollPending()
	case stateAwait:
		return c.pollPending()
	default:
		return zero, true, ErrCompleted
	}
}

func (c *Call[In, Out]) pollPending() (Out, bool, error) {
	var zero Out
	payload, ready, err := c.pending.Poll()
	if !ready {
		return zero, false, nil
	}
	c.finish()
	if err != nil {
		if rpcerror.IsCanceled(err) {
			return zero, true, err
		}
		return zero, true, rpcerror.Execution(err)
	}
	out := c.newOutput()
	if decErr := codec.Decode(payload, out); decErr != nil {
		return zero, true, rpcerror.Decode(decErr)
	}
	return out, true, nil
}

// Wait drives the call to completion, blocking while the handler's
// operation is in flight. Waiting on a finished call returns ErrCompleted.
func (c *Call[In, Out]) Wait(ctx context.Context) (Out, error) {
	for {
		out, ready, err := c.Poll(ctx)
		if ready {
			return out, err
		}
		if waitErr := c.pending.Await(ctx); waitErr != nil {
			c.finish()
			var zero Out
			return zero, waitErr
		}
	}
}

func (c *Call[In, Out]) finish() {
	var zeroIn In
	c.state = stateDone
	c.input = zeroIn
	c.h = nil
	c.pending = nil
}
