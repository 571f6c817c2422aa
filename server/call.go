// Package server implements the callee-side lifecycle of a single RPC and
// the dispatch table generated servers hang their methods on.
//
// A Call mirrors the client machine:
//
//	stateDecode ──decode payload, invoke method──▶ stateExecute ──encode reply──▶ stateDone
//
// The business method runs on its own goroutine completing a one-shot
// future; the Execute state suspends on that future, so a slow method
// never blocks the poller.
package server

import (
	"context"
	"errors"

	"google.golang.org/protobuf/proto"

	"simple-rpc/codec"
	"simple-rpc/future"
	"simple-rpc/rpcerror"
)

// ErrCompleted is returned by Poll or Wait after the call has already
// yielded its result.
var ErrCompleted = errors.New("server: call already completed")

type state uint8

const (
	stateDecode state = iota
	stateExecute
	stateDone
)

// Call drives one inbound invocation of a single method. It is owned by
// exactly one goroutine at a time.
type Call[In, Out proto.Message] struct {
	state    state
	input    []byte
	newInput func() In
	invoke   func(context.Context, In) (Out, error)
	pending  *future.Future[Out]
}

// NewCall seeds a server call with the raw payload, the empty-input
// constructor, and the business method selected by dispatch.
func NewCall[In, Out proto.Message](input []byte, newInput func() In, invoke func(context.Context, In) (Out, error)) *Call[In, Out] {
	return &Call[In, Out]{
		state:    stateDecode,
		input:    input,
		newInput: newInput,
		invoke:   invoke,
	}
}

// Poll advances the call as far as possible without blocking. It returns
// ready == false while the business method is still running.
//
// Error layering: a local decode or encode failure surfaces as a leaf
// Decode/Encode error; a business failure is wrapped whole in a fresh
// Execution error. Polling a finished call returns ErrCompleted.
func (c *Call[In, Out]) Poll(ctx context.Context) (payload []byte, ready bool, err error) {
	switch c.state {
	case stateDecode:
		in := c.newInput()
		if decErr := codec.Decode(c.input, in); decErr != nil {
			c.finish()
			return nil, true, rpcerror.Decode(decErr)
		}
		fut, promise := future.New[Out]()
		invoke := c.invoke
		go func() {
			out, invErr := invoke(ctx, in)
			if invErr != nil {
				promise.Fail(invErr)
				return
			}
			promise.Complete(out)
		}()
		c.pending = fut
		c.input = nil
		c.invoke = nil
		c.state = stateExecute
		return c.pollPending()
	case stateExecute:
		return c.pollPending()
	default:
		return nil, true, ErrCompleted
	}
}

func (c *Call[In, Out]) pollPending() ([]byte, bool, error) {
	out, ready, err := c.pending.Poll()
	if !ready {
		return nil, false, nil
	}
	c.finish()
	if err != nil {
		if rpcerror.IsCanceled(err) {
			return nil, true, err
		}
		return nil, true, rpcerror.Execution(err)
	}
	payload, encErr := codec.Encode(out)
	if encErr != nil {
		return nil, true, rpcerror.Encode(encErr)
	}
	return payload, true, nil
}

// Wait drives the call to completion, blocking while the business method
// runs.
func (c *Call[In, Out]) Wait(ctx context.Context) ([]byte, error) {
	for {
		payload, ready, err := c.Poll(ctx)
		if ready {
			return payload, err
		}
		if waitErr := c.pending.Await(ctx); waitErr != nil {
			c.finish()
			return nil, waitErr
		}
	}
}

func (c *Call[In, Out]) finish() {
	c.state = stateDone
	c.input = nil
	c.invoke = nil
	c.pending = nil
}
