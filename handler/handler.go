// Package handler defines the single pluggable capability a transport must
// implement to carry a call.
//
// A handler receives an already-encoded payload and a method descriptor
// and is responsible purely for transport: shipping the bytes to whatever
// answers the call and returning the encoded response asynchronously. A
// server acting as its own handler decodes, dispatches, and re-encodes
// in-process; a network stub forwards the bytes over a connection. Either
// way, handlers compose — a client's handler can itself be a server, or a
// chain of middleware around one.
package handler

import (
	"context"

	"simple-rpc/descriptor"
	"simple-rpc/future"
)

// Handler carries one raw call.
//
// Implementations must be safe for concurrent use: a single handler value
// is shared by every in-flight call, and each Call invocation is
// independent. A handler does not retry and does not re-validate the
// method descriptor — routing belongs to the caller. Whatever error a
// handler fails its future with is treated by callers as an opaque
// business-level failure and wrapped, never reinterpreted.
type Handler interface {
	Call(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte]
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte]

func (f HandlerFunc) Call(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
	return f(ctx, method, input)
}
