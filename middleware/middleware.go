// Package middleware provides composable wrappers around the Handler
// capability: logging, timeout, retry, and rate limiting.
//
// Because handlers compose, middleware slots between a client and whatever
// handler actually carries the call — an in-process server, a network
// stub, or another middleware.
package middleware

import (
	"simple-rpc/handler"
)

// Middleware wraps a handler with additional behavior.
type Middleware func(next handler.Handler) handler.Handler

// Chain combines several middlewares into one, applied in onion order:
// Chain(A, B, C) wraps a handler as A(B(C(handler))).
func Chain(middlewares ...Middleware) Middleware {
	return func(next handler.Handler) handler.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
