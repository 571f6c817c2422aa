package middleware

import (
	"context"
	"time"

	"simple-rpc/descriptor"
	"simple-rpc/future"
	"simple-rpc/handler"
)

// Timeout bounds each call. A call that outlives the deadline fails with
// a Canceled error; the inner handler keeps the narrowed context and is
// expected to stop on its own.
func Timeout(timeout time.Duration) Middleware {
	return func(next handler.Handler) handler.Handler {
		return handler.HandlerFunc(func(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
			tctx, cancel := context.WithTimeout(ctx, timeout)
			inner := next.Call(tctx, method, input)
			out, promise := future.New[[]byte]()
			go func() {
				defer cancel()
				payload, err := inner.Wait(tctx)
				if err != nil {
					promise.Fail(err)
					return
				}
				promise.Complete(payload)
			}()
			return out
		})
	}
}
