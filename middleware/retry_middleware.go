package middleware

import (
	"context"
	"time"

	"simple-rpc/descriptor"
	"simple-rpc/future"
	"simple-rpc/handler"
	"simple-rpc/rpcerror"
)

// Retry re-invokes the inner handler when a call fails with a retryable
// error, backing off exponentially from baseDelay. A nil predicate retries
// only Canceled failures (an abandoned transport operation); business
// failures are never retried by default since the runtime cannot know
// whether they are safe to repeat.
func Retry(maxRetries int, baseDelay time.Duration, retryable func(error) bool) Middleware {
	if retryable == nil {
		retryable = rpcerror.IsCanceled
	}
	return func(next handler.Handler) handler.Handler {
		return handler.HandlerFunc(func(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
			out, promise := future.New[[]byte]()
			go func() {
				payload, err := next.Call(ctx, method, input).Wait(ctx)
				for attempt := 0; attempt < maxRetries && err != nil && retryable(err); attempt++ {
					select {
					case <-time.After(baseDelay * time.Duration(1<<attempt)):
					case <-ctx.Done():
						promise.Fail(rpcerror.Canceled())
						return
					}
					payload, err = next.Call(ctx, method, input).Wait(ctx)
				}
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
