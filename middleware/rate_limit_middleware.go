package middleware

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"simple-rpc/descriptor"
	"simple-rpc/future"
	"simple-rpc/handler"
)

// ErrRateLimited is the failure reported for calls rejected by RateLimit.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimit rejects calls beyond a token-bucket budget of r calls per
// second with a burst allowance. Rejected calls fail immediately without
// reaching the inner handler.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next handler.Handler) handler.Handler {
		return handler.HandlerFunc(func(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
			if !limiter.Allow() {
				return future.Failed[[]byte](ErrRateLimited)
			}
			return next.Call(ctx, method, input)
		})
	}
}
