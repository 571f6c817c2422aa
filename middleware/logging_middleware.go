package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"simple-rpc/descriptor"
	"simple-rpc/future"
	"simple-rpc/handler"
)

// Logging logs each call's method, duration, and outcome once the inner
// handler completes. A nil logger disables output.
func Logging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next handler.Handler) handler.Handler {
		return handler.HandlerFunc(func(ctx context.Context, method descriptor.Method, input []byte) *future.Future[[]byte] {
			start := time.Now()
			inner := next.Call(ctx, method, input)
			out, promise := future.New[[]byte]()
			go func() {
				payload, err := inner.Wait(ctx)
				if err != nil {
					logger.Warn("call failed",
						zap.String("method", method.ProtoName()),
						zap.Duration("duration", time.Since(start)),
						zap.Error(err))
					promise.Fail(err)
					return
				}
				logger.Info("call completed",
					zap.String("method", method.ProtoName()),
					zap.Duration("duration", time.Since(start)),
					zap.Int("output_bytes", len(payload)))
				promise.Complete(payload)
			}()
			return out
		})
	}
}
