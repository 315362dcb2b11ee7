package intercept

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/chazu/interpose/proxy"
)

// ErrRateLimited is returned for calls rejected by RateLimit.
var ErrRateLimited = errors.New("intercept: rate limit exceeded")

// RateLimit admits calls through limiter. A call whose first argument is a
// context.Context waits for a token until that context is done; any other call
// is rejected with ErrRateLimited when no token is available.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next proxy.Handler) proxy.Handler {
		return proxy.HandlerFunc(func(self any, pipe proxy.Pipe, m *proxy.Method, args []any) (any, error) {
			if len(args) > 0 {
				if ctx, ok := args[0].(context.Context); ok && ctx != nil {
					if err := limiter.Wait(ctx); err != nil {
						return nil, errors.Join(ErrRateLimited, err)
					}
					return next.Invoke(self, pipe, m, args)
				}
			}
			if !limiter.Allow() {
				return nil, ErrRateLimited
			}
			return next.Invoke(self, pipe, m, args)
		})
	}
}
