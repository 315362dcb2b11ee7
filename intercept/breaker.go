package intercept

import (
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/chazu/interpose/proxy"
)

// Breaker stops forwarding calls after repeated failures.
type Breaker struct {
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// BreakerOption configures a Breaker.
type BreakerOption func(*Breaker)

// WithBreakerLogger logs state changes to logger.
func WithBreakerLogger(logger *zap.Logger) BreakerOption {
	return func(b *Breaker) {
		b.logger = logger
	}
}

// NewBreaker returns a breaker that opens after threshold consecutive failed
// calls and lets a trial call through once timeout has passed.
func NewBreaker(name string, threshold int, timeout time.Duration, opts ...BreakerOption) *Breaker {
	b := &Breaker{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}

	limit := uint32(1)
	if threshold > 1 {
		limit = uint32(min(threshold, int(^uint32(0)>>1))) //nolint:gosec // bounded above
	}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= limit
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.logger.Info("circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return b
}

// State returns the breaker's current state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// Middleware returns the breaking middleware. While open, calls fail with
// gobreaker.ErrOpenState without reaching the next handler.
func (b *Breaker) Middleware() Middleware {
	return func(next proxy.Handler) proxy.Handler {
		return proxy.HandlerFunc(func(self any, pipe proxy.Pipe, m *proxy.Method, args []any) (any, error) {
			return b.cb.Execute(func() (any, error) {
				return next.Invoke(self, pipe, m, args)
			})
		})
	}
}
