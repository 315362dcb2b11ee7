package intercept

import (
	"time"

	"go.uber.org/zap"

	"github.com/chazu/interpose/proxy"
)

// Logging logs every call at debug level and every failed call at warn level.
// A nil logger logs nothing.
func Logging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next proxy.Handler) proxy.Handler {
		return proxy.HandlerFunc(func(self any, pipe proxy.Pipe, m *proxy.Method, args []any) (any, error) {
			start := time.Now()
			res, err := next.Invoke(self, pipe, m, args)
			fields := []zap.Field{
				zap.String("method", methodName(m)),
				zap.Int("args", len(args)),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Warn("proxy call failed", append(fields, zap.Error(err))...)
				return res, err
			}
			logger.Debug("proxy call", fields...)
			return res, nil
		})
	}
}
