package intercept

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chazu/interpose/proxy"
)

// Metrics counts and times proxy calls.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the call metrics under namespace and registers them with
// reg, or with the default registerer when reg is nil.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "proxy"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_total",
				Help:      "Total number of calls dispatched through a proxy",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "call_duration_seconds",
				Help:      "Duration of calls dispatched through a proxy",
				Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.calls, m.duration)
	return m
}

// Middleware returns the instrumenting middleware.
func (m *Metrics) Middleware() Middleware {
	return func(next proxy.Handler) proxy.Handler {
		return proxy.HandlerFunc(func(self any, pipe proxy.Pipe, pm *proxy.Method, args []any) (any, error) {
			name := methodName(pm)
			start := time.Now()
			res, err := next.Invoke(self, pipe, pm, args)
			m.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			m.calls.WithLabelValues(name, outcome).Inc()
			return res, err
		})
	}
}
