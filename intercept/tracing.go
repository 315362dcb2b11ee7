package intercept

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chazu/interpose/proxy"
)

const tracerName = "github.com/chazu/interpose/intercept"

// Tracing wraps each call in a span named Declarer.Name. When the first argument
// is a context.Context it becomes the span's parent and is replaced by the span
// context before the call continues, so a pipe carries the span onward. A nil
// tracer uses the global provider.
func Tracing(tracer trace.Tracer) Middleware {
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return func(next proxy.Handler) proxy.Handler {
		return proxy.HandlerFunc(func(self any, pipe proxy.Pipe, m *proxy.Method, args []any) (any, error) {
			parent := context.Background()
			ctxArg := false
			if len(args) > 0 {
				if c, ok := args[0].(context.Context); ok && c != nil {
					parent, ctxArg = c, true
				}
			}

			ctx, span := tracer.Start(parent, methodName(m),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("proxy.method", m.Name),
					attribute.Int("proxy.args", len(args)),
				),
			)
			defer span.End()

			if ctxArg {
				args = slices.Clone(args)
				args[0] = ctx
				pipe = ctxPipe{Pipe: pipe, args: args}
			}

			res, err := next.Invoke(self, pipe, m, args)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return res, err
			}
			span.SetStatus(codes.Ok, "")
			return res, nil
		})
	}
}

// ctxPipe substitutes the span-carrying arguments when the inner handler pipes
// with the arguments of the current call.
type ctxPipe struct {
	proxy.Pipe
	args []any
}

func (p ctxPipe) InvokeDefault(args ...any) (any, error) {
	if len(args) == 0 {
		args = p.args
	}
	return p.Pipe.InvokeDefault(args...)
}

func (p ctxPipe) InvokeOn(real any, args ...any) (any, error) {
	if len(args) == 0 {
		args = p.args
	}
	return p.Pipe.InvokeOn(real, args...)
}
