// Package intercept provides proxy.Handler decorators for stubbing, recording and
// instrumenting the calls made on a proxy.
//
// Decorators are Middleware values composed with Chain around an inner handler,
// typically one that pipes to a real implementation:
//
//	rec := &intercept.Recorder{}
//	h := intercept.Chain(
//		intercept.Delegate(real),
//		intercept.Recover(),
//		intercept.Logging(logger),
//		rec.Middleware(),
//	)
//	p, err := proxy.Create[Store](proxy.New(proxy.Interface[Store](), h))
//
// The first middleware passed to Chain is the outermost.
package intercept
