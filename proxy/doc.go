// Package proxy creates proxies: values that present the method set of a base type
// and a list of interfaces, and route every call through a single Handler.
//
// A handler may answer a call itself, forward it to a real instance through the
// Pipe it receives, or mix both per method:
//
//	h := proxy.HandlerFunc(func(self any, pipe proxy.Pipe, m *proxy.Method, args []any) (any, error) {
//		if m.Name == "NoArgMethod" {
//			return "stubbed", nil
//		}
//		return pipe.InvokeOn(real)
//	})
//	p, err := proxy.For[Target](h).CreateProxy()
//
// Go cannot create named types with methods at run time, so the method adapters of a
// proxy type are generated ahead of time by cmd/proxygen into the package that
// defines the base type. Generated shells register themselves in init; CreateProxy
// validates the request, selects a shell that covers it, builds the base portion and
// binds the handler.
//
// Besides the base type's methods every proxy carries the Object methods Equal, Hash
// and String. WithProxyNeverEqualsTarget and WithProxyCanEqualTarget answer Equal and
// Hash from a witness value. Both policies match the methods by name, so an interface
// that declares Equal or Hash with a different meaning is intercepted as well.
package proxy
