package intercept_test

import (
	"fmt"

	"github.com/chazu/interpose/intercept"
	"github.com/chazu/interpose/proxy"
	"github.com/chazu/interpose/proxy/proxytest"
)

func ExampleChain() {
	rec := &intercept.Recorder{}
	h := intercept.Chain(
		intercept.Delegate(&proxytest.Target{}),
		rec.Middleware(),
		intercept.Stub(map[string]intercept.Answer{
			"NoArgMethod": intercept.Returns("stubbed"),
		}),
	)

	p, err := proxy.Create[proxytest.TargetMethods](proxy.For[proxytest.Target](h))
	if err != nil {
		panic(err)
	}
	fmt.Println(p.Add(1, 2), p.NoArgMethod())
	fmt.Println(rec.Count("Add"), rec.Count("NoArgMethod"))
	// Output:
	// 3 stubbed
	// 1 1
}
