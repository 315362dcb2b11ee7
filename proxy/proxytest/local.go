package proxytest

// counter is only visible inside this package, so its shell is too.
type counter struct {
	n int
}

func newCounter(start int) *counter { return &counter{n: start} }

func (c *counter) Next() int {
	c.n++
	return c.n
}
