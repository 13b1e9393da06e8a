// Package gensub demonstrates driving privgen from a go:generate directive
// and using the substitute it writes.
package gensub

// calculator is the production type the directive targets.
type calculator struct {
	total int
}

// add accumulates and reports the running total.
func (c *calculator) add(n int) int {
	c.total += n

	return c.total
}

// scale multiplies and reports the running total.
func (c *calculator) scale(factor int) int {
	c.total *= factor

	return c.total
}
