// Package invaliddesc demonstrates what Invoke accepts as a call
// description, and the error it returns for everything else.
package invaliddesc

// probe is the production type under substitution.
type probe struct {
	readings int
}

// sample records one reading.
func (p *probe) sample() int {
	p.readings++

	return p.readings
}

// standalone is a plain function: a valid func value, but not a method, so
// it cannot describe a call.
func standalone() int {
	return 0
}
