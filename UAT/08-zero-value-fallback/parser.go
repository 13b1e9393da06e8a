// Package zerofall demonstrates the zero-value fallback: a substitute with
// no handler, or a handler that returns fewer values than a method declares,
// degrades to zero values instead of failing.
package zerofall

// parser is the production type under substitution.
type parser struct {
	buffered []byte
}

// parse consumes input and reports how many bytes were accepted.
func (p *parser) parse(input string) (int, error) {
	p.buffered = append(p.buffered, input...)

	return len(input), nil
}

// flush hands back and clears the buffer.
func (p *parser) flush() []byte {
	out := p.buffered
	p.buffered = nil

	return out
}
