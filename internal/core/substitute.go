package core

// This file provides the capability surface substitutes expose: the method
// set lookup the resolvers need, and the handler seam host frameworks plug
// into.

// Substitute is the interface test doubles implement to make their
// non-public methods reachable by the protected entry points. Generated
// substitutes satisfy it by embedding Core; hand-rolled doubles can do the
// same.
type Substitute interface {
	ProtectedMethods() *MethodSet
}

// Handler receives an intercepted call and decides its return values. This
// is the seam a host mocking framework attaches to: the method name and
// arguments go in, the values the substitute should return come out.
//
// Returning nil (or fewer values than the method declares) makes the
// substitute return zero values for the remainder.
type Handler func(method string, args []any) []any

// Core is the embeddable heart of a substitute. Its zero value is ready to
// use: methods are registered in the substitute's constructor, and Handler
// may be left nil for zero-value returns.
type Core struct {
	// Handler observes intercepted calls. Tests set it directly, typically
	// to a Recorder's Handle or to a bridge into another mocking library.
	Handler Handler

	methods MethodSet
}

// ProtectedMethods returns the substitute's registered method set.
func (c *Core) ProtectedMethods() *MethodSet { return &c.methods }

// HandleCall forwards an intercepted call to the configured handler and
// returns whatever it supplies. With no handler set it returns nil, which
// generated method bodies translate into zero values.
func (c *Core) HandleCall(method string, args ...any) []any {
	if c.Handler == nil {
		return nil
	}

	return c.Handler(method, args)
}
