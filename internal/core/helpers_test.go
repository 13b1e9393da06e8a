package core_test

// Shared fixtures: a base type with non-public methods and a substitute for
// it built the way generated code builds one (embed the base and Core,
// shadow the intercepted methods, register the method set).

import (
	"github.com/toejough/privateer/internal/core"
)

// calculator is the substituted base type in these tests.
type calculator struct {
	offset  int
	idCalls int
}

// double is the canonical intercepted method.
func (c *calculator) double(x int) int { return x*2 + c.offset }

// triple exists on the base but is never registered on the substitute, so
// base-type descriptions of it resolve to nothing.
func (c *calculator) triple(x int) int { return x * 3 }

// id is registered non-overridable; idCalls proves the gate refused before
// reaching it.
func (c *calculator) id() string {
	c.idCalls++
	return "calculator"
}

// Describe returns a description of the calculator. Exported methods stay
// outside the protected method set.
func (c *calculator) Describe() string { return "a calculator" }

// calcSub substitutes calculator. Intercepted methods forward through the
// handler seam; kept methods stay promoted from the embedded base.
type calcSub struct {
	calculator
	core.Core
}

func newCalcSub() *calcSub {
	s := &calcSub{}
	s.ProtectedMethods().Register(core.Method{Name: "double", Func: s.double, Overridable: true})
	s.ProtectedMethods().Register(core.Method{Name: "sum", Func: s.sum, Overridable: true})
	s.ProtectedMethods().Register(core.Method{Name: "fetch", Func: s.fetch, Overridable: true})
	s.ProtectedMethods().Register(core.Method{Name: "poke", Func: s.poke, Overridable: true})
	s.ProtectedMethods().Register(core.Method{Name: "id", Func: s.calculator.id, Overridable: false})

	return s
}

func (s *calcSub) double(x int) int {
	out := s.HandleCall("double", x)
	if len(out) == 0 {
		return 0
	}

	v, _ := out[0].(int)

	return v
}

// sum is variadic, to prove the call plumbing spreads variadic args.
func (s *calcSub) sum(xs ...int) int {
	out := s.HandleCall("sum", anySlice(xs)...)
	if len(out) == 0 {
		return 0
	}

	v, _ := out[0].(int)

	return v
}

// fetch takes a nillable arg and returns two values, to prove nil args pass
// through and all results come back.
func (s *calcSub) fetch(key *string) (string, error) {
	out := s.HandleCall("fetch", key)
	if len(out) < 2 {
		return "", nil
	}

	v, _ := out[0].(string)
	err, _ := out[1].(error)

	return v, err
}

// poke is registered and void-like.
func (s *calcSub) poke() {
	s.HandleCall("poke")
}

// helper is deliberately not registered: a method the seam cannot observe.
func (s *calcSub) helper() int { return 7 }

// anySlice widens a typed slice for HandleCall.
func anySlice[T any](values []T) []any {
	out := make([]any, len(values))
	for i := range values {
		out[i] = values[i]
	}

	return out
}

// doubler answers double directly, for tests that want deterministic
// results without configuring a recorder.
func doubler(method string, args []any) []any {
	if method != "double" {
		return nil
	}

	x, _ := args[0].(int)

	return []any{x * 2}
}
