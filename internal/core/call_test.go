package core //nolint:testpackage

import (
	"io"
	"reflect"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

// TestCallFunc_PlainCall verifies that arguments flow in and results flow
// out as plain values.
func TestCallFunc_PlainCall(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	out := callFunc(func(x, y int) (int, int) { return x + y, x * y }, []any{3, 4})

	g.Expect(out).To(Equal([]any{7, 12}))
}

// TestCallFunc_NoResults verifies that a void function yields nil rather
// than an empty slice.
func TestCallFunc_NoResults(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	called := false

	out := callFunc(func() { called = true }, nil)

	g.Expect(out).To(BeNil())
	g.Expect(called).To(BeTrue())
}

// TestCallFunc_VariadicSpread verifies that extra arguments feed a variadic
// tail, including the zero-argument tail.
func TestCallFunc_VariadicSpread(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	sum := func(base int, ns ...int) int {
		total := base
		for _, n := range ns {
			total += n
		}

		return total
	}

	g.Expect(callFunc(sum, []any{10, 1, 2, 3})).To(Equal([]any{16}))
	g.Expect(callFunc(sum, []any{10})).To(Equal([]any{10}))
}

// TestCallFunc_NilForNillableParam verifies that an untyped nil argument is
// accepted for pointer, slice, map, and interface parameters and arrives as
// that parameter's zero value.
func TestCallFunc_NilForNillableParam(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	describe := func(p *int, s []string, m map[string]int, r io.Reader) (bool, bool, bool, bool) {
		return p == nil, s == nil, m == nil, r == nil
	}

	out := callFunc(describe, []any{nil, nil, nil, nil})

	g.Expect(out).To(Equal([]any{true, true, true, true}))
}

// TestCallFunc_InterfaceParamAcceptsImplementation verifies that a concrete
// value satisfying an interface parameter passes the type check.
func TestCallFunc_InterfaceParamAcceptsImplementation(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	readAll := func(r io.Reader) string {
		data, err := io.ReadAll(r)
		if err != nil {
			return err.Error()
		}

		return string(data)
	}

	out := callFunc(readAll, []any{strings.NewReader("hello")})

	g.Expect(out).To(Equal([]any{"hello"}))
}

// TestCallFunc_TooFewArgsPanics verifies the arg-count check, including the
// variadic minimum.
func TestCallFunc_TooFewArgsPanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() {
		callFunc(func(x, y int) int { return x + y }, []any{1})
	}).To(PanicWith(ContainSubstring("Too few args")))

	g.Expect(func() {
		callFunc(func(base int, ns ...int) int { return base }, []any{})
	}).To(PanicWith(ContainSubstring("Too few args")))
}

// TestCallFunc_TooManyArgsPanics verifies the arg-count check for
// non-variadic functions.
func TestCallFunc_TooManyArgsPanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() {
		callFunc(func(x int) int { return x }, []any{1, 2})
	}).To(PanicWith(ContainSubstring("Too many args")))
}

// TestCallFunc_WrongArgTypePanics verifies the type check names the index,
// the expected type, and the received type.
func TestCallFunc_WrongArgTypePanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() {
		callFunc(func(x int) int { return x }, []any{"five"})
	}).To(PanicWith(And(
		ContainSubstring("Wrong arg type"),
		ContainSubstring("index 0"),
		ContainSubstring("int"),
		ContainSubstring("string"),
	)))
}

// TestCallFunc_NilForValueParamPanics verifies that an untyped nil is
// rejected for parameters that cannot hold one.
func TestCallFunc_NilForValueParamPanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() {
		callFunc(func(x int) int { return x }, []any{nil})
	}).To(PanicWith(And(
		ContainSubstring("Wrong arg type"),
		ContainSubstring("untyped nil"),
	)))
}

// TestCallFunc_VariadicWrongTailTypePanics verifies that the type check
// unrolls the variadic tail to its element type.
func TestCallFunc_VariadicWrongTailTypePanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() {
		callFunc(func(ns ...int) int { return len(ns) }, []any{1, "two"})
	}).To(PanicWith(ContainSubstring("Wrong arg type")))
}

// TestArgType_VariadicUnrolls verifies that indexes at and past the variadic
// tail resolve to the element type.
func TestArgType_VariadicUnrolls(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fnType := reflect.TypeOf(func(s string, ns ...int) {})

	g.Expect(argType(fnType, 0)).To(Equal(reflect.TypeOf("")))
	g.Expect(argType(fnType, 1)).To(Equal(reflect.TypeOf(0)))
	g.Expect(argType(fnType, 5)).To(Equal(reflect.TypeOf(0)))
}

// TestGetTypeName_NamedAndUnnamed verifies the panic-message helper prefers
// a type's name and falls back to its string form.
func TestGetTypeName_NamedAndUnnamed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(getTypeName(reflect.TypeOf(0))).To(Equal("int"))
	g.Expect(getTypeName(reflect.TypeOf([]string{}))).To(Equal("[]string"))
	g.Expect(getTypeName(reflect.TypeOf(map[string]int{}))).To(Equal("map[string]int"))
}

// TestIsNillableKind verifies the kinds that may hold nil, per the reflect
// documentation for Value.IsNil.
func TestIsNillableKind(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	nillable := []reflect.Kind{
		reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice,
	}
	for _, kind := range nillable {
		g.Expect(isNillableKind(kind)).To(BeTrue(), "kind %s should be nillable", kind)
	}

	notNillable := []reflect.Kind{
		reflect.Bool, reflect.Int, reflect.Float64, reflect.Complex128,
		reflect.Array, reflect.String, reflect.Struct,
	}
	for _, kind := range notNillable {
		g.Expect(isNillableKind(kind)).To(BeFalse(), "kind %s should not be nillable", kind)
	}
}

// TestKindOf verifies the registration panic helper names kinds and
// tolerates untyped nil.
func TestKindOf(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(kindOf(nil)).To(Equal("untyped nil"))
	g.Expect(kindOf(42)).To(Equal("int"))
	g.Expect(kindOf(func() {})).To(Equal("func"))
}

// TestFuncName_TrimsMethodValueSuffix verifies that panic messages name
// methods without the runtime's -fm decoration.
func TestFuncName_TrimsMethodValueSuffix(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	n := namedThing{}

	name := funcName(n.describe)

	g.Expect(name).NotTo(HaveSuffix("-fm"))
	g.Expect(name).To(ContainSubstring("namedThing"))
	g.Expect(name).To(ContainSubstring("describe"))
}

// namedThing exists to give funcName a method value to name.
type namedThing struct{}

func (namedThing) describe() string { return "named" }
