package privateer_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/privateer"
)

// gauge is the substituted base type in these tests.
type gauge struct {
	level int
}

func (g *gauge) raise(by int) int {
	g.level += by
	return g.level
}

func (g *gauge) drain() { g.level = 0 }

// gaugeSub substitutes gauge the way generated code does: embed the base and
// Core, shadow the intercepted method, keep the locked one promoted.
type gaugeSub struct {
	gauge
	privateer.Core
}

func newGaugeSub() *gaugeSub {
	s := &gaugeSub{}
	s.ProtectedMethods().Register(privateer.Method{Name: "raise", Func: s.raise, Overridable: true})
	s.ProtectedMethods().Register(privateer.Method{Name: "drain", Func: s.gauge.drain, Overridable: false})

	return s
}

func (s *gaugeSub) raise(by int) int {
	out := s.HandleCall("raise", by)
	if len(out) == 0 {
		return 0
	}

	v, _ := out[0].(int)

	return v
}

// reporterDouble captures Fatalf calls so the Must entry points can be
// tested without killing the real test.
type reporterDouble struct {
	helperCalls int
	fatals      []string
}

func (r *reporterDouble) Helper() { r.helperCalls++ }

func (r *reporterDouble) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

// TestInvoke_RoutesThroughHandler verifies the expression-based entry point
// end to end: the handler decides the result of an intercepted call.
func TestInvoke_RoutesThroughHandler(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	sub := newGaugeSub()
	sub.Handler = func(method string, args []any) []any {
		by, _ := args[0].(int)

		return []any{by * 100}
	}

	result, err := privateer.Invoke[int](sub, sub.raise, 3)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal(300))
}

// TestInvoke_BaseTypeExpression verifies that a description written against
// the base type resolves to the substitute's registered method.
func TestInvoke_BaseTypeExpression(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	sub := newGaugeSub()
	sub.Handler = func(method string, args []any) []any { return []any{42} }

	result, err := privateer.Invoke[int](sub, (*gauge).raise, 1)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal(42))
}

// TestInvokeByName_RoutesThroughHandler verifies the name-based entry point
// end to end.
func TestInvokeByName_RoutesThroughHandler(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	sub := newGaugeSub()
	sub.Handler = func(method string, args []any) []any { return []any{7} }

	results, err := privateer.InvokeByName(sub, "raise", 3)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(Equal([]any{7}))
}

// TestFacadeSentinels verifies that the re-exported sentinels match what the
// entry points return, so callers can errors.Is against the facade.
func TestFacadeSentinels(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	sub := newGaugeSub()

	_, err := privateer.Invoke[int](sub, 42)
	g.Expect(err).To(MatchError(privateer.ErrInvalidDescription))

	_, err = privateer.InvokeByName(sub, "missing")
	g.Expect(err).To(MatchError(privateer.ErrMethodNotFound))

	_, err = privateer.InvokeByName(sub, "drain")
	g.Expect(err).To(MatchError(privateer.ErrNotOverridable))
}

// TestMustInvoke_ReturnsResultOnSuccess verifies the Must variant passes
// results through without touching Fatalf.
func TestMustInvoke_ReturnsResultOnSuccess(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &reporterDouble{}
	sub := newGaugeSub()
	sub.Handler = func(method string, args []any) []any { return []any{5} }

	result := privateer.MustInvoke[int](reporter, sub, sub.raise, 1)

	g.Expect(result).To(Equal(5))
	g.Expect(reporter.fatals).To(BeEmpty())
	g.Expect(reporter.helperCalls).NotTo(BeZero())
}

// TestMustInvoke_ReportsFailureOnce verifies the Must variant routes a
// failure to Fatalf exactly once, with the underlying error in the message.
func TestMustInvoke_ReportsFailureOnce(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &reporterDouble{}
	sub := newGaugeSub()

	_ = privateer.MustInvoke[int](reporter, sub, 42)

	g.Expect(reporter.fatals).To(HaveLen(1))
	g.Expect(reporter.fatals[0]).To(ContainSubstring("protected invocation failed"))
	g.Expect(reporter.fatals[0]).To(ContainSubstring("invalid call description"))
}

// TestMustInvokeByName_ReturnsResultsOnSuccess verifies the name-based Must
// variant passes results through.
func TestMustInvokeByName_ReturnsResultsOnSuccess(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &reporterDouble{}
	sub := newGaugeSub()
	sub.Handler = func(method string, args []any) []any { return []any{9} }

	results := privateer.MustInvokeByName(reporter, sub, "raise", 2)

	g.Expect(results).To(Equal([]any{9}))
	g.Expect(reporter.fatals).To(BeEmpty())
}

// TestMustInvokeByName_ReportsFailureOnce verifies the name-based Must
// variant routes lookup failures to Fatalf exactly once.
func TestMustInvokeByName_ReportsFailureOnce(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &reporterDouble{}
	sub := newGaugeSub()

	_ = privateer.MustInvokeByName(reporter, sub, "missing")

	g.Expect(reporter.fatals).To(HaveLen(1))
	g.Expect(reporter.fatals[0]).To(ContainSubstring("protected invocation failed"))
}

// TestRecorderFor_FacadeSharesOneRecorder verifies the facade returns the
// same per-test recorder on repeated calls and that it drives substitutes.
func TestRecorderFor_FacadeSharesOneRecorder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	recorder := privateer.RecorderFor(t)
	g.Expect(privateer.RecorderFor(t)).To(BeIdenticalTo(recorder))

	recorder.Return("raise", 11)

	sub := newGaugeSub()
	sub.Handler = recorder.Handle

	result, err := privateer.Invoke[int](sub, sub.raise, 4)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).To(Equal(11))
	g.Expect(recorder.Calls()).To(Equal([]privateer.CallRecord{{Method: "raise", Args: []any{4}}}))
}

// TestNotOverridable_LockedMethodStaysReachableDirectly verifies that a
// locked method is refused by the protected entry points but still works as
// a plain promoted method call.
func TestNotOverridable_LockedMethodStaysReachableDirectly(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	sub := newGaugeSub()
	sub.level = 9

	_, err := privateer.InvokeByName(sub, "drain")
	g.Expect(err).To(MatchError("method must be overridable"))
	g.Expect(sub.level).To(Equal(9), "the refused invocation should not have run the method")

	sub.drain()
	g.Expect(sub.level).To(Equal(0))
}
