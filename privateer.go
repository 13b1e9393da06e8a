// Package privateer invokes protected (unexported) methods on test
// substitutes.
//
// Substitutes register their non-public methods in a method set, usually
// from generated code (see privgen). The two entry points resolve a method
// on a target's concrete type, by call description or by name, refuse
// methods the mocking seam cannot observe, and invoke the rest with the
// supplied arguments.
//
// This is the public API entry point. Implementation lives in internal/core.
package privateer

import (
	"github.com/toejough/privateer/internal/core"
)

// CallRecord is one intercepted call recorded by a Recorder.
type CallRecord = core.CallRecord

// Core is the embeddable heart of a substitute: the registered method set
// plus the handler seam intercepted calls route through.
type Core = core.Core

// Handler receives an intercepted call and decides its return values.
type Handler = core.Handler

// Method describes one non-public method registered on a substitute.
type Method = core.Method

// MethodSet holds the non-public methods registered on a substitute.
type MethodSet = core.MethodSet

// Recorder is the default Handler: it logs calls and plays canned returns.
type Recorder = core.Recorder

// RecorderFor returns the Recorder for the given test, creating one if
// needed. Multiple calls with the same TestReporter return the same
// Recorder instance.
func RecorderFor(t TestReporter) *Recorder {
	return core.RecorderFor(t)
}

// Substitute is implemented by test doubles whose non-public methods are
// registered for protected invocation. Embedding Core satisfies it.
type Substitute = core.Substitute

// TestReporter is the minimal interface privateer needs from test
// frameworks. *testing.T satisfies it.
type TestReporter = core.TestReporter

// Sentinel failures, re-exported for errors.Is checks at call sites.
var (
	// ErrInvalidDescription reports a call description that does not
	// identify a method.
	ErrInvalidDescription = core.ErrInvalidDescription

	// ErrMethodNotFound reports a name-based lookup that matched nothing.
	ErrMethodNotFound = core.ErrMethodNotFound

	// ErrMethodAmbiguous reports a lookup that matched more than one
	// registered method.
	ErrMethodAmbiguous = core.ErrMethodAmbiguous

	// ErrNotOverridable reports a resolved method that refuses protected
	// invocation because the mocking seam cannot observe it.
	ErrNotOverridable = core.ErrNotOverridable
)

// Invoke resolves the method named by a call description (a method value or
// method expression) on the target's concrete type and invokes it with
// args, returning the first result as TResult.
//
// A description declared on a different type than the target's concrete one
// is re-resolved by name among the target's registered methods; resolving
// to nothing returns the zero TResult with a nil error.
func Invoke[TResult any](target Substitute, description any, args ...any) (TResult, error) {
	return core.Invoke[TResult](target, description, args...)
}

// InvokeByName resolves the single registered method with the given name on
// the target and invokes it with args, returning all results.
func InvokeByName(target Substitute, method string, args ...any) ([]any, error) {
	return core.InvokeByName(target, method, args...)
}

// MustInvoke is Invoke with failures routed to the test reporter.
func MustInvoke[TResult any](t TestReporter, target Substitute, description any, args ...any) TResult {
	t.Helper()
	return core.MustInvoke[TResult](t, target, description, args...)
}

// MustInvokeByName is InvokeByName with failures routed to the test
// reporter.
func MustInvokeByName(t TestReporter, target Substitute, method string, args ...any) []any {
	t.Helper()
	return core.MustInvokeByName(t, target, method, args...)
}
