package core

// This file implements the two protected entry points: resolution of a
// registered method from a call description or a name, the overridability
// gate, and the call itself.

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel failures for protected invocation. All are wrapped with call
// context except ErrNotOverridable, which is returned bare when a resolved
// method refuses interception, so its message stays fixed.
var (
	// ErrMethodNotFound reports a name-based lookup that matched nothing.
	ErrMethodNotFound = errors.New("no registered method matches")

	// ErrMethodAmbiguous reports a lookup that matched more than one
	// registered method, so no single candidate can be invoked.
	ErrMethodAmbiguous = errors.New("multiple registered methods match")

	// ErrNotOverridable reports a method the mocking seam cannot observe.
	// Invoking it would silently bypass call tracking, so invocation is
	// refused before the method is reached.
	ErrNotOverridable = errors.New("method must be overridable")
)

// TestReporter is the minimal interface needed from test frameworks.
// *testing.T satisfies it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Invoke resolves the method named by a call description on the target's
// concrete type and invokes it with args, returning the first result as
// TResult.
//
// When the description's declaring type is not the target's concrete type
// (the usual case: the description references the substituted base type),
// the method is re-resolved by name among the target's registered methods,
// and resolving to nothing returns the zero TResult with a nil error. When
// the declaring type is the concrete type itself, an unregistered method is
// refused as not overridable: nothing can observe calls to it.
func Invoke[TResult any](target Substitute, description any, args ...any) (TResult, error) {
	var zero TResult

	described, err := DescribeCall(description)
	if err != nil {
		return zero, err
	}

	pkgPath, typeName := dynamicType(target)
	direct := described.PkgPath == pkgPath && described.TypeName == typeName

	matches := target.ProtectedMethods().Named(described.Method)

	switch {
	case len(matches) == 0 && !direct:
		return zero, nil
	case len(matches) == 0:
		return zero, fmt.Errorf("%w: %q is not registered on %T",
			ErrNotOverridable, described.Method, target)
	case len(matches) > 1:
		return zero, fmt.Errorf("%w: %d methods named %q are registered on %T",
			ErrMethodAmbiguous, len(matches), described.Method, target)
	}

	method := matches[0]
	if !method.Overridable {
		return zero, ErrNotOverridable
	}

	return resultAs[TResult](method, callFunc(method.Func, args)), nil
}

// InvokeByName resolves the single registered method with the given name on
// the target and invokes it with args, returning all results.
func InvokeByName(target Substitute, method string, args ...any) ([]any, error) {
	matches := target.ProtectedMethods().Named(method)

	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: no method %q is registered on %T",
			ErrMethodNotFound, method, target)
	case len(matches) > 1:
		return nil, fmt.Errorf("%w: %d methods named %q are registered on %T",
			ErrMethodAmbiguous, len(matches), method, target)
	}

	resolved := matches[0]
	if !resolved.Overridable {
		return nil, ErrNotOverridable
	}

	return callFunc(resolved.Func, args), nil
}

// MustInvoke is Invoke with failures routed to the test reporter.
func MustInvoke[TResult any](t TestReporter, target Substitute, description any, args ...any) TResult {
	t.Helper()

	result, err := Invoke[TResult](target, description, args...)
	if err != nil {
		t.Fatalf("protected invocation failed: %v", err)
	}

	return result
}

// MustInvokeByName is InvokeByName with failures routed to the test
// reporter.
func MustInvokeByName(t TestReporter, target Substitute, method string, args ...any) []any {
	t.Helper()

	results, err := InvokeByName(target, method, args...)
	if err != nil {
		t.Fatalf("protected invocation failed: %v", err)
	}

	return results
}

// dynamicType returns the package path and name of the target's concrete
// type, with pointers stripped, for comparison against a parsed call
// description. Type arguments on generic instantiations are dropped, since
// parsed descriptions carry the bare type name.
func dynamicType(target any) (pkgPath, typeName string) {
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	typeName = t.Name()
	if open := strings.IndexByte(typeName, '['); open >= 0 {
		typeName = typeName[:open]
	}

	return t.PkgPath(), typeName
}

// resultAs casts a call's first result to TResult. No results, or a nil
// first result, yield the zero value. A result of the wrong type panics,
// the invocation-site analog of a failed type assertion.
func resultAs[TResult any](method Method, results []any) TResult {
	var zero TResult

	if len(results) == 0 || results[0] == nil {
		return zero
	}

	value, ok := results[0].(TResult)
	if !ok {
		panic(fmt.Sprintf("Wrong result type. The func (%s) returned a value of type %s,"+
			" but type %s was requested",
			funcName(method.Func),
			getTypeName(reflect.TypeOf(results[0])),
			getTypeName(reflect.TypeFor[TResult]()),
		))
	}

	return value
}
