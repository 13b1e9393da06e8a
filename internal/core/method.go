// Package core implements protected-method registration and invocation for
// test substitutes.
package core

// Error philosophy:
//
// Failures: conditions which signal expected failures the user is testing for (this is a test library), should
// trigger a test failure (the Must* entry points route these through TestReporter.Fatalf).
//
// Panics: conditions which signal an error which it is not generally reasonable to expect a caller to recover from,
// which instead imply programmer intervention is necessary to resolve, should trigger an explanatory panic for the
// programmer to track down.
//
// Errors: all other error conditions should trigger an error with sufficient detail to enable the caller to take
// corrective action.

import (
	"fmt"
	"go/token"
	"reflect"
)

// Method describes one non-public method registered on a substitute.
//
// Func is the callable for the method, bound to the substitute instance at
// registration time. Overridable records whether calls to the method route
// through the substitute's handler seam: only overridable methods may be
// invoked through the protected entry points, because invoking anything
// else would silently bypass whatever framework is observing the handler.
type Method struct {
	Name        string
	Func        any
	Overridable bool
}

// MethodSet holds the non-public methods registered on a substitute.
//
// Registration happens in substitute constructors, before the substitute is
// shared; lookups afterward are read-only, so the set carries no lock.
// Duplicate names are allowed at registration. A name reached twice (for
// example via an embedded substitute) is exactly the ambiguity that lookups
// must be able to report.
type MethodSet struct {
	methods []Method
}

// Register adds a method to the set.
// It panics if the method has an empty or exported name, or if its Func is
// not a function: all three are registration-site bugs no caller could
// meaningfully recover from at invocation time.
func (s *MethodSet) Register(m Method) {
	if m.Name == "" {
		panic("method name must not be empty")
	}

	if token.IsExported(m.Name) {
		panic(fmt.Sprintf("method %q is exported. only non-public methods belong in a protected method set.", m.Name))
	}

	if m.Func == nil || reflect.ValueOf(m.Func).Kind() != reflect.Func {
		panic(fmt.Sprintf("method %q must register a function. received a %s instead.", m.Name, kindOf(m.Func)))
	}

	s.methods = append(s.methods, m)
}

// Named returns every registered method with exactly the given name, in
// registration order.
func (s *MethodSet) Named(name string) []Method {
	var matches []Method

	for _, m := range s.methods {
		if m.Name == name {
			matches = append(matches, m)
		}
	}

	return matches
}

// Len returns the number of registered methods.
func (s *MethodSet) Len() int { return len(s.methods) }

// kindOf names a value's reflect kind, tolerating untyped nil.
func kindOf(value any) string {
	if value == nil {
		return "untyped nil"
	}

	return reflect.ValueOf(value).Kind().String()
}
