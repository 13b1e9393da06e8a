package core

// This file recovers method identity from call descriptions. A call
// description is a func value passed only to say which method is meant: a
// method value (sub.double) or a method expression ((*Calculator).double).
// The identity comes from the runtime symbol name of the function, the same
// name runtime.FuncForPC reports in stack traces.

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unicode"
)

// ErrInvalidDescription reports a call description that does not identify a
// method: a non-function value, a nil function, a plain function, or a
// function literal.
var ErrInvalidDescription = errors.New("invalid call description")

// CallDescription identifies a method by where it was declared and what it
// is named.
type CallDescription struct {
	PkgPath  string
	TypeName string
	Method   string
}

// DescribeCall extracts the described method's identity from a method value
// or method expression. Any other description fails with
// ErrInvalidDescription.
func DescribeCall(description any) (CallDescription, error) {
	if description == nil {
		return CallDescription{}, fmt.Errorf(
			"%w: must be a method value or method expression, got untyped nil", ErrInvalidDescription)
	}

	value := reflect.ValueOf(description)
	if value.Kind() != reflect.Func {
		return CallDescription{}, fmt.Errorf(
			"%w: must be a method value or method expression, got a %s", ErrInvalidDescription, value.Kind())
	}

	if value.IsNil() {
		return CallDescription{}, fmt.Errorf(
			"%w: must be a method value or method expression, got a nil function", ErrInvalidDescription)
	}

	// docs say to use UnsafePointer explicitly instead of Pointer()
	// https://pkg.go.dev/reflect#Value.Pointer
	name := runtime.FuncForPC(uintptr(value.UnsafePointer())).Name()

	described, err := ParseFuncName(name)
	if err != nil {
		return CallDescription{}, err
	}

	return described, nil
}

// ParseFuncName parses a runtime symbol name into a method identity.
//
// Method values carry a -fm suffix, generic instantiations carry bracketed
// type arguments, and pointer receivers are parenthesized; all are
// normalized away. Names without a receiver segment (plain functions) and
// names with compiler-numbered segments (function literals) are not method
// descriptions.
func ParseFuncName(name string) (CallDescription, error) {
	name = strings.TrimSuffix(name, "-fm")
	name = stripTypeInstantiations(name)

	// The package path runs through the final slash; the first dot after it
	// separates the package from the receiver and method.
	tail := name
	prefix := ""

	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		prefix = name[:slash+1]
		tail = name[slash+1:]
	}

	pkgName, rest, found := strings.Cut(tail, ".")
	if !found || rest == "" {
		return CallDescription{}, fmt.Errorf("%w: %q does not name a method", ErrInvalidDescription, name)
	}

	typeName, method, err := splitReceiver(rest)
	if err != nil {
		return CallDescription{}, fmt.Errorf("%w: %q does not name a method", ErrInvalidDescription, name)
	}

	return CallDescription{
		PkgPath:  prefix + pkgName,
		TypeName: typeName,
		Method:   method,
	}, nil
}

// splitReceiver splits "Type.method" or "(*Type).method" into its parts.
func splitReceiver(rest string) (typeName, method string, err error) {
	if strings.HasPrefix(rest, "(*") {
		closing := strings.Index(rest, ").")
		if closing < 0 {
			return "", "", errNotAMethod
		}

		typeName = rest[len("(*"):closing]
		method = rest[closing+len(")."):]
	} else {
		var found bool

		typeName, method, found = strings.Cut(rest, ".")
		if !found {
			// No receiver segment at all: a plain function.
			return "", "", errNotAMethod
		}
	}

	if typeName == "" || !isIdentifier(typeName) || !isIdentifier(method) || isLiteralName(method) {
		return "", "", errNotAMethod
	}

	return typeName, method, nil
}

// stripTypeInstantiations removes bracketed type-argument lists from a
// symbol name, so generic methods parse the same as plain ones.
func stripTypeInstantiations(name string) string {
	for {
		open := strings.IndexByte(name, '[')
		if open < 0 {
			return name
		}

		depth := 0
		closing := -1

		for i := open; i < len(name) && closing < 0; i++ {
			switch name[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					closing = i
				}
			}
		}

		if closing < 0 {
			// Unbalanced brackets: keep whatever precedes them.
			return name[:open]
		}

		name = name[:open] + name[closing+1:]
	}
}

// isLiteralName reports whether a symbol segment is a compiler-assigned
// function-literal name (func1, func2, ...) rather than a written method
// name.
func isLiteralName(segment string) bool {
	digits, found := strings.CutPrefix(segment, "func")
	if !found || digits == "" {
		return false
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// isIdentifier reports whether a symbol segment is a plain Go identifier.
// Compiler-synthesized wrappers (anonymous types, nested literals) carry
// punctuation that a written method name never does.
func isIdentifier(segment string) bool {
	if segment == "" {
		return false
	}

	for i, r := range segment {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r):
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

var errNotAMethod = errors.New("not a method")
