package core

// This file provides the reflect plumbing that actually calls a registered
// method: argument validation and the call itself.

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// callFunc invokes fn with args and returns its results as plain values.
//
// Count and type mismatches panic: by the time a call gets here the method
// has been resolved, so a mismatch is a bug at the invocation site for the
// programmer to fix, not a condition to route back through error returns.
// Panics raised by fn itself propagate unmodified.
func callFunc(fn any, args []any) []any {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	panicIfWrongNumArgs(fnType, fn, args)
	panicIfWrongArgTypes(fnType, fn, args)

	in := make([]reflect.Value, len(args))

	for i := range args {
		if args[i] == nil {
			// A bare nil has no type of its own; give it the parameter's.
			in[i] = reflect.Zero(argType(fnType, i))
			continue
		}

		in[i] = reflect.ValueOf(args[i])
	}

	return unreflectValues(fnValue.Call(in))
}

// panicIfWrongNumArgs panics if the number of args given doesn't match the
// number of args the function takes, counting a variadic tail as zero or
// more.
func panicIfWrongNumArgs(fnType reflect.Type, fn any, args []any) {
	numArgs := len(args)
	numFuncArgs := fnType.NumIn()

	if fnType.IsVariadic() {
		if numArgs < numFuncArgs-1 {
			panic(fmt.Sprintf("Too few args passed. The func (%s) takes at least %d args,"+
				" but only %d were passed",
				funcName(fn),
				numFuncArgs-1,
				numArgs,
			))
		}

		return
	}

	if numArgs < numFuncArgs {
		panic(fmt.Sprintf("Too few args passed. The func (%s) takes %d args,"+
			" but only %d were passed",
			funcName(fn),
			numFuncArgs,
			numArgs,
		))
	} else if numFuncArgs < numArgs {
		panic(fmt.Sprintf("Too many args passed. The func (%s) only takes %d args,"+
			" but %d were passed",
			funcName(fn),
			numFuncArgs,
			numArgs,
		))
	}
}

// panicIfWrongArgTypes panics if the types of args given don't match the
// types of args the function takes.
func panicIfWrongArgTypes(fnType reflect.Type, fn any, args []any) {
	for index := range args {
		expected := argType(fnType, index)
		arg := args[index]

		// a nil arg is fine wherever the parameter can hold one.
		if arg == nil && isNillableKind(expected.Kind()) {
			continue
		}

		if arg == nil {
			panic(fmt.Sprintf("Wrong arg type. The arg type at index %d for func (%s) is %s,"+
				" but an untyped nil was passed",
				index,
				funcName(fn),
				getTypeName(expected),
			))
		}

		actual := reflect.TypeOf(arg)
		if expected == actual {
			continue
		}

		if expected.Kind() == reflect.Interface && actual.Implements(expected) {
			continue
		}

		panic(fmt.Sprintf("Wrong arg type. The arg type at index %d for func (%s) is %s,"+
			" but a value of type %s was passed",
			index,
			funcName(fn),
			getTypeName(expected),
			getTypeName(actual),
		))
	}
}

// argType returns the declared type of the argument at index, unrolling the
// variadic tail to its element type.
func argType(fnType reflect.Type, index int) reflect.Type {
	if fnType.IsVariadic() && index >= fnType.NumIn()-1 {
		return fnType.In(fnType.NumIn() - 1).Elem()
	}

	return fnType.In(index)
}

// unreflectValues returns the actual values of the reflected values.
func unreflectValues(reflected []reflect.Value) []any {
	if len(reflected) == 0 {
		return nil
	}

	values := make([]any, len(reflected))
	for i := range reflected {
		values[i] = reflected[i].Interface()
	}

	return values
}

// funcName gets the function's runtime name, without the method-value
// suffix. Used in panic messages so the programmer can find the call site.
func funcName(fn any) string {
	name := runtime.FuncForPC(uintptr(reflect.ValueOf(fn).UnsafePointer())).Name()
	return strings.TrimSuffix(name, "-fm")
}

// getTypeName gets the type's name, if it has one. If it does not have one,
// getTypeName will return the type's string.
func getTypeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}

	return t.String()
}

// isNillableKind returns true if the kind passed is nillable.
// According to https://pkg.go.dev/reflect#Value.IsNil, this is the case for
// chan, func, interface, map, pointer, or slice kinds.
func isNillableKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	case reflect.Invalid, reflect.Bool, reflect.Int,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128, reflect.Array,
		reflect.String, reflect.Struct, reflect.UnsafePointer:
		return false
	default:
		// Only reachable if reflect itself grows a new kind.
		panic("unable to check for nillability for unknown kind " + kind.String())
	}
}
