// Package astutil provides shared helpers for rendering DST nodes back to
// Go source fragments.
package astutil

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// ExprToString renders a dst.Expr to Go code.
// decorator.Restorer only prints whole files, so expression rendering is
// done directly off the node tree.
//
//nolint:cyclop,funlen // Type-switch dispatcher over the DST expression kinds; complexity is inherent
func ExprToString(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typed := expr.(type) {
	case *dst.Ident:
		return typed.Name
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		return ExprToString(typed.X) + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + ExprToString(typed.X)
	case *dst.ArrayType:
		if typed.Len != nil {
			return "[" + ExprToString(typed.Len) + "]" + ExprToString(typed.Elt)
		}

		return "[]" + ExprToString(typed.Elt)
	case *dst.MapType:
		return "map[" + ExprToString(typed.Key) + "]" + ExprToString(typed.Value)
	case *dst.ChanType:
		switch typed.Dir {
		case dst.SEND:
			return "chan<- " + ExprToString(typed.Value)
		case dst.RECV:
			return "<-chan " + ExprToString(typed.Value)
		default:
			return "chan " + ExprToString(typed.Value)
		}
	case *dst.Ellipsis:
		return "..." + ExprToString(typed.Elt)
	case *dst.IndexExpr:
		return ExprToString(typed.X) + "[" + ExprToString(typed.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typed.Indices))
		for i, index := range typed.Indices {
			indices[i] = ExprToString(index)
		}

		return ExprToString(typed.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + ExprToString(typed.X) + ")"
	case *dst.FuncType:
		return funcTypeToString(typed)
	case *dst.InterfaceType:
		return interfaceTypeToString(typed)
	case *dst.StructType:
		return structTypeToString(typed)
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// FieldTypes expands a field list into one type string per declared name.
// A field declaring several names ("a, b int") contributes its type once per
// name; an unnamed field contributes it once.
func FieldTypes(fields []*dst.Field) []string {
	var parts []string

	for _, field := range fields {
		typeStr := ExprToString(field.Type)

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// funcTypeToString renders a func type, parameters and results by type only.
func funcTypeToString(funcType *dst.FuncType) string {
	var buf strings.Builder

	buf.WriteString("func")

	if funcType.Params != nil {
		buf.WriteString("(")
		buf.WriteString(strings.Join(FieldTypes(funcType.Params.List), ", "))
		buf.WriteString(")")
	}

	if funcType.Results != nil && len(funcType.Results.List) > 0 {
		buf.WriteString(" ")
		buf.WriteString(resultsToString(funcType.Results))
	}

	return buf.String()
}

// resultsToString renders a result list, parenthesized only when there is
// more than one result.
func resultsToString(results *dst.FieldList) string {
	parts := FieldTypes(results.List)
	if len(parts) > 1 {
		return "(" + strings.Join(parts, ", ") + ")"
	}

	return parts[0]
}

// interfaceTypeToString renders an interface literal with its method
// signatures, compactly for a single method.
func interfaceTypeToString(interfaceType *dst.InterfaceType) string {
	if interfaceType.Methods == nil || len(interfaceType.Methods.List) == 0 {
		return "interface{}"
	}

	methods := make([]string, 0, len(interfaceType.Methods.List))

	for _, method := range interfaceType.Methods.List {
		var buf strings.Builder

		// Embedded interfaces carry no name, just the type.
		if len(method.Names) > 0 {
			buf.WriteString(method.Names[0].Name)
		}

		if funcType, ok := method.Type.(*dst.FuncType); ok {
			// Interface methods drop the "func" keyword.
			buf.WriteString("(")
			if funcType.Params != nil {
				buf.WriteString(strings.Join(FieldTypes(funcType.Params.List), ", "))
			}
			buf.WriteString(")")

			if funcType.Results != nil && len(funcType.Results.List) > 0 {
				buf.WriteString(" ")
				buf.WriteString(resultsToString(funcType.Results))
			}
		} else {
			buf.WriteString(ExprToString(method.Type))
		}

		methods = append(methods, buf.String())
	}

	if len(methods) == 1 {
		return "interface{ " + methods[0] + " }"
	}

	return "interface{\n\t" + strings.Join(methods, "\n\t") + "\n}"
}

// structTypeToString renders a struct literal with field names, types, and
// tags.
func structTypeToString(structType *dst.StructType) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var buf strings.Builder

		if len(field.Names) > 0 {
			names := make([]string, len(field.Names))
			for i, name := range field.Names {
				names[i] = name.Name
			}

			buf.WriteString(strings.Join(names, ", "))
			buf.WriteString(" ")
		}

		buf.WriteString(ExprToString(field.Type))

		if field.Tag != nil {
			buf.WriteString(" ")
			buf.WriteString(field.Tag.Value)
		}

		fields = append(fields, buf.String())
	}

	return fmt.Sprintf("struct{ %s }", strings.Join(fields, "; "))
}
