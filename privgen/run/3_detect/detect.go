// Package detect finds struct types and their non-public methods in parsed
// packages.
package detect

import (
	"fmt"
	"go/token"
	"sort"
	"strings"

	"github.com/dave/dst"

	astutil "github.com/toejough/privateer/privgen/run/0_util"
)

// defaultMethodCapacity pre-sizes method maps for typical structs.
const defaultMethodCapacity = 8

// StructDetails holds what generation needs to know about a struct type.
type StructDetails struct {
	TypeName      string            // The name of the struct type (e.g., "Calculator")
	TypeParams    *dst.FieldList    // Type parameters, nil for non-generic structs
	SourceImports []*dst.ImportSpec // imports from the file containing the struct
}

// FindStruct locates a struct type declaration by name in the given AST
// files.
func FindStruct(astFiles []*dst.File, typeName string) (StructDetails, error) {
	var (
		found         bool
		typeParams    *dst.FieldList
		sourceImports []*dst.ImportSpec
	)

	for _, file := range astFiles {
		dst.Inspect(file, func(node dst.Node) bool {
			genDecl, ok := node.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				return true
			}

			for _, spec := range genDecl.Specs {
				typeSpec, isTypeSpec := spec.(*dst.TypeSpec)
				if !isTypeSpec || typeSpec.Name.Name != typeName {
					continue
				}

				if _, isStructType := typeSpec.Type.(*dst.StructType); !isStructType {
					continue
				}

				found = true
				typeParams = typeSpec.TypeParams
				sourceImports = file.Imports

				return false
			}

			return true
		})

		if found {
			break
		}
	}

	if !found {
		//nolint:err113 // Dynamic error message required for user-facing lookup errors
		return StructDetails{}, fmt.Errorf("struct type not found: %s", typeName)
	}

	return StructDetails{
		TypeName:      typeName,
		TypeParams:    typeParams,
		SourceImports: sourceImports,
	}, nil
}

// CollectProtectedMethods collects the non-public methods for a struct type,
// including methods promoted from embedded structs defined in the same
// package. A method defined directly on the struct wins over a promoted one
// with the same name, matching Go's own promotion rules.
func CollectProtectedMethods(astFiles []*dst.File, structName string) map[string]*dst.FuncType {
	visited := make(map[string]bool)
	return collectProtectedMethodsRecursive(astFiles, structName, visited)
}

// SortedMethodNames returns the method names in a deterministic order for
// generation.
func SortedMethodNames(methods map[string]*dst.FuncType) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func collectProtectedMethodsRecursive(
	astFiles []*dst.File,
	structName string,
	visited map[string]bool,
) map[string]*dst.FuncType {
	if visited[structName] {
		return make(map[string]*dst.FuncType)
	}

	visited[structName] = true

	methods := make(map[string]*dst.FuncType, defaultMethodCapacity)

	for _, file := range astFiles {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*dst.FuncDecl)
			if !ok || funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
				continue
			}

			if receiverTypeName(funcDecl.Recv.List[0].Type) != structName {
				continue
			}

			if token.IsExported(funcDecl.Name.Name) {
				continue
			}

			methods[funcDecl.Name.Name] = funcDecl.Type
		}
	}

	for _, embeddedName := range findEmbeddedStructTypes(astFiles, structName) {
		embeddedMethods := collectProtectedMethodsRecursive(astFiles, embeddedName, visited)
		for name, funcType := range embeddedMethods {
			if _, exists := methods[name]; !exists {
				methods[name] = funcType
			}
		}
	}

	return methods
}

// receiverTypeName normalizes a receiver type expression to its bare type
// name: pointers are stripped, and type parameters on generic receivers
// ("*stack[T]") are dropped.
func receiverTypeName(recvType dst.Expr) string {
	name := strings.TrimPrefix(astutil.ExprToString(recvType), "*")

	if bracket := strings.IndexByte(name, '['); bracket >= 0 {
		name = name[:bracket]
	}

	return name
}

// findEmbeddedStructTypes finds the names of all embedded types in a struct
// definition. Generic embeds ("base[T]") reduce to the bare type name.
//
//nolint:gocognit,cyclop // Nested AST traversal requires multiple condition checks
func findEmbeddedStructTypes(astFiles []*dst.File, structName string) []string {
	var embeddedTypes []string

	for _, file := range astFiles {
		dst.Inspect(file, func(node dst.Node) bool {
			genDecl, ok := node.(*dst.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				return true
			}

			for _, spec := range genDecl.Specs {
				typeSpec, isTypeSpec := spec.(*dst.TypeSpec)
				if !isTypeSpec || typeSpec.Name.Name != structName {
					continue
				}

				structType, isStructType := typeSpec.Type.(*dst.StructType)
				if !isStructType || structType.Fields == nil {
					continue
				}

				for _, field := range structType.Fields.List {
					if len(field.Names) > 0 {
						continue
					}

					if name := embeddedTypeName(field.Type); name != "" {
						embeddedTypes = append(embeddedTypes, name)
					}
				}

				return false
			}

			return true
		})
	}

	return embeddedTypes
}

// embeddedTypeName extracts the local type name from an embedded field's
// type expression. Qualified embeds (pkg.Type) return empty: their methods
// live in another package and cannot be collected here.
func embeddedTypeName(fieldType dst.Expr) string {
	switch typed := fieldType.(type) {
	case *dst.Ident:
		return typed.Name
	case *dst.StarExpr:
		return embeddedTypeName(typed.X)
	case *dst.IndexExpr:
		return embeddedTypeName(typed.X)
	case *dst.IndexListExpr:
		return embeddedTypeName(typed.X)
	default:
		return ""
	}
}
