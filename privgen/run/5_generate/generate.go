// Package generate renders substitute code for a struct's non-public
// methods.
package generate

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strings"
	"unicode"

	"github.com/dave/dst"

	astutil "github.com/toejough/privateer/privgen/run/0_util"
	detect "github.com/toejough/privateer/privgen/run/3_detect"
)

// privateerImportPath is always imported by generated substitutes.
const privateerImportPath = "github.com/toejough/privateer"

// GeneratorInfo holds the naming decisions for one generation run.
type GeneratorInfo struct {
	PkgName    string   // package the generated file belongs to
	StructName string   // base struct being substituted
	SubName    string   // name of the generated substitute
	Keep       []string // methods registered non-overridable, left on the base
}

// SubstituteCode renders the full substitute source for a struct: the
// header, the substitute struct embedding the base and privateer.Core, a
// constructor registering every collected method, and a shadowing body for
// each intercepted method. The result is gofmt-formatted.
func SubstituteCode(
	info GeneratorInfo,
	details detect.StructDetails,
	methods map[string]*dst.FuncType,
) (string, error) {
	data := buildSubstituteData(info, details, methods)
	templates := NewTemplateRegistry()

	var buf bytes.Buffer

	templates.WriteHeader(&buf, data)
	templates.WriteStruct(&buf, data)
	templates.WriteConstructor(&buf, data)

	for _, method := range data.Intercepted {
		templates.WriteMethod(&buf, method)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("error formatting generated code: %w", err)
	}

	return string(formatted), nil
}

// importInfo holds one import of the generated file.
type importInfo struct {
	Alias string // import alias, empty for the default package name
	Path  string // full import path
}

// substituteData is the top-level template payload.
type substituteData struct {
	PkgName        string
	SubName        string
	CtorName       string // "NewFooSub" for exported substitutes, "newFooSub" otherwise
	BaseName       string
	TypeParamsDecl string // with constraints, e.g. "[K comparable, V any]"
	TypeParamsUse  string // for instantiation, e.g. "[K, V]"
	Imports        []importInfo
	Intercepted    []methodData
	Kept           []registrationData
}

// registrationData names one kept method for the constructor template.
type registrationData struct {
	Name     string
	BaseName string
}

// methodData is the per-method template payload for intercepted methods.
type methodData struct {
	SubName       string
	TypeParamsUse string
	Name          string
	ParamsDecl    string   // "a0 int, a1 ...string"
	ResultsDecl   string   // "", "int", or "(int, error)"
	CallArgs      string   // "", ", a0, a1", or ", callArgs..."
	Variadic      bool
	FixedArgs     []string // names of the non-variadic parameters
	VariadicArg   string   // name of the variadic parameter, if any
	Results       []string // one type string per result
	ResultNames   string   // "r0, r1"
}

// buildSubstituteData assembles the template payload: partitioned methods in
// sorted order, rendered type parameters, and the import block.
func buildSubstituteData(
	info GeneratorInfo,
	details detect.StructDetails,
	methods map[string]*dst.FuncType,
) substituteData {
	keep := make(map[string]bool, len(info.Keep))
	for _, name := range info.Keep {
		keep[name] = true
	}

	typeParamsDecl, typeParamsUse := renderTypeParams(details.TypeParams)

	data := substituteData{
		PkgName:        info.PkgName,
		SubName:        info.SubName,
		CtorName:       constructorName(info.SubName),
		BaseName:       info.StructName,
		TypeParamsDecl: typeParamsDecl,
		TypeParamsUse:  typeParamsUse,
		Imports:        collectImports(methods, keep, details.SourceImports),
	}

	for _, name := range detect.SortedMethodNames(methods) {
		if keep[name] {
			data.Kept = append(data.Kept, registrationData{Name: name, BaseName: info.StructName})
			continue
		}

		data.Intercepted = append(data.Intercepted, buildMethodData(data, name, methods[name]))
	}

	return data
}

// buildMethodData precomputes the strings one intercepted method's template
// needs. Parameter names are always synthesized (a0, a1, ...) so the bodies
// never collide with the source's parameter names.
func buildMethodData(data substituteData, name string, funcType *dst.FuncType) methodData {
	method := methodData{
		SubName:       data.SubName,
		TypeParamsUse: data.TypeParamsUse,
		Name:          name,
	}

	params := expandParams(funcType.Params)

	decls := make([]string, len(params))
	for i, param := range params {
		decls[i] = param.name + " " + param.typeStr
	}

	method.ParamsDecl = strings.Join(decls, ", ")

	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.name
	}

	if len(params) > 0 && params[len(params)-1].variadic {
		method.Variadic = true
		method.FixedArgs = names[:len(names)-1]
		method.VariadicArg = names[len(names)-1]
		method.CallArgs = ", callArgs..."
	} else if len(params) > 0 {
		method.CallArgs = ", " + strings.Join(names, ", ")
	}

	if funcType.Results != nil && len(funcType.Results.List) > 0 {
		method.Results = astutil.FieldTypes(funcType.Results.List)

		resultNames := make([]string, len(method.Results))
		for i := range method.Results {
			resultNames[i] = fmt.Sprintf("r%d", i)
		}

		method.ResultNames = strings.Join(resultNames, ", ")

		if len(method.Results) > 1 {
			method.ResultsDecl = "(" + strings.Join(method.Results, ", ") + ")"
		} else {
			method.ResultsDecl = method.Results[0]
		}
	}

	return method
}

// constructorName matches the constructor's exportedness to the
// substitute's: an unexported substitute gets an unexported constructor.
func constructorName(subName string) string {
	if token.IsExported(subName) {
		return "New" + subName
	}

	runes := []rune(subName)
	runes[0] = unicode.ToUpper(runes[0])

	return "new" + string(runes)
}

// paramInfo is one declared parameter with its synthesized name.
type paramInfo struct {
	name     string
	typeStr  string
	variadic bool
}

// expandParams flattens a parameter list into one entry per declared
// parameter, multi-name fields included.
func expandParams(params *dst.FieldList) []paramInfo {
	if params == nil {
		return nil
	}

	var expanded []paramInfo

	for _, field := range params.List {
		typeStr := astutil.ExprToString(field.Type)
		_, variadic := field.Type.(*dst.Ellipsis)

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			expanded = append(expanded, paramInfo{
				name:     fmt.Sprintf("a%d", len(expanded)),
				typeStr:  typeStr,
				variadic: variadic,
			})
		}
	}

	return expanded
}

// renderTypeParams renders a type parameter list both ways the generated
// code needs it: declaration form with constraints and instantiation form
// with bare names.
func renderTypeParams(typeParams *dst.FieldList) (decl, use string) {
	if typeParams == nil || len(typeParams.List) == 0 {
		return "", ""
	}

	declParts := make([]string, 0, len(typeParams.List))
	useParts := make([]string, 0, len(typeParams.List))

	for _, field := range typeParams.List {
		names := make([]string, len(field.Names))
		for i, name := range field.Names {
			names[i] = name.Name
		}

		declParts = append(declParts, strings.Join(names, ", ")+" "+astutil.ExprToString(field.Type))
		useParts = append(useParts, strings.Join(names, ", "))
	}

	return "[" + strings.Join(declParts, ", ") + "]", "[" + strings.Join(useParts, ", ") + "]"
}

// collectImports resolves the import block for the generated file: the
// privateer import plus every source import referenced by an intercepted
// method's signature.
func collectImports(
	methods map[string]*dst.FuncType,
	keep map[string]bool,
	sourceImports []*dst.ImportSpec,
) []importInfo {
	collected := map[string]importInfo{
		privateerImportPath: {Path: privateerImportPath},
	}

	for name, funcType := range methods {
		if keep[name] {
			// Kept methods get no generated body, so their signatures
			// contribute no imports.
			continue
		}

		collectFieldListImports(funcType.Params, sourceImports, collected)
		collectFieldListImports(funcType.Results, sourceImports, collected)
	}

	return sortedImportSlice(collected)
}

// collectFieldListImports walks field types for package references and
// resolves them against the source file's imports.
func collectFieldListImports(
	fields *dst.FieldList,
	sourceImports []*dst.ImportSpec,
	collected map[string]importInfo,
) {
	if fields == nil {
		return
	}

	for _, field := range fields.List {
		dst.Inspect(field.Type, func(node dst.Node) bool {
			sel, ok := node.(*dst.SelectorExpr)
			if !ok {
				return true
			}

			ident, ok := sel.X.(*dst.Ident)
			if !ok {
				return true
			}

			path, alias := resolveImport(ident.Name, sourceImports)
			if path != "" {
				collected[path] = importInfo{Alias: alias, Path: path}
			}

			return true
		})
	}
}

// resolveImport finds the import path a package qualifier refers to, by
// alias when the import declares one, else by the path's last segment.
// The returned alias is empty when the qualifier is the default name.
func resolveImport(qualifier string, sourceImports []*dst.ImportSpec) (path, alias string) {
	for _, imp := range sourceImports {
		impPath := strings.Trim(imp.Path.Value, `"`)

		if imp.Name != nil {
			if imp.Name.Name == qualifier {
				return impPath, qualifier
			}

			continue
		}

		if pkgNameFromPath(impPath) == qualifier {
			return impPath, ""
		}
	}

	return "", ""
}

// pkgNameFromPath extracts the default package name from an import path.
// E.g., "net/http" -> "http", "io" -> "io".
func pkgNameFromPath(importPath string) string {
	parts := strings.Split(importPath, "/")
	return parts[len(parts)-1]
}

// sortedImportSlice orders imports by path for deterministic output.
func sortedImportSlice(imports map[string]importInfo) []importInfo {
	result := make([]importInfo, 0, len(imports))

	for _, imp := range imports {
		result = append(result, imp)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result
}
