package generate

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateRegistry holds all parsed text templates for substitute code
// generation. Create one with NewTemplateRegistry().
type TemplateRegistry struct {
	headerTmpl      *template.Template
	structTmpl      *template.Template
	constructorTmpl *template.Template
	methodTmpl      *template.Template
}

// NewTemplateRegistry creates and initializes a new template registry with
// all templates parsed. Templates are hardcoded constants, so parsing cannot
// fail at runtime.
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{}

	templates := []struct {
		target  **template.Template
		name    string
		content string
	}{
		{&registry.headerTmpl, "header", tmplHeader},
		{&registry.structTmpl, "struct", tmplStruct},
		{&registry.constructorTmpl, "constructor", tmplConstructor},
		{&registry.methodTmpl, "method", tmplMethod},
	}

	for _, def := range templates {
		*def.target = template.Must(template.New(def.name).Parse(def.content))
	}

	return registry
}

// WriteHeader writes the generated-file header: the generation marker, the
// package clause, and the import block.
func (r *TemplateRegistry) WriteHeader(buf *bytes.Buffer, data any) {
	err := r.headerTmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute header template: %v", err))
	}
}

// WriteStruct writes the substitute struct declaration.
func (r *TemplateRegistry) WriteStruct(buf *bytes.Buffer, data any) {
	err := r.structTmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute struct template: %v", err))
	}
}

// WriteConstructor writes the substitute constructor with its method
// registrations.
func (r *TemplateRegistry) WriteConstructor(buf *bytes.Buffer, data any) {
	err := r.constructorTmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute constructor template: %v", err))
	}
}

// WriteMethod writes one intercepted method body.
func (r *TemplateRegistry) WriteMethod(buf *bytes.Buffer, data any) {
	err := r.methodTmpl.Execute(buf, data)
	if err != nil {
		panic(fmt.Sprintf("failed to execute method template: %v", err))
	}
}

// Template constants.
//
// The method template forwards every intercepted call through HandleCall and
// maps the handler's values back onto the declared results: a missing or nil
// value becomes the zero value, a mistyped value fails the type assertion.

const tmplHeader = `// Code generated by privgen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
`

const tmplStruct = `
// {{.SubName}} substitutes {{.BaseName}}. Its non-public methods are
// registered for protected invocation and route through the handler seam.
type {{.SubName}}{{.TypeParamsDecl}} struct {
	{{.BaseName}}{{.TypeParamsUse}}
	privateer.Core
}
`

const tmplConstructor = `
// {{.CtorName}} builds the substitute and registers its protected methods.
func {{.CtorName}}{{.TypeParamsDecl}}() *{{.SubName}}{{.TypeParamsUse}} {
	s := &{{.SubName}}{{.TypeParamsUse}}{}
{{- range .Intercepted}}
	s.ProtectedMethods().Register(privateer.Method{Name: "{{.Name}}", Func: s.{{.Name}}, Overridable: true})
{{- end}}
{{- range .Kept}}
	s.ProtectedMethods().Register(privateer.Method{Name: "{{.Name}}", Func: s.{{.BaseName}}.{{.Name}}, Overridable: false})
{{- end}}

	return s
}
`

const tmplMethod = `
func (s *{{.SubName}}{{.TypeParamsUse}}) {{.Name}}({{.ParamsDecl}}){{with .ResultsDecl}} {{.}}{{end}} {
{{- if .Variadic}}
	callArgs := make([]any, 0, {{len .FixedArgs}}+len({{.VariadicArg}}))
{{- range .FixedArgs}}
	callArgs = append(callArgs, {{.}})
{{- end}}
	for _, arg := range {{.VariadicArg}} {
		callArgs = append(callArgs, arg)
	}
{{- end}}
{{- if .Results}}
	out := s.HandleCall("{{.Name}}"{{.CallArgs}})
{{- range $i, $t := .Results}}

	var r{{$i}} {{$t}}
	if len(out) > {{$i}} && out[{{$i}}] != nil {
		r{{$i}} = out[{{$i}}].({{$t}})
	}
{{- end}}

	return {{.ResultNames}}
{{- else}}
	s.HandleCall("{{.Name}}"{{.CallArgs}})
{{- end}}
}
`
