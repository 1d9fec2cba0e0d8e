// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package codegen renders Go operator bindings from the catalog.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/mitchellh/go-wordwrap"

	"github.com/TheGoldfish01/dpf-go/internal/catalog"
)

// DefaultDPFImport is the import path of the runtime the bindings call.
const DefaultDPFImport = "github.com/TheGoldfish01/dpf-go/dpf"

const commentWidth = 76

// Generator renders binding files.
type Generator struct {
	// DPFImport is the import path of the dpf runtime package.
	DPFImport string
	// Source names the catalog in the generated-file header.
	Source string
}

// NewGenerator returns a Generator importing the runtime of this module.
func NewGenerator(source string) *Generator {
	return &Generator{DPFImport: DefaultDPFImport, Source: source}
}

// Generate renders every binding of c. Keys of the result are paths
// relative to the output directory, e.g. "math/unit_convert.go".
func (g *Generator) Generate(c *catalog.Catalog) (map[string][]byte, error) {
	files := make(map[string][]byte)
	for _, category := range c.Categories() {
		ops := c.InCategory(category)
		for _, op := range ops {
			src, err := g.Operator(op)
			if err != nil {
				return nil, err
			}
			files[filepath.Join(category, op.Name+".go")] = src
		}
		src, err := g.Specifications(category, ops)
		if err != nil {
			return nil, err
		}
		files[filepath.Join(category, "specifications.go")] = src
	}
	return files, nil
}

// WriteFiles writes the output of Generate below dir.
func WriteFiles(dir string, files map[string][]byte) error {
	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

type pinData struct {
	Field    string
	Index    int
	Ellipsis int
	Spec     catalog.Pin
}

type outputData struct {
	Field    string
	Index    int
	Name     string
	TypeName string
	GoType   string
	Constant string
	Document string
}

type operatorData struct {
	Header  string
	Package string
	Import  string
	GoName  string
	VarName string
	Op      *catalog.Operator
	Inputs  []pinData
	Outputs []outputData
}

// Operator renders the binding of one operator.
func (g *Generator) Operator(op *catalog.Operator) ([]byte, error) {
	d := operatorData{
		Header:  g.header(),
		Package: op.Category,
		Import:  g.DPFImport,
		GoName:  GoName(op.Name),
		VarName: lowerName(op.Name) + "Spec",
		Op:      op,
	}

	inputFields := map[string]bool{"Connect": true, "List": true, "Missing": true, "String": true}
	for _, p := range op.Inputs {
		field := GoName(p.Name)
		if p.Ellipsis() {
			field += strconv.Itoa(p.EllipsisIndex + 1)
		}
		if inputFields[field] {
			return nil, fmt.Errorf("operator %s: input pin %d maps to Go name %s, which is already taken", op.Name, p.Index, field)
		}
		inputFields[field] = true
		d.Inputs = append(d.Inputs, pinData{Field: field, Index: p.Index, Ellipsis: p.EllipsisIndex, Spec: p})
	}

	outputFields := map[string]bool{"List": true, "String": true}
	for _, p := range op.Outputs {
		for _, t := range p.Types {
			info := lookupType(t)
			field := GoName(p.Name)
			if len(p.Types) > 1 {
				field += "As" + info.suffix
			}
			if outputFields[field] {
				return nil, fmt.Errorf("operator %s: output pin %d maps to Go name %s, which is already taken", op.Name, p.Index, field)
			}
			outputFields[field] = true
			d.Outputs = append(d.Outputs, outputData{
				Field:    field,
				Index:    p.Index,
				Name:     p.Name,
				TypeName: t,
				GoType:   info.goType,
				Constant: info.constant,
				Document: p.Document,
			})
		}
	}
	return render(operatorTemplate, d, op.Name)
}

type categoryData struct {
	Header   string
	Package  string
	Import   string
	Category string
	Ops      []categoryOp
}

type categoryOp struct {
	Name         string
	InternalName string
	VarName      string
}

// Specifications renders the specifications.go file of one category.
func (g *Generator) Specifications(category string, ops []*catalog.Operator) ([]byte, error) {
	d := categoryData{
		Header:   g.header(),
		Package:  category,
		Import:   g.DPFImport,
		Category: category,
	}
	for _, op := range ops {
		d.Ops = append(d.Ops, categoryOp{Name: op.Name, InternalName: op.InternalName, VarName: lowerName(op.Name) + "Spec"})
	}
	slices.SortFunc(d.Ops, func(a, b categoryOp) int { return strings.Compare(a.InternalName, b.InternalName) })
	return render(categoryTemplate, d, category+" specifications")
}

func (g *Generator) header() string {
	return fmt.Sprintf("// Code generated by dpfgen from %s. DO NOT EDIT.", g.Source)
}

func render(t *template.Template, data any, what string) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", what, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w\n%s", what, err, buf.Bytes())
	}
	return src, nil
}

// comment wraps text into Go line comments with the given indent.
func comment(indent, text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	lines := strings.Split(wordwrap.WrapString(text, uint(commentWidth-len(indent))), "\n")
	for i, l := range lines {
		lines[i] = indent + "// " + l
	}
	return strings.Join(lines, "\n")
}

func typeList(types []string) string {
	consts := make([]string, len(types))
	for i, t := range types {
		consts[i] = lookupType(t).constant
	}
	return "[]string{" + strings.Join(consts, ", ") + "}"
}

func inputDoc(p pinData) string {
	kind := "input pin"
	if p.Spec.Optional {
		kind = "optional input pin"
	}
	text := fmt.Sprintf("%s is %s %d (%s).", p.Field, kind, p.Index, strings.Join(p.Spec.Types, ", "))
	if p.Spec.Document != "" {
		text += " " + upperFirst(p.Spec.Document)
	}
	return comment("\t", text)
}

func outputDoc(o outputData) string {
	text := fmt.Sprintf("%s reads output pin %d (%s) as %s.", o.Field, o.Index, o.Name, o.TypeName)
	if o.Document != "" {
		text += " " + upperFirst(o.Document)
	}
	return comment("\t", text)
}

func upperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

var funcs = template.FuncMap{
	"comment":   comment,
	"quote":     strconv.Quote,
	"typeList":  typeList,
	"inputDoc":  inputDoc,
	"outputDoc": outputDoc,
}

var operatorTemplate = template.Must(template.New("operator").Funcs(funcs).Parse(`// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

{{.Header}}

package {{.Package}}

import (
	"context"

	"{{.Import}}"
)

// {{.GoName}} wraps the {{.Op.InternalName}} operator{{if .Op.Plugin}} of the {{.Op.Plugin}} plugin{{end}}.
{{- with .Op.Description}}
//
{{comment "" .}}
{{- end}}
type {{.GoName}} struct {
	*dpf.Operator
	Inputs  *Inputs{{.GoName}}
	Outputs *Outputs{{.GoName}}
}

var {{.VarName}} = dpf.NewSpecification(
	{{quote .Op.Description}},
	{{template "pins" .Op.Inputs}},
	{{template "pins" .Op.Outputs}},
)

// {{.GoName}}Specification returns the pin specification of {{.Op.InternalName}}.
func {{.GoName}}Specification() *dpf.Specification { return {{.VarName}} }

// New{{.GoName}} creates a {{.Op.InternalName}} operator in the engine behind ch.
func New{{.GoName}}(ctx context.Context, ch dpf.Channel, opts ...dpf.OperatorOption) (*{{.GoName}}, error) {
	op, err := dpf.NewOperator(ctx, ch, {{quote .Op.InternalName}}, {{.VarName}}, opts...)
	if err != nil {
		return nil, err
	}
	return &{{.GoName}}{
		Operator: op,
		Inputs:   newInputs{{.GoName}}(op),
		Outputs:  newOutputs{{.GoName}}(op),
	}, nil
}

// {{.GoName}}DefaultConfig asks the engine for the default configuration of {{.Op.InternalName}}.
func {{.GoName}}DefaultConfig(ctx context.Context, ch dpf.Channel) (*dpf.Config, error) {
	return dpf.DefaultConfig(ctx, ch, {{quote .Op.InternalName}})
}

// Inputs{{.GoName}} holds the input pins of {{.Op.InternalName}}.
type Inputs{{.GoName}} struct {
	*dpf.Inputs
{{- range .Inputs}}
{{inputDoc .}}
	{{.Field}} *dpf.Input
{{- end}}
}

func newInputs{{.GoName}}(op *dpf.Operator) *Inputs{{.GoName}} {
	in := &Inputs{{.GoName}}{
{{- range .Inputs}}
		{{.Field}}: {{if ge .Ellipsis 0}}dpf.NewEllipsisInput(op, {{.Index}}, {{.Ellipsis}}){{else}}dpf.NewInput(op, {{.Index}}){{end}},
{{- end}}
	}
	in.Inputs = dpf.NewInputs(op{{range .Inputs}}, in.{{.Field}}{{end}})
	return in
}

// Outputs{{.GoName}} holds the output pins of {{.Op.InternalName}}.
type Outputs{{.GoName}} struct {
	*dpf.Outputs
{{- range .Outputs}}
{{outputDoc .}}
	{{.Field}} *dpf.Output[{{.GoType}}]
{{- end}}
}

func newOutputs{{.GoName}}(op *dpf.Operator) *Outputs{{.GoName}} {
	out := &Outputs{{.GoName}}{
{{- range .Outputs}}
		{{.Field}}: dpf.NewOutput[{{.GoType}}](op, {{.Index}}, {{.Constant}}),
{{- end}}
	}
	out.Outputs = dpf.NewOutputs(op{{range .Outputs}}, out.{{.Field}}{{end}})
	return out
}

{{- define "pins"}}
{{- if .}}map[int]dpf.PinSpecification{
{{- range .}}
		{{.Index}}: {
			Name:      {{quote .Name}},
			TypeNames: {{typeList .Types}},
{{- if .Optional}}
			Optional:  true,
{{- end}}
{{- if .Document}}
			Document:  {{quote .Document}},
{{- end}}
{{- if .Ellipsis}}
			Ellipsis:  true,
{{- end}}
		},
{{- end}}
	}
{{- else}}nil{{end}}
{{- end}}
`))

var categoryTemplate = template.Must(template.New("category").Funcs(funcs).Parse(`// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

{{.Header}}

// Package {{.Package}} holds the bindings of the {{.Category}} operators.
package {{.Package}}

import "{{.Import}}"

// Specifications returns the pin specifications of the {{.Category}}
// operators keyed by engine name.
func Specifications() map[string]*dpf.Specification {
	return map[string]*dpf.Specification{
{{- range .Ops}}
		{{quote .InternalName}}: {{.VarName}},
{{- end}}
	}
}

// ScriptingNames maps the engine names of the {{.Category}} operators to
// the names the bindings are generated from.
func ScriptingNames() map[string]string {
	return map[string]string{
{{- range .Ops}}
		{{quote .InternalName}}: {{quote .Name}},
{{- end}}
	}
}
`))
