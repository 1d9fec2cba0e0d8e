// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog loads the HCL operator catalog that drives binding
// generation and the conformance engine.
package catalog

import (
	"cmp"
	"fmt"
	"os"
	"regexp"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// Pin is one input or output pin of a catalog operator.
type Pin struct {
	Index    int
	Name     string
	Types    []string
	Optional bool
	Document string
	// EllipsisIndex numbers the pins of a repeated group from 0. It is -1
	// for ordinary pins.
	EllipsisIndex int
}

// Ellipsis reports whether the pin belongs to a repeated group.
func (p Pin) Ellipsis() bool { return p.EllipsisIndex >= 0 }

// ConfigOption is one default configuration entry of an operator.
type ConfigOption struct {
	Name     string
	Value    string
	Document string
}

// Operator is one operator block.
type Operator struct {
	// Name is the scripting name, used for Go identifiers and file names.
	Name string
	// InternalName is the engine's name for the operator. It defaults to
	// Name.
	InternalName string
	Category     string
	Plugin       string
	Description  string
	Inputs       []Pin
	Outputs      []Pin
	Config       []ConfigOption
}

// Specification builds the pin specification of op.
func (op *Operator) Specification() *dpf.Specification {
	return dpf.NewSpecification(op.Description, pinMap(op.Inputs), pinMap(op.Outputs))
}

// DefaultConfig returns the catalog's default configuration, or nil when
// the operator declares none.
func (op *Operator) DefaultConfig() *dpf.Config {
	if len(op.Config) == 0 {
		return nil
	}
	opts := make([]dpf.ConfigOption, len(op.Config))
	for i, c := range op.Config {
		opts[i] = dpf.ConfigOption{Name: c.Name, Value: c.Value, Document: c.Document}
	}
	return dpf.NewConfig(opts...)
}

func pinMap(pins []Pin) map[int]dpf.PinSpecification {
	m := make(map[int]dpf.PinSpecification, len(pins))
	for _, p := range pins {
		m[p.Index] = dpf.PinSpecification{
			Name:      p.Name,
			TypeNames: slices.Clone(p.Types),
			Optional:  p.Optional,
			Document:  p.Document,
			Ellipsis:  p.Ellipsis(),
		}
	}
	return m
}

// Catalog is the decoded operator catalog, ordered by category then name.
type Catalog struct {
	Operators []*Operator
}

// Categories returns the distinct categories in order.
func (c *Catalog) Categories() []string {
	var out []string
	for _, op := range c.Operators {
		if !slices.Contains(out, op.Category) {
			out = append(out, op.Category)
		}
	}
	return out
}

// InCategory returns the operators of one category.
func (c *Catalog) InCategory(category string) []*Operator {
	var out []*Operator
	for _, op := range c.Operators {
		if op.Category == category {
			out = append(out, op)
		}
	}
	return out
}

// Lookup finds an operator by scripting or internal name.
func (c *Catalog) Lookup(name string) (*Operator, bool) {
	for _, op := range c.Operators {
		if op.Name == name || op.InternalName == name {
			return op, true
		}
	}
	return nil, false
}

// --- HCL schema ---

type fileSchema struct {
	Locals []*localsBlock `hcl:"locals,block"`
	Remain hcl.Body       `hcl:",remain"`
}

type localsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type operatorsSchema struct {
	Operators []*operatorBlock `hcl:"operator,block"`
}

type operatorBlock struct {
	Name         string         `hcl:"name,label"`
	InternalName string         `hcl:"internal_name,optional"`
	Category     string         `hcl:"category"`
	Plugin       string         `hcl:"plugin,optional"`
	Description  string         `hcl:"description"`
	Inputs       []*pinBlock    `hcl:"input,block"`
	Outputs      []*pinBlock    `hcl:"output,block"`
	Config       []*configBlock `hcl:"config,block"`
}

type pinBlock struct {
	Name     string   `hcl:"name,label"`
	Pin      int      `hcl:"pin"`
	Types    []string `hcl:"types"`
	Optional bool     `hcl:"optional,optional"`
	Document string   `hcl:"document,optional"`
	Ellipsis bool     `hcl:"ellipsis,optional"`
}

type configBlock struct {
	Name     string    `hcl:"name,label"`
	Default  cty.Value `hcl:"default"`
	Document string    `hcl:"document,optional"`
}

var identRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Load reads and decodes the catalog file at path.
func Load(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, diags := Parse(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load catalog %s: %s", path, diags.Error())
	}
	return c, nil
}

// Parse decodes catalog source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Catalog, hcl.Diagnostics) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var top fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &top); diags.HasErrors() {
		return nil, diags
	}
	evalCtx, diags := localsContext(top.Locals)
	if diags.HasErrors() {
		return nil, diags
	}

	var body operatorsSchema
	if diags := gohcl.DecodeBody(top.Remain, evalCtx, &body); diags.HasErrors() {
		return nil, diags
	}

	ranges := operatorRanges(file.Body)
	c := &Catalog{}
	seen := make(map[string]bool)
	for i, blk := range body.Operators {
		var subject *hcl.Range
		if i < len(ranges) {
			subject = &ranges[i]
		}
		op, opDiags := buildOperator(blk, subject)
		diags = append(diags, opDiags...)
		if opDiags.HasErrors() {
			continue
		}
		names := []string{op.Name}
		if op.InternalName != op.Name {
			names = append(names, op.InternalName)
		}
		for _, n := range names {
			if seen[n] {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate operator",
					Detail:   fmt.Sprintf("An operator named %q is already declared.", n),
					Subject:  subject,
				})
			}
			seen[n] = true
		}
		c.Operators = append(c.Operators, op)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	slices.SortStableFunc(c.Operators, func(a, b *Operator) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name))
	})
	return c, diags
}

// localsContext evaluates every locals block into the "local" variable.
func localsContext(blocks []*localsBlock) (*hcl.EvalContext, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	vals := make(map[string]cty.Value)
	for _, blk := range blocks {
		attrs, d := blk.Body.JustAttributes()
		diags = append(diags, d...)
		for name, attr := range attrs {
			if _, dup := vals[name]; dup {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate local value",
					Detail:   fmt.Sprintf("A local value named %q was already defined.", name),
					Subject:  &attr.NameRange,
				})
				continue
			}
			v, d := attr.Expr.Value(nil)
			diags = append(diags, d...)
			vals[name] = v
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": cty.ObjectVal(vals)},
	}, diags
}

// operatorRanges returns the definition range of each operator block in
// source order.
func operatorRanges(body hcl.Body) []hcl.Range {
	syn, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	var out []hcl.Range
	for _, b := range syn.Blocks {
		if b.Type == "operator" {
			out = append(out, b.DefRange())
		}
	}
	return out
}

func buildOperator(blk *operatorBlock, subject *hcl.Range) (*Operator, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	errorf := func(summary, format string, args ...any) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  summary,
			Detail:   fmt.Sprintf(format, args...),
			Subject:  subject,
		})
	}

	if !identRe.MatchString(blk.Name) {
		errorf("Invalid operator name", "Operator name %q must be a lower-case identifier.", blk.Name)
	}
	if !identRe.MatchString(blk.Category) {
		errorf("Invalid category", "Category %q of operator %q must be a lower-case identifier.", blk.Category, blk.Name)
	}

	op := &Operator{
		Name:         blk.Name,
		InternalName: cmp.Or(blk.InternalName, blk.Name),
		Category:     blk.Category,
		Plugin:       blk.Plugin,
		Description:  blk.Description,
	}
	op.Inputs = buildPins(blk.Name, "input", blk.Inputs, errorf)
	op.Outputs = buildPins(blk.Name, "output", blk.Outputs, errorf)

	for _, c := range blk.Config {
		s, err := convert.Convert(c.Default, cty.String)
		if err != nil || s.IsNull() {
			errorf("Invalid config default", "Config option %q of operator %q must have a string, number or bool default.", c.Name, blk.Name)
			continue
		}
		op.Config = append(op.Config, ConfigOption{Name: c.Name, Value: s.AsString(), Document: c.Document})
	}
	return op, diags
}

func buildPins(opName, kind string, blocks []*pinBlock, errorf func(string, string, ...any)) []Pin {
	var pins []Pin
	seen := make(map[int]bool)
	ellipsis := make(map[string]int)
	for _, b := range blocks {
		if seen[b.Pin] {
			errorf("Duplicate pin", "Operator %q declares %s pin %d twice.", opName, kind, b.Pin)
			continue
		}
		seen[b.Pin] = true
		if b.Pin < 0 {
			errorf("Invalid pin", "Operator %q %s pin %q has negative index %d.", opName, kind, b.Name, b.Pin)
			continue
		}
		if len(b.Types) == 0 {
			errorf("Missing pin types", "Operator %q %s pin %d accepts no type.", opName, kind, b.Pin)
			continue
		}
		p := Pin{
			Index:         b.Pin,
			Name:          b.Name,
			Types:         b.Types,
			Optional:      b.Optional,
			Document:      b.Document,
			EllipsisIndex: -1,
		}
		if b.Ellipsis {
			p.EllipsisIndex = ellipsis[b.Name]
			ellipsis[b.Name]++
		}
		pins = append(pins, p)
	}
	slices.SortFunc(pins, func(a, b Pin) int { return cmp.Compare(a.Index, b.Index) })
	return pins
}
