// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"os"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheGoldfish01/dpf-go/internal/catalog"
)

func unitConvert() *catalog.Operator {
	return &catalog.Operator{
		Name:         "unit_convert",
		InternalName: "unit_convert",
		Category:     "math",
		Plugin:       "Ans.Dpf.Native",
		Description:  "Convert an input field/fields container or mesh of a given unit to another unit.",
		Inputs: []catalog.Pin{
			{Index: 0, Name: "entity_to_convert", Types: []string{"field", "abstract_meshed_region"}, EllipsisIndex: -1},
			{Index: 1, Name: "unit_name", Types: []string{"string"}, Document: "unit as a string", EllipsisIndex: -1},
		},
		Outputs: []catalog.Pin{
			{Index: 0, Name: "converted_entity", Types: []string{"field", "abstract_meshed_region"}, EllipsisIndex: -1},
		},
	}
}

func TestOperator(t *testing.T) {
	t.Parallel()
	g := NewGenerator("catalog.hcl")

	// --- Act ---
	src, err := g.Operator(unitConvert())

	// --- Assert ---
	require.NoError(t, err)
	out := string(src)
	for _, want := range []string{
		"// Code generated by dpfgen from catalog.hcl. DO NOT EDIT.",
		"package math",
		`"github.com/TheGoldfish01/dpf-go/dpf"`,
		"// UnitConvert wraps the unit_convert operator of the Ans.Dpf.Native plugin.",
		"type UnitConvert struct {",
		"var unitConvertSpec = dpf.NewSpecification(",
		"TypeNames: []string{dpf.TypeField, dpf.TypeMeshedRegion},",
		`dpf.NewOperator(ctx, ch, "unit_convert", unitConvertSpec, opts...)`,
		"EntityToConvert: dpf.NewInput(op, 0),",
		"// UnitName is input pin 1 (string). Unit as a string",
		"ConvertedEntityAsField: ",
		"*dpf.Output[dpf.MeshedRegion]",
		"dpf.NewOutput[dpf.Field](op, 0, dpf.TypeField)",
		"in.Inputs = dpf.NewInputs(op, in.EntityToConvert, in.UnitName)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestOperator_Ellipsis(t *testing.T) {
	t.Parallel()
	op := &catalog.Operator{
		Name:         "vtk_export",
		InternalName: "vtk_export",
		Category:     "serialization",
		Description:  "Write the input field and fields container into a .vtk file.",
		Inputs: []catalog.Pin{
			{Index: 2, Name: "fields", Types: []string{"field"}, EllipsisIndex: 0},
			{Index: 3, Name: "fields", Types: []string{"field"}, EllipsisIndex: 1},
		},
	}

	src, err := NewGenerator("catalog.hcl").Operator(op)

	require.NoError(t, err)
	out := string(src)
	assert.Contains(t, out, "Fields1: dpf.NewEllipsisInput(op, 2, 0),")
	assert.Contains(t, out, "Fields2: dpf.NewEllipsisInput(op, 3, 1),")
	assert.Contains(t, out, "Ellipsis:  true,")
	assert.Contains(t, out, "out.Outputs = dpf.NewOutputs(op)")
}

func TestOperator_NameCollision(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		op   *catalog.Operator
	}{
		{
			name: "reserved input",
			op: &catalog.Operator{Name: "a", InternalName: "a", Category: "x", Inputs: []catalog.Pin{
				{Index: 0, Name: "connect", Types: []string{"bool"}, EllipsisIndex: -1},
			}},
		},
		{
			name: "same Go name",
			op: &catalog.Operator{Name: "a", InternalName: "a", Category: "x", Outputs: []catalog.Pin{
				{Index: 0, Name: "mesh_a", Types: []string{"bool"}, EllipsisIndex: -1},
				{Index: 1, Name: "meshA", Types: []string{"bool"}, EllipsisIndex: -1},
			}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewGenerator("c.hcl").Operator(tc.op)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "already taken")
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	c, err := catalog.Load(filepath.Join("..", "..", "operators", "catalog.hcl"))
	require.NoError(t, err)

	// --- Act ---
	files, err := NewGenerator("catalog.hcl").Generate(c)

	// --- Assert ---
	require.NoError(t, err)
	assert.Len(t, files, len(c.Operators)+len(c.Categories()))
	keys := slices.Sorted(maps.Keys(files))
	assert.Contains(t, keys, filepath.Join("math", "unit_convert.go"))
	assert.Contains(t, keys, filepath.Join("metadata", "specifications.go"))

	specs := string(files[filepath.Join("metadata", "specifications.go")])
	assert.Contains(t, specs, "// Package metadata holds the bindings of the metadata operators.")
	assert.Regexp(t, `"stream_provider": +streamsProviderSpec,`, specs)
	assert.Regexp(t, `"stream_provider": +"streams_provider",`, specs)
}

func TestGenerate_MatchesCommittedBindings(t *testing.T) {
	t.Parallel()
	c, err := catalog.Load(filepath.Join("..", "..", "operators", "catalog.hcl"))
	require.NoError(t, err)
	files, err := NewGenerator("catalog.hcl").Generate(c)
	require.NoError(t, err)

	const header = "// Copyright 2025-2026 The dpf-go Authors\n// SPDX-License-Identifier: Apache-2.0\n"
	for name, src := range files {
		assert.True(t, strings.HasPrefix(string(src), header), "%s license header", name)
		committed, err := os.ReadFile(filepath.Join("..", "..", "operators", name))
		if !assert.NoError(t, err, "%s is not committed; run go generate ./operators", name) {
			continue
		}
		assert.True(t, strings.HasPrefix(string(committed), header), "committed %s license header", name)
	}
}

func TestWriteFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	err := WriteFiles(dir, map[string][]byte{
		filepath.Join("math", "a.go"): []byte("package math\n"),
		"b.go":                        []byte("package x\n"),
	})

	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "math", "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package math\n", string(got))
	assert.FileExists(t, filepath.Join(dir, "b.go"))
}

func TestComment(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", comment("\t", "  "))
	assert.Equal(t, "\t// one two", comment("\t", "one\n  two"))

	long := comment("", "word word word word word word word word word word word word word word word word word word word word")
	for _, line := range strings.Split(long, "\n") {
		assert.LessOrEqual(t, len(line), commentWidth+3)
	}
	assert.Greater(t, len(strings.Split(long, "\n")), 1)
}
