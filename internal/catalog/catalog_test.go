// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

const sample = `
locals {
  mesh_doc = "the mesh"
}

operator "vtk_export" {
  category    = "serialization"
  description = "writes fields"

  input "file_path" {
    pin   = 0
    types = ["string"]
  }
  input "fields" {
    pin      = 3
    types    = ["fields_container", "field"]
    ellipsis = true
  }
  input "fields" {
    pin      = 2
    types    = ["fields_container", "field"]
    ellipsis = true
  }
  input "mesh" {
    pin      = 1
    types    = ["abstract_meshed_region"]
    optional = true
    document = local.mesh_doc
  }
}

operator "nodal_from_mesh" {
  internal_name = "GetNodeScopingFromMesh"
  category      = "scoping"
  plugin        = "Ans.Dpf.Native"
  description   = "Get the nodes ids scoping of an input mesh."

  input "mesh" {
    pin   = 0
    types = ["abstract_meshed_region"]
  }
  output "mesh_scoping" {
    pin   = 0
    types = ["scoping"]
  }

  config "mutex" {
    default = false
  }
  config "num_threads" {
    default  = 4
    document = "threads"
  }
}

operator "elemental_to_nodal_fc" {
  category    = "averaging"
  description = "to nodal"

  input "fields_container" {
    pin   = 0
    types = ["fields_container"]
  }
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	// --- Act ---
	c, diags := Parse([]byte(sample), "sample.hcl")

	// --- Assert ---
	require.False(t, diags.HasErrors(), diags.Error())
	require.Len(t, c.Operators, 3)
	assert.Equal(t, []string{"averaging", "scoping", "serialization"}, c.Categories())

	vtk, ok := c.Lookup("vtk_export")
	require.True(t, ok)
	assert.Equal(t, "vtk_export", vtk.InternalName)
	want := []Pin{
		{Index: 0, Name: "file_path", Types: []string{"string"}, EllipsisIndex: -1},
		{Index: 1, Name: "mesh", Types: []string{"abstract_meshed_region"}, Optional: true, Document: "the mesh", EllipsisIndex: -1},
		{Index: 2, Name: "fields", Types: []string{"fields_container", "field"}, EllipsisIndex: 1},
		{Index: 3, Name: "fields", Types: []string{"fields_container", "field"}, EllipsisIndex: 0},
	}
	if diff := cmp.Diff(want, vtk.Inputs); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, vtk.Outputs)
	assert.Nil(t, vtk.DefaultConfig())

	nodal, ok := c.Lookup("GetNodeScopingFromMesh")
	require.True(t, ok)
	assert.Equal(t, "nodal_from_mesh", nodal.Name)
	assert.Equal(t, "Ans.Dpf.Native", nodal.Plugin)
	assert.Equal(t, []ConfigOption{
		{Name: "mutex", Value: "false"},
		{Name: "num_threads", Value: "4", Document: "threads"},
	}, nodal.Config)

	cfg := nodal.DefaultConfig()
	v, ok := cfg.Get("num_threads")
	require.True(t, ok)
	assert.Equal(t, "4", v)

	spec := nodal.Specification()
	assert.Equal(t, "Get the nodes ids scoping of an input mesh.", spec.Description())
	out, ok := spec.OutputPin(0)
	require.True(t, ok)
	assert.Equal(t, dpf.PinSpecification{Name: "mesh_scoping", TypeNames: []string{dpf.TypeScoping}}, out)

	assert.Len(t, c.InCategory("scoping"), 1)
	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestParse_Diagnostics(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		src     string
		summary string
	}{
		{
			name: "duplicate operator",
			src: `
operator "a" {
  category = "x"
  description = ""
}
operator "b" {
  internal_name = "a"
  category = "x"
  description = ""
}`,
			summary: "Duplicate operator",
		},
		{
			name: "duplicate pin",
			src: `
operator "a" {
  category = "x"
  description = ""
  output "one" {
    pin = 0
    types = ["bool"]
  }
  output "two" {
    pin = 0
    types = ["bool"]
  }
}`,
			summary: "Duplicate pin",
		},
		{
			name: "empty types",
			src: `
operator "a" {
  category = "x"
  description = ""
  input "one" {
    pin = 0
    types = []
  }
}`,
			summary: "Missing pin types",
		},
		{
			name: "bad category",
			src: `
operator "a" {
  category = "Not A Package"
  description = ""
}`,
			summary: "Invalid category",
		},
		{
			name: "bad config default",
			src: `
operator "a" {
  category = "x"
  description = ""
  config "mutex" {
    default = ["list"]
  }
}`,
			summary: "Invalid config default",
		},
		{
			name: "duplicate local",
			src: `
locals {
  a = "1"
}
locals {
  a = "2"
}`,
			summary: "Duplicate local value",
		},
		{
			name:    "syntax",
			src:     `operator "a" {`,
			summary: "Unclosed configuration block",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, diags := Parse([]byte(tc.src), "bad.hcl")
			require.True(t, diags.HasErrors())
			assert.Nil(t, c)

			var summaries []string
			for _, d := range diags {
				summaries = append(summaries, d.Summary)
			}
			assert.Contains(t, summaries, tc.summary)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Operators, 3)

	_, err = Load(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`operator "a" {}`), 0o600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.hcl")
}

func TestRepositoryCatalog(t *testing.T) {
	t.Parallel()
	c, err := Load(filepath.Join("..", "..", "operators", "catalog.hcl"))
	require.NoError(t, err)

	assert.Len(t, c.Operators, 18)
	assert.Equal(t,
		[]string{"averaging", "logic", "math", "mesh", "metadata", "scoping", "serialization"},
		c.Categories())

	cyclic, ok := c.Lookup("mapdl::rst::support_provider_cyclic")
	require.True(t, ok)
	assert.Equal(t, "cyclic_support_provider", cyclic.Name)
	pins := make([]int, len(cyclic.Inputs))
	for i, p := range cyclic.Inputs {
		pins[i] = p.Index
	}
	assert.Equal(t, []int{3, 4, 7, 15, 18}, pins)

	fields, ok := c.Lookup("identical_fields")
	require.True(t, ok)
	assert.Equal(t, "AreFieldsIdentical", fields.InternalName)
	assert.Equal(t, "Double positive small value. Smallest value which will be considered during the comparison step: all the abs(values) in field less than this value is considered as null, (default value:1.0e-14).",
		fields.Inputs[2].Document)

	fft, _ := c.Lookup("fft_multi_harmonic_minmax")
	assert.Equal(t, "field or fields container with only one field is expected", fft.Inputs[2].Document,
		"locals are resolved")
}
