// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoName(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		in        string
		want      string
		wantLower string
	}{
		{in: "unit_convert", want: "UnitConvert", wantLower: "unitConvert"},
		{in: "elemental_fraction_fc", want: "ElementalFractionFC", wantLower: "elementalFractionFC"},
		{in: "vtk_export", want: "VTKExport", wantLower: "vtkExport"},
		{in: "rpm_scoping", want: "RPMScoping", wantLower: "rpmScoping"},
		{in: "mapdl::rst::support_provider_cyclic", want: "MapdlRstSupportProviderCyclic", wantLower: "mapdlRstSupportProviderCyclic"},
		{in: "", want: "", wantLower: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GoName(tc.in))
			assert.Equal(t, tc.wantLower, lowerName(tc.in))
		})
	}
}

func TestLookupType(t *testing.T) {
	t.Parallel()

	field := lookupType("field")
	assert.Equal(t, typeInfo{constant: "dpf.TypeField", goType: "dpf.Field", suffix: "Field"}, field)

	unknown := lookupType("N14dataProcessing21CMeshSelectionManagerE")
	assert.Equal(t, `"N14dataProcessing21CMeshSelectionManagerE"`, unknown.constant)
	assert.Equal(t, "dpf.Entity", unknown.goType)
}
