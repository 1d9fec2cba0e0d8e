// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		in       any
		kind     ValueKind
		typeName string
		back     any
	}{
		{"bool", true, KindScalar, TypeBool, true},
		{"int", 3, KindScalar, TypeInt32, int32(3)},
		{"int32", int32(-4), KindScalar, TypeInt32, int32(-4)},
		{"double", 2.5, KindScalar, TypeDouble, 2.5},
		{"string", "degree", KindScalar, TypeString, "degree"},
		{"ints", []int{1, 2}, KindScalar, TypeVectorInt32, []int32{1, 2}},
		{"doubles", []float64{0.5}, KindScalar, TypeVectorDouble, []float64{0.5}},
		{"data sources", NewDataSources("model.rst"), KindDataSources, TypeDataSources, DataSources{ResultPath: "model.rst"}},
		{"field", Field{Entity{Type: TypeField, ID: "f1"}}, KindEntity, TypeField, Field{Entity{Type: TypeField, ID: "f1"}}},
		{"opaque entity", Entity{Type: "N14dataProcessing21CMeshSelectionManagerE", ID: "m"}, KindEntity,
			"N14dataProcessing21CMeshSelectionManagerE", Entity{Type: "N14dataProcessing21CMeshSelectionManagerE", ID: "m"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pv, err := ValueOf(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, pv.Kind)
			assert.Equal(t, tc.typeName, pv.TypeName)
			assert.Equal(t, tc.back, pv.Interface())

			name, err := TypeNameOf(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.typeName, name)
		})
	}
}

func TestValueOf_Unsupported(t *testing.T) {
	t.Parallel()
	_, err := ValueOf(struct{}{})
	assert.True(t, errors.Is(err, ErrUnsupportedValue))

	_, err = ValueOf(OutputRef{})
	assert.True(t, errors.Is(err, ErrUnsupportedValue))

	_, err = TypeNameOf(uint8(1))
	assert.True(t, errors.Is(err, ErrUnsupportedValue))

	_, err = ValueOf(1 << 32)
	require.ErrorIs(t, err, ErrUnsupportedValue)
	assert.Contains(t, err.Error(), "4294967296 overflows int32")

	_, err = ValueOf([]int{1, math.MinInt32 - 1})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	pv, err := ValueOf(math.MaxInt32)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), pv.Int)
}

func TestPinValue_Promote(t *testing.T) {
	t.Parallel()
	pv, err := ValueOf(7)
	require.NoError(t, err)

	promoted := pv.Promote(TypeDouble)
	assert.Equal(t, TypeDouble, promoted.TypeName)
	assert.Equal(t, 7.0, promoted.Interface())

	assert.Equal(t, pv, pv.Promote(TypeInt32))
	s, _ := ValueOf("x")
	assert.Equal(t, s, s.Promote(TypeDouble))
}

func TestTypedHandle(t *testing.T) {
	t.Parallel()
	assert.IsType(t, Scoping{}, TypedHandle(Entity{Type: TypeScoping, ID: "s"}))
	assert.IsType(t, CyclicSupport{}, TypedHandle(Entity{Type: TypeCyclicSupport, ID: "c"}))
	assert.IsType(t, Entity{}, TypedHandle(Entity{Type: "unknown", ID: "u"}))
	assert.Equal(t, "field(f1)", Field{Entity{Type: TypeField, ID: "f1"}}.String())
}
