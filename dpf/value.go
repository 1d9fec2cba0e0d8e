// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
)

// ValueKind tells how a PinValue payload is stored.
type ValueKind string

const (
	KindScalar      ValueKind = "scalar"
	KindEntity      ValueKind = "entity"
	KindDataSources ValueKind = "data_sources"
	KindOutput      ValueKind = "output"
	KindNone        ValueKind = "none"
)

// PinValue is the wire form of a value connected to or read from a pin.
// Only the columns matching Kind and TypeName are meaningful.
type PinValue struct {
	Kind     ValueKind `arrow:"kind"`
	TypeName string    `arrow:"type_name"`
	Bool     bool      `arrow:"bool"`
	Int      int32     `arrow:"int"`
	Double   float64   `arrow:"double"`
	Text     string    `arrow:"text"`
	Ints     []int32   `arrow:"ints"`
	Doubles  []float64 `arrow:"doubles"`
	// Ref is the entity id, or the upstream operator id for KindOutput.
	Ref string `arrow:"ref"`
	// Extra is the DataSources key, or the upstream pin for KindOutput.
	Extra string `arrow:"extra"`
	Pin   int32  `arrow:"pin"`
}

var pinValueSchema = arrow.NewSchema([]arrow.Field{
	{Name: "kind", Type: arrow.BinaryTypes.String},
	{Name: "type_name", Type: arrow.BinaryTypes.String},
	{Name: "bool", Type: arrow.FixedWidthTypes.Boolean},
	{Name: "int", Type: arrow.PrimitiveTypes.Int32},
	{Name: "double", Type: arrow.PrimitiveTypes.Float64},
	{Name: "text", Type: arrow.BinaryTypes.String},
	{Name: "ints", Type: arrow.ListOf(arrow.PrimitiveTypes.Int32)},
	{Name: "doubles", Type: arrow.ListOf(arrow.PrimitiveTypes.Float64)},
	{Name: "ref", Type: arrow.BinaryTypes.String},
	{Name: "extra", Type: arrow.BinaryTypes.String},
	{Name: "pin", Type: arrow.PrimitiveTypes.Int32},
}, nil)

// ArrowSchema implements WireRecord.
func (PinValue) ArrowSchema() *arrow.Schema { return pinValueSchema }

// ValueOf encodes a Go value for the wire. Operators and output references
// become KindOutput values pointing at the upstream operator.
func ValueOf(v any) (PinValue, error) {
	switch x := v.(type) {
	case PinValue:
		return x, nil
	case OutputRef:
		if x.Operator == nil {
			return PinValue{}, fmt.Errorf("%w: output reference without operator", ErrUnsupportedValue)
		}
		return PinValue{Kind: KindOutput, Ref: x.Operator.ID(), Pin: int32(x.Pin)}, nil
	case DataSources:
		return PinValue{Kind: KindDataSources, TypeName: TypeDataSources, Text: x.ResultPath, Extra: x.Key}, nil
	case *DataSources:
		return ValueOf(*x)
	case bool:
		return PinValue{Kind: KindScalar, TypeName: TypeBool, Bool: x}, nil
	case int:
		n, err := toInt32(x)
		if err != nil {
			return PinValue{}, err
		}
		return PinValue{Kind: KindScalar, TypeName: TypeInt32, Int: n}, nil
	case int32:
		return PinValue{Kind: KindScalar, TypeName: TypeInt32, Int: x}, nil
	case float64:
		return PinValue{Kind: KindScalar, TypeName: TypeDouble, Double: x}, nil
	case string:
		return PinValue{Kind: KindScalar, TypeName: TypeString, Text: x}, nil
	case []int32:
		return PinValue{Kind: KindScalar, TypeName: TypeVectorInt32, Ints: x}, nil
	case []int:
		ints := make([]int32, len(x))
		for i, n := range x {
			v, err := toInt32(n)
			if err != nil {
				return PinValue{}, err
			}
			ints[i] = v
		}
		return PinValue{Kind: KindScalar, TypeName: TypeVectorInt32, Ints: ints}, nil
	case []float64:
		return PinValue{Kind: KindScalar, TypeName: TypeVectorDouble, Doubles: x}, nil
	case Handle:
		e := x.Handle()
		return PinValue{Kind: KindEntity, TypeName: e.Type, Ref: e.ID}, nil
	default:
		return PinValue{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func toInt32(n int) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d overflows int32", ErrUnsupportedValue, n)
	}
	return int32(n), nil
}

// Interface decodes the value into its Go form: a scalar, DataSources, or
// a typed handle such as Field. KindOutput values decode to nil since the
// upstream operator is not known locally.
func (v PinValue) Interface() any {
	switch v.Kind {
	case KindEntity:
		return TypedHandle(Entity{Type: v.TypeName, ID: v.Ref})
	case KindDataSources:
		return DataSources{ResultPath: v.Text, Key: v.Extra}
	case KindScalar:
		switch v.TypeName {
		case TypeBool:
			return v.Bool
		case TypeInt32:
			return v.Int
		case TypeDouble:
			return v.Double
		case TypeString:
			return v.Text
		case TypeVectorInt32:
			return v.Ints
		case TypeVectorDouble:
			return v.Doubles
		}
	}
	return nil
}

// Promote converts an int32 scalar into a double one.
func (v PinValue) Promote(typeName string) PinValue {
	if v.Kind == KindScalar && v.TypeName == TypeInt32 && typeName == TypeDouble {
		return PinValue{Kind: KindScalar, TypeName: TypeDouble, Double: float64(v.Int)}
	}
	return v
}

func (v PinValue) String() string {
	switch v.Kind {
	case KindOutput:
		return fmt.Sprintf("output(%s:%d)", v.Ref, v.Pin)
	case KindNone, "":
		return "none"
	default:
		return fmt.Sprintf("%s(%v)", v.TypeName, v.Interface())
	}
}
