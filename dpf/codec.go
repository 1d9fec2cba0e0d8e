// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// WireRecord is implemented by Go types that travel as a nested Arrow IPC
// stream. Their fields are mapped to columns with `arrow` struct tags. At the
// parameter or result level a WireRecord becomes one binary column.
type WireRecord interface {
	ArrowSchema() *arrow.Schema
}

var wireRecordType = reflect.TypeOf((*WireRecord)(nil)).Elem()

// ResultColumn is the name of the single column of every result batch.
const ResultColumn = "result"

// tagInfo holds a parsed `dpf` struct tag.
type tagInfo struct {
	Name      string
	Default   *string
	ArrowType string // "int32" or "binary"
}

func parseTag(tag string) tagInfo {
	parts := strings.Split(tag, ",")
	info := tagInfo{Name: parts[0]}
	for _, part := range parts[1:] {
		if val, ok := strings.CutPrefix(part, "default="); ok {
			info.Default = &val
		} else {
			info.ArrowType = part
		}
	}
	return info
}

func isWireRecord(t reflect.Type) bool {
	return t.Implements(wireRecordType) || reflect.PointerTo(t).Implements(wireRecordType)
}

// arrowTypeOf maps a Go type onto an Arrow type. Pointers are nullable.
func arrowTypeOf(t reflect.Type, tag tagInfo) (arrow.DataType, bool, error) {
	nullable := false
	if t.Kind() == reflect.Ptr {
		nullable = true
		t = t.Elem()
	}

	switch tag.ArrowType {
	case "int32":
		return arrow.PrimitiveTypes.Int32, nullable, nil
	case "binary":
		return arrow.BinaryTypes.Binary, nullable, nil
	}
	if isWireRecord(t) {
		return arrow.BinaryTypes.Binary, nullable, nil
	}

	switch t.Kind() {
	case reflect.String:
		return arrow.BinaryTypes.String, nullable, nil
	case reflect.Int64, reflect.Int:
		return arrow.PrimitiveTypes.Int64, nullable, nil
	case reflect.Int32:
		return arrow.PrimitiveTypes.Int32, nullable, nil
	case reflect.Float64:
		return arrow.PrimitiveTypes.Float64, nullable, nil
	case reflect.Bool:
		return arrow.FixedWidthTypes.Boolean, nullable, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return arrow.BinaryTypes.Binary, nullable, nil
		}
		elem, _, err := arrowTypeOf(t.Elem(), tagInfo{})
		if err != nil {
			return nil, false, fmt.Errorf("list element: %w", err)
		}
		return arrow.ListOf(elem), nullable, nil
	default:
		return nil, false, fmt.Errorf("unsupported Go type: %v (kind: %v)", t, t.Kind())
	}
}

// taggedFields yields the exported fields of t carrying a `dpf` tag.
func taggedFields(t reflect.Type, fn func(i int, f reflect.StructField, info tagInfo) error) error {
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("dpf")
		if tag == "" || tag == "-" {
			continue
		}
		if err := fn(i, f, parseTag(tag)); err != nil {
			return err
		}
	}
	return nil
}

// ParamsSchema builds the Arrow schema of a parameter struct.
func ParamsSchema(t reflect.Type) (*arrow.Schema, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct type, got %v", t.Kind())
	}
	var fields []arrow.Field
	err := taggedFields(t, func(_ int, f reflect.StructField, info tagInfo) error {
		dt, nullable, err := arrowTypeOf(f.Type, info)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		fields = append(fields, arrow.Field{Name: info.Name, Type: dt, Nullable: nullable})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return arrow.NewSchema(fields, nil), nil
}

// ResultSchema builds the one-column schema of a result type. A nil type is
// a void result with an empty schema.
func ResultSchema(t reflect.Type) (*arrow.Schema, error) {
	if t == nil {
		return arrow.NewSchema(nil, nil), nil
	}
	dt, nullable, err := arrowTypeOf(t, tagInfo{})
	if err != nil {
		return nil, fmt.Errorf("result type: %w", err)
	}
	return arrow.NewSchema([]arrow.Field{{Name: ResultColumn, Type: dt, Nullable: nullable}}, nil), nil
}

// EncodeParams builds a 1-row record batch from a tagged struct.
func EncodeParams(params any) (arrow.RecordBatch, error) {
	rv := reflect.ValueOf(params)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	schema, err := ParamsSchema(rv.Type())
	if err != nil {
		return nil, err
	}
	mem := memory.NewGoAllocator()
	cols := make([]arrow.Array, 0, schema.NumFields())
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()
	err = taggedFields(rv.Type(), func(i int, _ reflect.StructField, info tagInfo) error {
		idx := len(cols)
		arr, err := buildArray(mem, schema.Field(idx).Type, rv.Field(i).Interface())
		if err != nil {
			return fmt.Errorf("param %s: %w", info.Name, err)
		}
		cols = append(cols, arr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return array.NewRecordBatch(schema, cols, 1), nil
}

// DecodeParams reads row 0 of batch into the struct pointed to by target.
// Absent or null columns take the tag default, if any.
func DecodeParams(batch arrow.RecordBatch, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode params: target must be a struct pointer, got %T", target)
	}
	rv = rv.Elem()
	return taggedFields(rv.Type(), func(i int, f reflect.StructField, info tagInfo) error {
		col := columnByName(batch, info.Name)
		if col == nil || batch.NumRows() == 0 || col.IsNull(0) {
			if info.Default != nil {
				if err := setFieldFromString(rv.Field(i), f.Type, *info.Default); err != nil {
					return fmt.Errorf("default for %s: %w", info.Name, err)
				}
			}
			return nil
		}
		if err := setFieldFromArrow(rv.Field(i), f.Type, col, 0); err != nil {
			return fmt.Errorf("field %s: %w", info.Name, err)
		}
		return nil
	})
}

// EncodeResult builds a 1-row batch holding value in the result column.
func EncodeResult(schema *arrow.Schema, value any) (arrow.RecordBatch, error) {
	if schema.NumFields() == 0 {
		return array.NewRecordBatch(schema, nil, 0), nil
	}
	arr, err := buildArray(memory.NewGoAllocator(), schema.Field(0).Type, value)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	defer arr.Release()
	return array.NewRecordBatch(schema, []arrow.Array{arr}, 1), nil
}

// DecodeResult reads the result column of batch into the value target points to.
func DecodeResult(batch arrow.RecordBatch, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode result: target must be a non-nil pointer, got %T", target)
	}
	col := columnByName(batch, ResultColumn)
	if col == nil {
		return fmt.Errorf("%w: response has no %q column", ErrProtocol, ResultColumn)
	}
	if batch.NumRows() != 1 {
		return fmt.Errorf("%w: expected 1 result row, got %d", ErrProtocol, batch.NumRows())
	}
	if col.IsNull(0) {
		return nil
	}
	return setFieldFromArrow(rv.Elem(), rv.Elem().Type(), col, 0)
}

func columnByName(batch arrow.RecordBatch, name string) arrow.Array {
	for i := range batch.NumCols() {
		if batch.ColumnName(int(i)) == name {
			return batch.Column(int(i))
		}
	}
	return nil
}

// setFieldFromArrow stores element idx of col into field.
func setFieldFromArrow(field reflect.Value, fieldType reflect.Type, col arrow.Array, idx int) error {
	if fieldType.Kind() == reflect.Ptr {
		ptr := reflect.New(fieldType.Elem())
		if err := setFieldFromArrow(ptr.Elem(), fieldType.Elem(), col, idx); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	if isWireRecord(fieldType) {
		c, ok := col.(*array.Binary)
		if !ok {
			return fmt.Errorf("expected Binary array for %v, got %T", fieldType, col)
		}
		return unmarshalRecord(c.Value(idx), field)
	}

	switch c := col.(type) {
	case *array.String:
		field.SetString(c.Value(idx))
	case *array.Int64:
		field.SetInt(c.Value(idx))
	case *array.Int32:
		field.SetInt(int64(c.Value(idx)))
	case *array.Float64:
		field.SetFloat(c.Value(idx))
	case *array.Boolean:
		field.SetBool(c.Value(idx))
	case *array.Binary:
		field.SetBytes(bytes.Clone(c.Value(idx)))
	case *array.List:
		start, end := c.ValueOffsets(idx)
		values := c.ListValues()
		n := int(end - start)
		slice := reflect.MakeSlice(fieldType, n, n)
		for j := range n {
			if err := setFieldFromArrow(slice.Index(j), fieldType.Elem(), values, int(start)+j); err != nil {
				return fmt.Errorf("list element [%d]: %w", j, err)
			}
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported Arrow array type: %T", col)
	}
	return nil
}

// setFieldFromString applies a tag default.
func setFieldFromString(field reflect.Value, fieldType reflect.Type, s string) error {
	if fieldType.Kind() == reflect.Ptr {
		ptr := reflect.New(fieldType.Elem())
		if err := setFieldFromString(ptr.Elem(), fieldType.Elem(), s); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}
	switch fieldType.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int64, reflect.Int, reflect.Int32:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing int default %q: %w", s, err)
		}
		field.SetInt(v)
	case reflect.Float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parsing float default %q: %w", s, err)
		}
		field.SetFloat(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("parsing bool default %q: %w", s, err)
		}
		field.SetBool(v)
	default:
		return fmt.Errorf("default value parsing not supported for %v", fieldType.Kind())
	}
	return nil
}

// buildArray creates a 1-element array of type dt holding value.
func buildArray(mem memory.Allocator, dt arrow.DataType, value any) (arrow.Array, error) {
	b := array.NewBuilder(mem, dt)
	defer b.Release()
	if err := appendValue(b, dt, value); err != nil {
		return nil, err
	}
	return b.NewArray(), nil
}

// appendValue appends one Go value to an Arrow builder.
func appendValue(b array.Builder, dt arrow.DataType, value any) error {
	if value == nil {
		b.AppendNull()
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			b.AppendNull()
			return nil
		}
		if _, ok := value.(WireRecord); !ok {
			value = rv.Elem().Interface()
			rv = rv.Elem()
		}
	}

	switch dt.ID() {
	case arrow.STRING:
		s, ok := value.(string)
		if !ok {
			s = rv.String()
		}
		b.(*array.StringBuilder).Append(s)
	case arrow.INT64:
		v, err := toInt64(value)
		if err != nil {
			return err
		}
		b.(*array.Int64Builder).Append(v)
	case arrow.INT32:
		v, err := toInt64(value)
		if err != nil {
			return err
		}
		b.(*array.Int32Builder).Append(int32(v))
	case arrow.FLOAT64:
		v, err := toFloat64(value)
		if err != nil {
			return err
		}
		b.(*array.Float64Builder).Append(v)
	case arrow.BOOL:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("cannot convert %T to bool", value)
		}
		b.(*array.BooleanBuilder).Append(v)
	case arrow.BINARY:
		if rec, ok := value.(WireRecord); ok {
			data, err := marshalRecord(rec)
			if err != nil {
				return err
			}
			b.(*array.BinaryBuilder).Append(data)
			return nil
		}
		data, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("cannot convert %T to binary", value)
		}
		b.(*array.BinaryBuilder).Append(data)
	case arrow.LIST:
		if rv.Kind() != reflect.Slice {
			return fmt.Errorf("cannot convert %T to list", value)
		}
		lb := b.(*array.ListBuilder)
		lb.Append(true)
		elem := dt.(*arrow.ListType).Elem()
		for i := range rv.Len() {
			if err := appendValue(lb.ValueBuilder(), elem, rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("list element [%d]: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unsupported Arrow type for serialization: %v", dt)
	}
	return nil
}

// marshalRecord writes a WireRecord as a complete 1-row IPC stream.
func marshalRecord(rec WireRecord) ([]byte, error) {
	schema := rec.ArrowSchema()
	rv := reflect.ValueOf(rec)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	rt := rv.Type()
	mem := memory.NewGoAllocator()

	cols := make([]arrow.Array, 0, schema.NumFields())
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()
	for i := range schema.NumFields() {
		f := schema.Field(i)
		fi, ok := arrowTagIndex(rt, f.Name)
		if !ok {
			return nil, fmt.Errorf("%v: no field with arrow tag %q", rt, f.Name)
		}
		arr, err := buildArray(mem, f.Type, rv.Field(fi).Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		cols = append(cols, arr)
	}

	batch := array.NewRecordBatch(schema, cols, 1)
	defer batch.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(schema))
	if err := w.Write(batch); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unmarshalRecord reads IPC stream bytes into the WireRecord struct field.
func unmarshalRecord(data []byte, field reflect.Value) error {
	reader, err := ipc.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("reading record IPC: %w", err)
	}
	defer reader.Release()
	if !reader.Next() {
		return fmt.Errorf("%w: no batch in record IPC stream", ErrProtocol)
	}
	batch := reader.RecordBatch()

	rt := field.Type()
	result := reflect.New(rt).Elem()
	for i := range rt.NumField() {
		tag := rt.Field(i).Tag.Get("arrow")
		if tag == "" {
			continue
		}
		col := columnByName(batch, tag)
		if col == nil || col.IsNull(0) {
			continue
		}
		if err := setFieldFromArrow(result.Field(i), rt.Field(i).Type, col, 0); err != nil {
			return fmt.Errorf("record field %s: %w", tag, err)
		}
	}
	field.Set(result)
	return nil
}

func arrowTagIndex(rt reflect.Type, name string) (int, bool) {
	for i := range rt.NumField() {
		if rt.Field(i).Tag.Get("arrow") == name {
			return i, true
		}
	}
	return 0, false
}

func toInt64(v any) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int8:
		return int64(val), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int64", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}
}
