// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import "fmt"

// Engine type names used in pin specifications.
const (
	TypeBool          = "bool"
	TypeInt32         = "int32"
	TypeDouble        = "double"
	TypeString        = "string"
	TypeVectorInt32   = "vector<int32>"
	TypeVectorDouble  = "vector<double>"
	TypeDataSources   = "data_sources"
	TypeField         = "field"
	TypeFieldsCont    = "fields_container"
	TypeMeshedRegion  = "abstract_meshed_region"
	TypeMeshesCont    = "meshes_container"
	TypeScoping       = "scoping"
	TypeScopingsCont  = "scopings_container"
	TypeStreamsCont   = "streams_container"
	TypeResultInfo    = "result_info"
	TypeTimeFreq      = "time_freq_support"
	TypeMaterials     = "materials"
	TypeCyclicSupport = "cyclic_support"
)

// IsScalarType reports whether t is passed by value rather than as an
// engine-side entity handle.
func IsScalarType(t string) bool {
	switch t {
	case TypeBool, TypeInt32, TypeDouble, TypeString, TypeVectorInt32, TypeVectorDouble, TypeDataSources:
		return true
	}
	return false
}

// Entity is an opaque handle to an object living inside the engine.
type Entity struct {
	Type string
	ID   string
}

// TypeName returns the engine type name of the entity.
func (e Entity) TypeName() string { return e.Type }

// Handle returns e itself.
func (e Entity) Handle() Entity { return e }

func (e Entity) String() string { return fmt.Sprintf("%s(%s)", e.Type, e.ID) }

// Handle is implemented by every engine-side object reference.
type Handle interface {
	Handle() Entity
}

// Field is a set of values over mesh entities.
type Field struct{ Entity }

// FieldsContainer is a labelled collection of fields.
type FieldsContainer struct{ Entity }

// MeshedRegion is a mesh.
type MeshedRegion struct{ Entity }

// MeshesContainer is a labelled collection of meshes.
type MeshesContainer struct{ Entity }

// Scoping is a set of entity ids on a location.
type Scoping struct{ Entity }

// ScopingsContainer is a labelled collection of scopings.
type ScopingsContainer struct{ Entity }

// StreamsContainer holds opened result files.
type StreamsContainer struct{ Entity }

// ResultInfo describes the results available in a result file.
type ResultInfo struct{ Entity }

// TimeFreqSupport holds the time or frequency sets of a result file.
type TimeFreqSupport struct{ Entity }

// Materials holds material properties read from a result file.
type Materials struct{ Entity }

// CyclicSupport holds what cyclic expansions need.
type CyclicSupport struct{ Entity }

// handleConstructors builds the typed handle for a known type name.
var handleConstructors = map[string]func(Entity) any{
	TypeField:         func(e Entity) any { return Field{e} },
	TypeFieldsCont:    func(e Entity) any { return FieldsContainer{e} },
	TypeMeshedRegion:  func(e Entity) any { return MeshedRegion{e} },
	TypeMeshesCont:    func(e Entity) any { return MeshesContainer{e} },
	TypeScoping:       func(e Entity) any { return Scoping{e} },
	TypeScopingsCont:  func(e Entity) any { return ScopingsContainer{e} },
	TypeStreamsCont:   func(e Entity) any { return StreamsContainer{e} },
	TypeResultInfo:    func(e Entity) any { return ResultInfo{e} },
	TypeTimeFreq:      func(e Entity) any { return TimeFreqSupport{e} },
	TypeMaterials:     func(e Entity) any { return Materials{e} },
	TypeCyclicSupport: func(e Entity) any { return CyclicSupport{e} },
}

// TypedHandle wraps e in its named handle type, or returns e unchanged for
// type names without one.
func TypedHandle(e Entity) any {
	if ctor, ok := handleConstructors[e.Type]; ok {
		return ctor(e)
	}
	return e
}

// DataSources points the engine at result files. It is sent by value.
type DataSources struct {
	ResultPath string
	// Key is the result file type, e.g. "rst". Empty lets the engine guess
	// from the extension.
	Key string
}

// NewDataSources returns DataSources for one result file.
func NewDataSources(path string) DataSources {
	return DataSources{ResultPath: path}
}

// OutputRef names one output pin of another operator. Connecting it to an
// input makes the engine evaluate the upstream operator on demand.
type OutputRef struct {
	Operator *Operator
	Pin      int
}

// TypeNames returns the type names the referenced output may produce.
func (r OutputRef) TypeNames() []string {
	if r.Operator == nil {
		return nil
	}
	p, ok := r.Operator.spec.OutputPin(r.Pin)
	if !ok {
		return nil
	}
	return p.TypeNames
}

// TypeNameOf returns the engine type name of a Go value.
func TypeNameOf(v any) (string, error) {
	switch x := v.(type) {
	case bool:
		return TypeBool, nil
	case int, int32:
		return TypeInt32, nil
	case float64:
		return TypeDouble, nil
	case string:
		return TypeString, nil
	case []int32, []int:
		return TypeVectorInt32, nil
	case []float64:
		return TypeVectorDouble, nil
	case DataSources, *DataSources:
		return TypeDataSources, nil
	case Handle:
		return x.Handle().Type, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}
