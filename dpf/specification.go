// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// PinSpecification describes one input or output pin of an operator.
type PinSpecification struct {
	Name      string   `json:"name"`
	TypeNames []string `json:"type_names"`
	Optional  bool     `json:"optional"`
	Document  string   `json:"document"`
	// Ellipsis marks a pin that belongs to a repeated group (fields1,
	// fields2, ...) sharing one name.
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Accepts reports whether typeName may be connected to the pin.
// An int32 value is also accepted by a pin that only takes double.
func (p PinSpecification) Accepts(typeName string) bool {
	if slices.Contains(p.TypeNames, typeName) {
		return true
	}
	return typeName == TypeInt32 && slices.Contains(p.TypeNames, TypeDouble)
}

// AcceptsAny reports whether any of typeNames is accepted.
func (p PinSpecification) AcceptsAny(typeNames []string) bool {
	for _, t := range typeNames {
		if p.Accepts(t) {
			return true
		}
	}
	return false
}

// WithOneType returns a copy of p narrowed to the single type t.
func (p PinSpecification) WithOneType(t string) (PinSpecification, error) {
	if !slices.Contains(p.TypeNames, t) {
		return PinSpecification{}, fmt.Errorf("%w: pin %q does not produce %s", ErrInvalidPinType, p.Name, t)
	}
	p.TypeNames = []string{t}
	return p, nil
}

func (p PinSpecification) clone() PinSpecification {
	p.TypeNames = slices.Clone(p.TypeNames)
	return p
}

// Specification is the immutable pin description of an operator.
type Specification struct {
	description string
	inputs      map[int]PinSpecification
	outputs     map[int]PinSpecification
}

// NewSpecification copies the given pin maps into a new Specification.
func NewSpecification(description string, inputs, outputs map[int]PinSpecification) *Specification {
	s := &Specification{
		description: description,
		inputs:      make(map[int]PinSpecification, len(inputs)),
		outputs:     make(map[int]PinSpecification, len(outputs)),
	}
	for i, p := range inputs {
		s.inputs[i] = p.clone()
	}
	for i, p := range outputs {
		s.outputs[i] = p.clone()
	}
	return s
}

// Description is the engine's description of the operator.
func (s *Specification) Description() string { return s.description }

// InputPin returns the specification of input pin i.
func (s *Specification) InputPin(i int) (PinSpecification, bool) {
	p, ok := s.inputs[i]
	return p.clone(), ok
}

// OutputPin returns the specification of output pin i.
func (s *Specification) OutputPin(i int) (PinSpecification, bool) {
	p, ok := s.outputs[i]
	return p.clone(), ok
}

// InputPins returns the declared input pin indexes in ascending order.
func (s *Specification) InputPins() []int {
	return slices.Sorted(maps.Keys(s.inputs))
}

// OutputPins returns the declared output pin indexes in ascending order.
func (s *Specification) OutputPins() []int {
	return slices.Sorted(maps.Keys(s.outputs))
}

// Inputs returns a copy of the input pin map.
func (s *Specification) Inputs() map[int]PinSpecification {
	out := make(map[int]PinSpecification, len(s.inputs))
	for i, p := range s.inputs {
		out[i] = p.clone()
	}
	return out
}

// Outputs returns a copy of the output pin map.
func (s *Specification) Outputs() map[int]PinSpecification {
	out := make(map[int]PinSpecification, len(s.outputs))
	for i, p := range s.outputs {
		out[i] = p.clone()
	}
	return out
}

// specificationJSON is the wire form of a Specification. Pin indexes become
// JSON object keys.
type specificationJSON struct {
	Description string                      `json:"description"`
	Inputs      map[string]PinSpecification `json:"map_input_pin_spec"`
	Outputs     map[string]PinSpecification `json:"map_output_pin_spec"`
}

// MarshalJSON implements json.Marshaler.
func (s *Specification) MarshalJSON() ([]byte, error) {
	doc := specificationJSON{
		Description: s.description,
		Inputs:      make(map[string]PinSpecification, len(s.inputs)),
		Outputs:     make(map[string]PinSpecification, len(s.outputs)),
	}
	for i, p := range s.inputs {
		doc.Inputs[strconv.Itoa(i)] = p
	}
	for i, p := range s.outputs {
		doc.Outputs[strconv.Itoa(i)] = p
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Specification) UnmarshalJSON(data []byte) error {
	var doc specificationJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	inputs, err := pinMapFromJSON(doc.Inputs)
	if err != nil {
		return fmt.Errorf("inputs: %w", err)
	}
	outputs, err := pinMapFromJSON(doc.Outputs)
	if err != nil {
		return fmt.Errorf("outputs: %w", err)
	}
	*s = *NewSpecification(doc.Description, inputs, outputs)
	return nil
}

func pinMapFromJSON(in map[string]PinSpecification) (map[int]PinSpecification, error) {
	out := make(map[int]PinSpecification, len(in))
	for k, p := range in {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("pin index %q: %w", k, err)
		}
		out[i] = p
	}
	return out, nil
}
