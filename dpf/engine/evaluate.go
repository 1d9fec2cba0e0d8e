// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// instance is one created operator and its connected inputs.
type instance struct {
	id     string
	reg    *Registration
	config *dpf.Config
	inputs map[int]dpf.PinValue

	// outputs of the last successful kernel run, nil when stale.
	outputs map[int]dpf.PinValue
	// generation counts kernel runs. Downstream instances compare it with
	// the generation their own outputs were computed from.
	generation uint64
	upstream   map[string]uint64
}

// invalidate drops the cached outputs so the next evaluation reruns the
// kernel.
func (inst *instance) invalidate() {
	inst.outputs = nil
	inst.upstream = nil
}

// evaluation resolves one evaluate or run request. A kernel reruns only
// when its inputs were reconnected or an upstream instance reran.
type evaluation struct {
	s        *Server
	cc       *CallContext
	visiting map[string]bool
}

func (s *Server) newEvaluation(cc *CallContext) *evaluation {
	return &evaluation{
		s:        s,
		cc:       cc,
		visiting: make(map[string]bool),
	}
}

// instanceLocked returns the live instance with id. s.mu must be held.
func (s *Server) instanceLocked(id string) (*instance, error) {
	inst, ok := s.instances[id]
	if !ok {
		return nil, &dpf.RemoteError{Type: "KeyError", Message: fmt.Sprintf("no operator instance %q", id)}
	}
	return inst, nil
}

// run evaluates inst, first evaluating every upstream operator connected to
// its inputs.
func (e *evaluation) run(ctx context.Context, inst *instance) (map[int]dpf.PinValue, error) {
	if e.visiting[inst.id] {
		return nil, &dpf.RemoteError{
			Type:    "RuntimeError",
			Message: fmt.Sprintf("operator %s (%s) is connected to its own output", inst.reg.Name, inst.id),
		}
	}
	e.visiting[inst.id] = true
	defer delete(e.visiting, inst.id)

	spec := inst.reg.Specification
	resolved := make(map[int]dpf.PinValue, len(inst.inputs))
	upstream := make(map[string]uint64)
	for _, pin := range slices.Sorted(maps.Keys(inst.inputs)) {
		v := inst.inputs[pin]
		if v.Kind == dpf.KindOutput {
			up, err := e.s.instanceLocked(v.Ref)
			if err != nil {
				return nil, err
			}
			outs, err := e.run(ctx, up)
			if err != nil {
				return nil, err
			}
			upstream[up.id] = up.generation
			uv, ok := outs[int(v.Pin)]
			if !ok {
				return nil, &dpf.RemoteError{
					Type:    "ValueError",
					Message: fmt.Sprintf("operator %s produced nothing on output pin %d", up.reg.Name, v.Pin),
				}
			}
			v = uv
		}
		if p, ok := spec.InputPin(pin); ok && !slices.Contains(p.TypeNames, v.TypeName) {
			v = v.Promote(dpf.TypeDouble)
		}
		resolved[pin] = v
	}
	if inst.outputs != nil && maps.Equal(upstream, inst.upstream) {
		return inst.outputs, nil
	}

	for _, pin := range spec.InputPins() {
		p, _ := spec.InputPin(pin)
		if _, ok := resolved[pin]; !ok && !p.Optional {
			return nil, &dpf.RemoteError{
				Type:    "ValueError",
				Message: fmt.Sprintf("operator %s: required input pin %d (%s) is not connected", inst.reg.Name, pin, p.Name),
			}
		}
	}

	call := &Call{
		CallContext: e.cc,
		Operator:    inst.reg.Name,
		OperatorID:  inst.id,
		spec:        spec,
		config:      inst.config,
		inputs:      resolved,
		outputs:     make(map[int]dpf.PinValue),
	}
	err := func() (err error) {
		defer func() {
			if rv := recover(); rv != nil {
				err = &dpf.RemoteError{Type: "RuntimeError", Message: fmt.Sprintf("operator %s: %v", inst.reg.Name, rv)}
			}
		}()
		return inst.reg.Kernel(ctx, call)
	}()
	if err != nil {
		inst.invalidate()
		return nil, err
	}
	e.cc.ClientLog(dpf.LogDebug, "operator evaluated",
		dpf.KV{Key: "operator", Value: inst.reg.Name},
		dpf.KV{Key: "operator_id", Value: inst.id})
	inst.outputs = call.outputs
	inst.upstream = upstream
	inst.generation++
	return call.outputs, nil
}

// evaluate runs inst and returns output pin read as typeName.
func (e *evaluation) evaluate(ctx context.Context, inst *instance, pin int, typeName string) (dpf.PinValue, error) {
	spec, ok := inst.reg.Specification.OutputPin(pin)
	if !ok {
		return dpf.PinValue{}, &dpf.RemoteError{
			Type:    "ValueError",
			Message: fmt.Sprintf("operator %s has no output pin %d", inst.reg.Name, pin),
		}
	}
	if !slices.Contains(spec.TypeNames, typeName) {
		return dpf.PinValue{}, &dpf.RemoteError{
			Type:    "TypeError",
			Message: fmt.Sprintf("operator %s output pin %d (%s) does not produce %s", inst.reg.Name, pin, spec.Name, typeName),
		}
	}
	outs, err := e.run(ctx, inst)
	if err != nil {
		return dpf.PinValue{}, err
	}
	v, ok := outs[pin]
	if !ok {
		return dpf.PinValue{}, &dpf.RemoteError{
			Type:    "ValueError",
			Message: fmt.Sprintf("operator %s produced nothing on output pin %d", inst.reg.Name, pin),
		}
	}
	v = v.Promote(typeName)
	if v.TypeName != typeName {
		return dpf.PinValue{}, &dpf.RemoteError{
			Type:    "TypeError",
			Message: fmt.Sprintf("operator %s output pin %d holds %s, requested %s", inst.reg.Name, pin, v.TypeName, typeName),
		}
	}
	return v, nil
}
