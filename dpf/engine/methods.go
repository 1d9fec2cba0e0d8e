// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// registerMethods installs the operator lifecycle methods.
func (s *Server) registerMethods() {
	unary(s, dpf.MethodCreate, s.create)
	unaryVoid(s, dpf.MethodConnect, s.connect)
	unary(s, dpf.MethodEvaluate, s.evaluate)
	unaryVoid(s, dpf.MethodRun, s.run)
	unaryVoid(s, dpf.MethodRelease, s.release)
	unary(s, dpf.MethodDefaultConfig, s.defaultConfig)
	unary(s, dpf.MethodSpecification, s.specification)
}

func (s *Server) create(_ context.Context, cc *CallContext, p dpf.CreateParams) (string, error) {
	reg, err := s.lookupOperator(p.Name)
	if err != nil {
		return "", err
	}
	config := reg.DefaultConfig.Clone()
	if p.Config != "" {
		config = dpf.NewConfig()
		if err := json.Unmarshal([]byte(p.Config), config); err != nil {
			return "", &dpf.RemoteError{Type: "ValueError", Message: fmt.Sprintf("config of %s: %v", p.Name, err)}
		}
	}
	inst := &instance{
		id:     uuid.New().String(),
		reg:    reg,
		config: config,
		inputs: make(map[int]dpf.PinValue),
	}
	s.mu.Lock()
	s.instances[inst.id] = inst
	s.mu.Unlock()
	cc.ClientLog(dpf.LogDebug, "operator created",
		dpf.KV{Key: "operator", Value: p.Name},
		dpf.KV{Key: "operator_id", Value: inst.id})
	return inst.id, nil
}

func (s *Server) connect(_ context.Context, _ *CallContext, p dpf.ConnectParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, err := s.instanceLocked(p.OperatorID)
	if err != nil {
		return err
	}
	pin := int(p.Pin)
	spec, ok := inst.reg.Specification.InputPin(pin)
	if !ok {
		return &dpf.RemoteError{Type: "ValueError", Message: fmt.Sprintf("operator %s has no input pin %d", inst.reg.Name, pin)}
	}

	switch p.Value.Kind {
	case dpf.KindOutput:
		up, err := s.instanceLocked(p.Value.Ref)
		if err != nil {
			return err
		}
		out, ok := up.reg.Specification.OutputPin(int(p.Value.Pin))
		if !ok {
			return &dpf.RemoteError{
				Type:    "ValueError",
				Message: fmt.Sprintf("operator %s has no output pin %d", up.reg.Name, p.Value.Pin),
			}
		}
		if !spec.AcceptsAny(out.TypeNames) {
			return pinTypeError(inst, pin, spec, out.TypeNames)
		}
	case dpf.KindScalar, dpf.KindEntity, dpf.KindDataSources:
		if !spec.Accepts(p.Value.TypeName) {
			return pinTypeError(inst, pin, spec, []string{p.Value.TypeName})
		}
	default:
		return &dpf.RemoteError{Type: "TypeError", Message: fmt.Sprintf("cannot connect a %q value", p.Value.Kind)}
	}
	inst.inputs[pin] = p.Value
	inst.invalidate()
	return nil
}

func pinTypeError(inst *instance, pin int, spec dpf.PinSpecification, got []string) error {
	return &dpf.RemoteError{
		Type: "TypeError",
		Message: fmt.Sprintf("operator %s input pin %d (%s) accepts %v, got %v",
			inst.reg.Name, pin, spec.Name, spec.TypeNames, got),
	}
}

func (s *Server) evaluate(ctx context.Context, cc *CallContext, p dpf.EvaluateParams) (dpf.PinValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, err := s.instanceLocked(p.OperatorID)
	if err != nil {
		return dpf.PinValue{}, err
	}
	return s.newEvaluation(cc).evaluate(ctx, inst, int(p.Pin), p.TypeName)
}

func (s *Server) run(ctx context.Context, cc *CallContext, p dpf.OperatorParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, err := s.instanceLocked(p.OperatorID)
	if err != nil {
		return err
	}
	_, err = s.newEvaluation(cc).run(ctx, inst)
	return err
}

func (s *Server) release(_ context.Context, _ *CallContext, p dpf.OperatorParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.instanceLocked(p.OperatorID); err != nil {
		return err
	}
	delete(s.instances, p.OperatorID)
	for _, inst := range s.instances {
		for pin, v := range inst.inputs {
			if v.Kind == dpf.KindOutput && v.Ref == p.OperatorID {
				delete(inst.inputs, pin)
				inst.invalidate()
			}
		}
	}
	return nil
}

func (s *Server) defaultConfig(_ context.Context, _ *CallContext, p dpf.NameParams) (string, error) {
	reg, err := s.lookupOperator(p.Name)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(reg.DefaultConfig)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Server) specification(_ context.Context, _ *CallContext, p dpf.NameParams) (string, error) {
	reg, err := s.lookupOperator(p.Name)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(reg.Specification)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// registrations returns every registration sorted by name.
func (s *Server) registrations() []*Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	regs := make([]*Registration, 0, len(s.operators))
	for _, reg := range s.operators {
		regs = append(regs, reg)
	}
	slices.SortFunc(regs, func(a, b *Registration) int { return strings.Compare(a.Name, b.Name) })
	return regs
}
