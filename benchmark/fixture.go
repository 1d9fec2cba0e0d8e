// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package benchmark holds the operators used to measure call overhead of
// the client and engine.
package benchmark

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/TheGoldfish01/dpf-go/dpf"
	"github.com/TheGoldfish01/dpf-go/dpf/engine"
)

var (
	// NoopSpec has no inputs and one bool output.
	NoopSpec = dpf.NewSpecification("Does nothing.", nil,
		map[int]dpf.PinSpecification{0: {Name: "ok", TypeNames: []string{dpf.TypeBool}}})

	// AddSpec adds two doubles.
	AddSpec = dpf.NewSpecification("Adds a and b.",
		map[int]dpf.PinSpecification{
			0: {Name: "a", TypeNames: []string{dpf.TypeDouble}},
			1: {Name: "b", TypeNames: []string{dpf.TypeDouble}},
		},
		map[int]dpf.PinSpecification{0: {Name: "sum", TypeNames: []string{dpf.TypeDouble}}})

	// SortSpec sorts a vector<int32> and reports it as text.
	SortSpec = dpf.NewSpecification("Sorts ids.",
		map[int]dpf.PinSpecification{0: {Name: "ids", TypeNames: []string{dpf.TypeVectorInt32}}},
		map[int]dpf.PinSpecification{
			0: {Name: "sorted", TypeNames: []string{dpf.TypeVectorInt32}},
			1: {Name: "text", TypeNames: []string{dpf.TypeString}},
		})
)

// RegisterOperators registers the benchmark operators on the server.
func RegisterOperators(server *engine.Server) {
	server.Register(engine.Registration{Name: "noop", Specification: NoopSpec, Kernel: noop})
	server.Register(engine.Registration{Name: "add", Specification: AddSpec, Kernel: add})
	server.Register(engine.Registration{Name: "sort_ids", Specification: SortSpec, Kernel: sortIDs})
}

func noop(_ context.Context, call *engine.Call) error {
	return call.SetOutput(0, true)
}

func add(_ context.Context, call *engine.Call) error {
	a, _ := call.Input(0)
	b, _ := call.Input(1)
	return call.SetOutput(0, a.Promote(dpf.TypeDouble).Double+b.Promote(dpf.TypeDouble).Double)
}

func sortIDs(_ context.Context, call *engine.Call) error {
	v, _ := call.Input(0)
	ids := slices.Clone(v.Ints)
	slices.Sort(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	if err := call.SetOutput(0, ids); err != nil {
		return err
	}
	return call.SetOutput(1, "["+strings.Join(parts, ", ")+"]")
}
