// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package conformance

import (
	"context"
	"fmt"

	"github.com/TheGoldfish01/dpf-go/dpf"
	"github.com/TheGoldfish01/dpf-go/dpf/engine"
	"github.com/TheGoldfish01/dpf-go/internal/catalog"
	"github.com/TheGoldfish01/dpf-go/operators"
)

// kernels overrides the echo kernel for operators whose outputs cannot be
// derived from their inputs by type alone.
var kernels = map[string]engine.Kernel{
	"AreFieldsIdentical": identicalFields,
}

// RegisterOperators registers every operator of the embedded catalog on
// server.
func RegisterOperators(server *engine.Server) error {
	c, diags := catalog.Parse(operators.CatalogHCL, "catalog.hcl")
	if diags.HasErrors() {
		return fmt.Errorf("conformance: %s", diags.Error())
	}
	RegisterCatalog(server, c)
	return nil
}

// RegisterCatalog registers the operators of c on server.
func RegisterCatalog(server *engine.Server, c *catalog.Catalog) {
	for _, op := range c.Operators {
		kernel, ok := kernels[op.InternalName]
		if !ok {
			kernel = Echo
		}
		server.Register(engine.Registration{
			Name:          op.InternalName,
			Specification: op.Specification(),
			Kernel:        kernel,
			DefaultConfig: op.DefaultConfig(),
		})
	}
}

// Echo fills each output pin with the lowest-numbered connected input the
// pin can hold. Pins with no such input get a fresh entity of their first
// entity type, or the zero value of their first type.
func Echo(_ context.Context, call *engine.Call) error {
	spec := call.Specification()
	inputs := call.Inputs()
	inPins := spec.InputPins()
	for _, pin := range spec.OutputPins() {
		out, _ := spec.OutputPin(pin)
		v, source := echoValue(call, out, inPins, inputs)
		if err := call.SetOutput(pin, v); err != nil {
			return err
		}
		call.ClientLog(dpf.LogDebug, "output filled",
			dpf.KV{Key: "pin", Value: out.Name},
			dpf.KV{Key: "source", Value: source},
		)
	}
	return nil
}

func echoValue(call *engine.Call, out dpf.PinSpecification, inPins []int, inputs map[int]dpf.PinValue) (any, string) {
	for _, pin := range inPins {
		v, ok := inputs[pin]
		if ok && out.Accepts(v.TypeName) {
			return v, fmt.Sprintf("input %d", pin)
		}
	}
	for _, t := range out.TypeNames {
		if !dpf.IsScalarType(t) {
			return call.NewEntity(t), "new"
		}
	}
	return zeroValue(out.TypeNames[0]), "zero"
}

func zeroValue(typeName string) any {
	switch typeName {
	case dpf.TypeBool:
		return false
	case dpf.TypeInt32:
		return int32(0)
	case dpf.TypeDouble:
		return 0.0
	case dpf.TypeVectorInt32:
		return []int32{}
	case dpf.TypeVectorDouble:
		return []float64{}
	case dpf.TypeDataSources:
		return dpf.DataSources{}
	default:
		return ""
	}
}

// identicalFields compares the two field handles by identity.
func identicalFields(_ context.Context, call *engine.Call) error {
	a, okA := call.Input(0)
	b, okB := call.Input(1)
	if !okA || !okB {
		return &dpf.RemoteError{Type: "ValueError", Message: "AreFieldsIdentical needs fieldA and fieldB"}
	}
	same := a.Ref == b.Ref
	msg := ""
	if !same {
		msg = fmt.Sprintf("%s and %s differ", a.Ref, b.Ref)
	}
	if err := call.SetOutput(0, same); err != nil {
		return err
	}
	return call.SetOutput(1, msg)
}
