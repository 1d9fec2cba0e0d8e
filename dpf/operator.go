// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Operator is the client-side handle of one operator instance living in
// the engine. Generated bindings embed it.
type Operator struct {
	ch     Channel
	name   string
	id     string
	spec   *Specification
	config *Config

	mu        sync.Mutex
	connected map[int]bool
	released  bool
}

// OperatorOption configures NewOperator.
type OperatorOption func(*operatorOptions)

type operatorOptions struct {
	config *Config
	inputs []pendingInput
}

type pendingInput struct {
	pin   int
	value any
}

// WithConfig creates the operator with cfg instead of the engine default.
func WithConfig(cfg *Config) OperatorOption {
	return func(o *operatorOptions) { o.config = cfg.Clone() }
}

// WithInput connects value to pin right after creation.
func WithInput(pin int, value any) OperatorOption {
	return func(o *operatorOptions) { o.inputs = append(o.inputs, pendingInput{pin, value}) }
}

// NewOperator creates an instance of the named operator in the engine.
func NewOperator(ctx context.Context, ch Channel, name string, spec *Specification, opts ...OperatorOption) (*Operator, error) {
	var o operatorOptions
	for _, opt := range opts {
		opt(&o)
	}
	id, err := ch.CreateOperator(ctx, name, o.config)
	if err != nil {
		return nil, fmt.Errorf("creating operator %s: %w", name, err)
	}
	op := &Operator{
		ch:        ch,
		name:      name,
		id:        id,
		spec:      spec,
		config:    o.config,
		connected: make(map[int]bool),
	}
	for _, in := range o.inputs {
		if err := op.connect(ctx, in.pin, -1, in.value); err != nil {
			return nil, err
		}
	}
	return op, nil
}

// DefaultConfig asks the engine for the default configuration of the
// named operator.
func DefaultConfig(ctx context.Context, ch Channel, name string) (*Config, error) {
	return ch.DefaultConfig(ctx, name)
}

// Base returns op. Types embedding *Operator inherit it, which lets them be
// connected to inputs directly.
func (op *Operator) Base() *Operator { return op }

// Name is the engine name of the operator.
func (op *Operator) Name() string { return op.name }

// ID is the engine-assigned instance id.
func (op *Operator) ID() string { return op.id }

// Specification returns the pin specification the operator was built with.
func (op *Operator) Specification() *Specification { return op.spec }

// Config returns a copy of the configuration given at creation, or nil
// when the engine default is in use.
func (op *Operator) Config() *Config { return op.config.Clone() }

// Run evaluates the operator for its side effects without reading any
// output.
func (op *Operator) Run(ctx context.Context) error {
	if err := op.checkLive(); err != nil {
		return err
	}
	return op.ch.Run(ctx, op.id)
}

// Release frees the engine-side instance. Later calls fail with
// ErrOperatorReleased. When the engine does not confirm the release the
// operator stays live and Release may be retried.
func (op *Operator) Release(ctx context.Context) error {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.released {
		return nil
	}
	if err := op.ch.Release(ctx, op.id); err != nil {
		return err
	}
	op.released = true
	return nil
}

func (op *Operator) String() string {
	return fmt.Sprintf("%s(%s)", op.name, op.id)
}

func (op *Operator) checkLive() error {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.released {
		return fmt.Errorf("%w: %s", ErrOperatorReleased, op)
	}
	return nil
}

func (op *Operator) isConnected(pin int) bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.connected[pin]
}

// valueTypes returns the wire value of v and the type names it may carry.
func valueTypes(v any) (PinValue, []string, error) {
	switch x := v.(type) {
	case interface{ Base() *Operator }:
		return valueTypes(OutputRef{Operator: x.Base(), Pin: 0})
	case interface{ Ref() OutputRef }:
		return valueTypes(x.Ref())
	case OutputRef:
		if x.Operator == nil {
			return PinValue{}, nil, fmt.Errorf("%w: output reference without operator", ErrUnsupportedValue)
		}
		if err := x.Operator.checkLive(); err != nil {
			return PinValue{}, nil, err
		}
		pv, err := ValueOf(x)
		return pv, x.TypeNames(), err
	}
	pv, err := ValueOf(v)
	if err != nil {
		return PinValue{}, nil, err
	}
	return pv, []string{pv.TypeName}, nil
}

// connect validates v against input pin and sends it to the engine.
func (op *Operator) connect(ctx context.Context, pin, ellipsis int, v any) error {
	if err := op.checkLive(); err != nil {
		return err
	}
	spec, ok := op.spec.InputPin(pin)
	if !ok {
		return &PinError{Operator: op.name, Pin: pin, Err: ErrUnknownPin}
	}
	pv, types, err := valueTypes(v)
	if err != nil {
		return &PinError{Operator: op.name, Pin: pin, Name: spec.Name, Err: err}
	}
	if !spec.AcceptsAny(types) {
		return &PinError{
			Operator: op.name,
			Pin:      pin,
			Name:     pinLabel(spec, ellipsis),
			Got:      strings.Join(types, "|"),
			Accepted: spec.TypeNames,
			Err:      ErrInvalidPinType,
		}
	}
	if pv.TypeName == TypeInt32 && !slices.Contains(spec.TypeNames, TypeInt32) {
		pv = pv.Promote(TypeDouble)
	}
	if err := op.ch.Connect(ctx, op.id, pin, pv); err != nil {
		return fmt.Errorf("connecting %s pin %d: %w", op.name, pin, err)
	}
	op.mu.Lock()
	op.connected[pin] = true
	op.mu.Unlock()
	return nil
}

func pinLabel(p PinSpecification, ellipsis int) string {
	if ellipsis < 0 {
		return p.Name
	}
	return fmt.Sprintf("%s%d", p.Name, ellipsis+1)
}

// Input is one input pin of an operator.
type Input struct {
	op       *Operator
	pin      int
	spec     PinSpecification
	ellipsis int
}

// NewInput returns the input pin of op. It panics when op's specification
// does not declare the pin.
func NewInput(op *Operator, pin int) *Input {
	return NewEllipsisInput(op, pin, -1)
}

// NewEllipsisInput returns one member of a repeated pin group. index counts
// from 0 within the group; -1 means the pin is not repeated.
func NewEllipsisInput(op *Operator, pin, index int) *Input {
	spec, ok := op.spec.InputPin(pin)
	if !ok {
		panic(fmt.Sprintf("dpf: operator %q has no input pin %d", op.name, pin))
	}
	return &Input{op: op, pin: pin, spec: spec, ellipsis: index}
}

// Connect connects v to the pin. v may be a scalar, DataSources, an entity
// handle, an operator (its output 0), an Output or an OutputRef.
func (in *Input) Connect(ctx context.Context, v any) error {
	return in.op.connect(ctx, in.pin, in.ellipsis, v)
}

// Connected reports whether a value has been connected to the pin.
func (in *Input) Connected() bool { return in.op.isConnected(in.pin) }

// Pin returns the pin index.
func (in *Input) Pin() int { return in.pin }

// Name returns the pin name, numbered for repeated pins.
func (in *Input) Name() string { return pinLabel(in.spec, in.ellipsis) }

// Specification returns the pin specification.
func (in *Input) Specification() PinSpecification { return in.spec.clone() }

func (in *Input) String() string {
	return fmt.Sprintf("%d %s (%s)", in.pin, in.Name(), strings.Join(in.spec.TypeNames, ", "))
}

// Inputs is the ordered set of input pins of an operator.
type Inputs struct {
	op     *Operator
	inputs []*Input
}

// NewInputs groups inputs of op in declaration order.
func NewInputs(op *Operator, inputs ...*Input) *Inputs {
	return &Inputs{op: op, inputs: inputs}
}

// Connect connects v to the single pin whose type set accepts it.
func (ins *Inputs) Connect(ctx context.Context, v any) error {
	_, types, err := valueTypes(v)
	if err != nil {
		return err
	}
	var matches []*Input
	for _, in := range ins.inputs {
		if in.spec.AcceptsAny(types) {
			matches = append(matches, in)
		}
	}
	switch len(matches) {
	case 0:
		return &PinError{Operator: ins.op.name, Pin: -1, Got: strings.Join(types, "|"), Err: ErrNoMatchingPin}
	case 1:
		return matches[0].Connect(ctx, v)
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name()
		}
		return fmt.Errorf("%w: %s matches pins %s of %s, connect one explicitly",
			ErrAmbiguousPin, strings.Join(types, "|"), strings.Join(names, ", "), ins.op.name)
	}
}

// List returns the inputs in declaration order.
func (ins *Inputs) List() []*Input { return append([]*Input(nil), ins.inputs...) }

// Missing returns the required inputs that have not been connected. The
// engine is the authority on whether evaluation can proceed.
func (ins *Inputs) Missing() []*Input {
	var out []*Input
	for _, in := range ins.inputs {
		if !in.spec.Optional && !in.Connected() {
			out = append(out, in)
		}
	}
	return out
}

func (ins *Inputs) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s inputs:\n", ins.op.name)
	for _, in := range ins.inputs {
		fmt.Fprintf(&b, "  %s\n", in)
	}
	return b.String()
}

// AnyOutput is the type-independent view of an Output.
type AnyOutput interface {
	Pin() int
	Name() string
	TypeName() string
	Ref() OutputRef
}

// Output is one output pin of an operator, read as T.
type Output[T any] struct {
	op       *Operator
	pin      int
	spec     PinSpecification
	typeName string
}

// NewOutput returns the output pin of op read as typeName. It panics when
// the pin is undeclared or does not produce typeName.
func NewOutput[T any](op *Operator, pin int, typeName string) *Output[T] {
	spec, ok := op.spec.OutputPin(pin)
	if !ok {
		panic(fmt.Sprintf("dpf: operator %q has no output pin %d", op.name, pin))
	}
	one, err := spec.WithOneType(typeName)
	if err != nil {
		panic(fmt.Sprintf("dpf: operator %q output pin %d: %v", op.name, pin, err))
	}
	return &Output[T]{op: op, pin: pin, spec: one, typeName: typeName}
}

// Get evaluates the operator and returns the value of the pin.
func (o *Output[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if err := o.op.checkLive(); err != nil {
		return zero, err
	}
	pv, err := o.op.ch.Evaluate(ctx, o.op.id, o.pin, o.typeName)
	if err != nil {
		return zero, fmt.Errorf("evaluating %s pin %d: %w", o.op.name, o.pin, err)
	}
	v, ok := pv.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s pin %d returned %s, want %T", ErrProtocol, o.op.name, o.pin, pv, zero)
	}
	return v, nil
}

// Ref returns a reference usable as an input value of another operator.
func (o *Output[T]) Ref() OutputRef { return OutputRef{Operator: o.op, Pin: o.pin} }

// Pin returns the pin index.
func (o *Output[T]) Pin() int { return o.pin }

// Name returns the pin name.
func (o *Output[T]) Name() string { return o.spec.Name }

// TypeName returns the type the pin is read as.
func (o *Output[T]) TypeName() string { return o.typeName }

// Outputs is the ordered set of output pins of an operator.
type Outputs struct {
	op      *Operator
	outputs []AnyOutput
}

// NewOutputs groups outputs of op in declaration order.
func NewOutputs(op *Operator, outputs ...AnyOutput) *Outputs {
	return &Outputs{op: op, outputs: outputs}
}

// List returns the outputs in declaration order.
func (outs *Outputs) List() []AnyOutput { return append([]AnyOutput(nil), outs.outputs...) }

func (outs *Outputs) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s outputs:\n", outs.op.name)
	for _, o := range outs.outputs {
		fmt.Fprintf(&b, "  %d %s (%s)\n", o.Pin(), o.Name(), o.TypeName())
	}
	return b.String()
}
