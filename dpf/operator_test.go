// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// countingChannel counts the connect calls that reach the engine.
type countingChannel struct {
	dpf.Channel
	connects atomic.Int32
}

func (c *countingChannel) Connect(ctx context.Context, id string, pin int, v dpf.PinValue) error {
	c.connects.Add(1)
	return c.Channel.Connect(ctx, id, pin, v)
}

// flakyReleaseChannel fails the first release call.
type flakyReleaseChannel struct {
	dpf.Channel
	failed atomic.Bool
}

func (c *flakyReleaseChannel) Release(ctx context.Context, id string) error {
	if c.failed.CompareAndSwap(false, true) {
		return errors.New("connection reset")
	}
	return c.Channel.Release(ctx, id)
}

func newField(id string) dpf.Field {
	return dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: id}}
}

func TestInput_RejectsInvalidTypeLocally(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ch := &countingChannel{Channel: newTestEngine(t).pipeClient(t)}

	op, err := dpf.NewOperator(ctx, ch, "scale", scaleSpec)
	require.NoError(t, err)
	field := dpf.NewInput(op, 0)

	err = field.Connect(ctx, dpf.Scoping{Entity: dpf.Entity{Type: dpf.TypeScoping, ID: "s"}})
	require.Error(t, err)
	var pe *dpf.PinError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, dpf.ErrInvalidPinType)
	assert.Equal(t, 0, pe.Pin)
	assert.Equal(t, "field", pe.Name)
	assert.Equal(t, dpf.TypeScoping, pe.Got)
	assert.Equal(t, []string{dpf.TypeField}, pe.Accepted)

	err = field.Connect(ctx, struct{}{})
	assert.ErrorIs(t, err, dpf.ErrUnsupportedValue)

	assert.Zero(t, ch.connects.Load(), "rejected values never reach the engine")
	assert.False(t, field.Connected())

	require.NoError(t, field.Connect(ctx, newField("f")))
	assert.True(t, field.Connected())
	assert.EqualValues(t, 1, ch.connects.Load())
}

func TestNewInput_PanicsOnUndeclaredPin(t *testing.T) {
	t.Parallel()
	op, err := dpf.NewOperator(context.Background(), newTestEngine(t).pipeClient(t), "scale", scaleSpec)
	require.NoError(t, err)

	assert.Panics(t, func() { dpf.NewInput(op, 9) })
	assert.Panics(t, func() { dpf.NewOutput[float64](op, 9, dpf.TypeDouble) })
	assert.Panics(t, func() { dpf.NewOutput[bool](op, 1, dpf.TypeBool) })

	err = op.Run(context.Background())
	require.Error(t, err, "pin 0 is required")
}

func TestWithInput_UnknownPin(t *testing.T) {
	t.Parallel()
	_, err := dpf.NewOperator(context.Background(), newTestEngine(t).pipeClient(t), "scale", scaleSpec,
		dpf.WithInput(4, 1.0))
	require.Error(t, err)
	assert.ErrorIs(t, err, dpf.ErrUnknownPin)
}

func TestInput_IntPromotedToDouble(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	op, err := dpf.NewOperator(ctx, newTestEngine(t).pipeClient(t), "scale", scaleSpec)
	require.NoError(t, err)

	require.NoError(t, dpf.NewInput(op, 0).Connect(ctx, newField("f")))
	require.NoError(t, dpf.NewInput(op, 1).Connect(ctx, 2))

	factor, err := dpf.NewOutput[float64](op, 1, dpf.TypeDouble).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, factor)
}

func TestInputs_ConnectByType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	op, err := dpf.NewOperator(ctx, newTestEngine(t).pipeClient(t), "scale", scaleSpec)
	require.NoError(t, err)
	field, factor := dpf.NewInput(op, 0), dpf.NewInput(op, 1)
	inputs := dpf.NewInputs(op, field, factor)

	assert.Equal(t, []*dpf.Input{field}, inputs.Missing())

	require.NoError(t, inputs.Connect(ctx, 0.5))
	assert.True(t, factor.Connected())
	assert.False(t, field.Connected())

	require.NoError(t, inputs.Connect(ctx, newField("f")))
	assert.Empty(t, inputs.Missing())

	err = inputs.Connect(ctx, "degC")
	var pe *dpf.PinError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, dpf.ErrNoMatchingPin)
	assert.Equal(t, -1, pe.Pin)

	assert.Equal(t, []*dpf.Input{field, factor}, inputs.List())
	assert.Contains(t, inputs.String(), "1 factor (double)")
}

func TestInputs_AmbiguousConnection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	op, err := dpf.NewOperator(ctx, newTestEngine(t).pipeClient(t), "pair", pairSpec)
	require.NoError(t, err)
	inputs := dpf.NewInputs(op, dpf.NewInput(op, 0), dpf.NewInput(op, 1))

	err = inputs.Connect(ctx, newField("f"))
	require.Error(t, err)
	assert.ErrorIs(t, err, dpf.ErrAmbiguousPin)
	assert.Contains(t, err.Error(), "fieldA, fieldB")
}

func TestEllipsisInput_Name(t *testing.T) {
	t.Parallel()
	op, err := dpf.NewOperator(context.Background(), newTestEngine(t).pipeClient(t), "pair", pairSpec)
	require.NoError(t, err)

	assert.Equal(t, "fieldA1", dpf.NewEllipsisInput(op, 0, 0).Name())
	assert.Equal(t, "fieldB2", dpf.NewEllipsisInput(op, 1, 1).Name())
	assert.Equal(t, "fieldA", dpf.NewInput(op, 0).Name())
}

func TestOutput_ChainsOperators(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	ctx := context.Background()
	e := newTestEngine(t)
	client := e.pipeClient(t)

	source, err := dpf.NewOperator(ctx, client, "make_field", makeFieldSpec)
	require.NoError(t, err)
	sourceField := dpf.NewOutput[dpf.Field](source, 0, dpf.TypeField)

	scale, err := dpf.NewOperator(ctx, client, "scale", scaleSpec, dpf.WithInput(1, 3.0))
	require.NoError(t, err)
	compare, err := dpf.NewOperator(ctx, client, "pair", pairSpec)
	require.NoError(t, err)

	// --- Act ---
	require.NoError(t, dpf.NewInput(scale, 0).Connect(ctx, sourceField))
	require.NoError(t, dpf.NewInput(compare, 0).Connect(ctx, source))
	require.NoError(t, dpf.NewInput(compare, 1).Connect(ctx, sourceField.Ref()))

	scaled, err := dpf.NewOutput[dpf.Field](scale, 0, dpf.TypeField).Get(ctx)
	require.NoError(t, err)
	same, err := dpf.NewOutput[bool](compare, 0, dpf.TypeBool).Get(ctx)
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, dpf.TypeField, scaled.Type)
	assert.NotEmpty(t, scaled.ID)
	assert.True(t, same, "both pins resolve the same upstream evaluation")
	assert.EqualValues(t, 3, e.runs.Load(), "make_field, scale and pair once each")
}

func TestOutput_RejectsIncompatibleUpstream(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestEngine(t).pipeClient(t)

	source, err := dpf.NewOperator(ctx, client, "make_field", makeFieldSpec)
	require.NoError(t, err)
	scale, err := dpf.NewOperator(ctx, client, "scale", scaleSpec)
	require.NoError(t, err)

	count := dpf.NewOutput[int32](source, 1, dpf.TypeInt32)
	err = dpf.NewInput(scale, 0).Connect(ctx, count)
	assert.ErrorIs(t, err, dpf.ErrInvalidPinType)

	// int32 output feeding a double pin is fine
	require.NoError(t, dpf.NewInput(scale, 1).Connect(ctx, count))
	n, err := count.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestOutput_TypeMismatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	op, err := dpf.NewOperator(ctx, newTestEngine(t).pipeClient(t), "unit_convert", convertSpec,
		dpf.WithInput(0, dpf.FieldsContainer{Entity: dpf.Entity{Type: dpf.TypeFieldsCont, ID: "fc"}}),
		dpf.WithInput(1, "Pa"))
	require.NoError(t, err)

	fc, err := dpf.NewOutput[dpf.FieldsContainer](op, 0, dpf.TypeFieldsCont).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fc", fc.ID)

	_, err = dpf.NewOutput[dpf.Field](op, 0, dpf.TypeField).Get(ctx)
	var re *dpf.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "TypeError", re.Type)

	// wrong Go type for a valid wire type
	_, err = dpf.NewOutput[string](op, 1, dpf.TypeBool).Get(ctx)
	assert.ErrorIs(t, err, dpf.ErrProtocol)
}

func TestOperator_ReleaseRetriesAfterFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(t)
	ch := &flakyReleaseChannel{Channel: e.pipeClient(t)}

	op, err := dpf.NewOperator(ctx, ch, "make_field", makeFieldSpec)
	require.NoError(t, err)

	require.EqualError(t, op.Release(ctx), "connection reset")
	assert.Equal(t, 1, e.srv.Instances())
	require.NoError(t, op.Run(ctx), "a failed release leaves the operator live")

	require.NoError(t, op.Release(ctx))
	assert.Equal(t, 0, e.srv.Instances())
	assert.ErrorIs(t, op.Run(ctx), dpf.ErrOperatorReleased)
}

func TestOperator_Release(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(t)
	client := e.pipeClient(t)

	source, err := dpf.NewOperator(ctx, client, "make_field", makeFieldSpec)
	require.NoError(t, err)
	scale, err := dpf.NewOperator(ctx, client, "scale", scaleSpec, dpf.WithInput(0, source))
	require.NoError(t, err)
	assert.Equal(t, 2, e.srv.Instances())

	require.NoError(t, source.Release(ctx))
	require.NoError(t, source.Release(ctx), "release is idempotent")
	assert.Equal(t, 1, e.srv.Instances())

	_, err = dpf.NewOutput[dpf.Field](source, 0, dpf.TypeField).Get(ctx)
	assert.ErrorIs(t, err, dpf.ErrOperatorReleased)
	assert.ErrorIs(t, source.Run(ctx), dpf.ErrOperatorReleased)

	err = dpf.NewInput(scale, 0).Connect(ctx, source)
	assert.True(t, errors.Is(err, dpf.ErrOperatorReleased))

	// the engine dropped the dangling connection
	err = scale.Run(ctx)
	var re *dpf.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, re.Message, "required input pin 0")
}

func TestOperator_Accessors(t *testing.T) {
	t.Parallel()
	op, err := dpf.NewOperator(context.Background(), newTestEngine(t).pipeClient(t), "scale", scaleSpec)
	require.NoError(t, err)

	assert.Equal(t, "scale", op.Name())
	assert.NotEmpty(t, op.ID())
	assert.Same(t, scaleSpec, op.Specification())
	assert.Nil(t, op.Config())
	assert.Same(t, op, op.Base())
	assert.Equal(t, "scale("+op.ID()+")", op.String())

	outs := dpf.NewOutputs(op,
		dpf.NewOutput[dpf.Field](op, 0, dpf.TypeField),
		dpf.NewOutput[float64](op, 1, dpf.TypeDouble))
	assert.Len(t, outs.List(), 2)
	assert.Contains(t, outs.String(), "1 factor (double)")
}
