// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package conformance_test

import (
	"context"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheGoldfish01/dpf-go/conformance"
	"github.com/TheGoldfish01/dpf-go/dpf"
	"github.com/TheGoldfish01/dpf-go/dpf/engine"
	"github.com/TheGoldfish01/dpf-go/operators"
	"github.com/TheGoldfish01/dpf-go/operators/averaging"
	"github.com/TheGoldfish01/dpf-go/operators/logic"
	"github.com/TheGoldfish01/dpf-go/operators/math"
	"github.com/TheGoldfish01/dpf-go/operators/metadata"
	"github.com/TheGoldfish01/dpf-go/operators/scoping"
	"github.com/TheGoldfish01/dpf-go/operators/serialization"
)

func newClient(t *testing.T) *dpf.Client {
	t.Helper()
	server := engine.NewServer()
	require.NoError(t, conformance.RegisterOperators(server))

	serverConn, clientConn := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		server.Serve(serverConn, serverConn)
	}()
	client, err := dpf.NewClient(dpf.NewStreamTransport(clientConn))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
		_ = serverConn.Close()
		<-done
	})
	return client
}

func TestRegisterOperators_MatchesBindings(t *testing.T) {
	t.Parallel()
	client := newClient(t)

	// --- Act ---
	infos, err := client.Describe(context.Background())
	require.NoError(t, err)

	// --- Assert ---
	registry := operators.NewRegistry()
	got := make([]string, len(infos))
	for i, info := range infos {
		got[i] = info.Name
		entry, ok := registry.Lookup(info.Name)
		require.True(t, ok, "engine operator %s has no binding", info.Name)
		if diff := cmp.Diff(entry.Specification.Inputs(), info.Specification.Inputs()); diff != "" {
			t.Errorf("%s inputs mismatch (-want +got):\n%s", info.Name, diff)
		}
		if diff := cmp.Diff(entry.Specification.Outputs(), info.Specification.Outputs()); diff != "" {
			t.Errorf("%s outputs mismatch (-want +got):\n%s", info.Name, diff)
		}
	}
	assert.ElementsMatch(t, registry.Names(), got)
}

func TestEcho_ChainsMetadataProviders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newClient(t)

	// --- Arrange ---
	streams, err := metadata.NewStreamsProvider(ctx, client)
	require.NoError(t, err)
	require.NoError(t, streams.Inputs.DataSources.Connect(ctx, dpf.NewDataSources("/tmp/file.rst")))

	info, err := metadata.NewResultInfoProvider(ctx, client)
	require.NoError(t, err)
	require.NoError(t, info.Inputs.Connect(ctx, streams.Outputs.StreamsContainer.Ref()))
	require.NoError(t, info.Inputs.DataSources.Connect(ctx, dpf.NewDataSources("/tmp/file.rst")))

	// --- Act ---
	ri, err := info.Outputs.ResultInfo.Get(ctx)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, dpf.TypeResultInfo, ri.TypeName())
	assert.NotEmpty(t, ri.ID)
	assert.True(t, info.Inputs.StreamsContainer.Connected())
}

func TestEcho_PassesInputThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newClient(t)
	field := dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: "f-1"}}

	// --- Arrange ---
	op, err := math.NewUnitConvert(ctx, client, dpf.WithInput(1, "Pa"))
	require.NoError(t, err)
	require.NoError(t, op.Inputs.EntityToConvert.Connect(ctx, field))

	// --- Act ---
	got, err := op.Outputs.ConvertedEntityAsField.Get(ctx)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, field, got)

	_, err = op.Outputs.ConvertedEntityAsMeshedRegion.Get(ctx)
	assert.Error(t, err, "the echoed field is not a mesh")
}

func TestEcho_OutputsStableUntilReconnected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newClient(t)
	mesh := dpf.MeshedRegion{Entity: dpf.Entity{Type: dpf.TypeMeshedRegion, ID: "mesh-1"}}

	// --- Arrange ---
	op, err := scoping.NewNodalFromMesh(ctx, client)
	require.NoError(t, err)
	require.NoError(t, op.Inputs.Mesh.Connect(ctx, mesh))

	// --- Act ---
	first, err := op.Outputs.MeshScoping.Get(ctx)
	require.NoError(t, err)
	second, err := op.Outputs.MeshScoping.Get(ctx)
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, first, second, "no input changed between reads")

	require.NoError(t, op.Inputs.Mesh.Connect(ctx, mesh))
	third, err := op.Outputs.MeshScoping.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID, "reconnecting reruns the operator")
}

func TestIdenticalFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newClient(t)
	a := dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: "a"}}
	b := dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: "b"}}

	testCases := []struct {
		name    string
		second  dpf.Field
		want    bool
		message string
	}{
		{name: "same", second: a, want: true},
		{name: "different", second: b, want: false, message: "a and b differ"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			op, err := logic.NewIdenticalFields(ctx, client)
			require.NoError(t, err)
			require.NoError(t, op.Inputs.FieldA.Connect(ctx, a))
			require.NoError(t, op.Inputs.FieldB.Connect(ctx, tc.second))

			same, err := op.Outputs.Boolean.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.want, same)

			msg, err := op.Outputs.Message.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.message, msg)
		})
	}
}

func TestIdenticalFields_MissingInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newClient(t)

	op, err := logic.NewIdenticalFields(ctx, client)
	require.NoError(t, err)

	_, err = op.Outputs.Boolean.Get(ctx)
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newClient(t)

	cfg, err := averaging.ElementalToNodalFCDefaultConfig(ctx, client)
	require.NoError(t, err)
	mutex, err := cfg.Bool("mutex")
	require.NoError(t, err)
	assert.False(t, mutex)
}

func TestRun_OperatorWithoutOutputs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newClient(t)
	field := dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: "f-1"}}

	op, err := serialization.NewVTKExport(ctx, client)
	require.NoError(t, err)
	require.NoError(t, op.Inputs.FilePath.Connect(ctx, "/tmp/out.vtk"))
	require.NoError(t, op.Inputs.Fields1.Connect(ctx, field))
	require.NoError(t, op.Inputs.Fields2.Connect(ctx, field))
	assert.Empty(t, op.Inputs.Missing())

	require.NoError(t, op.Run(ctx))
	require.NoError(t, op.Release(ctx))
	assert.ErrorIs(t, op.Run(ctx), dpf.ErrOperatorReleased)
}
