// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package benchmark

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheGoldfish01/dpf-go/dpf"
	"github.com/TheGoldfish01/dpf-go/dpf/engine"
)

func pipeClient(tb testing.TB) *dpf.Client {
	tb.Helper()
	server := engine.NewServer()
	RegisterOperators(server)

	serverConn, clientConn := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		server.Serve(serverConn, serverConn)
	}()
	client, err := dpf.NewClient(dpf.NewStreamTransport(clientConn))
	require.NoError(tb, err)
	tb.Cleanup(func() {
		_ = client.Close()
		_ = serverConn.Close()
		<-done
	})
	return client
}

func TestOperators(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := pipeClient(t)

	add, err := dpf.NewOperator(ctx, client, "add", AddSpec, dpf.WithInput(0, 1.5), dpf.WithInput(1, 2))
	require.NoError(t, err)
	sum, err := dpf.NewOutput[float64](add, 0, dpf.TypeDouble).Get(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, sum, 1e-12)

	sorter, err := dpf.NewOperator(ctx, client, "sort_ids", SortSpec, dpf.WithInput(0, []int32{3, 1, 2}))
	require.NoError(t, err)
	ids, err := dpf.NewOutput[[]int32](sorter, 0, dpf.TypeVectorInt32).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, ids)
	text, err := dpf.NewOutput[string](sorter, 1, dpf.TypeString).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3]", text)
}

func BenchmarkCreateRelease(b *testing.B) {
	ctx := context.Background()
	client := pipeClient(b)
	for b.Loop() {
		op, err := dpf.NewOperator(ctx, client, "noop", NoopSpec)
		if err != nil {
			b.Fatal(err)
		}
		if err := op.Release(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	ctx := context.Background()
	client := pipeClient(b)
	op, err := dpf.NewOperator(ctx, client, "add", AddSpec, dpf.WithInput(0, 1.0), dpf.WithInput(1, 2.0))
	require.NoError(b, err)
	sum := dpf.NewOutput[float64](op, 0, dpf.TypeDouble)
	for b.Loop() {
		if _, err := sum.Get(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluateChain(b *testing.B) {
	ctx := context.Background()
	client := pipeClient(b)
	first, err := dpf.NewOperator(ctx, client, "add", AddSpec, dpf.WithInput(0, 1.0), dpf.WithInput(1, 2.0))
	require.NoError(b, err)
	second, err := dpf.NewOperator(ctx, client, "add", AddSpec,
		dpf.WithInput(0, dpf.NewOutput[float64](first, 0, dpf.TypeDouble).Ref()), dpf.WithInput(1, 4.0))
	require.NoError(b, err)
	sum := dpf.NewOutput[float64](second, 0, dpf.TypeDouble)
	for b.Loop() {
		if _, err := sum.Get(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConnect(b *testing.B) {
	ctx := context.Background()
	client := pipeClient(b)
	op, err := dpf.NewOperator(ctx, client, "sort_ids", SortSpec)
	require.NoError(b, err)
	ids := []int32{9, 4, 7, 1, 3}
	for b.Loop() {
		if err := client.Connect(ctx, op.ID(), 0, dpf.PinValue{Kind: dpf.KindScalar, TypeName: dpf.TypeVectorInt32, Ints: ids}); err != nil {
			b.Fatal(err)
		}
	}
}
