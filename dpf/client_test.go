// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheGoldfish01/dpf-go/dpf"
	"github.com/TheGoldfish01/dpf-go/dpf/engine"
)

var (
	convertSpec = dpf.NewSpecification("converts an entity to a unit",
		map[int]dpf.PinSpecification{
			0: {Name: "entity_to_convert", TypeNames: []string{dpf.TypeField, dpf.TypeFieldsCont}},
			1: {Name: "unit_name", TypeNames: []string{dpf.TypeString}},
		},
		map[int]dpf.PinSpecification{
			0: {Name: "converted_entity", TypeNames: []string{dpf.TypeField, dpf.TypeFieldsCont}},
			1: {Name: "mutex", TypeNames: []string{dpf.TypeBool}},
		})
	makeFieldSpec = dpf.NewSpecification("creates a field",
		nil,
		map[int]dpf.PinSpecification{
			0: {Name: "field", TypeNames: []string{dpf.TypeField}},
			1: {Name: "count", TypeNames: []string{dpf.TypeInt32}},
		})
	scaleSpec = dpf.NewSpecification("scales a field",
		map[int]dpf.PinSpecification{
			0: {Name: "field", TypeNames: []string{dpf.TypeField}},
			1: {Name: "factor", TypeNames: []string{dpf.TypeDouble}, Optional: true},
		},
		map[int]dpf.PinSpecification{
			0: {Name: "field", TypeNames: []string{dpf.TypeField}},
			1: {Name: "factor", TypeNames: []string{dpf.TypeDouble}},
		})
	pairSpec = dpf.NewSpecification("compares two fields",
		map[int]dpf.PinSpecification{
			0: {Name: "fieldA", TypeNames: []string{dpf.TypeField}},
			1: {Name: "fieldB", TypeNames: []string{dpf.TypeField}},
		},
		map[int]dpf.PinSpecification{
			0: {Name: "boolean", TypeNames: []string{dpf.TypeBool}},
		})
	blockSpec = dpf.NewSpecification("waits for cancellation",
		nil,
		map[int]dpf.PinSpecification{0: {Name: "done", TypeNames: []string{dpf.TypeBool}}})
)

// testEngine is an in-process engine with a few small operators.
type testEngine struct {
	srv  *engine.Server
	runs atomic.Int32
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	e := &testEngine{srv: engine.NewServer()}
	e.srv.SetServerID("test-engine")

	e.srv.Register(engine.Registration{
		Name:          "unit_convert",
		Specification: convertSpec,
		DefaultConfig: dpf.NewConfig(dpf.ConfigOption{Name: "mutex", Value: "false", Document: "lock the operator"}),
		Kernel: func(_ context.Context, call *engine.Call) error {
			e.runs.Add(1)
			v, _ := call.Input(0)
			unit, _ := call.Input(1)
			call.ClientLog(dpf.LogInfo, "converting", dpf.KV{Key: "unit", Value: unit.Text})
			mutex, err := call.Config().Bool("mutex")
			if err != nil {
				return err
			}
			if err := call.SetOutput(0, v); err != nil {
				return err
			}
			return call.SetOutput(1, mutex)
		},
	})
	e.srv.Register(engine.Registration{
		Name:          "make_field",
		Specification: makeFieldSpec,
		Kernel: func(_ context.Context, call *engine.Call) error {
			e.runs.Add(1)
			if err := call.SetOutput(0, dpf.Field{Entity: call.NewEntity(dpf.TypeField)}); err != nil {
				return err
			}
			return call.SetOutput(1, int32(3))
		},
	})
	e.srv.Register(engine.Registration{
		Name:          "scale",
		Specification: scaleSpec,
		Kernel: func(_ context.Context, call *engine.Call) error {
			e.runs.Add(1)
			factor := 1.0
			if v, ok := call.Input(1); ok {
				factor = v.Double
			}
			if factor < 0 {
				return &dpf.RemoteError{Type: "ValueError", Message: fmt.Sprintf("negative factor %g", factor)}
			}
			if err := call.SetOutput(0, dpf.Field{Entity: call.NewEntity(dpf.TypeField)}); err != nil {
				return err
			}
			return call.SetOutput(1, factor)
		},
	})
	e.srv.Register(engine.Registration{
		Name:          "pair",
		Specification: pairSpec,
		Kernel: func(_ context.Context, call *engine.Call) error {
			a, _ := call.Input(0)
			b, _ := call.Input(1)
			return call.SetOutput(0, a.Ref == b.Ref)
		},
	})
	e.srv.Register(engine.Registration{
		Name:          "block",
		Specification: blockSpec,
		Kernel: func(ctx context.Context, _ *engine.Call) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	return e
}

// pipeClient serves e on one end of an in-memory pipe and returns a client
// on the other.
func (e *testEngine) pipeClient(t *testing.T, opts ...dpf.ClientOption) *dpf.Client {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.srv.Serve(serverConn, serverConn)
	}()
	client, err := dpf.NewClient(dpf.NewStreamTransport(clientConn), opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
		_ = serverConn.Close()
		<-done
	})
	return client
}

// httpClient serves e over HTTP with zstd enabled.
func (e *testEngine) httpClient(t *testing.T, opts ...dpf.ClientOption) *dpf.Client {
	t.Helper()
	hs := engine.NewHttpServer(e.srv)
	require.NoError(t, hs.SetCompressionLevel(3))
	ts := httptest.NewServer(hs)
	t.Cleanup(ts.Close)

	tr, err := dpf.NewHTTPTransport(ts.URL, dpf.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	client, err := dpf.NewClient(tr, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// recordingHook captures the calls it observes.
type recordingHook struct {
	inject map[string]string

	mu     sync.Mutex
	starts []dpf.CallInfo
	errs   []error
	stats  []dpf.CallStatistics
}

func (h *recordingHook) OnCallStart(ctx context.Context, info dpf.CallInfo) (context.Context, dpf.HookToken) {
	for k, v := range h.inject {
		info.Metadata[k] = v
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts = append(h.starts, info)
	return ctx, len(h.starts) - 1
}

func (h *recordingHook) OnCallEnd(_ context.Context, token dpf.HookToken, _ dpf.CallInfo, stats *dpf.CallStatistics, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if token.(int) != len(h.errs) {
		panic("hook calls out of order")
	}
	h.errs = append(h.errs, err)
	h.stats = append(h.stats, *stats)
}

func TestClient_CreateConnectEvaluate(t *testing.T) {
	t.Parallel()

	transports := map[string]func(*testEngine, *testing.T, ...dpf.ClientOption) *dpf.Client{
		"pipe": (*testEngine).pipeClient,
		"http": (*testEngine).httpClient,
	}
	for name, connect := range transports {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			ctx := context.Background()
			e := newTestEngine(t)
			client := connect(e, t)

			// --- Act ---
			id, err := client.CreateOperator(ctx, "unit_convert", nil)
			require.NoError(t, err)
			field := dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: "f-1"}}
			fv, err := dpf.ValueOf(field)
			require.NoError(t, err)
			require.NoError(t, client.Connect(ctx, id, 0, fv))
			uv, err := dpf.ValueOf("degC")
			require.NoError(t, err)
			require.NoError(t, client.Connect(ctx, id, 1, uv))
			out, err := client.Evaluate(ctx, id, 0, dpf.TypeField)
			require.NoError(t, err)

			// --- Assert ---
			assert.Equal(t, field, out.Interface())
			assert.Equal(t, "test-engine", client.ServerID())
			assert.Equal(t, 1, e.srv.Instances())

			require.NoError(t, client.Release(ctx, id))
			assert.Zero(t, e.srv.Instances())
		})
	}
}

func TestClient_RemoteErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestEngine(t).pipeClient(t)

	_, err := client.CreateOperator(ctx, "no_such_operator", nil)
	require.Error(t, err)
	var re *dpf.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "KeyError", re.Type)
	assert.True(t, errors.Is(err, dpf.ErrRemote))
	assert.NotEmpty(t, re.RequestID)

	err = client.Run(ctx, "missing-id")
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "KeyError", re.Type)

	id, err := client.CreateOperator(ctx, "scale", nil)
	require.NoError(t, err)

	// required pin 0 is not connected
	err = client.Run(ctx, id)
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "ValueError", re.Type)
	assert.Contains(t, re.Message, "required input pin 0")

	// the engine validates pin types too
	sv, _ := dpf.ValueOf("text")
	err = client.Connect(ctx, id, 0, sv)
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "TypeError", re.Type)

	// the transport stays usable after errors
	_, err = client.Specification(ctx, "scale")
	assert.NoError(t, err)
}

func TestClient_KernelError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestEngine(t).pipeClient(t)

	op, err := dpf.NewOperator(ctx, client, "scale", scaleSpec,
		dpf.WithInput(0, dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: "f"}}),
		dpf.WithInput(1, -2.0))
	require.NoError(t, err)

	_, err = dpf.NewOutput[dpf.Field](op, 0, dpf.TypeField).Get(ctx)
	var re *dpf.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "ValueError", re.Type)
	assert.Equal(t, "negative factor -2", re.Message)
}

func TestClient_DescribeAndSpecification(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestEngine(t).httpClient(t)

	infos, err := client.Describe(ctx)
	require.NoError(t, err)

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	assert.Equal(t, []string{"block", "make_field", "pair", "scale", "unit_convert"}, names)

	convert := infos[4]
	assert.Equal(t, convertSpec.Description(), convert.Specification.Description())
	if diff := cmp.Diff(convertSpec.Inputs(), convert.Specification.Inputs()); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, convert.DefaultConfig)
	assert.Equal(t, "lock the operator", convert.DefaultConfig.Document("mutex"))
	assert.Nil(t, infos[0].DefaultConfig)

	spec, err := client.Specification(ctx, "scale")
	require.NoError(t, err)
	if diff := cmp.Diff(scaleSpec.Outputs(), spec.Outputs()); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_DefaultConfigAndOverride(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := newTestEngine(t).pipeClient(t)

	cfg, err := dpf.DefaultConfig(ctx, client, "unit_convert")
	require.NoError(t, err)
	v, ok := cfg.Get("mutex")
	require.True(t, ok)
	assert.Equal(t, "false", v)

	cfg.Set("mutex", true)
	field := dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: "f"}}
	op, err := dpf.NewOperator(ctx, client, "unit_convert", convertSpec,
		dpf.WithConfig(cfg), dpf.WithInput(0, field), dpf.WithInput(1, "degC"))
	require.NoError(t, err)

	mutex, err := dpf.NewOutput[bool](op, 1, dpf.TypeBool).Get(ctx)
	require.NoError(t, err)
	assert.True(t, mutex)

	got, _ := op.Config().Get("mutex")
	assert.Equal(t, "true", got)
}

func TestClient_ForwardsEngineLogs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := dpf.DefaultClientConfig()
	cfg.ServerLogLevel = dpf.LogInfo
	client := newTestEngine(t).pipeClient(t, dpf.WithLogger(logger), dpf.WithClientConfig(cfg))

	op, err := dpf.NewOperator(ctx, client, "unit_convert", convertSpec,
		dpf.WithInput(0, dpf.Field{Entity: dpf.Entity{Type: dpf.TypeField, ID: "f"}}),
		dpf.WithInput(1, "mm"))
	require.NoError(t, err)
	require.NoError(t, op.Run(ctx))

	out := logs.String()
	assert.Contains(t, out, "msg=converting")
	assert.Contains(t, out, "unit=mm")
	assert.Contains(t, out, "method=operator.run")
	assert.NotContains(t, out, "operator created", "debug messages are filtered by the engine")
}

func TestClient_CallHooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newTestEngine(t)
	serverHook := &recordingHook{}
	e.srv.SetDispatchHook(serverHook)
	clientHook := &recordingHook{inject: map[string]string{"traceparent": "00-test"}}
	client := e.pipeClient(t, dpf.WithCallHook(clientHook))

	id, err := client.CreateOperator(ctx, "make_field", nil)
	require.NoError(t, err)
	_, err = client.Evaluate(ctx, id, 5, dpf.TypeField)
	require.Error(t, err)

	clientHook.mu.Lock()
	defer clientHook.mu.Unlock()
	require.Len(t, clientHook.starts, 2)
	assert.Equal(t, dpf.SideClient, clientHook.starts[0].Side)
	assert.Equal(t, dpf.MethodCreate, clientHook.starts[0].Method)
	assert.Equal(t, "make_field", clientHook.starts[0].Operator)
	assert.Equal(t, id, clientHook.starts[1].OperatorID)
	assert.NoError(t, clientHook.errs[0])
	assert.Error(t, clientHook.errs[1])
	assert.Positive(t, clientHook.stats[0].RequestBytes)
	assert.Positive(t, clientHook.stats[0].ResponseBytes)

	serverHook.mu.Lock()
	defer serverHook.mu.Unlock()
	require.Len(t, serverHook.starts, 2)
	assert.Equal(t, dpf.SideServer, serverHook.starts[0].Side)
	assert.Equal(t, "00-test", serverHook.starts[0].Metadata["traceparent"])
	assert.Equal(t, clientHook.starts[0].RequestID, serverHook.starts[0].RequestID)
	assert.Error(t, serverHook.errs[1])
}

func TestClient_RequestTimeout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := dpf.DefaultClientConfig()
	cfg.RequestTimeout = 50 * time.Millisecond
	client := newTestEngine(t).httpClient(t, dpf.WithClientConfig(cfg))

	id, err := client.CreateOperator(ctx, "block", nil)
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Evaluate(ctx, id, 0, dpf.TypeBool)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	_, err := dpf.NewClient(dpf.NewStreamTransport(clientConn),
		dpf.WithClientConfig(dpf.ClientConfig{RateLimit: dpf.RateLimit{RequestsPerSecond: 10}}))
	assert.Error(t, err)
}

func TestClient_RateLimited(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := dpf.DefaultClientConfig()
	cfg.RateLimit = dpf.RateLimit{RequestsPerSecond: 1000, Burst: 2}
	client := newTestEngine(t).pipeClient(t, dpf.WithClientConfig(cfg))

	for range 5 {
		_, err := client.Specification(ctx, "pair")
		require.NoError(t, err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := client.Specification(cancelled, "pair")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPTransport_UnknownMethod(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	ts := httptest.NewServer(engine.NewHttpServer(e.srv))
	defer ts.Close()

	tr, err := dpf.NewHTTPTransport(ts.URL)
	require.NoError(t, err)
	defer tr.Close()

	var req bytes.Buffer
	require.NoError(t, dpf.WriteRequest(&req, "operator.explode", nil, nil))
	body, err := tr.RoundTrip(context.Background(), "operator.explode", req.Bytes())
	require.NoError(t, err)

	resp, err := dpf.ReadResponse(bytes.NewReader(body))
	require.NoError(t, err)
	require.NotNil(t, resp.Err)
	assert.Equal(t, "AttributeError", resp.Err.Type)
	assert.Contains(t, resp.Err.Message, dpf.MethodEvaluate)
}
