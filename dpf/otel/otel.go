// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package dpfotel provides OpenTelemetry instrumentation for dpf clients and
// engines. It implements [dpf.CallHook] to add distributed tracing and
// metrics around every operator call.
//
// Usage:
//
//	client, err := dpf.NewClient(transport, dpfotel.InstrumentClient(dpfotel.DefaultConfig()))
//
//	server := engine.NewServer()
//	// ... register operators ...
//	dpfotel.InstrumentEngine(server, dpfotel.DefaultConfig())
//
// The client injects the W3C trace context into the request metadata and
// the engine extracts it, so engine spans are children of client spans.
package dpfotel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/TheGoldfish01/dpf-go/dpf"
	"github.com/TheGoldfish01/dpf-go/dpf/engine"
)

const instrumentationName = "dpf"

// Config configures OpenTelemetry instrumentation.
type Config struct {
	// TracerProvider supplies the tracer. Defaults to otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
	// MeterProvider supplies the meter. Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
	// Propagator carries trace context in request metadata.
	// Defaults to otel.GetTextMapPropagator().
	Propagator propagation.TextMapPropagator
	// EnableTracing enables span creation. Default true.
	EnableTracing bool
	// EnableMetrics enables counter and histogram recording. Default true.
	EnableMetrics bool
	// RecordExceptions calls RecordError on the span for failed calls.
	// Default true.
	RecordExceptions bool
	// ServiceName is the rpc.service attribute value. Defaults to
	// engine.Server.ServiceName() on the engine side, then to
	// engine.ProtocolName.
	ServiceName string
	// CustomAttributes are added to every span.
	CustomAttributes []attribute.KeyValue
}

// DefaultConfig returns a Config with tracing, metrics and exception
// recording enabled. Providers and the propagator are resolved from the
// global OTel SDK when the hook is built.
func DefaultConfig() Config {
	return Config{
		EnableTracing:    true,
		EnableMetrics:    true,
		RecordExceptions: true,
	}
}

// InstrumentClient returns a client option installing a client-side hook.
func InstrumentClient(cfg Config) dpf.ClientOption {
	return dpf.WithCallHook(NewHook(cfg, dpf.SideClient))
}

// InstrumentEngine installs an engine-side hook via
// [engine.Server.SetDispatchHook].
func InstrumentEngine(server *engine.Server, cfg Config) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = server.ServiceName()
	}
	server.SetDispatchHook(NewHook(cfg, dpf.SideServer))
}

// NewHook builds a hook for one side of the connection, dpf.SideClient or
// dpf.SideServer. Metric names follow the side: rpc.client.requests or
// rpc.server.requests, and the matching duration histogram.
func NewHook(cfg Config, side string) dpf.CallHook {
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}
	if cfg.Propagator == nil {
		cfg.Propagator = otel.GetTextMapPropagator()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = engine.ProtocolName
	}

	h := &otelHook{
		cfg:    cfg,
		side:   side,
		tracer: cfg.TracerProvider.Tracer(instrumentationName),
		kind:   trace.SpanKindServer,
	}
	if side == dpf.SideClient {
		h.kind = trace.SpanKindClient
	}

	if cfg.EnableMetrics {
		meter := cfg.MeterProvider.Meter(instrumentationName)
		h.requestCounter, _ = meter.Int64Counter(fmt.Sprintf("rpc.%s.requests", side),
			metric.WithUnit("{request}"),
			metric.WithDescription("Number of operator calls"),
		)
		h.durationHistogram, _ = meter.Float64Histogram(fmt.Sprintf("rpc.%s.duration", side),
			metric.WithUnit("s"),
			metric.WithDescription("Duration of operator calls"),
		)
	}
	return h
}

type otelHook struct {
	cfg               Config
	side              string
	kind              trace.SpanKind
	tracer            trace.Tracer
	requestCounter    metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

type spanToken struct {
	span      trace.Span
	startTime time.Time
}

// OnCallStart starts a span. On the engine side the parent is extracted
// from the request metadata; on the client side the new span is injected
// into it.
func (h *otelHook) OnCallStart(ctx context.Context, info dpf.CallInfo) (context.Context, dpf.HookToken) {
	if h.kind == trace.SpanKindServer && info.Metadata != nil {
		ctx = h.cfg.Propagator.Extract(ctx, propagation.MapCarrier(info.Metadata))
	}

	if !h.cfg.EnableTracing {
		return ctx, &spanToken{startTime: time.Now()}
	}

	attrs := []attribute.KeyValue{
		attribute.String("rpc.system", "dpf"),
		attribute.String("rpc.service", h.cfg.ServiceName),
		attribute.String("rpc.method", info.Method),
	}
	if info.ServerID != "" {
		attrs = append(attrs, attribute.String("rpc.dpf.server_id", info.ServerID))
	}
	if info.Operator != "" {
		attrs = append(attrs, attribute.String("dpf.operator.name", info.Operator))
	}
	if info.OperatorID != "" {
		attrs = append(attrs, attribute.String("dpf.operator.id", info.OperatorID))
	}
	attrs = append(attrs, h.cfg.CustomAttributes...)

	// set by the HTTP transport only
	if v := info.Metadata["remote_addr"]; v != "" {
		attrs = append(attrs, attribute.String("net.peer.ip", v))
	}
	if v := info.Metadata["user_agent"]; v != "" {
		attrs = append(attrs, attribute.String("user_agent.original", v))
	}

	ctx, span := h.tracer.Start(ctx, "dpf/"+info.Method,
		trace.WithSpanKind(h.kind),
		trace.WithAttributes(attrs...),
	)
	if h.kind == trace.SpanKindClient && info.Metadata != nil {
		h.cfg.Propagator.Inject(ctx, propagation.MapCarrier(info.Metadata))
	}
	return ctx, &spanToken{span: span, startTime: time.Now()}
}

// OnCallEnd records metrics and ends the span.
func (h *otelHook) OnCallEnd(ctx context.Context, token dpf.HookToken, info dpf.CallInfo, stats *dpf.CallStatistics, err error) {
	st, ok := token.(*spanToken)
	if !ok {
		return
	}
	duration := time.Since(st.startTime)

	status := "ok"
	if err != nil {
		status = "error"
	}

	if h.cfg.EnableMetrics {
		metricAttrs := metric.WithAttributes(
			attribute.String("rpc.system", "dpf"),
			attribute.String("rpc.service", h.cfg.ServiceName),
			attribute.String("rpc.method", info.Method),
			attribute.String("status", status),
		)
		if h.requestCounter != nil {
			h.requestCounter.Add(ctx, 1, metricAttrs)
		}
		if h.durationHistogram != nil {
			h.durationHistogram.Record(ctx, duration.Seconds(), metricAttrs)
		}
	}

	if st.span == nil || !st.span.IsRecording() {
		return
	}
	if stats != nil {
		st.span.SetAttributes(
			attribute.Int64("rpc.dpf.request_batches", stats.RequestBatches),
			attribute.Int64("rpc.dpf.response_batches", stats.ResponseBatches),
			attribute.Int64("rpc.dpf.request_bytes", stats.RequestBytes),
			attribute.Int64("rpc.dpf.response_bytes", stats.ResponseBytes),
			attribute.Int64("rpc.dpf.log_messages", stats.Logs),
		)
	}
	if err != nil {
		st.span.SetStatus(codes.Error, err.Error())
		if h.cfg.RecordExceptions {
			st.span.RecordError(err)
		}
		errType := fmt.Sprintf("%T", err)
		var re *dpf.RemoteError
		if errors.As(err, &re) {
			errType = re.Type
		}
		st.span.SetAttributes(attribute.String("rpc.dpf.error_type", errType))
	} else {
		st.span.SetStatus(codes.Ok, "")
	}
	st.span.End()
}
