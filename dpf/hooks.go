// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"context"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow"
)

// Call sides reported in CallInfo.Side.
const (
	SideClient = "client"
	SideServer = "server"
)

// CallHook provides observability callpoints around each call, on the
// client (see WithCallHook) and in the engine. Implementations must be safe
// for concurrent use.
type CallHook interface {
	OnCallStart(ctx context.Context, info CallInfo) (context.Context, HookToken)
	OnCallEnd(ctx context.Context, token HookToken, info CallInfo, stats *CallStatistics, err error)
}

// HookToken is an opaque value returned by OnCallStart and passed back to
// OnCallEnd.
type HookToken any

// CallInfo describes one call.
type CallInfo struct {
	Side       string // SideClient or SideServer
	Method     string
	Operator   string // operator name, when known
	OperatorID string
	ServerID   string
	RequestID  string
	// Metadata is the transport metadata. Client-side hooks may add keys
	// (trace propagation); they are sent with the request.
	Metadata map[string]string
}

// CallStatistics holds per-call I/O counters.
type CallStatistics struct {
	RequestBatches  int64
	ResponseBatches int64
	RequestBytes    int64
	ResponseBytes   int64
	Logs            int64
}

// RecordRequest records the bytes and batches sent or received as a request.
func (s *CallStatistics) RecordRequest(batches, bytes int64) {
	s.RequestBatches += batches
	s.RequestBytes += bytes
}

// RecordResponse records the bytes and batches of a response.
func (s *CallStatistics) RecordResponse(batches, bytes int64) {
	s.ResponseBatches += batches
	s.ResponseBytes += bytes
}

// StartHook runs hook.OnCallStart, recovering panics. It returns the
// possibly-updated context, the token and whether the hook is active.
func StartHook(ctx context.Context, hook CallHook, info CallInfo) (context.Context, HookToken, bool) {
	if hook == nil {
		return ctx, nil, false
	}
	var token HookToken
	active := false
	func() {
		defer func() {
			if rv := recover(); rv != nil {
				slog.Error("call hook start panic", "err", rv)
			}
		}()
		var hookCtx context.Context
		hookCtx, token = hook.OnCallStart(ctx, info)
		if hookCtx != nil {
			ctx = hookCtx
		}
		active = true
	}()
	return ctx, token, active
}

// EndHook runs hook.OnCallEnd, recovering panics.
func EndHook(ctx context.Context, hook CallHook, token HookToken, info CallInfo, stats *CallStatistics, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			slog.Error("call hook end panic", "err", rv)
		}
	}()
	hook.OnCallEnd(ctx, token, info, stats, err)
}

// BatchBufferSize returns the total top-level buffer size of a batch.
func BatchBufferSize(batch arrow.RecordBatch) int64 {
	var total int64
	for i := range batch.NumCols() {
		for _, buf := range batch.Column(int(i)).Data().Buffers() {
			if buf != nil {
				total += int64(buf.Len())
			}
		}
	}
	return total
}
