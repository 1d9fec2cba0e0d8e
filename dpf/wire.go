// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// BatchKind classifies a received batch by its metadata.
type BatchKind int

const (
	BatchData  BatchKind = iota // result or request batch
	BatchLog                    // engine log message
	BatchError                  // EXCEPTION batch
)

func classifyBatch(batch arrow.RecordBatch) (BatchKind, arrow.Metadata) {
	var meta arrow.Metadata
	if rb, ok := batch.(arrow.RecordBatchWithMetadata); ok {
		meta = rb.Metadata()
	}
	level, ok := meta.GetValue(MetaLogLevel)
	if !ok || batch.NumRows() != 0 {
		return BatchData, meta
	}
	if LogLevel(level) == LogException {
		return BatchError, meta
	}
	return BatchLog, meta
}

// Request is a parsed call read from the wire.
type Request struct {
	Method    string
	Version   string
	RequestID string
	LogLevel  LogLevel
	Batch     arrow.RecordBatch
	Metadata  map[string]string
}

// WriteRequest writes one call as a complete IPC stream. params is a struct
// with `dpf` tags, or nil for a call without parameters. meta is copied into
// the batch metadata after the protocol keys.
func WriteRequest(w io.Writer, method string, params any, meta map[string]string) error {
	var batch arrow.RecordBatch
	if params == nil {
		batch = emptyBatch(arrow.NewSchema(nil, nil))
	} else {
		var err error
		if batch, err = EncodeParams(params); err != nil {
			return fmt.Errorf("encoding %s params: %w", method, err)
		}
	}
	defer batch.Release()

	keys := []string{MetaMethod, MetaRequestVersion}
	vals := []string{method, ProtocolVersion}
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		keys = append(keys, k)
		vals = append(vals, meta[k])
	}
	withMeta := array.NewRecordBatchWithMetadata(batch.Schema(), batch.Columns(), batch.NumRows(), arrow.NewMetadata(keys, vals))
	defer withMeta.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(batch.Schema()))
	if err := writer.Write(withMeta); err != nil {
		return fmt.Errorf("writing request batch: %w", err)
	}
	return writer.Close()
}

// ReadRequest reads one complete IPC stream and validates its metadata.
// It returns io.EOF when the stream ends cleanly before a new request.
func ReadRequest(r io.Reader) (*Request, error) {
	reader, err := ipc.NewReader(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading request IPC stream: %w", err)
	}
	defer reader.Release()

	if !reader.Next() {
		if err := reader.Err(); err != nil {
			return nil, fmt.Errorf("reading request batch: %w", err)
		}
		return nil, io.EOF
	}

	batch := reader.RecordBatch()
	batch.Retain()

	// drain to end of stream so the next request starts cleanly
	for reader.Next() {
	}

	_, meta := classifyBatch(batch)

	method, ok := meta.GetValue(MetaMethod)
	if !ok {
		batch.Release()
		return nil, &RemoteError{
			Type:    "ProtocolError",
			Message: fmt.Sprintf("missing %q in request batch metadata", MetaMethod),
		}
	}
	version, ok := meta.GetValue(MetaRequestVersion)
	if !ok {
		batch.Release()
		return nil, &RemoteError{
			Type:    "VersionError",
			Message: fmt.Sprintf("missing %q in request batch metadata", MetaRequestVersion),
		}
	}
	if version != ProtocolVersion {
		batch.Release()
		return nil, &RemoteError{
			Type:    "VersionError",
			Message: fmt.Sprintf("unsupported request version %q, expected %q", version, ProtocolVersion),
		}
	}
	if batch.Schema().NumFields() > 0 && batch.NumRows() != 1 {
		batch.Release()
		return nil, &RemoteError{
			Type:    "ProtocolError",
			Message: fmt.Sprintf("expected 1 row in request batch, got %d", batch.NumRows()),
		}
	}

	requestID, _ := meta.GetValue(MetaRequestID)
	logLevel, _ := meta.GetValue(MetaLogLevel)

	metaMap := make(map[string]string, meta.Len())
	for i := range meta.Len() {
		metaMap[meta.Keys()[i]] = meta.Values()[i]
	}

	return &Request{
		Method:    method,
		Version:   version,
		RequestID: requestID,
		LogLevel:  LogLevel(logLevel),
		Batch:     batch,
		Metadata:  metaMap,
	}, nil
}

// emptyBatch creates a zero-row batch with the given schema.
func emptyBatch(schema *arrow.Schema) arrow.RecordBatch {
	mem := memory.NewGoAllocator()
	cols := make([]arrow.Array, schema.NumFields())
	for i, f := range schema.Fields() {
		b := array.NewBuilder(mem, f.Type)
		cols[i] = b.NewArray()
		b.Release()
	}
	batch := array.NewRecordBatch(schema, cols, 0)
	for _, c := range cols {
		c.Release()
	}
	return batch
}

func writeMetaBatch(w *ipc.Writer, schema *arrow.Schema, keys, vals []string, serverID, requestID string) error {
	if serverID != "" {
		keys = append(keys, MetaServerID)
		vals = append(vals, serverID)
	}
	if requestID != "" {
		keys = append(keys, MetaRequestID)
		vals = append(vals, requestID)
	}
	batch := emptyBatch(schema)
	defer batch.Release()

	withMeta := array.NewRecordBatchWithMetadata(schema, batch.Columns(), 0, arrow.NewMetadata(keys, vals))
	defer withMeta.Release()
	return w.Write(withMeta)
}

// writeLogBatch writes a zero-row batch carrying one log message.
func writeLogBatch(w *ipc.Writer, schema *arrow.Schema, msg LogMessage, serverID, requestID string) error {
	keys := []string{MetaLogLevel, MetaLogMessage}
	vals := []string{string(msg.Level), msg.Message}
	if len(msg.Extras) > 0 {
		extra, err := json.Marshal(msg.Extras)
		if err != nil {
			extra = []byte(`{}`)
		}
		keys = append(keys, MetaLogExtra)
		vals = append(vals, string(extra))
	}
	return writeMetaBatch(w, schema, keys, vals, serverID, requestID)
}

// writeErrorBatch writes a zero-row EXCEPTION batch for err.
func writeErrorBatch(w *ipc.Writer, schema *arrow.Schema, err error, serverID, requestID string, debug bool) error {
	keys := []string{MetaLogLevel, MetaLogMessage, MetaLogExtra}
	vals := []string{string(LogException), errorMessage(err), buildErrorExtra(err, debug)}
	return writeMetaBatch(w, schema, keys, vals, serverID, requestID)
}

// WriteResponse writes log batches followed by the result batch as one
// complete IPC stream.
func WriteResponse(w io.Writer, schema *arrow.Schema, logs []LogMessage, result arrow.RecordBatch, serverID, requestID string) error {
	writer := ipc.NewWriter(w, ipc.WithSchema(schema))
	for _, msg := range logs {
		if err := writeLogBatch(writer, schema, msg, serverID, requestID); err != nil {
			writer.Close()
			return fmt.Errorf("writing log batch: %w", err)
		}
	}
	var keys, vals []string
	if serverID != "" {
		keys = append(keys, MetaServerID)
		vals = append(vals, serverID)
	}
	if requestID != "" {
		keys = append(keys, MetaRequestID)
		vals = append(vals, requestID)
	}
	if len(keys) > 0 {
		result = array.NewRecordBatchWithMetadata(schema, result.Columns(), result.NumRows(), arrow.NewMetadata(keys, vals))
		defer result.Release()
	}
	if err := writer.Write(result); err != nil {
		writer.Close()
		return fmt.Errorf("writing result batch: %w", err)
	}
	return writer.Close()
}

// WriteVoidResponse writes logs and a zero-row empty-schema result.
func WriteVoidResponse(w io.Writer, logs []LogMessage, serverID, requestID string) error {
	schema := arrow.NewSchema(nil, nil)
	batch := emptyBatch(schema)
	defer batch.Release()
	return WriteResponse(w, schema, logs, batch, serverID, requestID)
}

// WriteErrorResponse writes logs followed by an EXCEPTION batch.
func WriteErrorResponse(w io.Writer, schema *arrow.Schema, logs []LogMessage, err error, serverID, requestID string, debug bool) error {
	if schema == nil {
		schema = arrow.NewSchema(nil, nil)
	}
	writer := ipc.NewWriter(w, ipc.WithSchema(schema))
	for _, msg := range logs {
		if werr := writeLogBatch(writer, schema, msg, serverID, requestID); werr != nil {
			writer.Close()
			return fmt.Errorf("writing log batch: %w", werr)
		}
	}
	if werr := writeErrorBatch(writer, schema, err, serverID, requestID, debug); werr != nil {
		writer.Close()
		return fmt.Errorf("writing error batch: %w", werr)
	}
	return writer.Close()
}

// Response is a decoded reply stream.
type Response struct {
	// Result is the data batch, nil when the call failed. The caller owns it.
	Result arrow.RecordBatch
	Logs   []LogMessage
	// Err is the engine exception, if any.
	Err *RemoteError
	// Metadata of the result batch.
	Metadata arrow.Metadata
	Batches  int64
}

// ReadResponse reads one complete reply stream.
func ReadResponse(r io.Reader) (*Response, error) {
	reader, err := ipc.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response IPC stream: %v", ErrProtocol, err)
	}
	defer reader.Release()

	resp := &Response{}
	for reader.Next() {
		batch := reader.RecordBatch()
		resp.Batches++
		kind, meta := classifyBatch(batch)
		switch kind {
		case BatchError:
			msg, _ := meta.GetValue(MetaLogMessage)
			extra, _ := meta.GetValue(MetaLogExtra)
			reqID, _ := meta.GetValue(MetaRequestID)
			resp.Err = parseErrorExtra(msg, extra, reqID)
		case BatchLog:
			resp.Logs = append(resp.Logs, logFromMetadata(meta))
		default:
			if resp.Result != nil {
				resp.Result.Release()
			}
			batch.Retain()
			resp.Result = batch
			resp.Metadata = meta
		}
	}
	if err := reader.Err(); err != nil && !errors.Is(err, io.EOF) {
		resp.release()
		return nil, fmt.Errorf("%w: reading response batch: %v", ErrProtocol, err)
	}
	if resp.Err == nil && resp.Result == nil {
		return nil, fmt.Errorf("%w: response carried neither result nor error", ErrProtocol)
	}
	return resp, nil
}

func (r *Response) release() {
	if r.Result != nil {
		r.Result.Release()
		r.Result = nil
	}
}

func logFromMetadata(meta arrow.Metadata) LogMessage {
	level, _ := meta.GetValue(MetaLogLevel)
	msg, _ := meta.GetValue(MetaLogMessage)
	out := LogMessage{Level: LogLevel(level), Message: msg}
	if extra, ok := meta.GetValue(MetaLogExtra); ok && extra != "" {
		_ = json.Unmarshal([]byte(extra), &out.Extras)
	}
	return out
}
