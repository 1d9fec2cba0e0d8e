// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package dpf is the client runtime for a remote DPF operator engine.
//
// An operator is a named computation living inside the engine. It exposes
// numbered input and output pins; each pin declares the set of type names it
// accepts. This package holds the generic pin-connection contract shared by
// every generated binding under the operators/ tree:
//
//   - [Specification] and [PinSpecification] describe an operator's pins.
//   - [Operator] is the client-side handle of a remote operator instance.
//   - [Input] connects a value to one input pin after checking its type name.
//   - [Output] evaluates one output pin and decodes the result.
//
// # Wire protocol
//
// Every call is one Apache Arrow IPC stream carrying a single 1-row batch.
// The batch custom metadata names the method ("dpf.method"), the protocol
// version ("dpf.request_version") and a request identifier. Parameters are
// declared as Go structs with `dpf` struct tags:
//
//	`dpf:"wire_name[,option[,option...]]"`
//
// Supported options:
//
//   - default=VALUE  default used when the column is absent or null
//   - int32          encode an int field as Arrow Int32
//   - binary         encode a [WireRecord] value as embedded IPC bytes
//
// Responses are a single IPC stream made of zero-row log batches followed by
// either one result batch or one EXCEPTION batch. EXCEPTION batches surface
// as [*RemoteError].
//
// # Transports
//
// [NewStreamTransport] speaks the protocol on any byte stream (a unix socket
// from [DialUnix], or the stdio pipes of an engine started with
// [SpawnProcess]). [NewHTTPTransport] posts each call to
// {base}/dpf/{method} with Content-Type application/vnd.apache.arrow.stream
// and accepts zstd-compressed responses.
package dpf
