// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os/exec"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/ipc"
)

// Transport carries one encoded request to the engine and returns the
// complete encoded response stream.
type Transport interface {
	RoundTrip(ctx context.Context, method string, request []byte) ([]byte, error)
	Close() error
}

// StreamTransport runs calls one at a time over a byte stream. Each request
// and each response is a complete Arrow IPC stream written back to back.
type StreamTransport struct {
	mu     sync.Mutex
	rwc    io.ReadWriteCloser
	closed bool
	onDone func() error
}

// NewStreamTransport wraps a connected byte stream.
func NewStreamTransport(rwc io.ReadWriteCloser) *StreamTransport {
	return &StreamTransport{rwc: rwc}
}

// DialUnix connects to an engine listening on a unix socket.
func DialUnix(ctx context.Context, path string) (*StreamTransport, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", path, err)
	}
	return NewStreamTransport(conn), nil
}

// SpawnProcess starts an engine as a subprocess speaking the protocol on
// its stdin and stdout. Closing the transport closes stdin and waits for
// the process to exit.
func SpawnProcess(ctx context.Context, name string, args ...string) (*StreamTransport, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting engine %s: %w", name, err)
	}
	t := NewStreamTransport(&pipeConn{Reader: stdout, WriteCloser: stdin})
	t.onDone = cmd.Wait
	return t, nil
}

type pipeConn struct {
	io.Reader
	io.WriteCloser
}

// RoundTrip writes request and reads back exactly one response stream.
func (t *StreamTransport) RoundTrip(ctx context.Context, _ string, request []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, net.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A deadline on the context is honoured by closing the stream, which
	// unblocks the pending read. The transport is unusable afterwards.
	stop := context.AfterFunc(ctx, func() { t.rwc.Close() })
	defer stop()

	if _, err := t.rwc.Write(request); err != nil {
		return nil, t.wrapErr(ctx, fmt.Errorf("writing request: %w", err))
	}

	var buf bytes.Buffer
	reader, err := ipc.NewReader(io.TeeReader(t.rwc, &buf))
	if err != nil {
		return nil, t.wrapErr(ctx, fmt.Errorf("reading response: %w", err))
	}
	defer reader.Release()
	for reader.Next() {
	}
	if err := reader.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, t.wrapErr(ctx, fmt.Errorf("reading response: %w", err))
	}
	return buf.Bytes(), nil
}

func (t *StreamTransport) wrapErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		t.closed = true
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}

// Close closes the stream and, for a spawned engine, waits for it to exit.
func (t *StreamTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed && t.onDone == nil {
		return nil
	}
	t.closed = true
	err := t.rwc.Close()
	if t.onDone != nil {
		done := t.onDone
		t.onDone = nil
		if werr := done(); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}
