// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine hosts operators behind the dpf wire protocol. It backs the
// conformance engine and the client tests; numerical kernels are supplied
// by the caller.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"reflect"
	"slices"
	"strings"
	"sync"
	"syscall"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// Kernel computes the outputs of one operator evaluation.
type Kernel func(ctx context.Context, call *Call) error

// Registration describes an operator the engine can instantiate.
type Registration struct {
	// Name is the engine (internal) operator name.
	Name          string
	Specification *dpf.Specification
	Kernel        Kernel
	// DefaultConfig is returned by operator.default_config and used for
	// instances created without a configuration. May be nil.
	DefaultConfig *dpf.Config
}

// methodInfo stores the registration details for one wire method.
type methodInfo struct {
	Name         string
	ParamsType   reflect.Type
	ResultType   reflect.Type // nil for void
	ParamsSchema *arrow.Schema
	ResultSchema *arrow.Schema
	Handler      reflect.Value // func(context.Context, *CallContext, P) (R, error) or void form
}

// Server dispatches wire requests to the built-in operator methods.
type Server struct {
	methods      map[string]*methodInfo
	serverID     string
	serviceName  string
	dispatchHook dpf.CallHook
	debugErrors  bool

	mu        sync.Mutex
	operators map[string]*Registration
	instances map[string]*instance
}

// NewServer creates a server with no operators registered.
func NewServer() *Server {
	s := &Server{
		methods:   make(map[string]*methodInfo),
		operators: make(map[string]*Registration),
		instances: make(map[string]*instance),
	}
	s.registerMethods()
	return s
}

// SetServerID sets a server identifier included in response metadata.
func (s *Server) SetServerID(id string) {
	s.serverID = id
}

// ServerID returns the identifier set with SetServerID.
func (s *Server) ServerID() string {
	return s.serverID
}

// SetServiceName sets a logical service name used by observability hooks.
func (s *Server) SetServiceName(name string) {
	s.serviceName = name
}

// ServiceName returns the logical service name, or empty string if not set.
func (s *Server) ServiceName() string {
	return s.serviceName
}

// serviceLabel is the name shown on HTML pages.
func (s *Server) serviceLabel() string {
	if s.serviceName != "" {
		return s.serviceName
	}
	return ProtocolName
}

// SetDispatchHook registers a hook that is called around each dispatch.
func (s *Server) SetDispatchHook(hook dpf.CallHook) {
	s.dispatchHook = hook
}

// SetDebugErrors controls whether error responses include full stack traces
// with file paths and function names. Leave it off for engines reachable
// from untrusted networks.
func (s *Server) SetDebugErrors(enabled bool) {
	s.debugErrors = enabled
}

// Register adds an operator. It panics on an incomplete or duplicate
// registration.
func (s *Server) Register(reg Registration) {
	switch {
	case reg.Name == "":
		panic("engine: registering operator without a name")
	case reg.Specification == nil:
		panic(fmt.Sprintf("engine: registering %q: nil specification", reg.Name))
	case reg.Kernel == nil:
		panic(fmt.Sprintf("engine: registering %q: nil kernel", reg.Name))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.operators[reg.Name]; dup {
		panic(fmt.Sprintf("engine: registering %q: already registered", reg.Name))
	}
	reg.DefaultConfig = reg.DefaultConfig.Clone()
	s.operators[reg.Name] = &reg
}

// Operators returns the registered operator names in sorted order.
func (s *Server) Operators() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.operators))
	for name := range s.operators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Instances returns the number of live operator instances.
func (s *Server) Instances() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}

func (s *Server) lookupOperator(name string) (*Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.operators[name]
	if !ok {
		return nil, &dpf.RemoteError{Type: "KeyError", Message: fmt.Sprintf("operator %q is not registered", name)}
	}
	return reg, nil
}

// unary registers a method with typed parameters and return value.
func unary[P any, R any](s *Server, name string, handler func(context.Context, *CallContext, P) (R, error)) {
	var p P
	var r R
	paramsSchema, err := dpf.ParamsSchema(reflect.TypeOf(p))
	if err != nil {
		panic(fmt.Sprintf("engine: registering %q: invalid params type %T: %v", name, p, err))
	}
	resultSchema, err := dpf.ResultSchema(reflect.TypeOf(r))
	if err != nil {
		panic(fmt.Sprintf("engine: registering %q: invalid result type %T: %v", name, r, err))
	}
	s.methods[name] = &methodInfo{
		Name:         name,
		ParamsType:   reflect.TypeOf(p),
		ResultType:   reflect.TypeOf(r),
		ParamsSchema: paramsSchema,
		ResultSchema: resultSchema,
		Handler:      reflect.ValueOf(handler),
	}
}

// unaryVoid registers a method that returns no value.
func unaryVoid[P any](s *Server, name string, handler func(context.Context, *CallContext, P) error) {
	var p P
	paramsSchema, err := dpf.ParamsSchema(reflect.TypeOf(p))
	if err != nil {
		panic(fmt.Sprintf("engine: registering %q: invalid params type %T: %v", name, p, err))
	}
	s.methods[name] = &methodInfo{
		Name:         name,
		ParamsType:   reflect.TypeOf(p),
		ParamsSchema: paramsSchema,
		ResultSchema: arrow.NewSchema(nil, nil),
		Handler:      reflect.ValueOf(handler),
	}
}

// RunStdio runs the server loop reading from stdin and writing to stdout.
// If stdin or stdout is a terminal a warning is printed to stderr.
func (s *Server) RunStdio() {
	// Writes to a closed pipe must fail instead of killing the process.
	signal.Ignore(syscall.SIGPIPE)

	if isTerminal(os.Stdin) || isTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr,
			"WARNING: This process communicates via Arrow IPC on stdin/stdout "+
				"and is not intended to be run interactively.\n"+
				"It should be launched as a subprocess by a dpf client "+
				"(e.g. dpf.SpawnProcess).")
	}
	s.Serve(os.Stdin, os.Stdout)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Serve runs the server loop on the given reader/writer pair.
func (s *Server) Serve(r io.Reader, w io.Writer) {
	s.ServeWithContext(context.Background(), r, w)
}

// ServeWithContext runs the server loop until r is exhausted, the transport
// fails or ctx is cancelled.
func (s *Server) ServeWithContext(ctx context.Context, r io.Reader, w io.Writer) {
	for ctx.Err() == nil {
		err := s.serveOne(ctx, r, w)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if !isTransportClosed(err) {
				slog.Error("serve loop error", "err", err)
			}
			return
		}
	}
}

// serveOne handles one complete request-response cycle.
func (s *Server) serveOne(ctx context.Context, r io.Reader, w io.Writer) error {
	req, err := dpf.ReadRequest(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		var re *dpf.RemoteError
		if errors.As(err, &re) {
			_ = dpf.WriteErrorResponse(w, nil, nil, re, s.serverID, "", s.debugErrors)
			return nil
		}
		return err
	}
	defer req.Batch.Release()

	_, transportErr := s.dispatch(ctx, w, req)
	return transportErr
}

// dispatch runs one request and writes its complete response stream to w.
// handlerErr is the application error reported to hooks.
func (s *Server) dispatch(ctx context.Context, w io.Writer, req *dpf.Request) (handlerErr, transportErr error) {
	info := dpf.CallInfo{
		Side:      dpf.SideServer,
		Method:    req.Method,
		ServerID:  s.serverID,
		RequestID: req.RequestID,
		Metadata:  req.Metadata,
	}
	stats := &dpf.CallStatistics{}
	stats.RecordRequest(1, dpf.BatchBufferSize(req.Batch))

	ctx, token, active := dpf.StartHook(ctx, s.dispatchHook, info)
	if active {
		defer func() { dpf.EndHook(ctx, s.dispatchHook, token, info, stats, handlerErr) }()
	}

	if req.Method == dpf.MethodDescribe {
		return nil, s.serveDescribe(w, req, stats)
	}

	method, ok := s.methods[req.Method]
	if !ok {
		handlerErr = &dpf.RemoteError{
			Type:    "AttributeError",
			Message: fmt.Sprintf("Unknown method: '%s'. Available methods: %v", req.Method, s.availableMethods()),
		}
		return handlerErr, dpf.WriteErrorResponse(w, nil, nil, handlerErr, s.serverID, req.RequestID, s.debugErrors)
	}
	return s.serveUnary(ctx, w, req, method, stats)
}

// serveUnary decodes parameters, calls the handler and writes the result.
func (s *Server) serveUnary(ctx context.Context, w io.Writer, req *dpf.Request, method *methodInfo, stats *dpf.CallStatistics) (handlerErr, transportErr error) {
	params := reflect.New(method.ParamsType)
	if err := dpf.DecodeParams(req.Batch, params.Interface()); err != nil {
		handlerErr = &dpf.RemoteError{Type: "TypeError", Message: fmt.Sprintf("parameter deserialization: %v", err)}
		return handlerErr, dpf.WriteErrorResponse(w, method.ResultSchema, nil, handlerErr, s.serverID, req.RequestID, s.debugErrors)
	}

	callCtx := &CallContext{
		RequestID: req.RequestID,
		ServerID:  s.serverID,
		Method:    req.Method,
		LogLevel:  req.LogLevel,
	}
	if callCtx.LogLevel == "" {
		callCtx.LogLevel = dpf.LogTrace // client filters
	}

	var resultVal reflect.Value
	callErr := func() (err error) {
		defer func() {
			if rv := recover(); rv != nil {
				err = &dpf.RemoteError{Type: "RuntimeError", Message: fmt.Sprintf("%v", rv)}
			}
		}()
		results := method.Handler.Call([]reflect.Value{
			reflect.ValueOf(ctx),
			reflect.ValueOf(callCtx),
			params.Elem(),
		})
		errVal := results[len(results)-1]
		if len(results) == 2 {
			resultVal = results[0]
		}
		if !errVal.IsNil() {
			return errVal.Interface().(error)
		}
		return nil
	}()

	logs := callCtx.drainLogs()
	stats.Logs = int64(len(logs))

	if callErr != nil {
		return callErr, dpf.WriteErrorResponse(w, method.ResultSchema, logs, callErr, s.serverID, req.RequestID, s.debugErrors)
	}
	if method.ResultType == nil {
		stats.RecordResponse(int64(len(logs))+1, 0)
		return nil, dpf.WriteVoidResponse(w, logs, s.serverID, req.RequestID)
	}

	resultBatch, err := dpf.EncodeResult(method.ResultSchema, resultVal.Interface())
	if err != nil {
		handlerErr = &dpf.RemoteError{Type: "SerializationError", Message: fmt.Sprintf("result serialization: %v", err)}
		return handlerErr, dpf.WriteErrorResponse(w, method.ResultSchema, logs, handlerErr, s.serverID, req.RequestID, s.debugErrors)
	}
	defer resultBatch.Release()

	stats.RecordResponse(int64(len(logs))+1, dpf.BatchBufferSize(resultBatch))
	return nil, dpf.WriteResponse(w, method.ResultSchema, logs, resultBatch, s.serverID, req.RequestID)
}

// isTransportClosed returns true for errors that indicate the transport was
// closed normally.
func isTransportClosed(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "EOF")
}

func (s *Server) availableMethods() []string {
	names := make([]string, 0, len(s.methods)+1)
	for name := range s.methods {
		names = append(names, name)
	}
	names = append(names, dpf.MethodDescribe)
	slices.Sort(names)
	return names
}
