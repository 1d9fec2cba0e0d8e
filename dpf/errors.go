// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors returned by the client runtime.
var (
	// ErrInvalidPinType is returned when a value's type name is not in the
	// accepted set of the pin it is connected to.
	ErrInvalidPinType = errors.New("dpf: invalid pin type")
	// ErrUnknownPin is returned for a pin index the specification does not declare.
	ErrUnknownPin = errors.New("dpf: unknown pin")
	// ErrNoMatchingPin is returned by Inputs.Connect when no pin accepts the value.
	ErrNoMatchingPin = errors.New("dpf: no input pin accepts value")
	// ErrAmbiguousPin is returned by Inputs.Connect when several unconnected
	// pins accept the value.
	ErrAmbiguousPin = errors.New("dpf: pin connection is ambiguous")
	// ErrOperatorReleased is returned for calls on a released operator.
	ErrOperatorReleased = errors.New("dpf: operator released")
	// ErrProtocol is wrapped by every malformed-response error.
	ErrProtocol = errors.New("dpf: protocol error")
	// ErrUnsupportedValue is returned when a Go value has no engine type name.
	ErrUnsupportedValue = errors.New("dpf: unsupported value")

	// ErrRemote matches any *RemoteError with errors.Is.
	ErrRemote = &RemoteError{}
)

// RemoteError is an exception reported by the engine.
type RemoteError struct {
	Type      string // e.g. "ValueError", "KeyError"
	Message   string
	Traceback string
	RequestID string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Is supports errors.Is by matching any *RemoteError target.
func (e *RemoteError) Is(target error) bool {
	_, ok := target.(*RemoteError)
	return ok
}

// PinError describes a rejected pin connection.
type PinError struct {
	Operator string
	Pin      int
	Name     string
	Got      string
	Accepted []string
	Err      error
}

func (e *PinError) Error() string {
	if e.Pin < 0 {
		return fmt.Sprintf("%v: operator %q, got %s", e.Err, e.Operator, e.Got)
	}
	if e.Got == "" {
		return fmt.Sprintf("%v: operator %q pin %d (%s)", e.Err, e.Operator, e.Pin, e.Name)
	}
	return fmt.Sprintf("%v: operator %q pin %d (%s) accepts [%s], got %s",
		e.Err, e.Operator, e.Pin, e.Name, strings.Join(e.Accepted, ", "), e.Got)
}

func (e *PinError) Unwrap() error { return e.Err }

// stackFrame is one frame of a Go stack in an error batch's log_extra.
type stackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// errorExtra is the JSON document written to dpf.log_extra for EXCEPTION batches.
type errorExtra struct {
	ExceptionType    string       `json:"exception_type"`
	ExceptionMessage string       `json:"exception_message"`
	Traceback        string       `json:"traceback,omitempty"`
	Frames           []stackFrame `json:"frames,omitempty"`
}

// errorType names an error for the wire. RemoteError keeps its engine type.
func errorType(err error) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Type != "" {
		return re.Type
	}
	var pe *PinError
	if errors.As(err, &pe) {
		return "TypeError"
	}
	return fmt.Sprintf("%T", err)
}

// errorMessage is the message sent alongside errorType.
func errorMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) && re == err {
		return re.Message
	}
	return err.Error()
}

// buildErrorExtra renders the log_extra JSON for err. Stack details are
// only included when debug is set.
func buildErrorExtra(err error, debug bool) string {
	extra := errorExtra{
		ExceptionType:    errorType(err),
		ExceptionMessage: errorMessage(err),
	}
	if debug {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		extra.Traceback = string(buf[:n])

		pcs := make([]uintptr, 10)
		n = runtime.Callers(3, pcs)
		frames := runtime.CallersFrames(pcs[:n])
		for len(extra.Frames) < 5 {
			frame, more := frames.Next()
			extra.Frames = append(extra.Frames, stackFrame{
				File:     frame.File,
				Line:     frame.Line,
				Function: frame.Function,
			})
			if !more {
				break
			}
		}
	}
	data, _ := json.Marshal(extra)
	return string(data)
}

// parseErrorExtra rebuilds a RemoteError from an EXCEPTION batch.
func parseErrorExtra(message, extraJSON, requestID string) *RemoteError {
	re := &RemoteError{Type: "RemoteError", Message: message, RequestID: requestID}
	if extraJSON == "" {
		return re
	}
	var extra errorExtra
	if err := json.Unmarshal([]byte(extraJSON), &extra); err != nil {
		return re
	}
	if extra.ExceptionType != "" {
		re.Type = extra.ExceptionType
	}
	if extra.ExceptionMessage != "" {
		re.Message = extra.ExceptionMessage
	}
	re.Traceback = extra.Traceback
	return re
}
