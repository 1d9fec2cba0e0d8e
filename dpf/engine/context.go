// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/TheGoldfish01/dpf-go/dpf"
)

// CallContext provides request-scoped information and logging to method
// handlers.
type CallContext struct {
	// RequestID is the client-supplied identifier for this request, echoed in
	// all response metadata.
	RequestID string
	// ServerID is the server identifier set via [Server.SetServerID].
	ServerID string
	// Method is the wire method being invoked.
	Method string
	// LogLevel is the client-requested threshold. Messages below it are
	// discarded by [CallContext.ClientLog].
	LogLevel dpf.LogLevel
	logs     []dpf.LogMessage
}

// ClientLog records a log message that will be sent to the client.
func (cc *CallContext) ClientLog(level dpf.LogLevel, msg string, extras ...dpf.KV) {
	if !cc.LogLevel.Enabled(level) {
		return
	}
	cc.logs = append(cc.logs, dpf.NewLogMessage(level, msg, extras...))
}

// drainLogs returns and clears all accumulated log messages.
func (cc *CallContext) drainLogs() []dpf.LogMessage {
	logs := cc.logs
	cc.logs = nil
	return logs
}

// Call is what a Kernel sees of one operator evaluation: the resolved input
// values and the output slots to fill.
type Call struct {
	*CallContext
	// Operator is the engine operator name.
	Operator string
	// OperatorID is the evaluated instance.
	OperatorID string

	spec    *dpf.Specification
	config  *dpf.Config
	inputs  map[int]dpf.PinValue
	outputs map[int]dpf.PinValue
}

// Input returns the value connected to pin, with upstream outputs already
// evaluated.
func (c *Call) Input(pin int) (dpf.PinValue, bool) {
	v, ok := c.inputs[pin]
	return v, ok
}

// Inputs returns a copy of all connected input values.
func (c *Call) Inputs() map[int]dpf.PinValue {
	return maps.Clone(c.inputs)
}

// Specification returns the operator's pin specification.
func (c *Call) Specification() *dpf.Specification { return c.spec }

// Config returns the instance configuration.
func (c *Call) Config() *dpf.Config { return c.config }

// SetOutput stores v on output pin. v is anything dpf.ValueOf accepts; its
// type must be produced by the pin.
func (c *Call) SetOutput(pin int, v any) error {
	spec, ok := c.spec.OutputPin(pin)
	if !ok {
		return &dpf.RemoteError{Type: "ValueError", Message: fmt.Sprintf("%s has no output pin %d", c.Operator, pin)}
	}
	pv, err := dpf.ValueOf(v)
	if err != nil {
		return &dpf.RemoteError{Type: "TypeError", Message: err.Error()}
	}
	if !spec.Accepts(pv.TypeName) {
		return &dpf.RemoteError{
			Type:    "TypeError",
			Message: fmt.Sprintf("%s output pin %d (%s) cannot hold %s", c.Operator, pin, spec.Name, pv.TypeName),
		}
	}
	c.outputs[pin] = pv
	return nil
}

// NewEntity allocates a handle for a new engine-side object.
func (c *Call) NewEntity(typeName string) dpf.Entity {
	return dpf.Entity{Type: typeName, ID: uuid.New().String()}
}
