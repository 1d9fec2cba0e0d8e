// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Channel is the call surface of a DPF engine as seen by operators.
type Channel interface {
	CreateOperator(ctx context.Context, name string, config *Config) (string, error)
	Connect(ctx context.Context, operatorID string, pin int, value PinValue) error
	Evaluate(ctx context.Context, operatorID string, pin int, typeName string) (PinValue, error)
	Run(ctx context.Context, operatorID string) error
	Release(ctx context.Context, operatorID string) error
	DefaultConfig(ctx context.Context, name string) (*Config, error)
	Specification(ctx context.Context, name string) (*Specification, error)
	Describe(ctx context.Context) ([]*OperatorInfo, error)
}

// OperatorInfo is one entry of the engine's operator catalog.
type OperatorInfo struct {
	Name          string         `json:"name"`
	Specification *Specification `json:"specification"`
	DefaultConfig *Config        `json:"default_config,omitempty"`
}

// Parameter and result shapes of each method.
type (
	CreateParams struct {
		Name   string `dpf:"name"`
		Config string `dpf:"config"` // JSON, empty for the engine default
	}
	OperatorParams struct {
		OperatorID string `dpf:"operator_id"`
	}
	ConnectParams struct {
		OperatorID string   `dpf:"operator_id"`
		Pin        int32    `dpf:"pin"`
		Value      PinValue `dpf:"value"`
	}
	EvaluateParams struct {
		OperatorID string `dpf:"operator_id"`
		Pin        int32  `dpf:"pin"`
		TypeName   string `dpf:"type_name"`
	}
	NameParams struct {
		Name string `dpf:"name"`
	}
)

// Columns of the __describe__ result batch.
const (
	DescribeColumnName          = "name"
	DescribeColumnDescription   = "description"
	DescribeColumnSpecification = "specification_json"
	DescribeColumnConfig        = "default_config_json"
)

// Client implements Channel over a Transport.
type Client struct {
	transport Transport
	config    ClientConfig
	logger    *slog.Logger
	hook      CallHook
	limiter   *rate.Limiter

	mu       sync.Mutex
	serverID string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger that receives engine log messages.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithClientConfig replaces DefaultClientConfig.
func WithClientConfig(cfg ClientConfig) ClientOption {
	return func(c *Client) { c.config = cfg }
}

// WithCallHook installs a hook invoked around every call.
func WithCallHook(h CallHook) ClientOption {
	return func(c *Client) { c.hook = h }
}

// NewClient returns a Client sending calls through t.
func NewClient(t Transport, opts ...ClientOption) (*Client, error) {
	c := &Client{
		transport: t,
		config:    DefaultClientConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if rl := c.config.RateLimit; rl.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.Burst)
	}
	return c, nil
}

// ServerID returns the engine identifier seen in the last response.
func (c *Client) ServerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverID
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// call sends one request and returns the decoded response. An engine
// exception is returned as a *RemoteError.
func (c *Client) call(ctx context.Context, method string, info CallInfo, params any) (resp *Response, err error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: rate limit: %w", method, err)
		}
	}
	if c.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()
	}

	info.Side = SideClient
	info.Method = method
	info.RequestID = uuid.New().String()
	info.Metadata = map[string]string{}

	stats := &CallStatistics{}
	ctx, token, active := StartHook(ctx, c.hook, info)
	if active {
		defer func() { EndHook(ctx, c.hook, token, info, stats, err) }()
	}

	meta := map[string]string{MetaRequestID: info.RequestID}
	if c.config.ServerLogLevel != "" {
		meta[MetaLogLevel] = string(c.config.ServerLogLevel)
	}
	for k, v := range info.Metadata {
		meta[k] = v
	}

	var buf bytes.Buffer
	if err := WriteRequest(&buf, method, params, meta); err != nil {
		return nil, err
	}
	stats.RecordRequest(1, int64(buf.Len()))

	body, err := c.transport.RoundTrip(ctx, method, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	resp, err = ReadResponse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	stats.RecordResponse(resp.Batches, int64(len(body)))
	stats.Logs = int64(len(resp.Logs))

	if id, ok := resp.Metadata.GetValue(MetaServerID); ok {
		c.mu.Lock()
		c.serverID = id
		c.mu.Unlock()
	}
	for _, msg := range resp.Logs {
		c.logEngineMessage(ctx, method, info.RequestID, msg)
	}
	if resp.Err != nil {
		resp.release()
		return nil, resp.Err
	}
	return resp, nil
}

func (c *Client) logEngineMessage(ctx context.Context, method, requestID string, msg LogMessage) {
	attrs := make([]slog.Attr, 0, len(msg.Extras)+2)
	attrs = append(attrs, slog.String("method", method), slog.String("request_id", requestID))
	for k, v := range msg.Extras {
		attrs = append(attrs, slog.String(k, v))
	}
	c.logger.LogAttrs(ctx, msg.Level.SlogLevel(), msg.Message, attrs...)
}

// callResult performs a call and decodes its result column into target.
func (c *Client) callResult(ctx context.Context, method string, info CallInfo, params, target any) error {
	resp, err := c.call(ctx, method, info, params)
	if err != nil {
		return err
	}
	defer resp.release()
	if err := DecodeResult(resp.Result, target); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func (c *Client) callVoid(ctx context.Context, method string, info CallInfo, params any) error {
	resp, err := c.call(ctx, method, info, params)
	if err != nil {
		return err
	}
	resp.release()
	return nil
}

// CreateOperator implements Channel.
func (c *Client) CreateOperator(ctx context.Context, name string, config *Config) (string, error) {
	params := CreateParams{Name: name}
	if config != nil {
		data, err := json.Marshal(config)
		if err != nil {
			return "", fmt.Errorf("encoding config of %s: %w", name, err)
		}
		params.Config = string(data)
	}
	var id string
	if err := c.callResult(ctx, MethodCreate, CallInfo{Operator: name}, params, &id); err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: engine returned an empty id for %s", ErrProtocol, name)
	}
	return id, nil
}

// Connect implements Channel.
func (c *Client) Connect(ctx context.Context, operatorID string, pin int, value PinValue) error {
	return c.callVoid(ctx, MethodConnect, CallInfo{OperatorID: operatorID},
		ConnectParams{OperatorID: operatorID, Pin: int32(pin), Value: value})
}

// Evaluate implements Channel.
func (c *Client) Evaluate(ctx context.Context, operatorID string, pin int, typeName string) (PinValue, error) {
	var v PinValue
	err := c.callResult(ctx, MethodEvaluate, CallInfo{OperatorID: operatorID},
		EvaluateParams{OperatorID: operatorID, Pin: int32(pin), TypeName: typeName}, &v)
	return v, err
}

// Run implements Channel.
func (c *Client) Run(ctx context.Context, operatorID string) error {
	return c.callVoid(ctx, MethodRun, CallInfo{OperatorID: operatorID}, OperatorParams{OperatorID: operatorID})
}

// Release implements Channel.
func (c *Client) Release(ctx context.Context, operatorID string) error {
	return c.callVoid(ctx, MethodRelease, CallInfo{OperatorID: operatorID}, OperatorParams{OperatorID: operatorID})
}

// DefaultConfig implements Channel.
func (c *Client) DefaultConfig(ctx context.Context, name string) (*Config, error) {
	var doc string
	if err := c.callResult(ctx, MethodDefaultConfig, CallInfo{Operator: name}, NameParams{Name: name}, &doc); err != nil {
		return nil, err
	}
	cfg := NewConfig()
	if err := json.Unmarshal([]byte(doc), cfg); err != nil {
		return nil, fmt.Errorf("%w: default config of %s: %v", ErrProtocol, name, err)
	}
	return cfg, nil
}

// Specification implements Channel.
func (c *Client) Specification(ctx context.Context, name string) (*Specification, error) {
	var doc string
	if err := c.callResult(ctx, MethodSpecification, CallInfo{Operator: name}, NameParams{Name: name}, &doc); err != nil {
		return nil, err
	}
	spec := &Specification{}
	if err := json.Unmarshal([]byte(doc), spec); err != nil {
		return nil, fmt.Errorf("%w: specification of %s: %v", ErrProtocol, name, err)
	}
	return spec, nil
}

// Describe implements Channel. The engine answers with one row per operator.
func (c *Client) Describe(ctx context.Context) ([]*OperatorInfo, error) {
	resp, err := c.call(ctx, MethodDescribe, CallInfo{}, nil)
	if err != nil {
		return nil, err
	}
	defer resp.release()
	infos, err := decodeDescribe(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MethodDescribe, err)
	}
	return infos, nil
}

func decodeDescribe(batch arrow.RecordBatch) ([]*OperatorInfo, error) {
	col := func(name string) (*array.String, error) {
		c, ok := columnByName(batch, name).(*array.String)
		if !ok {
			return nil, fmt.Errorf("%w: describe batch has no string column %q", ErrProtocol, name)
		}
		return c, nil
	}
	names, err := col(DescribeColumnName)
	if err != nil {
		return nil, err
	}
	specs, err := col(DescribeColumnSpecification)
	if err != nil {
		return nil, err
	}
	configs, err := col(DescribeColumnConfig)
	if err != nil {
		return nil, err
	}

	var errs []error
	infos := make([]*OperatorInfo, 0, batch.NumRows())
	for i := range int(batch.NumRows()) {
		info := &OperatorInfo{Name: names.Value(i), Specification: &Specification{}}
		if err := json.Unmarshal([]byte(specs.Value(i)), info.Specification); err != nil {
			errs = append(errs, fmt.Errorf("%w: specification of %s: %v", ErrProtocol, info.Name, err))
			continue
		}
		if !configs.IsNull(i) {
			info.DefaultConfig = NewConfig()
			if err := json.Unmarshal([]byte(configs.Value(i)), info.DefaultConfig); err != nil {
				errs = append(errs, fmt.Errorf("%w: default config of %s: %v", ErrProtocol, info.Name, err))
				continue
			}
		}
		infos = append(infos, info)
	}
	return infos, errors.Join(errs...)
}
