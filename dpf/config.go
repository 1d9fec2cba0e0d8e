// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client defaults.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultServerLogLevel = LogWarn
	DefaultUserAgent      = "dpf-go"
	DefaultBurst          = 1
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RateLimit caps the rate of outgoing calls. A zero RequestsPerSecond
// disables limiting.
type RateLimit struct {
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gte=0"`
	Burst             int     `json:"burst" validate:"gte=0"`
}

// ClientConfig holds the tunables of a Client.
type ClientConfig struct {
	// RequestTimeout bounds every call. Zero means calls are bounded only by
	// the caller's context.
	RequestTimeout time.Duration `json:"request_timeout" validate:"gte=0"`
	// ServerLogLevel is the most verbose engine log level relayed back.
	ServerLogLevel LogLevel  `json:"server_log_level" validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE"`
	RateLimit      RateLimit `json:"rate_limit"`
	UserAgent      string    `json:"user_agent" validate:"max=256"`
}

// DefaultClientConfig returns the configuration used when none is given.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		RequestTimeout: DefaultRequestTimeout,
		ServerLogLevel: DefaultServerLogLevel,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks field constraints and the burst required by a limit.
func (c ClientConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst == 0 {
		return errors.New("invalid client config: rate limit burst must be positive when requests_per_second is set")
	}
	return nil
}

// ConfigOption is one named option of an operator configuration.
type ConfigOption struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Document string `json:"document,omitempty"`
}

// Config is the ordered option set of an operator. The engine stores option
// values as strings; Set formats Go values accordingly.
type Config struct {
	options []ConfigOption
}

// NewConfig returns a Config holding opts in order.
func NewConfig(opts ...ConfigOption) *Config {
	return &Config{options: slices.Clone(opts)}
}

// Set assigns value to the named option, appending it when absent.
func (c *Config) Set(name string, value any) {
	s := formatOption(value)
	for i := range c.options {
		if c.options[i].Name == name {
			c.options[i].Value = s
			return
		}
	}
	c.options = append(c.options, ConfigOption{Name: name, Value: s})
}

// Get returns the value of the named option. A nil Config holds none.
func (c *Config) Get(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, o := range c.options {
		if o.Name == name {
			return o.Value, true
		}
	}
	return "", false
}

// Bool parses the named option as a boolean.
func (c *Config) Bool(name string) (bool, error) {
	v, ok := c.Get(name)
	if !ok {
		return false, fmt.Errorf("config option %q not set", name)
	}
	return strconv.ParseBool(v)
}

// Document returns the documentation of the named option.
func (c *Config) Document(name string) string {
	for _, o := range c.options {
		if o.Name == name {
			return o.Document
		}
	}
	return ""
}

// Options returns a copy of the options in order.
func (c *Config) Options() []ConfigOption {
	if c == nil {
		return nil
	}
	return slices.Clone(c.options)
}

// Clone returns an independent copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	return NewConfig(c.options...)
}

// MarshalJSON implements json.Marshaler.
func (c *Config) MarshalJSON() ([]byte, error) {
	if c == nil || c.options == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.options)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Config) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.options)
}

func formatOption(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
