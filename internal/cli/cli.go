// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ExitError carries the process exit code for a failure.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Config is the parsed command line.
type Config struct {
	Command   string        `validate:"oneof=ops spec describe check"`
	Args      []string      `validate:"-"`
	Addr      string        `validate:"required_if=Command describe,required_if=Command check"`
	LogFormat string        `validate:"oneof=text json"`
	LogLevel  string        `validate:"oneof=debug info warn error"`
	Timeout   time.Duration `validate:"gte=0"`
	Trace     bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

const usage = `
dpf - inspect the DPF operator bindings and the engines that serve them.

Usage:
  dpf [options] ops
  dpf [options] spec NAME
  dpf [options] -addr ADDR describe
  dpf [options] -addr ADDR check

Commands:
  ops        List the operators with generated bindings.
  spec       Print the pin specification of one operator.
  describe   List the operators an engine serves.
  check      Compare the bindings with the engine's catalog.

ADDR is http(s)://HOST[:PORT], unix:PATH or exec:COMMAND [ARGS...].

Options:
`

// Parse processes command-line arguments. It returns the Config, whether
// the program should exit cleanly right away, or an *ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("dpf", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	addrFlag := flagSet.String("addr", "", "Engine address for describe and check.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	timeoutFlag := flagSet.Duration("timeout", 30*time.Second, "Per-call timeout. 0 disables it.")
	traceFlag := flagSet.Bool("trace", false, "Print OpenTelemetry spans and metrics of engine calls to stderr.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := &Config{
		Command:   flagSet.Arg(0),
		Args:      flagSet.Args()[1:],
		Addr:      *addrFlag,
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
		Timeout:   *timeoutFlag,
		Trace:     *traceFlag,
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}

// Validate checks the flag values and the arguments of the command.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if verrs[0].Tag() == "required_if" {
				return fmt.Errorf("%s requires -%s", c.Command, flagName(verrs[0].Field()))
			}
			return fmt.Errorf("invalid %s: %q", flagName(verrs[0].Field()), fmt.Sprint(verrs[0].Value()))
		}
		return err
	}
	want := 0
	if c.Command == "spec" {
		want = 1
	}
	if len(c.Args) != want {
		return fmt.Errorf("%s takes %d argument(s), got %d", c.Command, want, len(c.Args))
	}
	return nil
}

func flagName(field string) string {
	switch field {
	case "LogFormat":
		return "log-format"
	case "LogLevel":
		return "log-level"
	case "Addr":
		return "addr"
	case "Command":
		return "command"
	default:
		return strings.ToLower(field)
	}
}
