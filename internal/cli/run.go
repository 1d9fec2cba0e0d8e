// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/google/go-cmp/cmp"
	"github.com/mitchellh/go-wordwrap"

	"github.com/TheGoldfish01/dpf-go/dpf"
	dpfotel "github.com/TheGoldfish01/dpf-go/dpf/otel"
	"github.com/TheGoldfish01/dpf-go/operators"
)

// NewLogger builds the process logger from the log flags.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: dpf.LogLevel(strings.ToUpper(cfg.LogLevel)).SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// App runs one parsed command.
type App struct {
	out      io.Writer
	errOut   io.Writer
	logger   *slog.Logger
	registry *operators.Registry
}

// NewApp returns an App printing results to out and diagnostics to errOut.
func NewApp(out, errOut io.Writer, logger *slog.Logger) *App {
	return &App{out: out, errOut: errOut, logger: logger, registry: operators.NewRegistry()}
}

// Run executes cfg.Command.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	switch cfg.Command {
	case "ops":
		return a.ops()
	case "spec":
		return a.spec(cfg.Args[0])
	}

	client, shutdown, err := a.connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warn("Telemetry shutdown failed.", "error", err)
		}
	}()
	a.logger.Debug("Connected to engine.", "addr", cfg.Addr, "server_id", client.ServerID())

	infos, err := client.Describe(ctx)
	if err != nil {
		return fmt.Errorf("describing %s: %w", cfg.Addr, err)
	}
	slices.SortFunc(infos, func(x, y *dpf.OperatorInfo) int { return strings.Compare(x.Name, y.Name) })
	if cfg.Command == "describe" {
		return a.describe(infos)
	}
	return a.check(infos)
}

func (a *App) connect(ctx context.Context, cfg *Config) (*dpf.Client, func(context.Context) error, error) {
	transport, err := Dial(ctx, cfg.Addr)
	if err != nil {
		return nil, nil, &ExitError{Code: 1, Message: err.Error()}
	}
	cc := dpf.DefaultClientConfig()
	cc.RequestTimeout = cfg.Timeout
	cc.ServerLogLevel = dpf.LogLevel(strings.ToUpper(cfg.LogLevel))

	opts := []dpf.ClientOption{dpf.WithLogger(a.logger), dpf.WithClientConfig(cc)}
	shutdown := func(context.Context) error { return nil }
	if cfg.Trace {
		var otelCfg dpfotel.Config
		otelCfg, shutdown, err = setupTelemetry(a.errOut)
		if err != nil {
			_ = transport.Close()
			return nil, nil, err
		}
		opts = append(opts, dpfotel.InstrumentClient(otelCfg))
	}
	client, err := dpf.NewClient(transport, opts...)
	if err != nil {
		_ = transport.Close()
		return nil, nil, errors.Join(err, shutdown(ctx))
	}
	return client, shutdown, nil
}

// Dial opens a transport to addr: an http(s) URL, unix:PATH or
// exec:COMMAND [ARGS...].
func Dial(ctx context.Context, addr string) (dpf.Transport, error) {
	switch {
	case strings.HasPrefix(addr, "http://"), strings.HasPrefix(addr, "https://"):
		return dpf.NewHTTPTransport(addr, dpf.WithUserAgent(dpf.DefaultUserAgent))
	case strings.HasPrefix(addr, "unix:"):
		return dpf.DialUnix(ctx, strings.TrimPrefix(addr, "unix:"))
	case strings.HasPrefix(addr, "exec:"):
		argv := strings.Fields(strings.TrimPrefix(addr, "exec:"))
		if len(argv) == 0 {
			return nil, errors.New("exec address names no command")
		}
		return dpf.SpawnProcess(ctx, argv[0], argv[1:]...)
	default:
		return nil, fmt.Errorf("unsupported engine address %q", addr)
	}
}

func (a *App) ops() error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tENGINE NAME")
	for _, e := range a.registry.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Category, e.ScriptingName, e.Name)
	}
	return tw.Flush()
}

func (a *App) spec(name string) error {
	e, ok := a.registry.Lookup(name)
	if !ok {
		return &ExitError{Code: 1, Message: fmt.Sprintf("unknown operator %q", name)}
	}
	fmt.Fprintf(a.out, "%s (engine name %s, category %s)\n", e.ScriptingName, e.Name, e.Category)
	if d := e.Specification.Description(); d != "" {
		fmt.Fprintf(a.out, "\n%s\n", wordwrap.WrapString(d, 76))
	}
	a.pins("Inputs", e.Specification.Inputs())
	a.pins("Outputs", e.Specification.Outputs())
	return nil
}

func (a *App) pins(title string, pins map[int]dpf.PinSpecification) {
	if len(pins) == 0 {
		return
	}
	fmt.Fprintf(a.out, "\n%s:\n", title)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, i := range sortedPins(pins) {
		p := pins[i]
		var flags []string
		if p.Optional {
			flags = append(flags, "optional")
		}
		if p.Ellipsis {
			flags = append(flags, "ellipsis")
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", i, p.Name, strings.Join(p.TypeNames, "|"), strings.Join(flags, ","))
		if p.Document != "" {
			for _, line := range strings.Split(wordwrap.WrapString(p.Document, 68), "\n") {
				fmt.Fprintf(tw, "\t\t%s\t\n", line)
			}
		}
	}
	tw.Flush()
}

func sortedPins(pins map[int]dpf.PinSpecification) []int {
	out := make([]int, 0, len(pins))
	for i := range pins {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

func (a *App) describe(infos []*dpf.OperatorInfo) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINPUTS\tOUTPUTS\tDESCRIPTION")
	for _, info := range infos {
		desc, _, _ := strings.Cut(info.Specification.Description(), "\n")
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", info.Name,
			len(info.Specification.InputPins()), len(info.Specification.OutputPins()), desc)
	}
	return tw.Flush()
}

// Mismatches compares the bindings in r with the operators an engine
// serves. The result is empty when they agree.
func Mismatches(r *operators.Registry, infos []*dpf.OperatorInfo) []string {
	var out []string
	served := make(map[string]bool, len(infos))
	for _, info := range infos {
		served[info.Name] = true
		e, ok := r.Lookup(info.Name)
		if !ok {
			out = append(out, fmt.Sprintf("%s: served by the engine but has no binding", info.Name))
			continue
		}
		if diff := cmp.Diff(e.Specification.Inputs(), info.Specification.Inputs()); diff != "" {
			out = append(out, fmt.Sprintf("%s: input pins differ (-binding +engine):\n%s", info.Name, diff))
		}
		if diff := cmp.Diff(e.Specification.Outputs(), info.Specification.Outputs()); diff != "" {
			out = append(out, fmt.Sprintf("%s: output pins differ (-binding +engine):\n%s", info.Name, diff))
		}
	}
	for _, name := range r.Names() {
		if !served[name] {
			out = append(out, fmt.Sprintf("%s: has a binding but is not served by the engine", name))
		}
	}
	return out
}

func (a *App) check(infos []*dpf.OperatorInfo) error {
	problems := Mismatches(a.registry, infos)
	for _, p := range problems {
		fmt.Fprintln(a.out, p)
	}
	if len(problems) > 0 {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%d binding mismatch(es)", len(problems))}
	}
	fmt.Fprintf(a.out, "%d operators match the engine\n", len(infos))
	return nil
}
