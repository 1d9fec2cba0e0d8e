// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Command dpfgen generates the operator bindings from the HCL catalog.
//
//	dpfgen -catalog operators/catalog.hcl -out operators
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/TheGoldfish01/dpf-go/internal/catalog"
	"github.com/TheGoldfish01/dpf-go/internal/codegen"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	if err := run(os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(output io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("dpfgen", flag.ContinueOnError)
	flagSet.SetOutput(output)
	catalogFlag := flagSet.String("catalog", "catalog.hcl", "Path to the operator catalog.")
	outFlag := flagSet.String("out", ".", "Directory receiving one package per category.")
	importFlag := flagSet.String("dpf-import", codegen.DefaultDPFImport, "Import path of the dpf runtime package.")
	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	c, err := catalog.Load(*catalogFlag)
	if err != nil {
		return err
	}
	g := codegen.NewGenerator(filepath.Base(*catalogFlag))
	g.DPFImport = *importFlag
	files, err := g.Generate(c)
	if err != nil {
		return err
	}
	if err := codegen.WriteFiles(*outFlag, files); err != nil {
		return err
	}
	slog.Info("Bindings generated.", "operators", len(c.Operators), "files", len(files), "out", *outFlag)
	return nil
}
