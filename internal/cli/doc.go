// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the dpf command: argument parsing, logger setup
// and the ops, spec, describe and check subcommands.
package cli
