// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheGoldfish01/dpf-go/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, io.Discard, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	err := run(io.Discard, io.Discard, []string{"--this-is-not-a-valid-flag"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_Ops(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(out, io.Discard, []string{"ops"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "unit_convert")
}
