// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name       string
		args       []string
		want       *Config
		shouldExit bool
		errMsg     string
	}{
		{
			name: "ops with defaults",
			args: []string{"ops"},
			want: &Config{Command: "ops", Args: []string{}, LogFormat: "text", LogLevel: "warn", Timeout: 30 * time.Second},
		},
		{
			name: "spec with flags",
			args: []string{"-log-format", "JSON", "-log-level", "debug", "-timeout", "5s", "spec", "unit_convert"},
			want: &Config{Command: "spec", Args: []string{"unit_convert"}, LogFormat: "json", LogLevel: "debug", Timeout: 5 * time.Second},
		},
		{
			name: "check with trace",
			args: []string{"-addr", "unix:/tmp/dpf.sock", "-trace", "check"},
			want: &Config{Command: "check", Args: []string{}, Addr: "unix:/tmp/dpf.sock", LogFormat: "text", LogLevel: "warn", Timeout: 30 * time.Second, Trace: true},
		},
		{name: "help", args: []string{"-h"}, shouldExit: true},
		{name: "no command", args: nil, shouldExit: true},
		{name: "unknown flag", args: []string{"-nope"}, errMsg: "flag provided but not defined: -nope"},
		{name: "unknown command", args: []string{"eval"}, errMsg: `invalid command: "eval"`},
		{name: "bad log format", args: []string{"-log-format", "xml", "ops"}, errMsg: `invalid log-format: "xml"`},
		{name: "bad log level", args: []string{"-log-level", "loud", "ops"}, errMsg: `invalid log-level: "loud"`},
		{name: "check without addr", args: []string{"check"}, errMsg: "check requires -addr"},
		{name: "spec without name", args: []string{"spec"}, errMsg: "spec takes 1 argument(s), got 0"},
		{name: "ops with argument", args: []string{"ops", "x"}, errMsg: "ops takes 0 argument(s), got 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.errMsg != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.shouldExit, shouldExit)
			if tc.shouldExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			if diff := cmp.Diff(tc.want, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
