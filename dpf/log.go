// Copyright 2025-2026 The dpf-go Authors
// SPDX-License-Identifier: Apache-2.0

package dpf

import "log/slog"

// LogLevel is the severity of a log message relayed by the engine.
type LogLevel string

const (
	// LogException terminates request processing. It is only ever attached
	// to the error batch of a response.
	LogException LogLevel = "EXCEPTION"
	LogError     LogLevel = "ERROR"
	LogWarn      LogLevel = "WARN"
	LogInfo      LogLevel = "INFO"
	LogDebug     LogLevel = "DEBUG"
	LogTrace     LogLevel = "TRACE"
)

// Priority orders levels from most severe (0) to least severe.
// Unknown levels sort after TRACE.
func (l LogLevel) Priority() int {
	switch l {
	case LogException:
		return 0
	case LogError:
		return 1
	case LogWarn:
		return 2
	case LogInfo:
		return 3
	case LogDebug:
		return 4
	case LogTrace:
		return 5
	default:
		return 6
	}
}

// Enabled reports whether a message at level msg passes a threshold of l.
func (l LogLevel) Enabled(msg LogLevel) bool {
	return msg.Priority() <= l.Priority()
}

// SlogLevel maps the engine level onto a log/slog level.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogException, LogError:
		return slog.LevelError
	case LogWarn:
		return slog.LevelWarn
	case LogInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// KV is a key-value pair attached to an engine log message.
type KV struct {
	Key   string
	Value string
}

// LogMessage is one log record produced while the engine served a call.
type LogMessage struct {
	Level   LogLevel
	Message string
	Extras  map[string]string
}

// NewLogMessage builds a LogMessage, folding extras into a map.
func NewLogMessage(level LogLevel, msg string, extras ...KV) LogMessage {
	m := LogMessage{Level: level, Message: msg}
	if len(extras) > 0 {
		m.Extras = make(map[string]string, len(extras))
		for _, kv := range extras {
			m.Extras[kv.Key] = kv.Value
		}
	}
	return m
}
