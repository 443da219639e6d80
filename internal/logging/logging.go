// Copyright 2026 The netclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package logging builds the zerolog loggers used by the netclient
// command.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when a level name cannot be parsed.
const DefaultLevel = zerolog.InfoLevel

// New returns a timestamped logger writing to w at the named level. An
// unknown or empty level name falls back to DefaultLevel. If pretty is
// true, entries are formatted for humans instead of as JSON. A nil w
// means standard error.
func New(level string, pretty bool, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))
}

// ParseLevel parses a level name, falling back to DefaultLevel.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return DefaultLevel
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return DefaultLevel
	}
	return l
}
