// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package logger provides a structured logger for the service, built on
// log/slog with JSON output.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to w, filtered at the given level.
// Level is parsed case-insensitively; an unknown level yields an error.
func New(w io.Writer, levelText string) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelText)); err != nil {
		return nil, err
	}

	logHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(logHandler), nil
}

// ExitWithError terminates the process with the given exit code. It is meant
// to be deferred from main after the exit code variable is wired, so that
// deferred cleanups run before the process exits on failure.
func ExitWithError(code *int) {
	if *code != 0 {
		os.Exit(*code)
	}
}
