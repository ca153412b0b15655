package main

import (
	"fmt"
	"io"
	"log/slog"
)

// Log formats accepted by --log-format.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// newLogger returns a logger writing to w in the format selected
// by --log-format. Debug records are kept only with --verbose.
func newLogger(w io.Writer) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch logFormat {
	case logFormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q, want %q or %q", logFormat, logFormatText, logFormatJSON)
	}
}
