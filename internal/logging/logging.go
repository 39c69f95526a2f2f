// Package logging builds the slog logger the roster components share.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables that override the configured values. The CLI binds
// them through its config loader.
const (
	EnvLevel  = "ROSTER_LOG_LEVEL"
	EnvFormat = "ROSTER_LOG_FORMAT"
	EnvOutput = "ROSTER_LOG_OUTPUT"
)

// Formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// OutputStderr is the default output. Any other output has the form
// "file:<path>".
const OutputStderr = "stderr"

const filePrefix = "file:"

// Errors returned by New.
var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
	ErrUnknownOutput = errors.New("unknown log output")
)

// Config holds logging settings.
type Config struct {
	// Level is debug, info, warn or error. Empty means warn.
	Level string `yaml:"log_level" mapstructure:"log_level"`

	// Format is text or json. Empty means text.
	Format string `yaml:"log_format" mapstructure:"log_format"`

	// Output is stderr or file:<path>. Empty means stderr.
	Output string `yaml:"log_output" mapstructure:"log_output"`
}

// ParseLevel converts a level name into a slog.Level, ignoring case.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// New builds a logger from cfg. The returned closer releases the log file
// when Output names one; it is a no-op otherwise.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	w, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		closer.Close()
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
	return slog.New(h), closer, nil
}

// Component returns logger tagged with the component name.
func Component(logger *slog.Logger, name string) *slog.Logger {
	return logger.With(slog.String("component", name))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openOutput(output string) (io.Writer, io.Closer, error) {
	output = strings.TrimSpace(output)
	switch {
	case output == "" || output == OutputStderr:
		return os.Stderr, nopCloser{}, nil
	case strings.HasPrefix(output, filePrefix):
		path := strings.TrimPrefix(output, filePrefix)
		if path == "" {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownOutput, output)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return f, f, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownOutput, output)
}
