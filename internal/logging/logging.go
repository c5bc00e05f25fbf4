// Package logging sets up the structured zerolog logger shared by commands,
// the step runner and the command executor.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options selects where log records go.
type Options struct {
	// Verbose mirrors debug records to Console in human readable form.
	Verbose bool
	// File appends JSON records to this path when set.
	File string
	// Console defaults to os.Stderr.
	Console io.Writer
}

// Setup builds the logger for one invocation. Without Verbose or File the
// logger discards everything. The returned close function releases the log
// file and is safe to call when there is none.
func Setup(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	var writers []io.Writer
	if opts.Verbose {
		console := opts.Console
		if console == nil {
			console = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.Kitchen,
		})
	}

	closeFn := noop
	if opts.File != "" {
		file, err := openLogFile(opts.File)
		if err != nil {
			return zerolog.Nop(), noop, err
		}
		writers = append(writers, file)
		closeFn = file.Close
	}

	if len(writers) == 0 {
		return zerolog.Nop(), noop, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()

	logger.Debug().Bool("verbose", opts.Verbose).Str("logFile", opts.File).Msg("Logger initialized")
	return logger, closeFn, nil
}

// Component returns a child logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

// openLogFile creates the log file and its parent directories
func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open log file in append mode
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
