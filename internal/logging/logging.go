// Package logging builds the zap logger shared by a boardnotifier run.
//
// Logs go to stderr with a console encoder. When a log file is configured
// they are also written as JSON to a size-rotated file, which is how
// scheduled (cron) runs keep a history of what was sent.
package logging

import (
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RunIDKey is the field carrying the per-run identifier.
const RunIDKey = "run_id"

// Options configures New.
type Options struct {
	Verbose bool      // enable debug level
	Stderr  io.Writer // console destination
	File    string    // optional JSON log file path

	// Rotation settings for File. Zero values fall back to lumberjack's
	// defaults except MaxSizeMB, which defaults to 10.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger tagged with a fresh run ID.
func New(opts Options) *zap.Logger {
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.AddSync(opts.Stderr),
		level,
	)
	cores := []zapcore.Core{console}

	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = 10
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)).With(zap.String(RunIDKey, NewRunID()))
}

// NewRunID returns a random identifier for one invocation.
func NewRunID() string {
	return uuid.NewString()
}

// Printf adapts a logger to the printf-style hooks used by the API clients.
// Messages are logged at debug level with trailing newlines trimmed.
func Printf(logger *zap.Logger) func(format string, args ...any) {
	sugar := logger.WithOptions(zap.AddCallerSkip(1)).Sugar()
	return func(format string, args ...any) {
		sugar.Debugf(trimNewline(format), args...)
	}
}

func trimNewline(s string) string {
	for len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	return s
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}
}
