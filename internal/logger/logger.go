// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

const EnvDevelopment = "development"

type options struct {
	level     slog.Level
	logToFile bool
	logFile   string
	out       io.Writer
}

type Option func(*options)

func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithLogToFile also writes logs to a rotated file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) { o.logToFile = enabled }
}

func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

// WithOutput replaces stdout as the console destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// New returns a tint console logger in development and a JSON logger
// everywhere else.
func New(env string, opts ...Option) *slog.Logger {
	o := &options{
		level:   slog.LevelInfo,
		logFile: "logs/speechproxy.log",
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	w := o.out
	if o.logToFile && o.logFile != "" {
		w = io.MultiWriter(o.out, &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		})
	}

	if env == EnvDevelopment {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
			NoColor:    o.logToFile,
		}))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: o.level}))
}
