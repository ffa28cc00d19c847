// Package obslog configures the structured logger shared by the
// minimum-cost flow solver and the CLI: a slog.Logger writing JSON or text
// to stdout/stderr/a rotating file.
package obslog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the logger's level, encoding, and destination.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output string // stdout, stderr, file

	FilePath   string // only used when Output == "file"
	MaxSize    int    // MB before rotation
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// DefaultConfig returns an info-level JSON logger writing to stdout.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: "stdout"}
}

// New builds a slog.Logger from cfg. An unrecognized Level falls back to
// info; an unrecognized Output falls back to stdout; a "file" Output whose
// directory can't be created also falls back to stdout rather than failing
// solve startup over a logging misconfiguration.
func New(cfg Config) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer io.Writer
	switch cfg.Output {
	case "stderr":
		writer = os.Stderr
	case "file":
		path := cfg.FilePath
		if path == "" {
			path = "logs/mincostflow.log"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			writer = os.Stdout
		} else {
			writer = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			}
		}
	default:
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler)
}

// WithSolve returns a logger scoped to one solve call: the entry point name
// and the instance's vertex/arc counts, so every log line from one solve can
// be correlated without a request-ID mechanism (this package has no server
// loop to hang one off of).
func WithSolve(log *slog.Logger, entryPoint string, vertices, arcs int) *slog.Logger {
	return log.With("entry_point", entryPoint, "vertices", vertices, "arcs", arcs)
}
