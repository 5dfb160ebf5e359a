// Package logger builds the session logger. The terminal belongs to the
// picker UI and stdout to the host, so logs always go to a file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/lmittmann/tint"
)

const (
	appName     = "vitrine"
	logFileName = "vitrine.log"
)

// Options selects level, format and destination.
type Options struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
	File   string // empty means the XDG state directory
}

// DefaultPath returns the log file location under the XDG state directory.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, logFileName))
}

// Open creates the log file (appending) and returns a logger writing to it
// with its closer.
func Open(opts Options) (*slog.Logger, io.Closer, error) {
	path := opts.File
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, opts.Level, opts.Format), f, nil
}

// New returns a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.DateTime,
			NoColor:    true,
		})
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithSession tags every record with the picker session id.
func WithSession(l *slog.Logger, session string) *slog.Logger {
	return l.With("session", session)
}

// ParseLevel maps a level name to its slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
