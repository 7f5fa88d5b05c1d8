// Package logging builds the process slog handlers: a text or JSON stream,
// an optional rotating file, and an in-memory ring read by the debug board.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel parses debug, info, warn or error. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", s)
	}
}

// New returns a handler writing format to w.
func New(w io.Writer, format string, level slog.Leveler) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case FormatText, "":
		return slog.NewTextHandler(w, opts), nil
	case FormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}

// Options describes a complete logging setup.
type Options struct {
	Level  string
	Format string
	// File, when set, receives logs instead of the fallback writer.
	File      string
	MaxSizeMB int
	MaxFiles  int
	// Ring, when set, also receives every record.
	Ring *Ring
}

// Setup builds a logger from opts. Logs go to File when set, else to
// fallback. The returned closer releases the file and is never nil.
func Setup(opts Options, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	w := fallback
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := OpenRotating(opts.File, opts.MaxSizeMB, opts.MaxFiles)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
		}
		w, closer = f, f
	}

	var handlers []slog.Handler
	if w != nil {
		h, err := New(w, opts.Format, level)
		if err != nil {
			_ = closer.Close()
			return nil, nil, err
		}
		handlers = append(handlers, h)
	}
	if opts.Ring != nil {
		handlers = append(handlers, opts.Ring)
	}
	return slog.New(Fanout(handlers...)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
