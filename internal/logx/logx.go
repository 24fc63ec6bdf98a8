// Package logx renders structured log records onto a firmware console.
package logx

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"bootfb/hal"
)

// New returns a logger that writes text records, one console line each, to
// console. Records carry no timestamp: boot-time clocks are not trustworthy.
func New(console hal.Logger, level slog.Leveler) *slog.Logger {
	h := slog.NewTextHandler(&lineWriter{console: console}, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LevelFromEnv returns slog.LevelDebug if the named variable is set to a
// true value, and def otherwise.
func LevelFromEnv(name string, def slog.Level) slog.Level {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	if on, err := strconv.ParseBool(v); err == nil && !on {
		return def
	}
	return slog.LevelDebug
}

// lineWriter splits handler output on newlines.
type lineWriter struct {
	mu      sync.Mutex
	console hal.Logger
	buf     []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.console.WriteLineBytes(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}
