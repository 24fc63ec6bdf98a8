package hal

import (
	"fmt"
	"io"
	"sync"
)

type writerLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterLogger returns a console Logger writing lines to w.
func NewWriterLogger(w io.Writer) Logger {
	return &writerLogger{w: w}
}

func (l *writerLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *writerLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
