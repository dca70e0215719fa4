package console

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// Writer mirrors program output into a Log. Writes are split on newlines and
// every complete line is appended; a trailing partial line waits for the next
// write or Flush. When a passthrough writer is set it receives every byte
// unmodified, so mirroring never hides output from its original destination.
type Writer struct {
	mu          sync.Mutex
	log         *Log
	passthrough io.Writer
	partial     bytes.Buffer
}

// NewWriter creates a Writer appending to log. passthrough may be nil.
func NewWriter(log *Log, passthrough io.Writer) *Writer {
	return &Writer{log: log, passthrough: passthrough}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data := p
	for len(data) > 0 {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			w.partial.Write(data)
			break
		}
		w.partial.Write(data[:idx])
		w.emit()
		data = data[idx+1:]
	}

	if w.passthrough != nil {
		if _, err := w.passthrough.Write(p); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Flush appends the buffered partial line, if any.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.partial.Len() > 0 {
		w.emit()
	}
	return nil
}

// Buffered returns the partial line waiting for a newline.
func (w *Writer) Buffered() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.partial.String()
}

func (w *Writer) emit() {
	line := strings.TrimSuffix(w.partial.String(), "\r")
	w.partial.Reset()
	if w.log != nil {
		w.log.Append(line)
	}
}
