package supervisor

import (
	"bytes"
	"sync"
)

// tailBuffer is an io.Writer that keeps only the last limit bytes.
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(p)
	t.buf.Write(p)
	if t.buf.Len() > t.limit {
		b := t.buf.Bytes()
		tail := append([]byte(nil), b[len(b)-t.limit:]...)
		t.buf.Reset()
		t.buf.Write(tail)
	}
	return n, nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

// lineWriter stores output in a tailBuffer and hands every complete line to
// onLine.
type lineWriter struct {
	tail    *tailBuffer
	onLine  func(string)
	mu      sync.Mutex
	partial []byte
}

func newLineWriter(tail *tailBuffer, onLine func(string)) *lineWriter {
	return &lineWriter{tail: tail, onLine: onLine}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.tail.Write(p)
	if w.onLine == nil {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexAny(w.partial, "\r\n")
		if i < 0 {
			break
		}
		line := string(w.partial[:i])
		w.partial = w.partial[i+1:]
		if line != "" {
			w.onLine(line)
		}
	}
	return len(p), nil
}

// Flush delivers a trailing line that had no newline.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.onLine != nil && len(w.partial) > 0 {
		w.onLine(string(w.partial))
	}
	w.partial = nil
}

func (w *lineWriter) String() string {
	return w.tail.String()
}
