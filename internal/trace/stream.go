package trace

import (
	"io"
	"sync"
	"time"
)

// StreamTracer writes events immediately to an io.Writer.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	start  time.Time
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{
		w:      w,
		level:  level,
		format: format,
		start:  time.Now(),
	}
}

// Emit writes an event to the output.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	data := FormatEvent(ev, t.format, t.start)

	t.mu.Lock()
	defer t.mu.Unlock()
	// Best-effort write - don't fail the compilation on trace errors
	_, _ = t.w.Write(data) //nolint:errcheck
}

// Flush calls Flush on the writer when it has one.
func (t *StreamTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level {
	return t.level
}

func (t *StreamTracer) Enabled() bool {
	return t.level > LevelOff
}
