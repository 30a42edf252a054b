package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Format     Format    // FormatAuto выбирает по расширению OutputPath
	Output     io.Writer // if nil, use OutputPath
	OutputPath string    // file path ("-" for stderr)
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return stderrWriter{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// stderrWriter прячет Close, чтобы Tracer.Close не закрыл stderr.
type stderrWriter struct{ io.Writer }
