package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase records the duration and metadata of one pipeline phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of pipeline phases. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), now: time.Now}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = t.now().Sub(p.Start)
	p.Note = note
}

// Track begins a phase and returns the function that ends it.
//
//	done := timer.Track("check")
//	defer done("")
func (t *Timer) Track(name string) func(note string) {
	idx := t.Begin(name)
	return func(note string) { t.End(idx, note) }
}

// Summary returns a human-readable table of all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
