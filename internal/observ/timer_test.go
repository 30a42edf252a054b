package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	done := tm.Track("load")
	done("2 files")
	idx := tm.Begin("check")
	tm.End(idx, "")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[0].DurationMS != 2 || r.Phases[0].Note != "2 files" {
		t.Fatalf("unexpected first phase %+v", r.Phases[0])
	}
	if r.TotalMS != 4 {
		t.Fatalf("total = %v, want 4", r.TotalMS)
	}

	sum := tm.Summary()
	if !strings.Contains(sum, "load") || !strings.Contains(sum, "// 2 files") || !strings.Contains(sum, "total") {
		t.Fatalf("unexpected summary:\n%s", sum)
	}
}

func TestTimerNilAndBadIndex(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("nil timer reports nothing")
	}
	fresh := NewTimer()
	fresh.End(5, "ignored")
	if len(fresh.Report().Phases) != 0 {
		t.Fatalf("out of range End must be ignored")
	}
}
