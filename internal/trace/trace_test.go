package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"off", LevelOff},
		{"PHASE", LevelPhase},
		{"detail", LevelDetail},
		{"debug", LevelDebug},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeItem) || !LevelPhase.ShouldEmit(ScopePass) {
		t.Fatalf("phase level emits only driver and pass scopes")
	}
	if !LevelDetail.ShouldEmit(ScopeItem) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Fatalf("detail level stops at item scope")
	}
	if LevelOff.ShouldEmit(ScopeDriver) {
		t.Fatalf("off emits nothing")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff must give a disabled tracer")
	}
}

func TestStreamTextSpans(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := WithTracer(context.Background(), tr)

	ctx, drv := Start(ctx, ScopeDriver, "check")
	pctx, pass := Start(ctx, ScopePass, "sort")
	_, item := Start(pctx, ScopeItem, "item:Point")
	item.End("")
	pass.WithExtra("nodes", "3").WithExtra("batches", "2").End("")
	drv.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events (item filtered), got:\n%s", out)
	}
	if !strings.Contains(lines[0], "→ driver check") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[2], "  ← pass sort {batches=2, nodes=3}") {
		t.Fatalf("unexpected pass end line %q", lines[2])
	}
	if !strings.Contains(lines[3], "driver check (ok)") {
		t.Fatalf("unexpected last line %q", lines[3])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)
	ctx, sp := Start(ctx, ScopePass, "load")
	Point(ctx, ScopeItem, "file", "main.vellum")
	sp.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, got %d", len(lines))
	}
	var ev struct {
		Kind     string `json:"kind"`
		Scope    string `json:"scope"`
		ParentID uint64 `json:"parent_id"`
		Name     string `json:"name"`
		Detail   string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if ev.Kind != "point" || ev.Scope != "item" || ev.Detail != "main.vellum" || ev.ParentID != sp.ID() {
		t.Fatalf("unexpected point event %+v", ev)
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatalf("missing tracer must be nop")
	}
	ctx, sp := Start(context.Background(), ScopeDriver, "x")
	if sp.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatalf("nop span must not be recorded")
	}
	if sp.End("") != 0 {
		t.Fatalf("nop span has no duration")
	}
}
