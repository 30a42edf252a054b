package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{CPUPath: filepath.Join(dir, "cpu.pprof"), MemPath: filepath.Join(dir, "mem.pprof")}
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	for _, p := range []string{cfg.CPUPath, cfg.MemPath} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Fatalf("profile %s missing or empty: %v", p, err)
		}
	}
}

func TestSessionDisabled(t *testing.T) {
	s, err := Start(Config{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestStartBadPath(t *testing.T) {
	if _, err := Start(Config{CPUPath: filepath.Join(t.TempDir(), "missing", "cpu.pprof")}); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}
