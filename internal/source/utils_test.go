package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, dir := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	target := filepath.Join(otherDir, "file.vellum")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("RelativePath = %q, want %q", got, want)
	}

	inside := filepath.Join(baseDir, "sub", "x.vellum")
	got, err = RelativePath(inside, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "sub/x.vellum" {
		t.Fatalf("RelativePath = %q, want sub/x.vellum", got)
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q, %v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Fatalf("normalizeCRLF on plain input = %q, %v", out, changed)
	}
}
