package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.vellum", []byte("struct A;\nstruct B {\n  x: u8,\n}\n"))

	start, end := fs.Resolve(Span{File: id, Start: 10, End: 16})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Fatalf("start = %+v, want 2:1", start)
	}
	if end != (LineCol{Line: 2, Col: 7}) {
		t.Fatalf("end = %+v, want 2:7", end)
	}

	// offset of the newline itself belongs to the line it terminates
	nl, _ := fs.Resolve(Span{File: id, Start: 9, End: 9})
	if nl != (LineCol{Line: 1, Col: 10}) {
		t.Fatalf("newline offset = %+v, want 1:10", nl)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("b.vellum", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Fatalf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.vellum")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("struct A;\r\nstruct B;\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "struct A;\nstruct B;\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF", f.Flags)
	}
	if got, ok := fs.Lookup(path); !ok || got != id {
		t.Fatalf("Lookup(%q) = %v, %v", path, got, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.vellum")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if fs.Len() != 0 {
		t.Fatalf("failed load must not register a file")
	}
}
