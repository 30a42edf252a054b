package emit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vellum/internal/ast"
)

func TestGuardName(t *testing.T) {
	tests := map[string]string{
		"geometry":    "GEOMETRY",
		"my-lib.v2":   "MY_LIB_V2",
		"Point3D":     "POINT3D",
		"dir/sub_mod": "DIR_SUB_MOD",
	}
	for in, want := range tests {
		if got := GuardName(in); got != want {
			t.Fatalf("GuardName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnitFilters(t *testing.T) {
	a := ast.NewStructItem(ast.Identifier{Name: "A"})
	b := ast.NewAbstractItem(ast.Identifier{Name: "B"})
	f := ast.NewFunctionItem(ast.Identifier{Name: "f"}, nil, nil)
	u := NewUnit("x", "x.vellum", []*ast.Item{&a, &b, &f})
	if len(u.Structs()) != 1 || len(u.AbstractStructs()) != 1 || len(u.Functions()) != 1 {
		t.Fatalf("unexpected partition")
	}
	if u.Surface == nil || u.Surface.Len() != 0 {
		t.Fatalf("surface must be collected")
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	written, err := WriteFiles(dir, []File{{Name: "a.h", Content: []byte("x")}, {Name: "a.py", Content: []byte("y")}})
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.py"))
	if err != nil || string(data) != "y" {
		t.Fatalf("read back %q, %v", data, err)
	}
}

func TestWriteFilesError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := WriteFiles(blocker, []File{{Name: "a.h"}})
	var we *WriteError
	if !errors.As(err, &we) || we.Path != blocker {
		t.Fatalf("expected WriteError for %s, got %v", blocker, err)
	}
	if !strings.HasPrefix(err.Error(), "cannot write ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWriteDocs(t *testing.T) {
	var sb strings.Builder
	WriteDocs(&sb, "  ", "#", []string{"first", "", "third"})
	if got, want := sb.String(), "  # first\n  #\n  # third\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
