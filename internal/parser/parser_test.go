package parser_test

import (
	"testing"

	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/parser"
	"vellum/internal/source"
	"vellum/internal/testkit"
)

func parseString(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.vellum", []byte(src))
	bag := diag.NewBag(100)
	res := parser.ParseSource(fs, id, diag.BagReporter{Bag: bag})
	return res.File, bag
}

func parseOK(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag := parseString(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	return f
}

func TestParseItems(t *testing.T) {
	f := parseOK(t, `
import "lib.vellum";

/// A line segment.
struct Line {
	/// Start point.
	start: Point,
	end: Point,
}

struct Handle;

/// Computes the length.
function length(line: *const Line) -> f;
function reset();
`)
	if len(f.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(f.Items))
	}
	imp := f.Items[0]
	if imp.Kind != ast.ItemImport || imp.Import.Path != "lib.vellum" {
		t.Fatalf("unexpected import %+v", imp)
	}
	line := f.Items[1]
	if !line.IsConcreteStruct() || line.Struct.Name.Name != "Line" || len(line.Struct.Fields) != 2 {
		t.Fatalf("unexpected struct %+v", line.Struct)
	}
	if len(line.Docs) != 1 || line.Docs[0] != "A line segment." {
		t.Fatalf("unexpected struct docs %#v", line.Docs)
	}
	if docs := line.Struct.Fields[0].Docs; len(docs) != 1 || docs[0] != "Start point." {
		t.Fatalf("unexpected field docs %#v", docs)
	}
	if !f.Items[2].IsAbstractStruct() {
		t.Fatalf("Handle must be abstract")
	}
	fn := f.Items[3].Function
	if fn.Name.Name != "length" || len(fn.Args) != 1 || fn.Returns == nil {
		t.Fatalf("unexpected function %+v", fn)
	}
	if fn.Returns.Kind != ast.TypeIdent || fn.Returns.Name.Name != "f" {
		t.Fatalf("unexpected return type %v", fn.Returns)
	}
	if f.Items[4].Function.Returns != nil {
		t.Fatalf("reset must return nothing")
	}
}

func TestParseTypes(t *testing.T) {
	tests := []string{
		"u8",
		"Point",
		"owned Point",
		"owned *mut [u8]",
		"*const string",
		"*mut string",
		"*const [Point]",
		"*mut *const Point",
		"*const [Point; 4]",
		"[i32; 16]",
		"[[u8; 2]; 3]",
		"fn()",
		"fn(a: u8, b: *const Point) -> bool",
		"closure(x: usize) -> owned *const [u8]",
	}
	for _, src := range tests {
		f := parseOK(t, "struct S { f: "+src+" }")
		got := f.Items[0].Struct.Fields[0].Type.String()
		if got != src {
			t.Fatalf("round-trip mismatch: got %q, want %q", got, src)
		}
	}
}

func TestParseTypeSpans(t *testing.T) {
	src := "struct S { f: *const [u8] }"
	f := parseOK(t, src)
	ty := f.Items[0].Struct.Fields[0].Type
	if got := src[ty.Span.Start:ty.Span.End]; got != "*const [u8]" {
		t.Fatalf("unexpected type span text %q", got)
	}
	name := f.Items[0].Struct.Name
	if got := src[name.Span.Start:name.Span.End]; got != "S" {
		t.Fatalf("unexpected name span text %q", got)
	}
}

func TestParseTrailingCommasAndSemicolon(t *testing.T) {
	f := parseOK(t, "struct S { a: u8, }; function f(a: u8,);")
	if len(f.Items) != 2 || len(f.Items[1].Function.Args) != 1 {
		t.Fatalf("unexpected items %+v", f.Items)
	}
	f = parseOK(t, "struct Empty {}")
	if f.Items[0].IsAbstractStruct() || len(f.Items[0].Struct.Fields) != 0 {
		t.Fatalf("empty struct must be concrete with no fields")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"let x = 1;", diag.SynUnexpectedTopLevel},
		{"struct { a: u8 }", diag.SynExpectIdentifier},
		{"struct S { a u8 }", diag.SynExpectColon},
		{"struct S { a: }", diag.SynExpectType},
		{"struct S { a: u8", diag.SynExpectRightBracket},
		{"function f()", diag.SynExpectSemicolon},
		{"import lib;", diag.SynUnexpectedToken},
		{"struct S { a: *u8 }", diag.SynUnexpectedToken},
		{"struct S { a: [u8 4] }", diag.SynExpectSemicolon},
		{"struct S { a: *const [u8 }", diag.SynExpectRightBracket},
	}
	for _, tt := range tests {
		_, bag := parseString(t, tt.src)
		if bag.Len() == 0 || bag.Items()[0].Code != tt.code {
			t.Fatalf("%q: expected %s, got %+v", tt.src, tt.code.ID(), bag.Items())
		}
	}
}

func TestParseRecoversAtNextItem(t *testing.T) {
	f, bag := parseString(t, "struct A { a: } struct B; function f();")
	if !bag.HasErrors() {
		t.Fatalf("expected an error")
	}
	if len(f.Items) != 2 {
		t.Fatalf("expected parser to recover 2 items, got %d", len(f.Items))
	}
	if name, _ := f.Items[0].Name(); name.Name != "B" {
		t.Fatalf("unexpected first recovered item %v", name)
	}
}

func TestParseNoCascadeOnLexError(t *testing.T) {
	_, bag := parseString(t, "struct S { a: $ }")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected a single lexer diagnostic, got %+v", bag.Items())
	}
}

func TestParseSpanInvariants(t *testing.T) {
	src := `import "lib.vellum";

/// Docs are not part of the item span.
struct Node {
	next: *mut Node,
	cb: closure(data: *const [u8], n: [u16; 4]) -> owned *mut Node,
}

struct Opaque;

function visit(n: *const Node, f: fn(x: i32)) -> bool;
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("spans.vellum", []byte(src))
	bag := diag.NewBag(10)
	res := parser.ParseSource(fs, id, diag.BagReporter{Bag: bag})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if err := testkit.CheckSpanInvariants(res.File, fs.Get(id)); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
}
