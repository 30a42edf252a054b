package namespace

import (
	"testing"

	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/source"
)

func ident(name string, start uint32) ast.Identifier {
	return ast.Identifier{Name: name, Span: source.Span{Start: start, End: start + uint32(len(name))}}
}

func TestFlattenFirstSeenOrder(t *testing.T) {
	lib := &ast.File{Items: []ast.Item{
		ast.NewStructItem(ident("Point", 0)),
		ast.NewAbstractItem(ident("Handle", 10)),
	}}
	root := &ast.File{Items: []ast.Item{
		ast.NewStructItem(ident("Before", 0)),
		ast.NewImportItem("lib.vellum", lib),
		ast.NewStructItem(ident("Line", 20)),
		ast.NewFunctionItem(ident("length", 40), nil, nil),
	}}
	bag := diag.NewBag(10)
	ns, ok := Flatten(root, diag.BagReporter{Bag: bag})
	if !ok || bag.Len() != 0 {
		t.Fatalf("unexpected failure: %+v", bag.Items())
	}
	want := []string{"Before", "Point", "Handle", "Line", "length"}
	got := ns.Names()
	if len(got) != len(want) {
		t.Fatalf("names %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names %v, want %v", got, want)
		}
	}
	if len(ns.Structs()) != 4 || len(ns.Functions()) != 1 {
		t.Fatalf("unexpected partition: %d structs, %d functions", len(ns.Structs()), len(ns.Functions()))
	}
	if it, ok := ns.Lookup("Handle"); !ok || !it.IsAbstractStruct() {
		t.Fatalf("Handle lookup failed")
	}
	if ns.Index("Line") != 3 || ns.Index("missing") != -1 {
		t.Fatalf("unexpected indices")
	}
}

func TestFlattenSkipsUnresolvedImports(t *testing.T) {
	root := &ast.File{Items: []ast.Item{
		ast.NewImportItem("already.vellum", nil),
		ast.NewStructItem(ident("A", 0)),
	}}
	ns, ok := Flatten(root, diag.BagReporter{Bag: diag.NewBag(1)})
	if !ok || ns.Len() != 1 {
		t.Fatalf("unexpected result ok=%v len=%d", ok, ns.Len())
	}
}

func TestFlattenDuplicateAcrossFiles(t *testing.T) {
	fs := source.NewFileSet()
	libID := fs.AddVirtual("lib.vellum", []byte("struct Point;"))
	mainID := fs.AddVirtual("main.vellum", []byte("import 'lib.vellum';\nfunction Point();"))

	first := ast.Identifier{Name: "Point", Span: source.Span{File: libID, Start: 7, End: 12}}
	second := ast.Identifier{Name: "Point", Span: source.Span{File: mainID, Start: 30, End: 35}}
	lib := &ast.File{ID: libID, Items: []ast.Item{ast.NewAbstractItem(first)}}
	root := &ast.File{ID: mainID, Items: []ast.Item{
		ast.NewImportItem("lib.vellum", lib),
		ast.NewFunctionItem(second, nil, nil),
	}}

	bag := diag.NewBag(10)
	ns, ok := Flatten(root, diag.BagReporter{Bag: bag})
	if ok {
		t.Fatalf("duplicate must fail flattening")
	}
	if it, _ := ns.Lookup("Point"); !it.IsAbstractStruct() {
		t.Fatalf("first definition must be kept")
	}
	d := bag.Items()[0]
	if d.Code != diag.SemaDuplicateName || d.Primary != first.Span || d.Label != "first used here" {
		t.Fatalf("unexpected primary: %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != second.Span || d.Notes[0].Msg != "used again here" {
		t.Fatalf("unexpected notes: %+v", d.Notes)
	}
	want := "error SEM3002 lib.vellum:1:8 duplicate name `Point`\n" +
		"note SEM3002 main.vellum:2:10 used again here"
	if got := diag.FormatShortDiagnostics(bag.Items(), fs, true); got != want {
		t.Fatalf("unexpected short form:\n%s\nwant:\n%s", got, want)
	}
}

func TestFlattenReportsEveryDuplicate(t *testing.T) {
	root := &ast.File{Items: []ast.Item{
		ast.NewStructItem(ident("A", 0)),
		ast.NewStructItem(ident("A", 10)),
		ast.NewStructItem(ident("A", 20)),
	}}
	bag := diag.NewBag(10)
	if _, ok := Flatten(root, diag.BagReporter{Bag: bag}); ok {
		t.Fatalf("expected failure")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Primary.Start != 0 {
			t.Fatalf("every duplicate must point at the first definition: %+v", d)
		}
	}
}
