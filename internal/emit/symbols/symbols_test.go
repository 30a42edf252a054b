package symbols

import (
	"testing"

	"vellum/internal/ast"
	"vellum/internal/emit"
)

func unit() *emit.Unit {
	point := ast.NewStructItem(ast.Identifier{Name: "Point"},
		ast.Field{Name: ast.Identifier{Name: "x"}, Type: ast.PrimType(ast.PrimI32)})
	a := ast.NewFunctionItem(ast.Identifier{Name: "geo_len"}, nil, nil)
	b := ast.NewFunctionItem(ast.Identifier{Name: "geo_area"}, nil, nil)
	return emit.NewUnit("geo", "geo.vellum", []*ast.Item{&point, &a, &b})
}

func TestRender(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatList, "geo_len\ngeo_area\n"},
		{FormatGNU, "{\n  global:\n    geo_len;\n    geo_area;\n  local: *;\n};\n"},
	}
	for _, tt := range tests {
		if got := Render(unit(), tt.format); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	u := emit.NewUnit("empty", "empty.vellum", nil)
	if got := Render(u, FormatList); got != "" {
		t.Fatalf("expected empty list, got %q", got)
	}
	if got := Render(u, FormatGNU); got != "{\n  global:\n  local: *;\n};\n" {
		t.Fatalf("unexpected gnu script %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatList, "LIST": FormatList, "gnu": FormatGNU, "gnu-version-script": FormatGNU} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("elf"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestBackend(t *testing.T) {
	files, err := Backend(FormatGNU)(unit())
	if err != nil || len(files) != 1 || files[0].Name != "geo.map" {
		t.Fatalf("unexpected backend result %v, %v", files, err)
	}
}
