package c

import (
	"strings"
	"testing"

	"vellum/internal/ast"
	"vellum/internal/emit"
)

func ptr(t ast.Type) *ast.Type { return &t }

func arg(name string, t ast.Type) ast.Arg {
	return ast.Arg{Name: ast.Identifier{Name: name}, Type: t}
}

func TestDecl(t *testing.T) {
	u8 := ast.PrimType(ast.PrimU8)
	tests := []struct {
		ty   ast.Type
		name string
		want string
	}{
		{ast.PrimType(ast.PrimI32), "x", "int32_t x"},
		{ast.PrimType(ast.PrimIsize), "", "ssize_t"},
		{ast.PointerTo(ast.Const, ast.IdentType("Point")), "p", "struct Point const *p"},
		{ast.PointerTo(ast.Mut, ast.PointerTo(ast.Const, u8)), "pp", "uint8_t const **pp"},
		{ast.StringPointer(ast.Const), "s", "char const *s"},
		{ast.StringPointer(ast.Mut), "", "char *"},
		{ast.ArrayOf(ast.PrimType(ast.PrimI32), 4), "a", "int32_t a[4]"},
		{ast.PointerTo(ast.Const, ast.ArrayOf(u8, 16)), "buf", "uint8_t const (*buf)[16]"},
		{ast.FuncPtr(ast.FuncPlain, []ast.Arg{arg("x", ast.PrimType(ast.PrimI32))}, ptr(ast.PrimType(ast.PrimBool))), "cb", "bool (*cb)(int32_t x)"},
		{ast.FuncPtr(ast.FuncPlain, nil, nil), "", "void (*)(void)"},
		{ast.ArrayOf(ast.FuncPtr(ast.FuncPlain, nil, nil), 2), "hooks", "void (*hooks[2])(void)"},
		{ast.SliceOf(ast.Const, u8), "bytes", "vellum_slice_const_u8 bytes"},
		{ast.OwnedOf(ast.PointerTo(ast.Mut, ast.IdentType("Tree"))), "t", "vellum_owned_ptr_mut_Tree_ptr t"},
		{ast.OwnedOf(ast.SliceOf(ast.Mut, u8)), "o", "vellum_owned_slice_mut_u8 o"},
		{ast.FuncPtr(ast.FuncClosure, nil, nil), "on_done", "vellum_closure_void_args0 on_done"},
		{ast.FuncPtr(ast.FuncPlain, nil, ptr(ast.PrimType(ast.PrimI32))), "get(void)", "int32_t (*get(void))(void)"},
	}
	for _, tt := range tests {
		if got := Decl(&tt.ty, tt.name); got != tt.want {
			t.Fatalf("Decl(%s, %q) = %q, want %q", tt.ty, tt.name, got, tt.want)
		}
	}
}

func field(name string, t ast.Type) ast.Field {
	return ast.Field{Name: ast.Identifier{Name: name}, Type: t}
}

func geometryUnit() *emit.Unit {
	point := ast.NewStructItem(ast.Identifier{Name: "Point"},
		field("x", ast.PrimType(ast.PrimI32)),
		field("y", ast.PrimType(ast.PrimI32)),
	)
	point.Docs = []string{"A point."}
	line := ast.NewStructItem(ast.Identifier{Name: "Line"},
		field("a", ast.IdentType("Point")),
		field("b", ast.IdentType("Point")),
	)
	handle := ast.NewAbstractItem(ast.Identifier{Name: "Handle"})
	length := ast.NewFunctionItem(ast.Identifier{Name: "length"},
		[]ast.Arg{arg("line", ast.PointerTo(ast.Const, ast.IdentType("Line")))},
		ptr(ast.PrimType(ast.PrimU32)))
	free := ast.NewFunctionItem(ast.Identifier{Name: "free_bytes"},
		[]ast.Arg{arg("b", ast.OwnedOf(ast.SliceOf(ast.Mut, ast.PrimType(ast.PrimU8))))},
		nil)
	watch := ast.NewFunctionItem(ast.Identifier{Name: "watch"},
		[]ast.Arg{arg("h", ast.PointerTo(ast.Mut, ast.IdentType("Handle"))),
			arg("cb", ast.FuncPtr(ast.FuncClosure, []ast.Arg{arg("p", ast.IdentType("Point"))}, ptr(ast.PrimType(ast.PrimBool))))},
		nil)
	return emit.NewUnit("geometry", "geometry.vellum", []*ast.Item{&point, &line, &handle, &length, &free, &watch})
}

func TestEmitHeader(t *testing.T) {
	files, err := Emit(geometryUnit())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(files) != 1 || files[0].Name != "geometry.h" {
		t.Fatalf("unexpected files %+v", files)
	}
	out := string(files[0].Content)

	for _, want := range []string{
		"/* Generated by vellum from geometry.vellum. Do not edit. */\n#ifndef VELLUM_GEOMETRY_H\n#define VELLUM_GEOMETRY_H\n",
		"struct Handle;\nstruct Point;\nstruct Line;\n",
		"typedef struct vellum_slice_mut_u8 vellum_slice_mut_u8;\n",
		"struct vellum_slice_mut_u8 {\n  uint8_t *data;\n  size_t len;\n};\n",
		"struct vellum_owned_slice_mut_u8 {\n  vellum_slice_mut_u8 slice_data;\n  void (*deleter)(vellum_slice_mut_u8);\n};\n",
		"struct vellum_closure_bool_args1_Point {\n  bool (*caller)(void *, struct Point);\n  void *state;\n  void (*deleter)(void *);\n};\n",
		"// A point.\nstruct Point {\n  int32_t x;\n  int32_t y;\n};\n",
		"struct Line {\n  struct Point a;\n  struct Point b;\n};\n",
		"VELLUM_ABI uint32_t length(struct Line const *line);\n",
		"VELLUM_ABI void free_bytes(vellum_owned_slice_mut_u8 b);\n",
		"VELLUM_ABI void watch(struct Handle *h, vellum_closure_bool_args1_Point cb);\n",
		"#endif /* VELLUM_GEOMETRY_H */\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("header lacks %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "struct vellum_slice_mut_u8 {") > strings.Index(out, "struct vellum_owned_slice_mut_u8 {") {
		t.Fatalf("slice definitions must precede owned slices")
	}
	if strings.Index(out, "struct Point {") > strings.Index(out, "struct Line {") {
		t.Fatalf("struct definitions must follow dependency order")
	}
	if strings.Contains(out, "struct Handle {") {
		t.Fatalf("abstract structs are only forward-declared")
	}
}

func TestEmitEmptyUnit(t *testing.T) {
	files, err := Emit(emit.NewUnit("empty", "empty.vellum", nil))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	out := string(files[0].Content)
	if strings.Contains(out, "typedef") || !strings.Contains(out, "#define VELLUM_EMPTY_H") {
		t.Fatalf("unexpected empty header:\n%s", out)
	}
}

func TestEmitHeaderOwnedStructOrder(t *testing.T) {
	point := ast.NewStructItem(ast.Identifier{Name: "Point"},
		field("x", ast.PrimType(ast.PrimI32)),
		field("y", ast.PrimType(ast.PrimI32)),
	)
	holder := ast.NewStructItem(ast.Identifier{Name: "Holder"},
		field("p", ast.OwnedOf(ast.IdentType("Point"))),
		field("pair", ast.OwnedOf(ast.ArrayOf(ast.IdentType("Point"), 2))),
		field("nested", ast.OwnedOf(ast.OwnedOf(ast.IdentType("Point")))),
		field("cb", ast.OwnedOf(ast.FuncPtr(ast.FuncClosure, nil, nil))),
	)
	take := ast.NewFunctionItem(ast.Identifier{Name: "take"},
		[]ast.Arg{arg("h", ast.OwnedOf(ast.IdentType("Holder")))}, nil)
	files, err := Emit(emit.NewUnit("own", "own.vellum", []*ast.Item{&point, &holder, &take}))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	out := string(files[0].Content)

	pos := func(s string) int {
		t.Helper()
		i := strings.Index(out, s)
		if i < 0 {
			t.Fatalf("header lacks %q:\n%s", s, out)
		}
		return i
	}
	pointAt, holderAt := pos("struct Point {"), pos("struct Holder {")
	for _, h := range []string{
		"struct vellum_owned_ptr_Point {\n  struct Point data;\n",
		"struct vellum_owned_ptr_array_Point_2 {\n  struct Point data[2];\n",
		"struct vellum_owned_ptr_owned_Point {\n",
	} {
		if at := pos(h); at < pointAt || at > holderAt {
			t.Fatalf("%q must sit between Point and Holder:\n%s", h, out)
		}
	}
	if pos("struct vellum_owned_ptr_Point {") > pos("struct vellum_owned_ptr_owned_Point {") {
		t.Fatalf("nested owned pointer must be defined before its holder:\n%s", out)
	}
	if pos("struct vellum_closure_void_args0 {") > pos("struct vellum_owned_ptr_closure_void_args0 {") {
		t.Fatalf("closure must be defined before the owned pointer holding it:\n%s", out)
	}
	if pos("struct vellum_owned_ptr_Holder {") < holderAt || pos("struct vellum_owned_ptr_Holder {") > pos("VELLUM_ABI void take(") {
		t.Fatalf("owned Holder must follow Holder and precede prototypes:\n%s", out)
	}
	if strings.Count(out, "struct vellum_owned_ptr_Point {") != 1 {
		t.Fatalf("owned pointer defined more than once:\n%s", out)
	}
}
