package cpp

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

func TestTypeNames(t *testing.T) {
	u8 := ast.PrimType(ast.PrimU8)
	tests := []struct {
		ty   ast.Type
		abi  string
		raii string
	}{
		{ast.PrimType(ast.PrimUsize), "size_t", "size_t"},
		{ast.PointerTo(ast.Const, ast.IdentType("Point")), "Point const *", "Point const *"},
		{ast.StringPointer(ast.Mut), "char *", "char *"},
		{ast.SliceOf(ast.Const, u8), "vellum::detail::abi::slice<const uint8_t>", "vellum::slice<const uint8_t>"},
		{ast.OwnedOf(ast.PointerTo(ast.Mut, ast.IdentType("Store"))), "vellum::detail::abi::owned<Store *>", "vellum::owned<Store *>"},
		{ast.ArrayOf(ast.PrimType(ast.PrimI16), 3), "std::array<int16_t, 3>", "std::array<int16_t, 3>"},
		{
			ast.FuncPtr(ast.FuncPlain, []ast.Arg{arg("a", ast.PrimType(ast.PrimI32)), arg("b", u8)}, nil),
			"vellum::function<void (int32_t, uint8_t)>",
			"vellum::function<void (int32_t, uint8_t)>",
		},
		{
			ast.FuncPtr(ast.FuncClosure, nil, ptr(ast.PrimType(ast.PrimBool))),
			"vellum::detail::abi::closure<bool ()>",
			"vellum::closure<bool ()>",
		},
	}
	for _, tt := range tests {
		if got := TypeName(&tt.ty); got != tt.abi {
			t.Fatalf("TypeName(%s) = %q, want %q", tt.ty, got, tt.abi)
		}
		if got := RAIITypeName(&tt.ty); got != tt.raii {
			t.Fatalf("RAIITypeName(%s) = %q, want %q", tt.ty, got, tt.raii)
		}
	}
}

func TestEmit(t *testing.T) {
	store := ast.NewAbstractItem(ast.Identifier{Name: "Store"})
	entry := ast.NewStructItem(ast.Identifier{Name: "Entry"},
		ast.Field{Docs: []string{"Key text."}, Name: ast.Identifier{Name: "key"}, Type: ast.StringPointer(ast.Const)},
		ast.Field{Name: ast.Identifier{Name: "value"}, Type: ast.StringPointer(ast.Const)},
	)
	create := ast.NewFunctionItem(ast.Identifier{Name: "kv_create"}, nil,
		ptr(ast.OwnedOf(ast.PointerTo(ast.Mut, ast.IdentType("Store")))))
	set := ast.NewFunctionItem(ast.Identifier{Name: "kv_set"},
		[]ast.Arg{arg("s", ast.PointerTo(ast.Mut, ast.IdentType("Store"))), arg("k", ast.StringPointer(ast.Const))}, nil)
	set.Docs = []string{"Stores a key."}

	files, err := Emit(emit.NewUnit("kv", "kv.vellum", []*ast.Item{&entry, &store, &create, &set}))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if files[0].Name != "kv.hpp" {
		t.Fatalf("unexpected file name %s", files[0].Name)
	}
	out := string(files[0].Content)
	for _, want := range []string{
		"// Generated by vellum from kv.vellum. Do not edit.\n#pragma once\n",
		"#include <vellum/abi.hpp>\n",
		"struct Store;\nstruct Entry;\n",
		"struct Entry {\n  // Key text.\n  char const * key;\n  char const * value;\n};\n",
		"VELLUM_ABI vellum::detail::abi::owned<Store *> kv_create() noexcept;\n",
		"// Stores a key.\nVELLUM_ABI void kv_set(Store * s, char const * k) noexcept;\n",
		"inline vellum::owned<Store *> kv_create() noexcept {\n  return vellum_private_abi::kv_create();\n}\n",
		"inline void kv_set(Store * s, char const * k) noexcept {\n  vellum_private_abi::kv_set(std::move(s), std::move(k));\n}\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("header lacks %q:\n%s", want, out)
		}
	}
}

func TestEmitWithoutFunctions(t *testing.T) {
	files, err := Emit(emit.NewUnit("empty", "empty.vellum", nil))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if strings.Contains(string(files[0].Content), "vellum_private_abi") {
		t.Fatalf("no functions, no private namespace")
	}
}
