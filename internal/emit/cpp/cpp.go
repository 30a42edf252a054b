// Package cpp renders a unit as a C++ header. Structs and the extern "C"
// declarations use the POD types from <vellum/abi.hpp>; inline wrappers with
// the same names take the RAII types and forward to them.
package cpp

import (
	"fmt"
	"strconv"
	"strings"

	"vellum/internal/ast"
	"vellum/internal/emit"
)

var primNames = [...]string{
	ast.PrimBool:  "bool",
	ast.PrimI8:    "int8_t",
	ast.PrimI16:   "int16_t",
	ast.PrimI32:   "int32_t",
	ast.PrimI64:   "int64_t",
	ast.PrimIsize: "ssize_t",
	ast.PrimU8:    "uint8_t",
	ast.PrimU16:   "uint16_t",
	ast.PrimU32:   "uint32_t",
	ast.PrimU64:   "uint64_t",
	ast.PrimUsize: "size_t",
}

// flavor selects between the POD spelling and the RAII spelling of the same
// type.
type flavor uint8

const (
	flavorABI flavor = iota
	flavorRAII
)

// TypeName spells t for the ABI (POD) layer.
func TypeName(t *ast.Type) string {
	return typeName(t, flavorABI)
}

// RAIITypeName spells t for the inline wrappers.
func RAIITypeName(t *ast.Type) string {
	return typeName(t, flavorRAII)
}

func typeName(t *ast.Type, fl flavor) string {
	switch t.Kind {
	case ast.TypePrimitive:
		return primNames[t.Prim]
	case ast.TypeIdent:
		return t.Name.Name
	case ast.TypePointer:
		if t.Const == ast.Const {
			return typeName(t.Elem, fl) + " const *"
		}
		return typeName(t.Elem, fl) + " *"
	case ast.TypeStringPointer:
		if t.Const == ast.Const {
			return "char const *"
		}
		return "char *"
	case ast.TypeSlice:
		elem := typeName(t.Elem, fl)
		if t.Const == ast.Const {
			elem = "const " + elem
		}
		return ns(fl) + "slice<" + elem + ">"
	case ast.TypeOwned:
		return ns(fl) + "owned<" + typeName(t.Elem, fl) + ">"
	case ast.TypeFunc:
		name := "vellum::function"
		if t.Func == ast.FuncClosure {
			name = ns(fl) + "closure"
		}
		return name + "<" + returnName(t.Returns, fl) + " (" + argTypes(t.Args, fl) + ")>"
	case ast.TypeArray:
		return "std::array<" + typeName(t.Elem, fl) + ", " + strconv.FormatUint(t.Len, 10) + ">"
	}
	return "void"
}

func ns(fl flavor) string {
	if fl == flavorABI {
		return "vellum::detail::abi::"
	}
	return "vellum::"
}

func returnName(t *ast.Type, fl flavor) string {
	if t == nil {
		return "void"
	}
	return typeName(t, fl)
}

func argTypes(args []ast.Arg, fl flavor) string {
	parts := make([]string, len(args))
	for i := range args {
		parts[i] = typeName(&args[i].Type, fl)
	}
	return strings.Join(parts, ", ")
}

func params(args []ast.Arg, fl flavor) string {
	parts := make([]string, len(args))
	for i := range args {
		parts[i] = typeName(&args[i].Type, fl) + " " + args[i].Name.Name
	}
	return strings.Join(parts, ", ")
}

const abiMacro = `#ifndef VELLUM_ABI
#  if defined(VELLUM_STATIC)
#    define VELLUM_ABI
#  elif defined(_WIN32) || defined(__CYGWIN__)
#    define VELLUM_ABI __declspec(dllimport)
#  else
#    define VELLUM_ABI __attribute__((visibility("default")))
#  endif
#endif
`

// Emit returns <name>.hpp.
func Emit(u *emit.Unit) ([]emit.File, error) {
	var buf strings.Builder

	fmt.Fprintf(&buf, "// %s\n#pragma once\n\n", emit.Banner(u))
	buf.WriteString("#include <array>\n#include <cstddef>\n#include <cstdint>\n#include <sys/types.h>\n#include <utility>\n\n")
	buf.WriteString("#include <vellum/abi.hpp>\n\n")

	decls := append(u.AbstractStructs(), u.Structs()...)
	for _, it := range decls {
		fmt.Fprintf(&buf, "struct %s;\n", it.Struct.Name.Name)
	}
	if len(decls) > 0 {
		buf.WriteByte('\n')
	}

	for _, it := range u.Structs() {
		emit.WriteDocs(&buf, "", "//", it.Docs)
		fmt.Fprintf(&buf, "struct %s {\n", it.Struct.Name.Name)
		for i := range it.Struct.Fields {
			f := &it.Struct.Fields[i]
			emit.WriteDocs(&buf, "  ", "//", f.Docs)
			fmt.Fprintf(&buf, "  %s %s;\n", TypeName(&f.Type), f.Name.Name)
		}
		buf.WriteString("};\n\n")
	}

	funcs := u.Functions()
	if len(funcs) == 0 {
		return []emit.File{{Name: u.Name + ".hpp", Content: []byte(buf.String())}}, nil
	}

	buf.WriteString(abiMacro)
	buf.WriteString("\nnamespace vellum_private_abi {\nextern \"C\" {\n\n")
	for _, it := range funcs {
		fn := it.Function
		emit.WriteDocs(&buf, "", "//", it.Docs)
		fmt.Fprintf(&buf, "VELLUM_ABI %s %s(%s) noexcept;\n\n", returnName(fn.Returns, flavorABI), fn.Name.Name, params(fn.Args, flavorABI))
	}
	buf.WriteString("} // extern \"C\"\n} // namespace vellum_private_abi\n\n")

	for _, it := range funcs {
		fn := it.Function
		emit.WriteDocs(&buf, "", "//", it.Docs)
		fmt.Fprintf(&buf, "inline %s %s(%s) noexcept {\n", returnName(fn.Returns, flavorRAII), fn.Name.Name, params(fn.Args, flavorRAII))
		fwd := make([]string, len(fn.Args))
		for i := range fn.Args {
			fwd[i] = "std::move(" + fn.Args[i].Name.Name + ")"
		}
		call := "vellum_private_abi::" + fn.Name.Name + "(" + strings.Join(fwd, ", ") + ");"
		if fn.Returns != nil {
			call = "return " + call
		}
		fmt.Fprintf(&buf, "  %s\n}\n\n", call)
	}

	return []emit.File{{Name: u.Name + ".hpp", Content: []byte(buf.String())}}, nil
}
