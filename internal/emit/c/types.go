package c

import (
	"strconv"
	"strings"

	"vellum/internal/abi"
	"vellum/internal/ast"
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

// Decl renders a C declarator of t named name; an empty name gives the bare
// type as used in parameter lists and casts.
func Decl(t *ast.Type, name string) string {
	return decl(t, name, false)
}

// decl строит декларатор изнутри наружу: inner уже содержит имя и всё, что
// к нему прилипло (*, [N], (*)(...)).
func decl(t *ast.Type, inner string, constQual bool) string {
	switch t.Kind {
	case ast.TypePointer:
		p := "*" + inner
		if t.Elem.Kind == ast.TypeArray || (t.Elem.Kind == ast.TypeFunc && t.Elem.Func == ast.FuncPlain) {
			p = "(" + p + ")"
		}
		return decl(t.Elem, p, t.Const == ast.Const)
	case ast.TypeArray:
		return decl(t.Elem, inner+"["+strconv.FormatUint(t.Len, 10)+"]", constQual)
	case ast.TypeFunc:
		if t.Func == ast.FuncPlain {
			sig := "(*" + inner + ")(" + params(t.Args) + ")"
			if t.Returns == nil {
				return "void " + sig
			}
			return decl(t.Returns, sig, false)
		}
	case ast.TypeStringPointer:
		base := "char"
		if t.Const == ast.Const {
			base += " const"
		}
		return join(base, "*"+inner)
	}
	base := baseName(t)
	if constQual {
		base += " const"
	}
	return join(base, inner)
}

func baseName(t *ast.Type) string {
	switch t.Kind {
	case ast.TypePrimitive:
		return primNames[t.Prim]
	case ast.TypeIdent:
		return "struct " + t.Name.Name
	case ast.TypeSlice, ast.TypeFunc:
		return "vellum_" + abi.Mangle(*t)
	case ast.TypeOwned:
		if t.Elem.Kind == ast.TypeSlice {
			return "vellum_" + abi.Mangle(*t)
		}
		return "vellum_owned_ptr_" + abi.Mangle(*t.Elem)
	}
	return "void"
}

func params(args []ast.Arg) string {
	if len(args) == 0 {
		return "void"
	}
	parts := make([]string, len(args))
	for i := range args {
		parts[i] = Decl(&args[i].Type, args[i].Name.Name)
	}
	return strings.Join(parts, ", ")
}

func join(base, inner string) string {
	if inner == "" {
		return base
	}
	return base + " " + inner
}
