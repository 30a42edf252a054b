package abi

import (
	"strconv"
	"strings"

	"vellum/internal/ast"
)

var reservedWords = map[string]struct{}{
	"const": {}, "mut": {}, "str": {}, "ptr": {}, "slice": {}, "owned": {},
	"fn": {}, "closure": {}, "array": {}, "void": {}, "args": {},
	"bool": {}, "i8": {}, "i16": {}, "i32": {}, "i64": {}, "isize": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {}, "usize": {},
}

// Mangle returns the canonical name of t. Locations and argument names do
// not take part.
func Mangle(t ast.Type) string {
	var b strings.Builder
	mangleInto(&b, &t)
	return b.String()
}

func mangleInto(b *strings.Builder, t *ast.Type) {
	switch t.Kind {
	case ast.TypePrimitive:
		b.WriteString(t.Prim.String())
	case ast.TypePointer:
		b.WriteString(t.Const.String())
		b.WriteByte('_')
		mangleInto(b, t.Elem)
		b.WriteString("_ptr")
	case ast.TypeStringPointer:
		b.WriteString(t.Const.String())
		b.WriteString("_str")
	case ast.TypeSlice:
		b.WriteString("slice_")
		b.WriteString(t.Const.String())
		b.WriteByte('_')
		mangleInto(b, t.Elem)
	case ast.TypeOwned:
		b.WriteString("owned_")
		mangleInto(b, t.Elem)
	case ast.TypeFunc:
		b.WriteString(t.Func.String())
		b.WriteByte('_')
		if t.Returns != nil {
			mangleInto(b, t.Returns)
		} else {
			b.WriteString("void")
		}
		b.WriteString("_args")
		b.WriteString(strconv.Itoa(len(t.Args)))
		for i := range t.Args {
			b.WriteByte('_')
			mangleInto(b, &t.Args[i].Type)
		}
	case ast.TypeArray:
		b.WriteString("array_")
		mangleInto(b, t.Elem)
		b.WriteByte('_')
		b.WriteString(strconv.FormatUint(t.Len, 10))
	case ast.TypeIdent:
		b.WriteString(mangleIdent(t.Name.Name))
	}
}

func mangleIdent(name string) string {
	if _, reserved := reservedWords[name]; reserved || strings.Contains(name, "_") || name == "" || startsWithDigit(name) {
		return strconv.Itoa(len(name)) + name
	}
	return name
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// Equal reports structural equality; it agrees with comparing Mangle results.
func Equal(a, b ast.Type) bool {
	return equal(&a, &b)
}

func equal(a, b *ast.Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ast.TypePrimitive:
		return a.Prim == b.Prim
	case ast.TypeIdent:
		return a.Name.Name == b.Name.Name
	case ast.TypePointer, ast.TypeSlice:
		return a.Const == b.Const && equal(a.Elem, b.Elem)
	case ast.TypeStringPointer:
		return a.Const == b.Const
	case ast.TypeOwned:
		return equal(a.Elem, b.Elem)
	case ast.TypeArray:
		return a.Len == b.Len && equal(a.Elem, b.Elem)
	case ast.TypeFunc:
		if a.Func != b.Func || len(a.Args) != len(b.Args) || !equal(a.Returns, b.Returns) {
			return false
		}
		for i := range a.Args {
			if !equal(&a.Args[i].Type, &b.Args[i].Type) {
				return false
			}
		}
		return true
	}
	return false
}

// IsSized reports whether the layout of t is knowable. Only an identifier can
// be unsized; concrete says whether a name denotes a struct with fields.
func IsSized(t *ast.Type, concrete func(name string) bool) bool {
	if t.Kind != ast.TypeIdent {
		return true
	}
	return concrete(t.Name.Name)
}
