// Package c renders a unit as a C header: forward declarations, one typedef
// per helper shape, struct definitions in dependency order and prototypes.
package c

import (
	"fmt"
	"strings"

	"vellum/internal/abi"
	"vellum/internal/ast"
	"vellum/internal/emit"
)

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

type emitter struct {
	unit    *emit.Unit
	buf     strings.Builder
	defined map[string]struct{}
}

// Emit returns <name>.h.
func Emit(u *emit.Unit) ([]emit.File, error) {
	e := &emitter{unit: u, defined: make(map[string]struct{})}
	guard := "VELLUM_" + emit.GuardName(u.Name) + "_H"

	fmt.Fprintf(&e.buf, "/* %s */\n", emit.Banner(u))
	fmt.Fprintf(&e.buf, "#ifndef %s\n#define %s\n\n", guard, guard)
	e.buf.WriteString("#include <stdbool.h>\n#include <stddef.h>\n#include <stdint.h>\n#include <sys/types.h>\n\n")
	e.buf.WriteString(abiMacro)
	e.buf.WriteString("\n#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")

	e.emitForwardDecls()
	if err := e.emitHelpers(); err != nil {
		return nil, err
	}
	if err := e.emitStructs(); err != nil {
		return nil, err
	}
	e.emitFunctions()

	e.buf.WriteString("#ifdef __cplusplus\n}\n#endif\n\n")
	fmt.Fprintf(&e.buf, "#endif /* %s */\n", guard)

	return []emit.File{{Name: u.Name + ".h", Content: []byte(e.buf.String())}}, nil
}

func (e *emitter) emitForwardDecls() {
	n := 0
	for _, it := range e.unit.AbstractStructs() {
		fmt.Fprintf(&e.buf, "struct %s;\n", it.Struct.Name.Name)
		n++
	}
	for _, it := range e.unit.Structs() {
		fmt.Fprintf(&e.buf, "struct %s;\n", it.Struct.Name.Name)
		n++
	}
	if n > 0 {
		e.buf.WriteByte('\n')
	}
}

// emitHelpers: сначала typedef-ы всех имён, потом определения. Owned slice
// содержит срез по значению, owned pointer содержит свою цель по значению,
// поэтому срезы и замыкания идут первыми. Owned pointer, внутри которого
// лежит структура, откладывается до emitStructs.
func (e *emitter) emitHelpers() error {
	helpers := e.unit.Surface.Helpers()
	if len(helpers) == 0 {
		return nil
	}
	for _, h := range helpers {
		fmt.Fprintf(&e.buf, "typedef struct %s %s;\n", h.CName(), h.CName())
	}
	e.buf.WriteByte('\n')

	for _, kind := range []abi.HelperKind{abi.HelperSlice, abi.HelperClosure, abi.HelperOwnedSlice} {
		for _, h := range helpers {
			if h.Kind != kind {
				continue
			}
			if err := e.emitHelper(h); err != nil {
				return err
			}
		}
	}
	for _, h := range e.unit.Surface.OwnedPointers() {
		if embedsStruct(h.Elem()) {
			continue
		}
		if err := e.ensureOwned(h); err != nil {
			return err
		}
	}
	return nil
}

// embedsStruct reports whether a value of type t contains a struct
// definition, directly or through arrays and owned pointers.
func embedsStruct(t *ast.Type) bool {
	switch t.Kind {
	case ast.TypeIdent:
		return true
	case ast.TypeArray:
		return embedsStruct(t.Elem)
	case ast.TypeOwned:
		return t.Elem.Kind != ast.TypeSlice && embedsStruct(t.Elem)
	}
	return false
}

// ownedByValue returns the owned pointer helper held by value in t, if any.
func (e *emitter) ownedByValue(t *ast.Type) *abi.Helper {
	switch t.Kind {
	case ast.TypeArray:
		return e.ownedByValue(t.Elem)
	case ast.TypeOwned:
		if t.Elem.Kind == ast.TypeSlice {
			return nil
		}
		if h, ok := e.unit.Surface.Lookup(abi.Mangle(*t)); ok {
			return h
		}
	}
	return nil
}

// ensureOwned defines h once, after the owned pointers nested in it.
func (e *emitter) ensureOwned(h *abi.Helper) error {
	if _, ok := e.defined[h.Name]; ok {
		return nil
	}
	e.defined[h.Name] = struct{}{}
	if inner := e.ownedByValue(h.Elem()); inner != nil {
		if err := e.ensureOwned(inner); err != nil {
			return err
		}
	}
	return e.emitHelper(h)
}

func (e *emitter) emitHelper(h *abi.Helper) error {
	fmt.Fprintf(&e.buf, "struct %s {\n", h.CName())
	switch h.Kind {
	case abi.HelperSlice:
		data := ast.PointerTo(h.Const(), *h.Elem())
		fmt.Fprintf(&e.buf, "  %s;\n", Decl(&data, "data"))
		e.buf.WriteString("  size_t len;\n")
	case abi.HelperOwnedPtr:
		fmt.Fprintf(&e.buf, "  %s;\n", Decl(h.Elem(), "data"))
		fmt.Fprintf(&e.buf, "  void (*deleter)(%s);\n", Decl(h.Elem(), ""))
	case abi.HelperOwnedSlice:
		if h.Slice == nil {
			return fmt.Errorf("owned slice %s has no slice helper", h.Name)
		}
		fmt.Fprintf(&e.buf, "  %s slice_data;\n", h.Slice.CName())
		fmt.Fprintf(&e.buf, "  void (*deleter)(%s);\n", h.Slice.CName())
	case abi.HelperClosure:
		args := make([]string, 0, len(h.Type.Args)+1)
		args = append(args, "void *")
		for i := range h.Type.Args {
			args = append(args, Decl(&h.Type.Args[i].Type, ""))
		}
		caller := "(*caller)(" + strings.Join(args, ", ") + ")"
		if h.Type.Returns == nil {
			fmt.Fprintf(&e.buf, "  void %s;\n", caller)
		} else {
			fmt.Fprintf(&e.buf, "  %s;\n", Decl(h.Type.Returns, caller))
		}
		e.buf.WriteString("  void *state;\n")
		e.buf.WriteString("  void (*deleter)(void *);\n")
	default:
		return fmt.Errorf("unknown helper kind %s", h.Kind)
	}
	e.buf.WriteString("};\n\n")
	return nil
}

// emitStructs пишет структуры в порядке зависимостей. Отложенные owned
// pointer-ы встают прямо перед первой структурой, которая их держит: всё, что
// лежит внутри них, к этому моменту уже определено.
func (e *emitter) emitStructs() error {
	for _, it := range e.unit.Structs() {
		for i := range it.Struct.Fields {
			if h := e.ownedByValue(&it.Struct.Fields[i].Type); h != nil {
				if err := e.ensureOwned(h); err != nil {
					return err
				}
			}
		}
		emit.WriteDocs(&e.buf, "", "//", it.Docs)
		fmt.Fprintf(&e.buf, "struct %s {\n", it.Struct.Name.Name)
		for i := range it.Struct.Fields {
			f := &it.Struct.Fields[i]
			emit.WriteDocs(&e.buf, "  ", "//", f.Docs)
			fmt.Fprintf(&e.buf, "  %s;\n", Decl(&f.Type, f.Name.Name))
		}
		e.buf.WriteString("};\n\n")
	}
	// остаток встречается только в сигнатурах функций
	for _, h := range e.unit.Surface.OwnedPointers() {
		if err := e.ensureOwned(h); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) emitFunctions() {
	for _, it := range e.unit.Functions() {
		fn := it.Function
		emit.WriteDocs(&e.buf, "", "//", it.Docs)
		sig := fn.Name.Name + "(" + params(fn.Args) + ")"
		if fn.Returns == nil {
			fmt.Fprintf(&e.buf, "VELLUM_ABI void %s;\n\n", sig)
			continue
		}
		fmt.Fprintf(&e.buf, "VELLUM_ABI %s;\n\n", Decl(fn.Returns, sig))
	}
}
