// Package python renders a unit as a ctypes module. Structures are declared
// first and get their _fields_ afterwards so that self-referencing pointers
// resolve; functions are bound by load(path).
package python

import (
	"fmt"
	"strconv"
	"strings"

	"vellum/internal/ast"
	"vellum/internal/emit"
)

var primNames = [...]string{
	ast.PrimBool:  "ct.c_bool",
	ast.PrimI8:    "ct.c_int8",
	ast.PrimI16:   "ct.c_int16",
	ast.PrimI32:   "ct.c_int32",
	ast.PrimI64:   "ct.c_int64",
	ast.PrimIsize: "ct.c_ssize_t",
	ast.PrimU8:    "ct.c_uint8",
	ast.PrimU16:   "ct.c_uint16",
	ast.PrimU32:   "ct.c_uint32",
	ast.PrimU64:   "ct.c_uint64",
	ast.PrimUsize: "ct.c_size_t",
}

const incompleteNote = "Incomplete type; field definitions are provided elsewhere."

// TypeExpr spells t as a ctypes expression. ctypes has no constness.
func TypeExpr(t *ast.Type) string {
	switch t.Kind {
	case ast.TypePrimitive:
		return primNames[t.Prim]
	case ast.TypeIdent:
		return t.Name.Name
	case ast.TypePointer:
		return "ct.POINTER(" + TypeExpr(t.Elem) + ")"
	case ast.TypeStringPointer:
		return "ct.c_char_p"
	case ast.TypeSlice:
		return "vellum.Slice(" + TypeExpr(t.Elem) + ")"
	case ast.TypeOwned:
		return "vellum.Owned(" + TypeExpr(t.Elem) + ")"
	case ast.TypeFunc:
		name := "ct.CFUNCTYPE"
		if t.Func == ast.FuncClosure {
			name = "vellum.Closure"
		}
		parts := []string{returnExpr(t.Returns)}
		for i := range t.Args {
			parts = append(parts, TypeExpr(&t.Args[i].Type))
		}
		return name + "(" + strings.Join(parts, ", ") + ")"
	case ast.TypeArray:
		return "(" + TypeExpr(t.Elem) + " * " + strconv.FormatUint(t.Len, 10) + ")"
	}
	return "None"
}

func returnExpr(t *ast.Type) string {
	if t == nil {
		return "None"
	}
	return TypeExpr(t)
}

// Emit returns <name>.py.
func Emit(u *emit.Unit) ([]emit.File, error) {
	var buf strings.Builder

	fmt.Fprintf(&buf, "# %s\n", emit.Banner(u))
	buf.WriteString("\nimport ctypes as ct\n\nimport vellum\n")

	for _, it := range u.AbstractStructs() {
		lines := append([]string(nil), it.Docs...)
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, incompleteNote)
		fmt.Fprintf(&buf, "\n\nclass %s(ct.Structure):\n", it.Struct.Name.Name)
		docstring(&buf, "    ", lines)
	}

	structs := u.Structs()
	for _, it := range structs {
		fmt.Fprintf(&buf, "\n\nclass %s(ct.Structure):\n", it.Struct.Name.Name)
		if lines := structDoc(it); len(lines) > 0 {
			docstring(&buf, "    ", lines)
		} else {
			buf.WriteString("    pass\n")
		}
	}
	if len(structs) > 0 {
		buf.WriteString("\n")
	}
	for _, it := range structs {
		fmt.Fprintf(&buf, "\n%s._fields_ = [\n", it.Struct.Name.Name)
		for i := range it.Struct.Fields {
			f := &it.Struct.Fields[i]
			fmt.Fprintf(&buf, "    (%q, %s),\n", f.Name.Name, TypeExpr(&f.Type))
		}
		buf.WriteString("]\n")
	}

	emitLibrary(&buf, u.Functions())
	return []emit.File{{Name: u.Name + ".py", Content: []byte(buf.String())}}, nil
}

func structDoc(it *ast.Item) []string {
	lines := append([]string(nil), it.Docs...)
	var fields []string
	for i := range it.Struct.Fields {
		f := &it.Struct.Fields[i]
		if len(f.Docs) == 0 {
			continue
		}
		fields = append(fields, "- "+f.Name.Name+": "+f.Docs[0])
		for _, d := range f.Docs[1:] {
			fields = append(fields, "  "+d)
		}
	}
	if len(fields) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Fields:")
		lines = append(lines, fields...)
	}
	return lines
}

func emitLibrary(buf *strings.Builder, funcs []*ast.Item) {
	buf.WriteString("\n\nclass _Library:\n")
	var doc []string
	for _, it := range funcs {
		if len(doc) == 0 {
			doc = append(doc, "Functions:")
		}
		doc = append(doc, "", "- "+it.Function.Name.Name)
		for _, d := range it.Docs {
			doc = append(doc, "  "+d)
		}
	}
	if len(doc) > 0 {
		docstring(buf, "    ", doc)
		buf.WriteString("\n")
	}
	buf.WriteString("    def __init__(self, path):\n")
	buf.WriteString("        self._dll = ct.CDLL(path)\n")
	for _, it := range funcs {
		fn := it.Function
		name := fn.Name.Name
		args := make([]string, len(fn.Args))
		for i := range fn.Args {
			args[i] = TypeExpr(&fn.Args[i].Type)
		}
		fmt.Fprintf(buf, "\n        self.%s = self._dll.%s\n", name, name)
		fmt.Fprintf(buf, "        self.%s.argtypes = [%s]\n", name, strings.Join(args, ", "))
		fmt.Fprintf(buf, "        self.%s.restype = %s\n", name, returnExpr(fn.Returns))
	}
	buf.WriteString("\n\ndef load(path):\n    return _Library(path)\n")
}

func docstring(buf *strings.Builder, indent string, lines []string) {
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = strings.ReplaceAll(strings.ReplaceAll(l, `\`, `\\`), `"""`, `\"\"\"`)
	}
	if len(escaped) == 1 {
		fmt.Fprintf(buf, "%s\"\"\"%s\"\"\"\n", indent, escaped[0])
		return
	}
	fmt.Fprintf(buf, "%s\"\"\"%s\n", indent, escaped[0])
	for _, l := range escaped[1:] {
		if l == "" {
			buf.WriteString("\n")
			continue
		}
		fmt.Fprintf(buf, "%s%s\n", indent, l)
	}
	fmt.Fprintf(buf, "%s\"\"\"\n", indent)
}
