package ast

import (
	"strconv"
	"strings"
)

// String renders t in schema syntax.
func (t Type) String() string {
	var b strings.Builder
	writeType(&b, &t)
	return b.String()
}

func writeType(b *strings.Builder, t *Type) {
	switch t.Kind {
	case TypePrimitive:
		b.WriteString(t.Prim.String())
	case TypeIdent:
		b.WriteString(t.Name.Name)
	case TypePointer:
		b.WriteString("*" + t.Const.String() + " ")
		writeType(b, t.Elem)
	case TypeStringPointer:
		b.WriteString("*" + t.Const.String() + " string")
	case TypeSlice:
		b.WriteString("*" + t.Const.String() + " [")
		writeType(b, t.Elem)
		b.WriteByte(']')
	case TypeOwned:
		b.WriteString("owned ")
		writeType(b, t.Elem)
	case TypeFunc:
		b.WriteString(t.Func.String())
		b.WriteByte('(')
		for i := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.Args[i].Name.Name)
			b.WriteString(": ")
			writeType(b, &t.Args[i].Type)
		}
		b.WriteByte(')')
		if t.Returns != nil {
			b.WriteString(" -> ")
			writeType(b, t.Returns)
		}
	case TypeArray:
		b.WriteByte('[')
		writeType(b, t.Elem)
		b.WriteString("; ")
		b.WriteString(strconv.FormatUint(t.Len, 10))
		b.WriteByte(']')
	}
}
