package ast

import (
	"vellum/internal/source"
)

type TypeKind uint8

const (
	TypePrimitive TypeKind = iota
	TypeIdent
	TypePointer       // *const T / *mut T
	TypeStringPointer // *const string / *mut string
	TypeSlice         // *const [T] / *mut [T]
	TypeOwned         // owned T
	TypeFunc          // fn(..) -> T / closure(..) -> T
	TypeArray         // [T; N]
)

type Primitive uint8

const (
	PrimBool Primitive = iota
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimIsize
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimUsize
)

var primitiveNames = [...]string{
	PrimBool:  "bool",
	PrimI8:    "i8",
	PrimI16:   "i16",
	PrimI32:   "i32",
	PrimI64:   "i64",
	PrimIsize: "isize",
	PrimU8:    "u8",
	PrimU16:   "u16",
	PrimU32:   "u32",
	PrimU64:   "u64",
	PrimUsize: "usize",
}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return "?"
}

// LookupPrimitive maps a spelled scalar name to its Primitive.
func LookupPrimitive(name string) (Primitive, bool) {
	for i, n := range primitiveNames {
		if n == name {
			return Primitive(i), true // #nosec G115 -- index below len(primitiveNames)
		}
	}
	return 0, false
}

type Constness uint8

const (
	Const Constness = iota
	Mut
)

func (c Constness) String() string {
	if c == Mut {
		return "mut"
	}
	return "const"
}

type FuncKind uint8

const (
	// FuncPlain is a bare function pointer (`fn`).
	FuncPlain FuncKind = iota
	// FuncClosure is a function pointer with captured state (`closure`).
	FuncClosure
)

func (k FuncKind) String() string {
	if k == FuncClosure {
		return "closure"
	}
	return "fn"
}

// Type is a closed tagged union over TypeKind. Fields not used by Kind stay
// zero:
//
//	TypePrimitive      Prim
//	TypeIdent          Name
//	TypePointer        Const, Elem
//	TypeStringPointer  Const
//	TypeSlice          Const, Elem
//	TypeOwned          Elem
//	TypeFunc           Func, Args, Returns (nil: void)
//	TypeArray          Elem, Len
type Type struct {
	Kind TypeKind
	Span source.Span

	Prim    Primitive
	Name    Identifier
	Const   Constness
	Elem    *Type
	Func    FuncKind
	Args    []Arg
	Returns *Type
	Len     uint64
}

func PrimType(p Primitive) Type { return Type{Kind: TypePrimitive, Prim: p} }

func IdentType(name string) Type {
	return Type{Kind: TypeIdent, Name: Identifier{Name: name}}
}

func PointerTo(c Constness, elem Type) Type {
	return Type{Kind: TypePointer, Const: c, Elem: &elem}
}

func StringPointer(c Constness) Type { return Type{Kind: TypeStringPointer, Const: c} }

func SliceOf(c Constness, elem Type) Type {
	return Type{Kind: TypeSlice, Const: c, Elem: &elem}
}

func OwnedOf(elem Type) Type { return Type{Kind: TypeOwned, Elem: &elem} }

func FuncPtr(k FuncKind, args []Arg, returns *Type) Type {
	return Type{Kind: TypeFunc, Func: k, Args: args, Returns: returns}
}

func ArrayOf(elem Type, n uint64) Type {
	return Type{Kind: TypeArray, Elem: &elem, Len: n}
}
