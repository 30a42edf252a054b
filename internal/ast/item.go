package ast

import "vellum/internal/source"

// Identifier is a name together with the location it was written at.
type Identifier struct {
	Name string
	Span source.Span
}

type ItemKind uint8

const (
	ItemImport ItemKind = iota
	ItemStruct
	ItemFunction
)

func (k ItemKind) String() string {
	switch k {
	case ItemImport:
		return "import"
	case ItemStruct:
		return "struct"
	case ItemFunction:
		return "function"
	default:
		return "item"
	}
}

// Item is a top-level declaration. Exactly one of Import, Struct, Function is
// set, matching Kind.
type Item struct {
	Docs []string
	Span source.Span
	Kind ItemKind

	Import   *Import
	Struct   *Struct
	Function *Function
}

// Name returns the declared identifier; imports have none.
func (it *Item) Name() (Identifier, bool) {
	switch it.Kind {
	case ItemStruct:
		return it.Struct.Name, true
	case ItemFunction:
		return it.Function.Name, true
	default:
		return Identifier{}, false
	}
}

// IsConcreteStruct reports whether the item is a struct with a field list.
func (it *Item) IsConcreteStruct() bool {
	return it.Kind == ItemStruct && !it.Struct.Abstract
}

// IsAbstractStruct reports whether the item is a forward-declared struct.
func (it *Item) IsAbstractStruct() bool {
	return it.Kind == ItemStruct && it.Struct.Abstract
}

// Import references another schema file. Resolved is filled by the loader;
// nil means the file was already loaded through another import.
type Import struct {
	Path     string
	PathSpan source.Span
	Resolved *File
}

// Struct is either concrete (Fields) or abstract (opaque, no fields).
type Struct struct {
	Name     Identifier
	Fields   []Field
	Abstract bool
}

type Field struct {
	Docs []string
	Name Identifier
	Type Type
}

// Arg is a named function or function-pointer argument.
type Arg struct {
	Name Identifier
	Type Type
}

type Function struct {
	Name    Identifier
	Args    []Arg
	Returns *Type // nil: no return value
}

// NewStructItem builds a concrete struct item; useful in tests.
func NewStructItem(name Identifier, fields ...Field) Item {
	return Item{
		Span:   name.Span,
		Kind:   ItemStruct,
		Struct: &Struct{Name: name, Fields: fields},
	}
}

// NewAbstractItem builds an abstract struct item.
func NewAbstractItem(name Identifier) Item {
	return Item{
		Span:   name.Span,
		Kind:   ItemStruct,
		Struct: &Struct{Name: name, Abstract: true},
	}
}

// NewFunctionItem builds a function item.
func NewFunctionItem(name Identifier, args []Arg, returns *Type) Item {
	return Item{
		Span:     name.Span,
		Kind:     ItemFunction,
		Function: &Function{Name: name, Args: args, Returns: returns},
	}
}

// NewImportItem builds an import item pointing at an already parsed file.
func NewImportItem(path string, resolved *File) Item {
	return Item{
		Kind:   ItemImport,
		Import: &Import{Path: path, Resolved: resolved},
	}
}
