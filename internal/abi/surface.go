package abi

import (
	"sort"

	"vellum/internal/ast"
	"vellum/internal/source"
)

type HelperKind uint8

const (
	HelperSlice HelperKind = iota
	HelperOwnedPtr
	HelperOwnedSlice
	HelperClosure
)

func (k HelperKind) String() string {
	switch k {
	case HelperSlice:
		return "slice"
	case HelperOwnedPtr:
		return "owned_ptr"
	case HelperOwnedSlice:
		return "owned_slice"
	case HelperClosure:
		return "closure"
	default:
		return "helper"
	}
}

// Helper is one distinct compound shape that target languages without
// generics have to declare separately.
type Helper struct {
	Kind HelperKind
	// Name is Mangle(Type).
	Name string
	Type ast.Type
	// Slice is the slice helper an owned slice wraps.
	Slice *Helper
}

// Elem returns the element of a slice or owned slice, or the target of an
// owned pointer. Closures have none.
func (h *Helper) Elem() *ast.Type {
	switch h.Kind {
	case HelperOwnedSlice:
		return h.Type.Elem.Elem
	case HelperClosure:
		return nil
	default:
		return h.Type.Elem
	}
}

// Const reports the constness of the underlying slice; owned pointers are
// never const.
func (h *Helper) Const() ast.Constness {
	switch h.Kind {
	case HelperSlice:
		return h.Type.Const
	case HelperOwnedSlice:
		return h.Type.Elem.Const
	default:
		return ast.Mut
	}
}

// CName is the C typedef name of the helper.
func (h *Helper) CName() string {
	switch h.Kind {
	case HelperOwnedPtr:
		return "vellum_owned_ptr_" + Mangle(*h.Type.Elem)
	default:
		// slice_* и owned_slice_* уже несут префикс вида
		return "vellum_" + h.Name
	}
}

// Surface is the set of helper shapes reachable from a list of items.
type Surface struct {
	byName map[string]*Helper
}

// CollectSurface walks the fields of concrete structs and the arguments and
// returns of functions, descending through pointers, slices, owned types,
// arrays and function-pointer signatures, and records every slice, owned
// pointer, owned slice and closure shape once.
func CollectSurface(items []*ast.Item) *Surface {
	s := &Surface{byName: make(map[string]*Helper)}
	for _, it := range items {
		switch {
		case it.IsConcreteStruct():
			for i := range it.Struct.Fields {
				s.visit(&it.Struct.Fields[i].Type)
			}
		case it.Kind == ast.ItemFunction:
			for i := range it.Function.Args {
				s.visit(&it.Function.Args[i].Type)
			}
			if it.Function.Returns != nil {
				s.visit(it.Function.Returns)
			}
		}
	}
	return s
}

func (s *Surface) visit(t *ast.Type) {
	ast.Walk(t, func(n *ast.Type) bool {
		switch n.Kind {
		case ast.TypeSlice:
			s.addSlice(n)
		case ast.TypeFunc:
			if n.Func == ast.FuncClosure {
				s.add(HelperClosure, n)
			}
		case ast.TypeOwned:
			if n.Elem.Kind == ast.TypeSlice {
				slice := s.addSlice(n.Elem)
				s.add(HelperOwnedSlice, n).Slice = slice
			} else {
				s.add(HelperOwnedPtr, n)
			}
		}
		return true
	})
}

func (s *Surface) addSlice(t *ast.Type) *Helper {
	return s.add(HelperSlice, t)
}

func (s *Surface) add(kind HelperKind, t *ast.Type) *Helper {
	name := Mangle(*t)
	if h, ok := s.byName[name]; ok {
		return h
	}
	h := &Helper{Kind: kind, Name: name, Type: stripSpans(*t)}
	s.byName[name] = h
	return h
}

func (s *Surface) Len() int {
	return len(s.byName)
}

// Lookup finds a helper by mangled name.
func (s *Surface) Lookup(name string) (*Helper, bool) {
	h, ok := s.byName[name]
	return h, ok
}

// Helpers returns every helper sorted by mangled name.
func (s *Surface) Helpers() []*Helper {
	out := make([]*Helper, 0, len(s.byName))
	for _, h := range s.byName {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Surface) Slices() []*Helper { return s.filter(HelperSlice) }

func (s *Surface) OwnedPointers() []*Helper { return s.filter(HelperOwnedPtr) }

func (s *Surface) OwnedSlices() []*Helper { return s.filter(HelperOwnedSlice) }

func (s *Surface) Closures() []*Helper { return s.filter(HelperClosure) }

func (s *Surface) filter(kind HelperKind) []*Helper {
	var out []*Helper
	for _, h := range s.Helpers() {
		if h.Kind == kind {
			out = append(out, h)
		}
	}
	return out
}

// stripSpans deep-copies t with every location zeroed.
func stripSpans(t ast.Type) ast.Type {
	t.Span = source.Span{}
	t.Name.Span = source.Span{}
	if t.Elem != nil {
		e := stripSpans(*t.Elem)
		t.Elem = &e
	}
	if t.Returns != nil {
		r := stripSpans(*t.Returns)
		t.Returns = &r
	}
	if t.Args != nil {
		args := make([]ast.Arg, len(t.Args))
		for i, a := range t.Args {
			args[i] = ast.Arg{Name: ast.Identifier{Name: a.Name.Name}, Type: stripSpans(a.Type)}
		}
		t.Args = args
	}
	return t
}
