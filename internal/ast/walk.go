package ast

// Walk visits t and its nested types in pre-order. Returning false from fn
// skips the children of the current node. Function-pointer arguments are
// visited before the return type.
func Walk(t *Type, fn func(*Type) bool) {
	if t == nil || !fn(t) {
		return
	}
	switch t.Kind {
	case TypePointer, TypeSlice, TypeOwned, TypeArray:
		Walk(t.Elem, fn)
	case TypeFunc:
		for i := range t.Args {
			Walk(&t.Args[i].Type, fn)
		}
		Walk(t.Returns, fn)
	}
}
