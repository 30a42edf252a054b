package sema

import (
	"fmt"

	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/namespace"
)

type position uint8

const (
	posValue position = iota
	posIndirect
)

// itemChecker validates one item and collects its layout dependencies.
type itemChecker struct {
	ns   *namespace.Namespace
	r    diag.Reporter
	deps []string
	seen map[string]struct{}
}

func checkItem(ns *namespace.Namespace, it *ast.Item, r diag.Reporter) []string {
	c := &itemChecker{ns: ns, r: r, seen: make(map[string]struct{})}
	switch it.Kind {
	case ast.ItemStruct:
		if !it.Struct.Abstract {
			c.checkFields(it.Struct)
		}
	case ast.ItemFunction:
		c.checkFunction(it.Function)
	}
	if c.deps == nil {
		return []string{}
	}
	return c.deps
}

func (c *itemChecker) checkFields(s *ast.Struct) {
	names := make(map[string]ast.Identifier, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if first, dup := names[f.Name.Name]; dup {
			diag.ReportError(c.r, diag.SemaDuplicateName, f.Name.Span,
				fmt.Sprintf("field `%s` is declared twice in struct `%s`", f.Name.Name, s.Name.Name)).
				WithLabel("duplicate field name").
				WithNote(first.Span, "first used here").
				Emit()
		} else {
			names[f.Name.Name] = f.Name
		}
		c.walk(&f.Type, posValue, true)
	}
}

func (c *itemChecker) checkFunction(fn *ast.Function) {
	c.checkArgs(fn.Args, true)
	if fn.Returns != nil {
		c.walk(fn.Returns, posValue, true)
	}
}

func (c *itemChecker) checkArgs(args []ast.Arg, record bool) {
	names := make(map[string]ast.Identifier, len(args))
	for i := range args {
		a := &args[i]
		if first, dup := names[a.Name.Name]; dup {
			diag.ReportError(c.r, diag.SemaDuplicateName, a.Name.Span,
				fmt.Sprintf("argument `%s` is declared twice", a.Name.Name)).
				WithLabel("duplicate argument name").
				WithNote(first.Span, "first used here").
				Emit()
		} else {
			names[a.Name.Name] = a.Name
		}
		c.walk(&a.Type, posValue, record)
	}
}

// walk validates t found in position pos. Layout dependencies are recorded
// only while record holds and t sits in value position.
func (c *itemChecker) walk(t *ast.Type, pos position, record bool) {
	switch t.Kind {
	case ast.TypePrimitive, ast.TypeStringPointer:
	case ast.TypeIdent:
		c.checkIdent(t, pos, record)
	case ast.TypePointer, ast.TypeSlice:
		c.walk(t.Elem, posIndirect, false)
	case ast.TypeOwned:
		c.walk(t.Elem, pos, record)
	case ast.TypeFunc:
		// указатель на функцию имеет размер указателя: зависимостей нет
		c.checkArgs(t.Args, false)
		if t.Returns != nil {
			c.walk(t.Returns, posValue, false)
		}
	case ast.TypeArray:
		c.checkArrayElem(t, pos, record)
	}
}

func (c *itemChecker) checkArrayElem(arr *ast.Type, pos position, record bool) {
	elem := arr.Elem
	if elem.Kind == ast.TypeIdent {
		if it, ok := c.ns.Lookup(elem.Name.Name); ok && it.IsAbstractStruct() {
			diag.ReportError(c.r, diag.SemaUnsizedType, arr.Span, "array element must be a sized type").
				WithLabel(fmt.Sprintf("`%s` has no fields", elem.Name.Name)).
				WithNote(it.Struct.Name.Span, "declared without fields here").
				Emit()
			return
		}
	}
	c.walk(elem, posValue, record && pos == posValue)
}

func (c *itemChecker) checkIdent(t *ast.Type, pos position, record bool) {
	name := t.Name.Name
	it, ok := c.ns.Lookup(name)
	if !ok {
		diag.ReportError(c.r, diag.SemaUnresolvedIdentifier, t.Name.Span, fmt.Sprintf("no type `%s` found", name)).
			WithLabel("used here").
			Emit()
		return
	}
	if it.Kind != ast.ItemStruct {
		diag.ReportError(c.r, diag.SemaWrongKind, t.Name.Span, fmt.Sprintf("expected type, `%s` is a %s", name, it.Kind)).
			WithLabel("got a " + it.Kind.String()).
			WithNote(it.Function.Name.Span, "defined here").
			Emit()
		return
	}
	if pos != posValue {
		return
	}
	if it.Struct.Abstract {
		diag.ReportError(c.r, diag.SemaAbstractTypeMisuse, t.Name.Span, fmt.Sprintf("abstract type `%s` used by value", name)).
			WithLabel("structs without fields can only be used behind a pointer").
			WithNote(it.Struct.Name.Span, "declared without fields here").
			Emit()
		return
	}
	if record {
		c.addDep(name)
	}
}

func (c *itemChecker) addDep(name string) {
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = struct{}{}
	c.deps = append(c.deps, name)
}
