package abi

import (
	"fmt"
	"strconv"
	"strings"

	"vellum/internal/ast"
)

// DemangleError describes where a mangled name stopped making sense.
type DemangleError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *DemangleError) Error() string {
	return fmt.Sprintf("demangle %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

// Demangle parses a name produced by Mangle back into a type. Locations are
// zero and function-pointer arguments are named a0, a1, ...
func Demangle(s string) (ast.Type, error) {
	d := demangler{in: s}
	t, err := d.typ()
	if err != nil {
		return ast.Type{}, err
	}
	if d.pos != len(d.in) {
		return ast.Type{}, d.fail("trailing input")
	}
	return t, nil
}

type demangler struct {
	in  string
	pos int
}

func (d *demangler) fail(format string, args ...any) *DemangleError {
	return &DemangleError{Input: d.in, Offset: d.pos, Msg: fmt.Sprintf(format, args...)}
}

// word reads up to the next '_' (exclusive) without consuming the separator.
func (d *demangler) word() string {
	end := strings.IndexByte(d.in[d.pos:], '_')
	if end < 0 {
		end = len(d.in) - d.pos
	}
	w := d.in[d.pos : d.pos+end]
	d.pos += end
	return w
}

func (d *demangler) sep() error {
	if d.pos >= len(d.in) || d.in[d.pos] != '_' {
		return d.fail("expected '_'")
	}
	d.pos++
	return nil
}

func (d *demangler) expectWord(want string) error {
	start := d.pos
	if w := d.word(); w != want {
		d.pos = start
		return d.fail("expected %q", want)
	}
	return nil
}

func (d *demangler) constness() (ast.Constness, error) {
	start := d.pos
	switch d.word() {
	case "const":
		return ast.Const, nil
	case "mut":
		return ast.Mut, nil
	}
	d.pos = start
	return 0, d.fail("expected const or mut")
}

func (d *demangler) typ() (ast.Type, error) {
	if d.pos >= len(d.in) {
		return ast.Type{}, d.fail("unexpected end of input")
	}
	if startsWithDigit(d.in[d.pos:]) {
		return d.lengthPrefixedIdent()
	}
	start := d.pos
	w := d.word()
	if p, ok := ast.LookupPrimitive(w); ok {
		return ast.PrimType(p), nil
	}
	switch w {
	case "const", "mut":
		c := ast.Const
		if w == "mut" {
			c = ast.Mut
		}
		if err := d.sep(); err != nil {
			return ast.Type{}, err
		}
		if strings.HasPrefix(d.in[d.pos:], "str") && (len(d.in) == d.pos+3 || d.in[d.pos+3] == '_') {
			d.pos += 3
			return ast.StringPointer(c), nil
		}
		elem, err := d.typ()
		if err != nil {
			return ast.Type{}, err
		}
		if err := d.sep(); err != nil {
			return ast.Type{}, err
		}
		if err := d.expectWord("ptr"); err != nil {
			return ast.Type{}, err
		}
		return ast.PointerTo(c, elem), nil
	case "slice":
		if err := d.sep(); err != nil {
			return ast.Type{}, err
		}
		c, err := d.constness()
		if err != nil {
			return ast.Type{}, err
		}
		if err := d.sep(); err != nil {
			return ast.Type{}, err
		}
		elem, err := d.typ()
		if err != nil {
			return ast.Type{}, err
		}
		return ast.SliceOf(c, elem), nil
	case "owned":
		if err := d.sep(); err != nil {
			return ast.Type{}, err
		}
		elem, err := d.typ()
		if err != nil {
			return ast.Type{}, err
		}
		return ast.OwnedOf(elem), nil
	case "fn", "closure":
		return d.funcPtr(w)
	case "array":
		return d.array()
	}
	if _, reserved := reservedWords[w]; reserved || w == "" {
		d.pos = start
		return ast.Type{}, d.fail("unexpected word %q", w)
	}
	return ast.IdentType(w), nil
}

func (d *demangler) lengthPrefixedIdent() (ast.Type, error) {
	start := d.pos
	for d.pos < len(d.in) && d.in[d.pos] >= '0' && d.in[d.pos] <= '9' {
		d.pos++
	}
	n, err := strconv.Atoi(d.in[start:d.pos])
	if err != nil || n <= 0 || d.pos+n > len(d.in) {
		d.pos = start
		return ast.Type{}, d.fail("bad identifier length")
	}
	name := d.in[d.pos : d.pos+n]
	d.pos += n
	return ast.IdentType(name), nil
}

func (d *demangler) funcPtr(kind string) (ast.Type, error) {
	fk := ast.FuncPlain
	if kind == "closure" {
		fk = ast.FuncClosure
	}
	if err := d.sep(); err != nil {
		return ast.Type{}, err
	}
	var returns *ast.Type
	if w := d.peekWord(); w == "void" {
		d.pos += len(w)
	} else {
		ret, err := d.typ()
		if err != nil {
			return ast.Type{}, err
		}
		returns = &ret
	}
	if err := d.sep(); err != nil {
		return ast.Type{}, err
	}
	start := d.pos
	w := d.word()
	if !strings.HasPrefix(w, "args") {
		d.pos = start
		return ast.Type{}, d.fail("expected argument count")
	}
	n, err := strconv.Atoi(w[len("args"):])
	if err != nil || n < 0 {
		d.pos = start
		return ast.Type{}, d.fail("bad argument count %q", w)
	}
	args := make([]ast.Arg, 0, n)
	for i := range n {
		if err := d.sep(); err != nil {
			return ast.Type{}, err
		}
		at, err := d.typ()
		if err != nil {
			return ast.Type{}, err
		}
		args = append(args, ast.Arg{Name: ast.Identifier{Name: "a" + strconv.Itoa(i)}, Type: at})
	}
	return ast.FuncPtr(fk, args, returns), nil
}

func (d *demangler) array() (ast.Type, error) {
	if err := d.sep(); err != nil {
		return ast.Type{}, err
	}
	elem, err := d.typ()
	if err != nil {
		return ast.Type{}, err
	}
	if err := d.sep(); err != nil {
		return ast.Type{}, err
	}
	start := d.pos
	n, err := strconv.ParseUint(d.word(), 10, 64)
	if err != nil {
		d.pos = start
		return ast.Type{}, d.fail("bad array length")
	}
	return ast.ArrayOf(elem, n), nil
}

func (d *demangler) peekWord() string {
	start := d.pos
	w := d.word()
	d.pos = start
	return w
}
