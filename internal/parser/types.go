package parser

import (
	"strconv"

	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/token"
)

// parseType разбирает тип:
//
//	PRIM | IDENT | owned T | *const|mut (string | [T] | T)
//	fn|closure (args) (-> T)? | [T; N]
func (p *Parser) parseType() (ast.Type, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Primitive:
		p.advance()
		prim, _ := ast.LookupPrimitive(tok.Text)
		t := ast.PrimType(prim)
		t.Span = tok.Span
		return t, true

	case token.Ident:
		p.advance()
		return ast.Type{Kind: ast.TypeIdent, Span: tok.Span, Name: ast.Identifier{Name: tok.Text, Span: tok.Span}}, true

	case token.KwOwned:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return ast.Type{}, false
		}
		t := ast.OwnedOf(elem)
		t.Span = tok.Span.Cover(elem.Span)
		return t, true

	case token.Star:
		return p.parsePointerType()

	case token.KwFn, token.KwClosure:
		p.advance()
		kind := ast.FuncPlain
		if tok.Kind == token.KwClosure {
			kind = ast.FuncClosure
		}
		args, ok := p.parseArgs()
		if !ok {
			return ast.Type{}, false
		}
		var returns *ast.Type
		if p.eat(token.Arrow) {
			ret, ok := p.parseType()
			if !ok {
				return ast.Type{}, false
			}
			returns = &ret
		}
		t := ast.FuncPtr(kind, args, returns)
		t.Span = tok.Span.Cover(p.lastSpan)
		return t, true

	case token.LBracket:
		return p.parseArrayType()

	default:
		p.err(diag.SynExpectType, "expected type, got \""+tok.Text+"\"")
		return ast.Type{}, false
	}
}

func (p *Parser) parsePointerType() (ast.Type, bool) {
	star := p.advance()
	var c ast.Constness
	switch {
	case p.eat(token.KwConst):
		c = ast.Const
	case p.eat(token.KwMut):
		c = ast.Mut
	default:
		p.err(diag.SynUnexpectedToken, "expected 'const' or 'mut' after '*'")
		return ast.Type{}, false
	}

	switch {
	case p.at(token.KwString):
		end := p.advance()
		t := ast.StringPointer(c)
		t.Span = star.Span.Cover(end.Span)
		return t, true
	case p.at(token.LBracket):
		open := p.advance()
		elem, ok := p.parseType()
		if !ok {
			return ast.Type{}, false
		}
		if p.at(token.Semicolon) {
			// *const [T; N]: указатель на массив, не срез
			arr, ok := p.parseArrayRest(open, elem)
			if !ok {
				return ast.Type{}, false
			}
			t := ast.PointerTo(c, arr)
			t.Span = star.Span.Cover(arr.Span)
			return t, true
		}
		end, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close slice type")
		if !ok {
			return ast.Type{}, false
		}
		t := ast.SliceOf(c, elem)
		t.Span = star.Span.Cover(end.Span)
		return t, true
	default:
		elem, ok := p.parseType()
		if !ok {
			return ast.Type{}, false
		}
		t := ast.PointerTo(c, elem)
		t.Span = star.Span.Cover(elem.Span)
		return t, true
	}
}

// [T; N]
func (p *Parser) parseArrayType() (ast.Type, bool) {
	open := p.advance()
	elem, ok := p.parseType()
	if !ok {
		return ast.Type{}, false
	}
	return p.parseArrayRest(open, elem)
}

// parseArrayRest разбирает `; N]` после типа элемента.
func (p *Parser) parseArrayRest(open token.Token, elem ast.Type) (ast.Type, bool) {
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' between array element type and length"); !ok {
		return ast.Type{}, false
	}
	lenTok, ok := p.expect(token.IntLit, diag.SynUnexpectedToken, "expected array length")
	if !ok {
		return ast.Type{}, false
	}
	n, err := strconv.ParseUint(lenTok.Text, 10, 64)
	if err != nil {
		p.report(diag.SynUnexpectedToken, lenTok.Span, "invalid array length: "+err.Error())
		return ast.Type{}, false
	}
	end, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' to close array type")
	if !ok {
		return ast.Type{}, false
	}
	t := ast.ArrayOf(elem, n)
	t.Span = open.Span.Cover(end.Span)
	return t, true
}
