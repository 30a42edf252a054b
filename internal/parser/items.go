package parser

import (
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/token"
)

// import "path";
func (p *Parser) parseImportItem() (ast.Item, bool) {
	kw := p.advance()
	pathTok, ok := p.expect(token.StringLit, diag.SynUnexpectedToken, "expected import path string")
	if !ok {
		return ast.Item{}, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after import")
	if !ok {
		return ast.Item{}, false
	}
	return ast.Item{
		Docs: kw.Docs(),
		Span: kw.Span.Cover(semi.Span),
		Kind: ast.ItemImport,
		Import: &ast.Import{
			Path:     pathTok.Text,
			PathSpan: pathTok.Span,
		},
	}, true
}

// struct Name;  |  struct Name { field: T, ... }
func (p *Parser) parseStructItem() (ast.Item, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("struct name")
	if !ok {
		return ast.Item{}, false
	}
	item := ast.Item{
		Docs:   kw.Docs(),
		Kind:   ast.ItemStruct,
		Struct: &ast.Struct{Name: name},
	}

	if p.at(token.Semicolon) {
		semi := p.advance()
		item.Struct.Abstract = true
		item.Span = kw.Span.Cover(semi.Span)
		return item, true
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' or ';' after struct name"); !ok {
		return ast.Item{}, false
	}

	fields := make([]ast.Field, 0, 4)
	for !p.at(token.RBrace) {
		field, ok := p.parseField()
		if !ok {
			return ast.Item{}, false
		}
		fields = append(fields, field)
		if !p.eat(token.Comma) {
			break
		}
	}
	closing, ok := p.expect(token.RBrace, diag.SynExpectRightBracket, "expected '}' to close struct fields")
	if !ok {
		return ast.Item{}, false
	}
	end := closing.Span
	if p.at(token.Semicolon) {
		end = p.advance().Span
	}
	item.Struct.Fields = fields
	item.Span = kw.Span.Cover(end)
	return item, true
}

func (p *Parser) parseField() (ast.Field, bool) {
	docs := p.lx.Peek().Docs()
	name, ok := p.parseIdent("field name")
	if !ok {
		return ast.Field{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
		return ast.Field{}, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.Field{}, false
	}
	return ast.Field{Docs: docs, Name: name, Type: ty}, true
}

// function name(arg: T, ...) -> R;
func (p *Parser) parseFunctionItem() (ast.Item, bool) {
	kw := p.advance()
	name, ok := p.parseIdent("function name")
	if !ok {
		return ast.Item{}, false
	}
	args, ok := p.parseArgs()
	if !ok {
		return ast.Item{}, false
	}
	var returns *ast.Type
	if p.eat(token.Arrow) {
		ret, ok := p.parseType()
		if !ok {
			return ast.Item{}, false
		}
		returns = &ret
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after function signature")
	if !ok {
		return ast.Item{}, false
	}
	return ast.Item{
		Docs: kw.Docs(),
		Span: kw.Span.Cover(semi.Span),
		Kind: ast.ItemFunction,
		Function: &ast.Function{
			Name:    name,
			Args:    args,
			Returns: returns,
		},
	}, true
}

// '(' (arg (',' arg)* ','?)? ')'
func (p *Parser) parseArgs() ([]ast.Arg, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, false
	}
	var args []ast.Arg
	for !p.at(token.RParen) {
		name, ok := p.parseIdent("argument name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after argument name"); !ok {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args = append(args, ast.Arg{Name: name, Type: ty})
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' to close argument list"); !ok {
		return nil, false
	}
	return args, true
}
