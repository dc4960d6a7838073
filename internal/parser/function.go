package parser

import (
	"lak/internal/ast"
	"lak/internal/source"
	"lak/internal/token"
)

func (p *parser) parseFunction() *ast.Function {
	vis := ast.Private
	start := p.peek()
	if p.at(token.PUB) {
		vis = ast.Public
		p.advance()
	}
	fnTok := p.expect(token.FN, "'fn'")
	nameTok := p.expect(token.IDENT, "a function name")

	fn := &ast.Function{
		Visibility: vis,
		Name:       nameTok.Value,
		NameSpan:   nameTok.Span,
	}

	p.expect(token.LPAREN, "'('")
	p.skipTerminators()
	for !p.at(token.RPAREN) && !p.atEOF() {
		fn.Params = append(fn.Params, p.parseParam())
		p.skipTerminators()
		if p.at(token.COMMA) {
			p.advance()
			p.skipTerminators()
			continue
		}
		break
	}
	p.skipTerminators()
	p.expect(token.RPAREN, "')'")

	p.expect(token.ARROW, "'->'")
	retTok := p.expect(token.IDENT, "a return type")
	fn.ReturnTypeText = retTok.Value
	fn.ReturnTypeSpan = retTok.Span

	fn.SignatureSpan = source.Join(fnTok.Span, retTok.Span)

	body, bodySpan := p.parseBlock()
	fn.Body = body
	fn.Span_ = source.Join(start.Span, bodySpan)
	return fn
}

func (p *parser) parseParam() *ast.Param {
	nameTok := p.expect(token.IDENT, "a parameter name")
	p.expect(token.COLON, "':'")
	typeTok := p.expect(token.IDENT, "a type name")
	return &ast.Param{
		Name:  nameTok.Value,
		Type:  &ast.TypeRef{Name: typeTok.Value, Span_: typeTok.Span},
		Span_: source.Join(nameTok.Span, typeTok.Span),
	}
}

// parseBlock parses `{ stmt* }` and returns the statements plus the
// span covering the full block including braces.
func (p *parser) parseBlock() ([]ast.Stmt, source.Span) {
	open := p.expect(token.LBRACE, "'{'")
	p.skipTerminators()

	var stmts []ast.Stmt
	for !p.at(token.RBRACE) && !p.atEOF() {
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		p.skipTerminators()
	}
	close := p.expect(token.RBRACE, "'}'")
	return stmts, source.Join(open.Span, close.Span)
}
