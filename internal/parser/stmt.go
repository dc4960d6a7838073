package parser

import (
	"lak/internal/ast"
	"lak/internal/source"
	"lak/internal/token"
)

// parseStmt dispatches on the current token to the right statement
// parser. It always consumes at least one token, so a malformed
// top-level token can never stall the block loop.
func (p *parser) parseStmt() ast.Stmt {
	switch p.peek().Kind {
	case token.LET:
		return p.parseLet()
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		tok := p.advance()
		p.endStmt()
		return &ast.BreakStmt{Span_: tok.Span}
	case token.CONTINUE:
		tok := p.advance()
		p.endStmt()
		return &ast.ContinueStmt{Span_: tok.Span}
	case token.IDENT:
		return p.parseIdentLedStmt()
	default:
		tok := p.peek()
		p.err(errUnexpected(tok.Span, tok, "at the start of a statement"))
		p.advance()
		return nil
	}
}

func (p *parser) parseLet() ast.Stmt {
	start := p.advance() // 'let'

	mutable := false
	if p.at(token.MUT) {
		mutTok := p.advance()
		if p.at(token.IDENT) && p.peek().Value == "_" {
			p.err(errMutDiscard(source.Join(mutTok.Span, p.peek().Span)))
		} else {
			mutable = true
		}
	}

	nameTok := p.expect(token.IDENT, "a variable name")

	var typ *ast.TypeRef
	if p.at(token.COLON) {
		p.advance()
		typeTok := p.expect(token.IDENT, "a type name")
		typ = &ast.TypeRef{Name: typeTok.Value, Span_: typeTok.Span}
	}

	p.expect(token.ASSIGN, "'='")
	init := p.parseExpr()

	stmt := &ast.LetStmt{
		Mutable:  mutable,
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Type:     typ,
		Init:     init,
		Span_:    source.Join(start.Span, exprSpanOr(init, nameTok.Span)),
	}
	p.endStmt()
	return stmt
}

func exprSpanOr(e ast.Expr, fallback source.Span) source.Span {
	if e == nil {
		return fallback
	}
	return e.Span()
}

func (p *parser) parseReturn() ast.Stmt {
	start := p.advance() // 'return'
	var value ast.Expr
	if !p.at(token.TERMINATOR) && !p.at(token.RBRACE) && !p.atEOF() {
		value = p.parseExpr()
	}
	stmt := &ast.ReturnStmt{Value: value, Span_: source.Join(start.Span, exprSpanOr(value, start.Span))}
	p.endStmt()
	return stmt
}

func (p *parser) parseWhile() ast.Stmt {
	start := p.advance() // 'while'
	cond := p.parseExpr()
	body, bodySpan := p.parseBlock()
	stmt := &ast.WhileStmt{Cond: cond, Body: body, Span_: source.Join(start.Span, bodySpan)}
	p.endStmt()
	return stmt
}

// parseIf parses an `if` used in statement position. The resulting
// *ast.IfExpr is reused verbatim when the same syntax appears in an
// expression position (spec §3: "if-expression is also a value
// expression when branch types match").
func (p *parser) parseIf() ast.Stmt {
	ifExpr := p.parseIfExpr()
	p.endStmt()
	return ifExpr
}

func (p *parser) parseIfExpr() *ast.IfExpr {
	start := p.advance() // 'if'
	cond := p.parseExpr()
	then, thenSpan := p.parseBlock()
	node := &ast.IfExpr{Cond: cond, Then: then, Span_: source.Join(start.Span, thenSpan)}

	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			elseIf := p.parseIfExpr()
			node.Else = elseIf
			node.Span_ = source.Join(node.Span_, elseIf.Span())
		} else {
			elseBody, elseSpan := p.parseBlock()
			node.Else = elseBody
			node.Span_ = source.Join(node.Span_, elseSpan)
		}
	}
	return node
}

// parseIdentLedStmt disambiguates an assignment from a call-form
// expression statement using one token of lookahead, per the
// grammar's `assign := IDENT '=' expr` rule.
func (p *parser) parseIdentLedStmt() ast.Stmt {
	if p.peekAt(1).Kind == token.ASSIGN {
		nameTok := p.advance()
		p.advance() // '='
		value := p.parseExpr()
		stmt := &ast.AssignStmt{
			Name:     nameTok.Value,
			NameSpan: nameTok.Span,
			Value:    value,
			Span_:    source.Join(nameTok.Span, exprSpanOr(value, nameTok.Span)),
		}
		p.endStmt()
		return stmt
	}

	start := p.peek()
	expr := p.parseExpr()
	switch expr.(type) {
	case *ast.Call, *ast.ModuleCall:
	default:
		p.err(errInvalidExprStatement(start.Span))
	}
	stmt := &ast.ExprStmt{Expr: expr, Span_: exprSpanOr(expr, start.Span)}
	p.endStmt()
	return stmt
}
