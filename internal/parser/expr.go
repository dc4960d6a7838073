package parser

import (
	"strconv"

	"lak/internal/ast"
	"lak/internal/source"
	"lak/internal/token"
)

// parseExpr is the entry point for expression parsing, at the
// loosest-binding precedence level (logical or).
func (p *parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(token.OR_OR) {
		opTok := p.advance()
		right := p.parseAnd()
		left = bin(ast.OrOr, opTok, left, right)
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AND_AND) {
		opTok := p.advance()
		right := p.parseEquality()
		left = bin(ast.AndAnd, opTok, left, right)
	}
	return left
}

func (p *parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.at(token.EQ_EQ) || p.at(token.BANG_EQ) {
		opTok := p.advance()
		op := ast.Eq
		if opTok.Kind == token.BANG_EQ {
			op = ast.NotEq
		}
		right := p.parseComparison()
		left = bin(op, opTok, left, right)
	}
	return left
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.GT) || p.at(token.LT_EQ) || p.at(token.GT_EQ) {
		opTok := p.advance()
		var op ast.BinOp
		switch opTok.Kind {
		case token.LT:
			op = ast.Lt
		case token.GT:
			op = ast.Gt
		case token.LT_EQ:
			op = ast.LtEq
		case token.GT_EQ:
			op = ast.GtEq
		}
		right := p.parseAdditive()
		left = bin(op, opTok, left, right)
	}
	return left
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		opTok := p.advance()
		op := ast.Add
		if opTok.Kind == token.MINUS {
			op = ast.Sub
		}
		right := p.parseMultiplicative()
		left = bin(op, opTok, left, right)
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		opTok := p.advance()
		var op ast.BinOp
		switch opTok.Kind {
		case token.STAR:
			op = ast.Mul
		case token.SLASH:
			op = ast.Div
		case token.PERCENT:
			op = ast.Mod
		}
		right := p.parseUnary()
		left = bin(op, opTok, left, right)
	}
	return left
}

func bin(op ast.BinOp, opTok token.Token, left, right ast.Expr) ast.Expr {
	return &ast.BinaryExpr{Op: op, OpSpan: opTok.Span, Left: left, Right: right, Span_: source.Join(left.Span(), right.Span())}
}

func (p *parser) parseUnary() ast.Expr {
	if p.at(token.MINUS) {
		opTok := p.advance()
		operand := p.parseUnary()
		// Fold a leading minus directly into an integer literal so
		// the most negative i64 value stays representable (spec §3,
		// §4.1): the lexer only ever produces non-negative magnitudes.
		if lit, ok := operand.(*ast.IntLit); ok && !lit.Negative {
			return &ast.IntLit{Magnitude: lit.Magnitude, Negative: true, Span_: source.Join(opTok.Span, lit.Span_)}
		}
		return &ast.UnaryExpr{Op: ast.Neg, OpSpan: opTok.Span, Operand: operand, Span_: source.Join(opTok.Span, operand.Span())}
	}
	if p.at(token.BANG) {
		opTok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: ast.Not, OpSpan: opTok.Span, Operand: operand, Span_: source.Join(opTok.Span, operand.Span())}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.INT:
		p.advance()
		mag, err := strconv.ParseUint(tok.Value, 10, 64)
		if err != nil {
			mag = 0 // already reported as IntegerOverflow by the lexer
		}
		return &ast.IntLit{Magnitude: mag, Span_: tok.Span}
	case token.FLOAT:
		p.advance()
		val, _ := strconv.ParseFloat(tok.Value, 64)
		return &ast.FloatLit{Value: val, Span_: tok.Span}
	case token.STRING:
		p.advance()
		return &ast.StringLit{Value: tok.Value, Span_: tok.Span}
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Span_: tok.Span}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Span_: tok.Span}
	case token.LPAREN:
		p.advance()
		p.skipTerminators()
		inner := p.parseExpr()
		p.skipTerminators()
		p.expect(token.RPAREN, "')'")
		return inner
	case token.IF:
		return p.parseIfExpr()
	case token.IDENT:
		return p.parseIdentExpr()
	default:
		p.err(errUnexpected(tok.Span, tok, "in an expression"))
		p.advance()
		return &ast.Ident{Name: "", Span_: tok.Span}
	}
}

// parseIdentExpr handles a plain identifier, a call, a module-
// qualified call, or a module member access (only legal as a call
// callee; the analyzer rejects any other use per spec §4.4).
func (p *parser) parseIdentExpr() ast.Expr {
	nameTok := p.advance()

	if p.at(token.DOT) {
		p.advance()
		memberTok := p.expect(token.IDENT, "a function name")
		if p.at(token.LPAREN) {
			args, span := p.parseArgs()
			return &ast.ModuleCall{
				Module: nameTok.Value, ModuleSpan: nameTok.Span,
				Function: memberTok.Value, FuncSpan: memberTok.Span,
				Args: args, Span_: source.Join(nameTok.Span, span),
			}
		}
		return &ast.ModuleAccess{
			Module: nameTok.Value, ModuleSpan: nameTok.Span,
			Member: memberTok.Value, MemberSpan: memberTok.Span,
			Span_: source.Join(nameTok.Span, memberTok.Span),
		}
	}

	if p.at(token.LPAREN) {
		args, span := p.parseArgs()
		return &ast.Call{Callee: nameTok.Value, CalleeSpan: nameTok.Span, Args: args, Span_: source.Join(nameTok.Span, span)}
	}

	return &ast.Ident{Name: nameTok.Value, Span_: nameTok.Span}
}

// parseArgs parses `(expr, expr, ...)`, returning the arguments and
// the span of the whole parenthesized list.
func (p *parser) parseArgs() ([]ast.Expr, source.Span) {
	open := p.expect(token.LPAREN, "'('")
	p.skipTerminators()

	var args []ast.Expr
	for !p.at(token.RPAREN) && !p.atEOF() {
		args = append(args, p.parseExpr())
		p.skipTerminators()
		if p.at(token.COMMA) {
			p.advance()
			p.skipTerminators()
			continue
		}
		break
	}
	p.skipTerminators()
	close := p.expect(token.RPAREN, "')'")
	return args, source.Join(open.Span, close.Span)
}
