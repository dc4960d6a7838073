package parser

import (
	"fmt"

	"lak/internal/source"
	"lak/internal/token"
)

// Error is a structured parse failure: a span, a short diagnostic,
// and optionally an actionable hint (spec §4.2).
type Error struct {
	Span    source.Span
	Message string
	Help    string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) withHint(hint string) *Error {
	e.Help = hint
	return e
}

func errExpected(span source.Span, want string, got token.Token) *Error {
	return &Error{Span: span, Message: fmt.Sprintf("expected %s, found %s", want, describe(got))}
}

func errUnexpected(span source.Span, got token.Token, context string) *Error {
	return &Error{Span: span, Message: fmt.Sprintf("unexpected %s %s", describe(got), context)}
}

func errTopLevel(span source.Span, got token.Token) *Error {
	e := &Error{Span: span, Message: fmt.Sprintf("only 'import' and function definitions are allowed at the top level, found %s", describe(got))}
	e.Help = "move this statement inside a function body"
	return e
}

func errMutDiscard(span source.Span) *Error {
	e := &Error{Span: span, Message: "'let mut _' is not allowed"}
	e.Help = "a discard binding can't be reassigned, so it can't be declared mutable"
	return e
}

func errInvalidExprStatement(span source.Span) *Error {
	e := &Error{Span: span, Message: "only function calls are allowed as statements"}
	e.Help = "bind the result with 'let' or 'let _' if you need its value"
	return e
}

func errExpectedCallForMemberAccess(span source.Span) *Error {
	e := &Error{Span: span, Message: "expected a call after '.'"}
	e.Help = "add parentheses to call the function, e.g. mod.name()"
	return e
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.IDENT:
		return fmt.Sprintf("identifier '%s'", t.Value)
	case token.INT, token.FLOAT:
		return fmt.Sprintf("number '%s'", t.Value)
	case token.STRING:
		return "string literal"
	default:
		return t.Kind.String()
	}
}
