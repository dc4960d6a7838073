// Package diagnostic renders the structured errors produced by every
// compiler phase (lexer, parser, resolver, semantic analyzer, code
// generator) into the single on-screen report format described in
// spec §4.6, independent of which phase raised the problem.
package diagnostic

import (
	"lak/internal/codegen"
	"lak/internal/lexer"
	"lak/internal/parser"
	"lak/internal/resolve"
	"lak/internal/semantic"
	"lak/internal/source"
)

// Severity classifies a Diagnostic for coloring and the summary line.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one phase-agnostic report: a span (or none, for a
// program-level problem like a missing main function), a message, an
// optional actionable hint, and which phase raised it.
type Diagnostic struct {
	Phase    string
	Kind     string
	Span     source.Span
	HasSpan  bool
	Message  string
	Help     string
	Severity Severity
	// File/Text override the compilation's primary file when the
	// diagnostic concerns a different module (spec §4.3 step 5: a
	// parse error inside an imported file, surfaced while resolving
	// the importer).
	File string
	Text []byte
}

// FromLexer adapts a lexer.Error.
func FromLexer(err *lexer.Error) Diagnostic {
	return Diagnostic{Phase: "lexing", Kind: string(err.Kind), Span: err.Span, HasSpan: true, Message: err.Message, Help: err.Help, Severity: SeverityError}
}

// FromParser adapts a parser.Error.
func FromParser(err *parser.Error) Diagnostic {
	return Diagnostic{Phase: "parsing", Span: err.Span, HasSpan: true, Message: err.Message, Help: err.Help, Severity: SeverityError}
}

// FromResolve adapts a resolve.Error. A WrappedLexParseError carries
// the imported file's own path and text so the snippet opens the
// right file instead of the importer's.
func FromResolve(err *resolve.Error) Diagnostic {
	d := Diagnostic{Phase: "resolving", Kind: string(err.Kind), Span: err.Span, HasSpan: true, Message: err.Message, Help: err.Help, Severity: SeverityError}
	if err.Kind == resolve.WrappedLexParseError {
		d.File = err.File
		d.Text = err.Text
	}
	return d
}

// FromSemantic adapts a semantic.Error.
func FromSemantic(err *semantic.Error) Diagnostic {
	return Diagnostic{Phase: "type checking", Kind: string(err.Kind), Span: err.Span, HasSpan: err.HasSpan, Message: err.Message, Help: err.Help, Severity: SeverityError}
}

// FromCodegen adapts a codegen.Error.
func FromCodegen(err *codegen.Error) Diagnostic {
	return Diagnostic{Phase: "code generation", Kind: string(err.Kind), Span: err.Span, HasSpan: err.HasSpan, Message: err.Message, Severity: SeverityError}
}

// FromLexerAll, FromParserAll, ... batch-convert a phase's error slice.

func FromLexerAll(errs []*lexer.Error) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = FromLexer(e)
	}
	return out
}

func FromParserAll(errs []*parser.Error) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = FromParser(e)
	}
	return out
}

func FromResolveAll(errs []*resolve.Error) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = FromResolve(e)
	}
	return out
}

func FromSemanticAll(errs []*semantic.Error) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = FromSemantic(e)
	}
	return out
}

func FromCodegenAll(errs []*codegen.Error) []Diagnostic {
	out := make([]Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = FromCodegen(e)
	}
	return out
}
