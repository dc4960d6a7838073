package diagnostic

import (
	"strings"
	"testing"

	"lak/internal/lexer"
	"lak/internal/parser"
	"lak/internal/resolve"
	"lak/internal/source"
)

func TestFromLexerCarriesKindAndSpan(t *testing.T) {
	err := &lexer.Error{Kind: lexer.UnterminatedString, Span: source.Span{Line: 3, Column: 5}, Message: "unterminated string", Help: "close the quote"}
	d := FromLexer(err)
	if d.Phase != "lexing" || d.Kind != string(lexer.UnterminatedString) || !d.HasSpan {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if d.Message != "unterminated string" || d.Help != "close the quote" {
		t.Fatalf("message/help not carried through: %+v", d)
	}
}

func TestFromParserHasNoKind(t *testing.T) {
	err := &parser.Error{Span: source.Span{Line: 1, Column: 1}, Message: "unexpected token"}
	d := FromParser(err)
	if d.Kind != "" {
		t.Fatalf("parser diagnostics should carry no Kind, got %q", d.Kind)
	}
	if d.Phase != "parsing" {
		t.Fatalf("expected phase parsing, got %q", d.Phase)
	}
}

func TestFromResolveOverridesFileForWrappedLexParseError(t *testing.T) {
	err := &resolve.Error{
		Kind:    resolve.WrappedLexParseError,
		Span:    source.Span{Line: 2, Column: 1},
		Message: "unexpected token",
		File:    "imported.lak",
		Text:    []byte("fn bad( {\n"),
	}
	d := FromResolve(err)
	if d.File != "imported.lak" {
		t.Fatalf("expected File override to imported.lak, got %q", d.File)
	}
	if string(d.Text) != "fn bad( {\n" {
		t.Fatalf("expected Text override to the imported file's text, got %q", d.Text)
	}
}

func TestFromResolveLeavesFileEmptyForOtherKinds(t *testing.T) {
	err := &resolve.Error{Kind: resolve.CircularImport, Span: source.Span{Line: 1, Column: 1}, Message: "import cycle"}
	d := FromResolve(err)
	if d.File != "" || d.Text != nil {
		t.Fatalf("non-wrapped resolve errors must not override File/Text, got %+v", d)
	}
}

func TestRenderWithSpanIncludesSnippetAndHint(t *testing.T) {
	text := []byte("let x = 1\nlet y = bad\n")
	d := Diagnostic{
		Phase: "type checking", Span: source.Span{Line: 2, Column: 9, StartByte: 19, EndByte: 22},
		HasSpan: true, Message: "undefined identifier", Help: "did you mean x?", Severity: SeverityError,
	}
	out := Render("main.lak", text, d)
	if !strings.Contains(out, "undefined identifier") {
		t.Fatalf("expected message in output, got:\n%s", out)
	}
	if !strings.Contains(out, "let y = bad") {
		t.Fatalf("expected source line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "did you mean x?") {
		t.Fatalf("expected hint in output, got:\n%s", out)
	}
}

func TestRenderWithoutSpanSkipsSnippet(t *testing.T) {
	d := Diagnostic{Phase: "resolving", HasSpan: false, Message: "no main function found", Severity: SeverityError}
	out := Render("main.lak", []byte("fn helper() {}\n"), d)
	if !strings.Contains(out, "no main function found") {
		t.Fatalf("expected message in output, got:\n%s", out)
	}
	if !strings.Contains(out, "main.lak") {
		t.Fatalf("expected file path in output, got:\n%s", out)
	}
}
