package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lak/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeHelloWorld(t *testing.T) {
	toks, errs := Tokenize([]byte(`fn main() -> void { println("hello") }`))
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{
		token.FN, token.IDENT, token.LPAREN, token.RPAREN, token.ARROW, token.IDENT,
		token.LBRACE, token.IDENT, token.LPAREN, token.STRING, token.RPAREN, token.RBRACE,
		token.EOF,
	}, kinds(toks))
}

func TestAutomaticTerminatorAfterStatementEndingToken(t *testing.T) {
	src := "let mut x: i32 = 1\nx = x + 2\n"
	toks, errs := Tokenize([]byte(src))
	require.Empty(t, errs)

	var termCount int
	for _, tk := range toks {
		if tk.Kind == token.TERMINATOR {
			termCount++
		}
	}
	require.Equal(t, 2, termCount)
}

func TestNoTerminatorAfterOpenBraceOrComma(t *testing.T) {
	src := "foo(\n  a,\n  b\n)\n"
	toks, _ := Tokenize([]byte(src))
	// no terminator directly follows '(' or ','
	for i, tk := range toks {
		if tk.Kind == token.LPAREN || tk.Kind == token.COMMA {
			require.NotEqual(t, token.TERMINATOR, toks[i+1].Kind)
		}
	}
}

func TestByteAliasNormalizesToU8(t *testing.T) {
	toks, errs := Tokenize([]byte("let x: byte = 1\n"))
	require.Empty(t, errs)
	found := false
	for _, tk := range toks {
		if tk.Kind == token.IDENT && tk.Value == "u8" {
			found = true
		}
	}
	require.True(t, found)
}

func TestIntegerOverflow(t *testing.T) {
	_, errs := Tokenize([]byte("99999999999999999999999\n"))
	require.Len(t, errs, 1)
	require.Equal(t, IntegerOverflow, errs[0].Kind)
}

func TestUnterminatedString(t *testing.T) {
	_, errs := Tokenize([]byte(`"hello`))
	require.Len(t, errs, 1)
	require.Equal(t, UnterminatedString, errs[0].Kind)
}

func TestUnknownEscape(t *testing.T) {
	_, errs := Tokenize([]byte(`"bad\qescape"`))
	require.Len(t, errs, 1)
	require.Equal(t, UnknownEscape, errs[0].Kind)
}

func TestValidFloatLiteral(t *testing.T) {
	toks, errs := Tokenize([]byte("3.14\n"))
	require.Empty(t, errs)
	require.Equal(t, token.FLOAT, toks[0].Kind)
}

func TestNonASCIIIdentifierRejected(t *testing.T) {
	_, errs := Tokenize([]byte("let café = 1\n"))
	require.NotEmpty(t, errs)
}

func TestCommentsAreNeverTokenized(t *testing.T) {
	toks, errs := Tokenize([]byte("// a comment\nlet x: i32 = 1\n"))
	require.Empty(t, errs)
	require.Equal(t, token.LET, toks[0].Kind)
}

func TestSpansCoverSource(t *testing.T) {
	src := []byte("let x: i32 = 1\n")
	toks, _ := Tokenize(src)
	for _, tk := range toks {
		require.GreaterOrEqual(t, tk.Span.StartByte, 0)
		require.LessOrEqual(t, tk.Span.EndByte, len(src))
		require.LessOrEqual(t, tk.Span.StartByte, tk.Span.EndByte)
	}
}
