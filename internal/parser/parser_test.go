package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lak/internal/ast"
	"lak/internal/lexer"
)

func parseSrc(t *testing.T, src string) (*ast.Module, []*Error) {
	t.Helper()
	toks, lexErrs := lexer.Tokenize([]byte(src))
	require.Empty(t, lexErrs)
	return Parse(toks)
}

func TestParseHelloWorld(t *testing.T) {
	mod, errs := parseSrc(t, `fn main() -> void { println("hello") }`)
	require.Empty(t, errs)
	require.Len(t, mod.Functions, 1)
	fn := mod.Functions[0]
	require.Equal(t, "main", fn.Name)
	require.Equal(t, "void", fn.ReturnTypeText)
	require.Len(t, fn.Body, 1)

	stmt, ok := fn.Body[0].(*ast.ExprStmt)
	require.True(t, ok)
	call, ok := stmt.Expr.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "println", call.Callee)
	require.Len(t, call.Args, 1)
}

func TestParseImportWithAlias(t *testing.T) {
	mod, errs := parseSrc(t, "import \"./util\" as u\nfn main() -> void {}\n")
	require.Empty(t, errs)
	require.Len(t, mod.Imports, 1)
	require.Equal(t, "./util", mod.Imports[0].Path)
	require.Equal(t, "u", mod.Imports[0].Alias)
}

func TestParseLetMutAndAssign(t *testing.T) {
	mod, errs := parseSrc(t, "fn main() -> void { let mut x: i32 = 1\nx = x + 2\n }")
	require.Empty(t, errs)
	fn := mod.Functions[0]
	require.Len(t, fn.Body, 2)
	let, ok := fn.Body[0].(*ast.LetStmt)
	require.True(t, ok)
	require.True(t, let.Mutable)
	require.Equal(t, "i32", let.Type.Name)

	assign, ok := fn.Body[1].(*ast.AssignStmt)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name)
}

func TestParseMutUnderscoreRejected(t *testing.T) {
	_, errs := parseSrc(t, "fn main() -> void { let mut _ = 1\n }")
	require.NotEmpty(t, errs)
}

func TestParseOnlyCallsAllowedAsStatements(t *testing.T) {
	_, errs := parseSrc(t, "fn main() -> void { 1 + 2\n }")
	require.NotEmpty(t, errs)
}

func TestParseMultilineCallArguments(t *testing.T) {
	mod, errs := parseSrc(t, "fn main() -> void {\n  foo(\n    1,\n    2\n  )\n}")
	require.Empty(t, errs)
	stmt := mod.Functions[0].Body[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.Call)
	require.Len(t, call.Args, 2)
}

func TestParseIfElseChain(t *testing.T) {
	mod, errs := parseSrc(t, `fn main() -> void {
  if x {
    println("a")
  } else if y {
    println("b")
  } else {
    println("c")
  }
}`)
	require.Empty(t, errs)
	ifStmt, ok := mod.Functions[0].Body[0].(*ast.IfExpr)
	require.True(t, ok)
	elseIf, ok := ifStmt.Else.(*ast.IfExpr)
	require.True(t, ok)
	_, ok = elseIf.Else.([]ast.Stmt)
	require.True(t, ok)
}

func TestParseModuleQualifiedCall(t *testing.T) {
	mod, errs := parseSrc(t, "import \"./util\"\nfn main() -> void { util.hello() }")
	require.Empty(t, errs)
	stmt := mod.Functions[0].Body[0].(*ast.ExprStmt)
	call, ok := stmt.Expr.(*ast.ModuleCall)
	require.True(t, ok)
	require.Equal(t, "util", call.Module)
	require.Equal(t, "hello", call.Function)
}

func TestParseNegativeIntLiteralFolded(t *testing.T) {
	mod, errs := parseSrc(t, "fn main() -> void { let x: i64 = -9223372036854775808\n }")
	require.Empty(t, errs)
	let := mod.Functions[0].Body[0].(*ast.LetStmt)
	lit, ok := let.Init.(*ast.IntLit)
	require.True(t, ok)
	require.True(t, lit.Negative)
	require.Equal(t, uint64(9223372036854775808), lit.Magnitude)
}

func TestParseTopLevelLetIsSyntaxError(t *testing.T) {
	_, errs := parseSrc(t, "let x: i32 = 10\nfn main() -> void {}")
	require.NotEmpty(t, errs)
}

func TestOperatorPrecedence(t *testing.T) {
	mod, errs := parseSrc(t, "fn main() -> void { let x: i32 = 1 + 2 * 3\n }")
	require.Empty(t, errs)
	let := mod.Functions[0].Body[0].(*ast.LetStmt)
	bin := let.Init.(*ast.BinaryExpr)
	require.Equal(t, ast.Add, bin.Op)
	rhs := bin.Right.(*ast.BinaryExpr)
	require.Equal(t, ast.Mul, rhs.Op)
}

func TestSpansWithinSource(t *testing.T) {
	src := "fn main() -> void { println(\"hi\") }"
	mod, errs := parseSrc(t, src)
	require.Empty(t, errs)
	sp := mod.Functions[0].Span()
	require.GreaterOrEqual(t, sp.StartByte, 0)
	require.LessOrEqual(t, sp.EndByte, len(src))
}
