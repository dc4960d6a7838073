package semantic

import (
	"math"

	"lak/internal/ast"
	"lak/internal/symbol"
	"lak/internal/types"
)

// exprResult is the outcome of inferring an expression's type.
// IntLit/FloatLit mark a still-polymorphic literal leaf so a caller
// can adapt it to a destination type per spec §4.4's literal
// adaptation rules, instead of forcing it to its default type early.
type exprResult struct {
	Kind     types.Kind
	IntLit   bool
	FloatLit bool
}

func (c *checker) naturalType(r exprResult) types.Kind {
	switch {
	case r.IntLit:
		return types.DefaultIntKind
	case r.FloatLit:
		return types.DefaultFloatKind
	default:
		return r.Kind
	}
}

func representableAsF32(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	f := float32(v)
	if math.IsInf(float64(f), 0) && !math.IsInf(v, 0) {
		return false
	}
	return true
}

func opSymbol(op ast.BinOp) string {
	switch op {
	case ast.Add:
		return "+"
	case ast.Sub:
		return "-"
	case ast.Mul:
		return "*"
	case ast.Div:
		return "/"
	case ast.Mod:
		return "%"
	case ast.Eq:
		return "=="
	case ast.NotEq:
		return "!="
	case ast.Lt:
		return "<"
	case ast.Gt:
		return ">"
	case ast.LtEq:
		return "<="
	case ast.GtEq:
		return ">="
	case ast.AndAnd:
		return "&&"
	case ast.OrOr:
		return "||"
	default:
		return "?"
	}
}

// inferExpr infers e's type with no destination context. Integer and
// float literal leaves stay polymorphic (spec §4.4).
func (c *checker) inferExpr(e ast.Expr) exprResult {
	switch x := e.(type) {
	case *ast.IntLit:
		return exprResult{IntLit: true}
	case *ast.FloatLit:
		return exprResult{FloatLit: true}
	case *ast.StringLit:
		return exprResult{Kind: types.String}
	case *ast.BoolLit:
		return exprResult{Kind: types.Bool}
	case *ast.Ident:
		v, ok := c.scope.Lookup(x.Name)
		if !ok {
			c.s.errs = append(c.s.errs, errUndefinedVariable(x.Span_, x.Name))
			return exprResult{Kind: types.Invalid}
		}
		return exprResult{Kind: v.Type}
	case *ast.Call:
		return c.inferCall(x)
	case *ast.ModuleCall:
		return c.inferModuleCall(x)
	case *ast.ModuleAccess:
		c.s.errs = append(c.s.errs, errModuleAccessNotImplemented(x.Span_))
		return exprResult{Kind: types.Invalid}
	case *ast.UnaryExpr:
		return c.inferUnary(x)
	case *ast.BinaryExpr:
		return c.inferBinary(x)
	case *ast.IfExpr:
		return c.inferIfExpr(x)
	default:
		return exprResult{Kind: types.Invalid}
	}
}

// checkExprAgainst checks e against an expected type, adapting a bare
// literal leaf to target instead of forcing it to its default first
// (spec §4.4).
func (c *checker) checkExprAgainst(e ast.Expr, target types.Kind) {
	switch lit := e.(type) {
	case *ast.IntLit:
		if target == types.Invalid {
			return
		}
		if !target.IsInteger() {
			c.s.errs = append(c.s.errs, errTypeMismatch(e.Span(), target.String(), "integer literal"))
			return
		}
		neg, mag := lit.AsInt128()
		if !target.FitsUnsignedMagnitude(neg, mag) {
			c.s.errs = append(c.s.errs, errIntegerOverflow(e.Span(), target.String()))
		}
		return
	case *ast.FloatLit:
		if target == types.Invalid {
			return
		}
		if !target.IsFloat() {
			c.s.errs = append(c.s.errs, errTypeMismatch(e.Span(), target.String(), "float literal"))
			return
		}
		if target == types.F32 && !representableAsF32(lit.Value) {
			c.s.errs = append(c.s.errs, errInvalidFloatLiteral(e.Span(), target.String()))
		}
		return
	}

	res := c.inferExpr(e)
	got := c.naturalType(res)
	if got == types.Invalid || target == types.Invalid || got == types.Never {
		return
	}
	if got != target {
		c.s.errs = append(c.s.errs, errTypeMismatch(e.Span(), target.String(), got.String()))
	}
}

// checkArg is checkExprAgainst specialized for call arguments, which
// report ArgumentTypeMismatch instead of TypeMismatch (spec §4.4).
func (c *checker) checkArg(e ast.Expr, target types.Kind, fname string, idx int) {
	switch lit := e.(type) {
	case *ast.IntLit:
		if target == types.Invalid {
			return
		}
		if !target.IsInteger() {
			c.s.errs = append(c.s.errs, errArgumentTypeMismatch(e.Span(), fname, idx, target.String(), "integer literal"))
			return
		}
		neg, mag := lit.AsInt128()
		if !target.FitsUnsignedMagnitude(neg, mag) {
			c.s.errs = append(c.s.errs, errIntegerOverflow(e.Span(), target.String()))
		}
		return
	case *ast.FloatLit:
		if target == types.Invalid {
			return
		}
		if !target.IsFloat() {
			c.s.errs = append(c.s.errs, errArgumentTypeMismatch(e.Span(), fname, idx, target.String(), "float literal"))
			return
		}
		if target == types.F32 && !representableAsF32(lit.Value) {
			c.s.errs = append(c.s.errs, errInvalidFloatLiteral(e.Span(), target.String()))
		}
		return
	}

	res := c.inferExpr(e)
	got := c.naturalType(res)
	if got == types.Invalid || target == types.Invalid || got == types.Never {
		return
	}
	if got != target {
		c.s.errs = append(c.s.errs, errArgumentTypeMismatch(e.Span(), fname, idx, target.String(), got.String()))
	}
}

func (c *checker) checkArgs(span ast.Node, name string, params []symbol.Param, args []ast.Expr) {
	if len(params) != len(args) {
		c.s.errs = append(c.s.errs, errArgumentCountMismatch(span.Span(), name, len(params), len(args)))
		for _, a := range args {
			c.inferExpr(a)
		}
		return
	}
	for i, a := range args {
		c.checkArg(a, params[i].Type, name, i)
	}
}

func (c *checker) inferCall(x *ast.Call) exprResult {
	switch x.Callee {
	case preludePrintln:
		if len(x.Args) != 1 {
			c.s.errs = append(c.s.errs, errArgumentCountMismatch(x.Span_, "println", 1, len(x.Args)))
			for _, a := range x.Args {
				c.inferExpr(a)
			}
			return exprResult{Kind: types.Void}
		}
		if lit, ok := x.Args[0].(*ast.IntLit); ok {
			c.checkArg(lit, types.DefaultIntKind, "println", 0)
			return exprResult{Kind: types.Void}
		}
		if lit, ok := x.Args[0].(*ast.FloatLit); ok {
			c.checkArg(lit, types.DefaultFloatKind, "println", 0)
			return exprResult{Kind: types.Void}
		}
		res := c.inferExpr(x.Args[0])
		t := c.naturalType(res)
		if t != types.Invalid && t != types.String && t != types.Bool && !t.IsInteger() && !t.IsFloat() {
			c.s.errs = append(c.s.errs, errArgumentTypeMismatch(x.Args[0].Span(), "println", 0, "string, bool, integer, or float", t.String()))
		}
		return exprResult{Kind: types.Void}

	case preludePanic:
		if len(x.Args) != 1 {
			c.s.errs = append(c.s.errs, errArgumentCountMismatch(x.Span_, "panic", 1, len(x.Args)))
			for _, a := range x.Args {
				c.inferExpr(a)
			}
			return exprResult{Kind: types.Never}
		}
		c.checkArg(x.Args[0], types.String, "panic", 0)
		return exprResult{Kind: types.Never}

	case mainFunc:
		c.s.errs = append(c.s.errs, errCallToMain(x.CalleeSpan))
		for _, a := range x.Args {
			c.inferExpr(a)
		}
		return exprResult{Kind: types.Invalid}
	}

	sig, ok := c.info.fns.Lookup(x.Callee)
	if !ok {
		c.s.errs = append(c.s.errs, errUndefinedFunction(x.CalleeSpan, x.Callee))
		for _, a := range x.Args {
			c.inferExpr(a)
		}
		return exprResult{Kind: types.Invalid}
	}
	c.checkArgs(x, x.Callee, sig.Params, x.Args)
	return exprResult{Kind: sig.ReturnType}
}

func (c *checker) inferModuleCall(x *ast.ModuleCall) exprResult {
	if c.isLibrary {
		c.s.errs = append(c.s.errs, errCrossModuleCallInImportedModule(x.Span_))
		for _, a := range x.Args {
			c.inferExpr(a)
		}
		return exprResult{Kind: types.Invalid}
	}

	canonical, ok := c.info.aliasTarget(x.Module)
	if !ok {
		c.s.errs = append(c.s.errs, errModuleNotImported(x.ModuleSpan, x.Module))
		for _, a := range x.Args {
			c.inferExpr(a)
		}
		return exprResult{Kind: types.Invalid}
	}
	target, ok := c.s.modules[canonical]
	if !ok {
		c.s.errs = append(c.s.errs, errUndefinedModule(x.ModuleSpan, x.Module))
		for _, a := range x.Args {
			c.inferExpr(a)
		}
		return exprResult{Kind: types.Invalid}
	}
	sig, ok := target.public[x.Function]
	if !ok {
		c.s.errs = append(c.s.errs, errUndefinedModuleFunction(x.FuncSpan, x.Module, x.Function))
		for _, a := range x.Args {
			c.inferExpr(a)
		}
		return exprResult{Kind: types.Invalid}
	}
	c.checkArgs(x, x.Module+"."+x.Function, sig.Params, x.Args)
	return exprResult{Kind: sig.ReturnType}
}

func (c *checker) inferUnary(x *ast.UnaryExpr) exprResult {
	res := c.inferExpr(x.Operand)
	switch x.Op {
	case ast.Neg:
		if res.IntLit || res.FloatLit {
			return res
		}
		t := res.Kind
		if t == types.Invalid {
			return exprResult{Kind: types.Invalid}
		}
		if !t.IsInteger() && !t.IsFloat() {
			c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, "-", t.String(), t.String()))
			return exprResult{Kind: types.Invalid}
		}
		return exprResult{Kind: t}
	case ast.Not:
		t := c.naturalType(res)
		if t == types.Invalid {
			return exprResult{Kind: types.Invalid}
		}
		if t != types.Bool {
			c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, "!", t.String(), t.String()))
			return exprResult{Kind: types.Invalid}
		}
		return exprResult{Kind: types.Bool}
	default:
		return exprResult{Kind: types.Invalid}
	}
}

// reconcileNumeric implements the integer/float literal adaptation
// shared by arithmetic, ordered comparison, and equality (spec §4.4).
func (c *checker) reconcileNumeric(x *ast.BinaryExpr, lres, rres exprResult) types.Kind {
	lLit := lres.IntLit || lres.FloatLit
	rLit := rres.IntLit || rres.FloatLit

	switch {
	case lLit && rLit:
		if lres.IntLit && rres.IntLit {
			c.checkExprAgainst(x.Left, types.DefaultIntKind)
			c.checkExprAgainst(x.Right, types.DefaultIntKind)
			return types.DefaultIntKind
		}
		if lres.FloatLit && rres.FloatLit {
			return types.DefaultFloatKind
		}
		c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, opSymbol(x.Op), "integer literal", "float literal"))
		return types.Invalid
	case lLit:
		return c.adaptLiteralTo(x, x.Left, lres, rres.Kind)
	case rLit:
		return c.adaptLiteralTo(x, x.Right, rres, lres.Kind)
	default:
		lt, rt := lres.Kind, rres.Kind
		if lt == types.Invalid || rt == types.Invalid {
			return types.Invalid
		}
		if lt != rt {
			c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, opSymbol(x.Op), lt.String(), rt.String()))
			return types.Invalid
		}
		return lt
	}
}

func (c *checker) adaptLiteralTo(x *ast.BinaryExpr, litExpr ast.Expr, litRes exprResult, other types.Kind) types.Kind {
	if other == types.Invalid {
		return types.Invalid
	}
	if litRes.IntLit && other.IsInteger() {
		c.checkExprAgainst(litExpr, other)
		return other
	}
	if litRes.FloatLit && other.IsFloat() {
		c.checkExprAgainst(litExpr, other)
		return other
	}
	kindName := "integer literal"
	if litRes.FloatLit {
		kindName = "float literal"
	}
	c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, opSymbol(x.Op), kindName, other.String()))
	return types.Invalid
}

func (c *checker) inferArithmetic(x *ast.BinaryExpr, lres, rres exprResult) exprResult {
	t := c.reconcileNumeric(x, lres, rres)
	if t == types.Invalid {
		return exprResult{Kind: types.Invalid}
	}
	if !t.IsInteger() && !t.IsFloat() {
		c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, opSymbol(x.Op), t.String(), t.String()))
		return exprResult{Kind: types.Invalid}
	}
	if x.Op == ast.Mod && t.IsFloat() {
		c.s.errs = append(c.s.errs, errModuloOnFloat(x.Span_))
		return exprResult{Kind: types.Invalid}
	}
	return exprResult{Kind: t}
}

func (c *checker) inferComparison(x *ast.BinaryExpr, lres, rres exprResult) exprResult {
	if lres.Kind == types.String && rres.Kind == types.String && !lres.IntLit && !rres.IntLit {
		return exprResult{Kind: types.Bool}
	}
	t := c.reconcileNumeric(x, lres, rres)
	if t == types.Invalid {
		return exprResult{Kind: types.Invalid}
	}
	if !t.IsInteger() && !t.IsFloat() {
		c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, opSymbol(x.Op), t.String(), t.String()))
		return exprResult{Kind: types.Invalid}
	}
	return exprResult{Kind: types.Bool}
}

func (c *checker) inferEquality(x *ast.BinaryExpr, lres, rres exprResult) exprResult {
	if lres.Kind == types.Bool && rres.Kind == types.Bool {
		return exprResult{Kind: types.Bool}
	}
	if lres.Kind == types.String && rres.Kind == types.String {
		return exprResult{Kind: types.Bool}
	}
	t := c.reconcileNumeric(x, lres, rres)
	if t == types.Invalid {
		return exprResult{Kind: types.Invalid}
	}
	if !t.IsInteger() && !t.IsFloat() {
		c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, opSymbol(x.Op), t.String(), t.String()))
		return exprResult{Kind: types.Invalid}
	}
	return exprResult{Kind: types.Bool}
}

func (c *checker) inferBinary(x *ast.BinaryExpr) exprResult {
	lres := c.inferExpr(x.Left)
	rres := c.inferExpr(x.Right)

	switch x.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div, ast.Mod:
		return c.inferArithmetic(x, lres, rres)
	case ast.Lt, ast.Gt, ast.LtEq, ast.GtEq:
		return c.inferComparison(x, lres, rres)
	case ast.Eq, ast.NotEq:
		return c.inferEquality(x, lres, rres)
	case ast.AndAnd, ast.OrOr:
		lt, rt := c.naturalType(lres), c.naturalType(rres)
		if lt != types.Invalid && lt != types.Bool {
			c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, opSymbol(x.Op), lt.String(), rt.String()))
			return exprResult{Kind: types.Invalid}
		}
		if rt != types.Invalid && rt != types.Bool {
			c.s.errs = append(c.s.errs, errInvalidOperandTypes(x.Span_, opSymbol(x.Op), lt.String(), rt.String()))
			return exprResult{Kind: types.Invalid}
		}
		return exprResult{Kind: types.Bool}
	default:
		return exprResult{Kind: types.Invalid}
	}
}

// analyzeBlockAsValue analyzes stmts as an if-expression branch: every
// statement but the last is checked normally; the last, if an
// expression-statement, yields the block's value instead of being
// flagged as an unused result (spec §4.4, "if expr is also a value
// expression").
func (c *checker) analyzeBlockAsValue(stmts []ast.Stmt) types.Kind {
	c.pushScope()
	defer c.popScope()

	if len(stmts) == 0 {
		return types.Void
	}
	for _, st := range stmts[:len(stmts)-1] {
		c.analyzeStmt(st)
	}
	last := stmts[len(stmts)-1]
	if es, ok := last.(*ast.ExprStmt); ok {
		return c.naturalType(c.inferExpr(es.Expr))
	}
	c.analyzeStmt(last)
	return types.Void
}

func (c *checker) inferIfExpr(x *ast.IfExpr) exprResult {
	c.checkExprAgainst(x.Cond, types.Bool)
	thenType := c.analyzeBlockAsValue(x.Then)

	if x.Else == nil {
		c.s.errs = append(c.s.errs, errIfExpressionMissingElse(x.Span_))
		return exprResult{Kind: types.Invalid}
	}

	var elseType types.Kind
	switch e := x.Else.(type) {
	case []ast.Stmt:
		elseType = c.analyzeBlockAsValue(e)
	case *ast.IfExpr:
		elseType = c.naturalType(c.inferIfExpr(e))
	default:
		elseType = types.Invalid
	}

	if thenType == types.Invalid || elseType == types.Invalid {
		return exprResult{Kind: types.Invalid}
	}
	if thenType == types.Never {
		return exprResult{Kind: elseType}
	}
	if elseType == types.Never {
		return exprResult{Kind: thenType}
	}
	if thenType != elseType {
		c.s.errs = append(c.s.errs, errIfExpressionBranchTypeMismatch(x.Span_, thenType.String(), elseType.String()))
		return exprResult{Kind: types.Invalid}
	}
	return exprResult{Kind: thenType}
}
