package semantic

import (
	"path/filepath"
	"strings"

	"lak/internal/ast"
	"lak/internal/symbol"
	"lak/internal/types"
)

// checker analyzes one function body. A fresh checker is created per
// function so its scope chain and loop depth never leak between
// functions (spec §5).
type checker struct {
	s         *Session
	info      *moduleInfo
	isLibrary bool
	fn        *symbol.Function
	fnAST     *ast.Function
	scope     *symbol.Scope
	loopDepth int
}

// aliasTarget resolves a module-qualified call's bound name (the
// `as` alias, or the derived file stem when none was given) to the
// imported module's canonical path.
func (info *moduleInfo) aliasTarget(bound string) (string, bool) {
	for _, imp := range info.mod.AST.Imports {
		name := imp.Alias
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(imp.Path), filepath.Ext(imp.Path))
		}
		if name == bound {
			canonical, ok := info.mod.ResolvedImports[imp.Path]
			return canonical, ok
		}
	}
	return "", false
}

// analyzeBody implements spec §4.4 phase 3 for every function in the
// module.
func (s *Session) analyzeBody(info *moduleInfo, isEntry bool) {
	for _, fn := range info.mod.AST.Functions {
		registered, ok := info.astFns[fn.Name]
		if !ok || registered != fn {
			continue // this declaration lost the name to an earlier duplicate
		}
		resolved, _ := info.fns.Lookup(fn.Name)
		if resolved == nil {
			continue
		}

		c := &checker{s: s, info: info, isLibrary: !isEntry, fn: resolved, fnAST: fn, scope: symbol.NewScope(nil)}
		for i, p := range fn.Params {
			c.scope.Declare(&symbol.Variable{Name: p.Name, Mutable: false, Type: resolved.Params[i].Type, Definition: p.Span()})
		}

		returns := c.analyzeBlock(fn.Body)
		if resolved.ReturnType != types.Void && resolved.ReturnType != types.Invalid && !returns {
			s.errs = append(s.errs, errMissingReturn(fn.SignatureSpan, fn.Name))
		}
	}
}

func (c *checker) pushScope() { c.scope = symbol.NewScope(c.scope) }
func (c *checker) popScope()  { c.scope = c.scope.Parent }

// analyzeBlock analyzes stmts in a fresh nested scope and reports
// whether every reachable path through it returns or diverges (spec
// §4.4, "Return-path analysis").
func (c *checker) analyzeBlock(stmts []ast.Stmt) bool {
	c.pushScope()
	defer c.popScope()
	return c.analyzeStmts(stmts)
}

// analyzeStmts is like analyzeBlock but reuses the caller's current
// scope; analyzeBlock calls it after opening the nested scope.
func (c *checker) analyzeStmts(stmts []ast.Stmt) bool {
	terminated := false
	for _, st := range stmts {
		if c.analyzeStmt(st) {
			terminated = true
		}
	}
	return terminated
}

// analyzeStmt analyzes one statement and reports whether it always
// returns or diverges.
func (c *checker) analyzeStmt(st ast.Stmt) bool {
	switch s := st.(type) {
	case *ast.LetStmt:
		c.analyzeLet(s)
		return false

	case *ast.AssignStmt:
		c.analyzeAssign(s)
		return false

	case *ast.ReturnStmt:
		c.analyzeReturn(s)
		return true

	case *ast.ExprStmt:
		return c.analyzeExprStmt(s)

	case *ast.WhileStmt:
		return c.analyzeWhile(s)

	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.s.errs = append(c.s.errs, errInvalidControlFlow(s.Span_, "break"))
		}
		return true

	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.s.errs = append(c.s.errs, errInvalidControlFlow(s.Span_, "continue"))
		}
		return true

	case *ast.IfExpr:
		return c.analyzeIfStmt(s)

	default:
		return false
	}
}

func (c *checker) analyzeLet(s *ast.LetStmt) {
	if !s.IsDiscard() && refersToSelf(s.Init, s.Name) {
		c.s.errs = append(c.s.errs, errSelfReferentialInitializer(s.Init.Span(), s.Name))
	}

	var declared types.Kind
	if s.Type != nil {
		declared = c.s.resolveType(s.Type)
		c.checkExprAgainst(s.Init, declared)
	} else if lit, ok := s.Init.(*ast.IntLit); ok {
		declared = types.DefaultIntKind
		c.checkExprAgainst(lit, declared)
		c.s.types[s.Span_] = declared
	} else if lit, ok := s.Init.(*ast.FloatLit); ok {
		declared = types.DefaultFloatKind
		c.checkExprAgainst(lit, declared)
		c.s.types[s.Span_] = declared
	} else {
		res := c.inferExpr(s.Init)
		declared = c.naturalType(res)
		c.s.types[s.Span_] = declared
	}

	if s.IsDiscard() {
		return
	}
	v := &symbol.Variable{Name: s.Name, Mutable: s.Mutable, Type: declared, Definition: s.Span_}
	if !c.scope.Declare(v) {
		c.s.errs = append(c.s.errs, errDuplicateVariable(s.NameSpan, s.Name))
	}
}

func refersToSelf(e ast.Expr, name string) bool {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name == name
	case *ast.BinaryExpr:
		return refersToSelf(x.Left, name) || refersToSelf(x.Right, name)
	case *ast.UnaryExpr:
		return refersToSelf(x.Operand, name)
	case *ast.Call:
		for _, a := range x.Args {
			if refersToSelf(a, name) {
				return true
			}
		}
	case *ast.ModuleCall:
		for _, a := range x.Args {
			if refersToSelf(a, name) {
				return true
			}
		}
	}
	return false
}

func (c *checker) analyzeAssign(s *ast.AssignStmt) {
	v, ok := c.scope.Lookup(s.Name)
	if !ok {
		c.s.errs = append(c.s.errs, errUndefinedVariable(s.NameSpan, s.Name))
		c.inferExpr(s.Value)
		return
	}
	if !v.Mutable {
		c.s.errs = append(c.s.errs, errImmutableReassignment(s.NameSpan, s.Name))
	}
	c.checkExprAgainst(s.Value, v.Type)
}

func (c *checker) analyzeReturn(s *ast.ReturnStmt) {
	want := c.fn.ReturnType
	if s.Value == nil {
		if want != types.Void {
			c.s.errs = append(c.s.errs, errTypeMismatch(s.Span_, want.String(), types.Void.String()))
		}
		return
	}
	if want == types.Void {
		c.s.errs = append(c.s.errs, errTypeMismatch(s.Value.Span(), types.Void.String(), c.naturalType(c.inferExpr(s.Value)).String()))
		return
	}
	c.checkExprAgainst(s.Value, want)
}

// analyzeExprStmt implements spec §4.4's statement-result rule: a
// void-returning call is fine bare; a non-void result must be
// consumed. panic(...) always diverges.
func (c *checker) analyzeExprStmt(s *ast.ExprStmt) bool {
	res := c.inferExpr(s.Expr)
	if isPanicCall(s.Expr) {
		return true
	}
	if res.Kind != types.Void && res.Kind != types.Invalid {
		c.s.errs = append(c.s.errs, errUnusedNonVoidResult(s.Span(), calleeName(s.Expr)))
	}
	return false
}

func isPanicCall(e ast.Expr) bool {
	call, ok := e.(*ast.Call)
	return ok && call.Callee == preludePanic
}

func calleeName(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Call:
		return x.Callee
	case *ast.ModuleCall:
		return x.Module + "." + x.Function
	default:
		return "expression"
	}
}

// analyzeWhile implements spec §4.4's loop rule: a `while true` whose
// body never reaches a loop-exiting break is treated as
// non-falling-through, matching the "infinite loop that always
// returns from inside" carve-out.
func (c *checker) analyzeWhile(s *ast.WhileStmt) bool {
	c.checkExprAgainst(s.Cond, types.Bool)

	c.loopDepth++
	c.analyzeBlock(s.Body)
	c.loopDepth--

	if isConstTrue(s.Cond) && !containsBreak(s.Body) {
		return true
	}
	return false
}

func isConstTrue(e ast.Expr) bool {
	b, ok := e.(*ast.BoolLit)
	return ok && b.Value
}

func containsBreak(stmts []ast.Stmt) bool {
	for _, st := range stmts {
		switch s := st.(type) {
		case *ast.BreakStmt:
			return true
		case *ast.IfExpr:
			if containsBreak(s.Then) {
				return true
			}
			switch e := s.Else.(type) {
			case []ast.Stmt:
				if containsBreak(e) {
					return true
				}
			case *ast.IfExpr:
				if containsBreak([]ast.Stmt{e}) {
					return true
				}
			}
		}
	}
	return false
}

// analyzeIfStmt analyzes `if` used as a statement: an else clause is
// optional, and the construct only "always returns" when every
// branch is present and returns (spec §4.4).
func (c *checker) analyzeIfStmt(ifx *ast.IfExpr) bool {
	c.checkExprAgainst(ifx.Cond, types.Bool)
	thenReturns := c.analyzeBlock(ifx.Then)

	switch e := ifx.Else.(type) {
	case nil:
		return false
	case []ast.Stmt:
		return thenReturns && c.analyzeBlock(e)
	case *ast.IfExpr:
		return thenReturns && c.analyzeIfStmt(e)
	default:
		return false
	}
}
