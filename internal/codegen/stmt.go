package codegen

import (
	"lak/internal/ast"
	"lak/internal/types"
)

// lowerBlock lowers a function body or a while-loop body in statement
// mode: every statement is lowered for effect, with no tail-value
// extraction (that's lowerBranchValue's job for if-expression
// branches).
func (fc *funcCtx) lowerBlock(stmts []ast.Stmt) {
	fc.pushScope()
	defer fc.popScope()
	for _, st := range stmts {
		fc.lowerStmt(st)
	}
}

func (fc *funcCtx) lowerStmt(st ast.Stmt) {
	if fc.block.Term != nil {
		return // the block already ended in a panic or a return; nothing after it is reachable
	}
	switch s := st.(type) {
	case *ast.LetStmt:
		fc.lowerLet(s)
	case *ast.AssignStmt:
		fc.lowerAssign(s)
	case *ast.ReturnStmt:
		fc.lowerReturn(s)
	case *ast.ExprStmt:
		fc.lowerExpr(s.Expr, fc.exprKind(s.Expr))
	case *ast.WhileStmt:
		fc.lowerWhile(s)
	case *ast.BreakStmt:
		if !fc.loops.IsEmpty() {
			fc.block.NewBr(fc.loops.Peek().exit)
		}
	case *ast.ContinueStmt:
		if !fc.loops.IsEmpty() {
			fc.block.NewBr(fc.loops.Peek().head)
		}
	case *ast.IfExpr:
		fc.lowerIfStmt(s)
	default:
		fc.g.errs = append(fc.g.errs, errInternal(st.Span(), "unsupported statement node at codegen time"))
	}
}

func (fc *funcCtx) lowerLet(s *ast.LetStmt) {
	k := fc.letKind(s)
	v := fc.lowerExpr(s.Init, k)
	if s.IsDiscard() {
		return
	}
	ptr := fc.block.NewAlloca(lowerType(k))
	fc.block.NewStore(v, ptr)
	fc.declare(s.Name, &slot{ptr: ptr, kind: k})
}

// letKind resolves the concrete storage type for a `let` binding: the
// declared type if present, else the binding's analyzer-inferred type
// recorded against the statement's span (spec §4.4), falling back to
// the expression's own natural type if the binding table has no entry.
func (fc *funcCtx) letKind(s *ast.LetStmt) types.Kind {
	if s.Type != nil {
		if k, ok := types.Lookup(s.Type.Name); ok {
			return k
		}
	}
	if k, ok := fc.g.bindings[s.Span()]; ok {
		return k
	}
	if k := fc.exprKind(s.Init); k != types.Invalid {
		return k
	}
	switch s.Init.(type) {
	case *ast.FloatLit:
		return types.DefaultFloatKind
	default:
		return types.DefaultIntKind
	}
}

func (fc *funcCtx) lowerAssign(s *ast.AssignStmt) {
	slot, ok := fc.lookup(s.Name)
	if !ok {
		fc.g.errs = append(fc.g.errs, errInternal(s.Span(), "unresolved variable %q at codegen time", s.Name))
		return
	}
	v := fc.lowerExpr(s.Value, slot.kind)
	fc.block.NewStore(v, slot.ptr)
}

func (fc *funcCtx) lowerReturn(s *ast.ReturnStmt) {
	if s.Value == nil {
		if fc.isMain {
			fc.block.NewRet(constInt(types.I32, 0))
			return
		}
		fc.block.NewRet(nil)
		return
	}
	v := fc.lowerExpr(s.Value, fc.retKind)
	if fc.isMain {
		fc.block.NewRet(constInt(types.I32, 0))
		return
	}
	fc.block.NewRet(v)
}

// lowerWhile implements spec §5's loop-context stack: head re-checks
// the condition, exit is the post-loop block, both pushed for the
// duration of the body so break/continue inside nested ifs still find
// the innermost loop.
func (fc *funcCtx) lowerWhile(s *ast.WhileStmt) {
	head := fc.newBlock("")
	body := fc.newBlock("")
	exit := fc.newBlock("")

	fc.block.NewBr(head)

	fc.block = head
	cond := fc.lowerExpr(s.Cond, types.Bool)
	fc.block.NewCondBr(cond, body, exit)

	fc.block = body
	fc.loops.Push(loopCtx{head: head, exit: exit})
	fc.lowerBlock(s.Body)
	fc.loops.Pop()
	if fc.block.Term == nil {
		fc.block.NewBr(head)
	}

	fc.block = exit
}

// lowerIfStmt lowers `if` used as a statement: the same branch/merge
// shape as the value form, but without a phi — each branch's value,
// if any, is discarded.
func (fc *funcCtx) lowerIfStmt(x *ast.IfExpr) {
	cond := fc.lowerExpr(x.Cond, types.Bool)

	thenBlock := fc.newBlock("")
	elseBlock := fc.newBlock("")
	fc.block.NewCondBr(cond, thenBlock, elseBlock)

	fc.block = thenBlock
	fc.lowerBlock(x.Then)
	thenEnd := fc.block

	fc.block = elseBlock
	switch e := x.Else.(type) {
	case []ast.Stmt:
		fc.lowerBlock(e)
	case *ast.IfExpr:
		fc.lowerIfStmt(e)
	}
	elseEnd := fc.block

	if thenEnd.Term == nil || elseEnd.Term == nil {
		mergeBlock := fc.newBlock("")
		if thenEnd.Term == nil {
			thenEnd.NewBr(mergeBlock)
		}
		if elseEnd.Term == nil {
			elseEnd.NewBr(mergeBlock)
		}
		fc.block = mergeBlock
	} else {
		fc.block = elseEnd
	}
}
