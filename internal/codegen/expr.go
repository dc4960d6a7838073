package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"lak/internal/ast"
	"lak/internal/types"
)

// lowerExpr compiles e for a value in the given target type, which
// resolves an int/float literal leaf to its adapted concrete type
// (spec §4.4's literal adaptation, applied here rather than re-run).
func (fc *funcCtx) lowerExpr(e ast.Expr, target types.Kind) value.Value {
	switch x := e.(type) {
	case *ast.IntLit:
		return constIntFromUint(target, x.Negative, x.Magnitude)
	case *ast.FloatLit:
		return constFloat(target, x.Value)
	case *ast.BoolLit:
		return constBool(x.Value)
	case *ast.StringLit:
		return fc.lowerStringLit(x)
	case *ast.Ident:
		s, ok := fc.lookup(x.Name)
		if !ok {
			fc.g.errs = append(fc.g.errs, errInternal(x.Span(), "unresolved identifier %q at codegen time", x.Name))
			return constInt(target, 0)
		}
		return fc.block.NewLoad(lowerType(s.kind), s.ptr)
	case *ast.UnaryExpr:
		return fc.lowerUnary(x, target)
	case *ast.BinaryExpr:
		return fc.lowerBinary(x, target)
	case *ast.Call:
		return fc.lowerCall(x)
	case *ast.ModuleCall:
		return fc.lowerModuleCall(x)
	case *ast.IfExpr:
		return fc.lowerIfExpr(x, target)
	default:
		fc.g.errs = append(fc.g.errs, errInternal(e.Span(), "unsupported expression node at codegen time"))
		return constInt(target, 0)
	}
}

// exprKind resolves the concrete source type an expression produces,
// consulting the variable table and function signatures the same way
// the analyzer did.
func (fc *funcCtx) exprKind(e ast.Expr) types.Kind {
	switch x := e.(type) {
	case *ast.Ident:
		if s, ok := fc.lookup(x.Name); ok {
			return s.kind
		}
		return types.Invalid
	case *ast.StringLit:
		return types.String
	case *ast.BoolLit:
		return types.Bool
	case *ast.BinaryExpr:
		switch x.Op {
		case ast.Eq, ast.NotEq, ast.Lt, ast.Gt, ast.LtEq, ast.GtEq, ast.AndAnd, ast.OrOr:
			return types.Bool
		default:
			lk, rk := fc.exprKind(x.Left), fc.exprKind(x.Right)
			if lk != types.Invalid {
				return lk
			}
			return rk
		}
	case *ast.UnaryExpr:
		if x.Op == ast.Not {
			return types.Bool
		}
		return fc.exprKind(x.Operand)
	case *ast.Call:
		if k, ok := fc.g.retKinds[fc.mod.CanonicalPath][x.Callee]; ok {
			return k
		}
		return types.Invalid
	case *ast.ModuleCall:
		canonical, ok := fc.aliasTarget(x.Module)
		if !ok {
			return types.Invalid
		}
		if k, ok := fc.g.retKinds[canonical][x.Function]; ok {
			return k
		}
		return types.Invalid
	case *ast.IfExpr:
		return fc.exprKind(tailExprOf(x.Then))
	default:
		return types.Invalid
	}
}

func tailExprOf(stmts []ast.Stmt) ast.Expr {
	if len(stmts) == 0 {
		return nil
	}
	if es, ok := stmts[len(stmts)-1].(*ast.ExprStmt); ok {
		return es.Expr
	}
	return nil
}

func (fc *funcCtx) lowerStringLit(x *ast.StringLit) value.Value {
	data := constant.NewCharArrayFromString(x.Value + "\x00")
	g := fc.g.module.NewGlobalDef("", data)
	g.Immutable = true
	zero := constInt(types.I32, 0)
	return constant.NewGetElementPtr(data.Typ, g, zero, zero)
}

func (fc *funcCtx) aliasTarget(bound string) (string, bool) {
	for _, imp := range fc.mod.AST.Imports {
		name := imp.Alias
		if name == "" {
			name = stemOf(imp.Path)
		}
		if name == bound {
			canonical, ok := fc.mod.ResolvedImports[imp.Path]
			return canonical, ok
		}
	}
	return "", false
}

func (fc *funcCtx) lowerUnary(x *ast.UnaryExpr, target types.Kind) value.Value {
	if x.Op == ast.Not {
		v := fc.lowerExpr(x.Operand, types.Bool)
		return fc.block.NewXor(v, constBool(true))
	}
	// Neg
	if target.IsFloat() {
		v := fc.lowerExpr(x.Operand, target)
		return fc.block.NewFNeg(v)
	}
	v := fc.lowerExpr(x.Operand, target)
	zero := constInt(target, 0)
	return fc.lowerCheckedArith("sub", true, target, zero, v)
}

func (fc *funcCtx) lowerBinary(x *ast.BinaryExpr, target types.Kind) value.Value {
	switch x.Op {
	case ast.AndAnd, ast.OrOr:
		return fc.lowerShortCircuit(x)
	}

	operandKind := target
	switch x.Op {
	case ast.Eq, ast.NotEq, ast.Lt, ast.Gt, ast.LtEq, ast.GtEq:
		lk, rk := fc.exprKind(x.Left), fc.exprKind(x.Right)
		operandKind = lk
		if operandKind == types.Invalid {
			operandKind = rk
		}
	}

	if operandKind == types.String {
		return fc.lowerStringCompare(x)
	}

	l := fc.lowerExpr(x.Left, operandKind)
	r := fc.lowerExpr(x.Right, operandKind)

	switch x.Op {
	case ast.Add:
		return fc.arith("add", operandKind, l, r)
	case ast.Sub:
		return fc.arith("sub", operandKind, l, r)
	case ast.Mul:
		return fc.arith("mul", operandKind, l, r)
	case ast.Div:
		return fc.divOrMod(operandKind, l, r, false)
	case ast.Mod:
		return fc.divOrMod(operandKind, l, r, true)
	case ast.Eq, ast.NotEq, ast.Lt, ast.Gt, ast.LtEq, ast.GtEq:
		return fc.compare(x.Op, operandKind, l, r)
	default:
		fc.g.errs = append(fc.g.errs, errInternal(x.Span(), "unsupported binary operator at codegen time"))
		return constInt(target, 0)
	}
}

func (fc *funcCtx) arith(op string, k types.Kind, l, r value.Value) value.Value {
	if k.IsFloat() {
		switch op {
		case "add":
			return fc.block.NewFAdd(l, r)
		case "sub":
			return fc.block.NewFSub(l, r)
		case "mul":
			return fc.block.NewFMul(l, r)
		}
	}
	return fc.lowerCheckedArith(op, k.IsSigned(), k, l, r)
}

// lowerCheckedArith implements spec §4.5's checked-arithmetic lowering:
// call the matching llvm.{s,u}{add,sub,mul}.with.overflow intrinsic and
// branch to a runtime panic when its overflow bit is set.
func (fc *funcCtx) lowerCheckedArith(op string, signed bool, k types.Kind, l, r value.Value) value.Value {
	fn := fc.g.overflowIntrinsic(op, signed, k.BitWidth())
	result := fc.block.NewCall(fn, l, r)
	sum := fc.block.NewExtractValue(result, 0)
	overflowed := fc.block.NewExtractValue(result, 1)

	okBlock := fc.newBlock("")
	panicBlock := fc.newBlock("")
	fc.block.NewCondBr(overflowed, panicBlock, okBlock)

	fc.block = panicBlock
	fc.emitPanic(op + " overflow")

	fc.block = okBlock
	return sum
}

func (fc *funcCtx) divOrMod(k types.Kind, l, r value.Value, mod bool) value.Value {
	zero := constInt(k, 0)

	if k.IsFloat() {
		if mod {
			return fc.block.NewFRem(l, r)
		}
		return fc.block.NewFDiv(l, r)
	}

	isZero := fc.block.NewICmp(enum.IPredEQ, r, zero)
	zeroBlock := fc.newBlock("")
	continueBlock := fc.newBlock("")
	fc.block.NewCondBr(isZero, zeroBlock, continueBlock)
	fc.block = zeroBlock
	fc.emitPanic("division by zero")
	fc.block = continueBlock

	if k.IsSigned() {
		minVal := constIntFromUint(k, true, uint64(1)<<uint(k.BitWidth()-1))
		negOne := constInt(k, -1)
		isMin := fc.block.NewICmp(enum.IPredEQ, l, minVal)
		isNegOne := fc.block.NewICmp(enum.IPredEQ, r, negOne)
		isOverflow := fc.block.NewAnd(isMin, isNegOne)
		overflowBlock := fc.newBlock("")
		safeBlock := fc.newBlock("")
		fc.block.NewCondBr(isOverflow, overflowBlock, safeBlock)
		fc.block = overflowBlock
		fc.emitPanic("division overflow")
		fc.block = safeBlock

		if mod {
			return fc.block.NewSRem(l, r)
		}
		return fc.block.NewSDiv(l, r)
	}

	if mod {
		return fc.block.NewURem(l, r)
	}
	return fc.block.NewUDiv(l, r)
}

func (fc *funcCtx) compare(op ast.BinOp, k types.Kind, l, r value.Value) value.Value {
	if k.IsFloat() {
		return fc.block.NewFCmp(floatPred(op), l, r)
	}
	return fc.block.NewICmp(intPred(op, k.IsSigned()), l, r)
}

func intPred(op ast.BinOp, signed bool) enum.IPred {
	switch op {
	case ast.Eq:
		return enum.IPredEQ
	case ast.NotEq:
		return enum.IPredNE
	case ast.Lt:
		if signed {
			return enum.IPredSLT
		}
		return enum.IPredULT
	case ast.Gt:
		if signed {
			return enum.IPredSGT
		}
		return enum.IPredUGT
	case ast.LtEq:
		if signed {
			return enum.IPredSLE
		}
		return enum.IPredULE
	case ast.GtEq:
		if signed {
			return enum.IPredSGE
		}
		return enum.IPredUGE
	default:
		return enum.IPredEQ
	}
}

func floatPred(op ast.BinOp) enum.FPred {
	switch op {
	case ast.Eq:
		return enum.FPredOEQ
	case ast.NotEq:
		return enum.FPredONE
	case ast.Lt:
		return enum.FPredOLT
	case ast.Gt:
		return enum.FPredOGT
	case ast.LtEq:
		return enum.FPredOLE
	case ast.GtEq:
		return enum.FPredOGE
	default:
		return enum.FPredOEQ
	}
}

func (fc *funcCtx) lowerStringCompare(x *ast.BinaryExpr) value.Value {
	l := fc.lowerExpr(x.Left, types.String)
	r := fc.lowerExpr(x.Right, types.String)

	switch x.Op {
	case ast.Eq:
		call := fc.block.NewCall(fc.g.rt.streq, l, r)
		return fc.block.NewICmp(enum.IPredNE, call, constInt(types.I32, 0))
	case ast.NotEq:
		call := fc.block.NewCall(fc.g.rt.streq, l, r)
		return fc.block.NewICmp(enum.IPredEQ, call, constInt(types.I32, 0))
	default:
		call := fc.block.NewCall(fc.g.rt.strcmp, l, r)
		return fc.block.NewICmp(intPred(x.Op, true), call, constInt(types.I32, 0))
	}
}

// lowerShortCircuit implements `&&`/`||` as control flow with a merge
// block and a phi node (spec §4.5).
func (fc *funcCtx) lowerShortCircuit(x *ast.BinaryExpr) value.Value {
	l := fc.lowerExpr(x.Left, types.Bool)
	lBlock := fc.block

	rhsBlock := fc.newBlock("")
	mergeBlock := fc.newBlock("")

	if x.Op == ast.AndAnd {
		fc.block.NewCondBr(l, rhsBlock, mergeBlock)
	} else {
		fc.block.NewCondBr(l, mergeBlock, rhsBlock)
	}

	fc.block = rhsBlock
	r := fc.lowerExpr(x.Right, types.Bool)
	rhsBlock = fc.block
	fc.block.NewBr(mergeBlock)

	fc.block = mergeBlock
	phi := fc.block.NewPhi(ir.NewIncoming(l, lBlock), ir.NewIncoming(r, rhsBlock))
	return phi
}

func (fc *funcCtx) lowerCall(x *ast.Call) value.Value {
	switch x.Callee {
	case "println":
		argKind := fc.exprKind(x.Args[0])
		if argKind == types.Invalid {
			argKind = types.I64
		}
		arg := fc.lowerExpr(x.Args[0], argKind)
		target := fc.g.rt.printlnTarget(argKind)
		if target == nil {
			fc.g.errs = append(fc.g.errs, errInternal(x.Span(), "no println runtime target for argument type at codegen time"))
			return nil
		}
		fc.block.NewCall(target, arg)
		return nil
	case "panic":
		msg := fc.lowerExpr(x.Args[0], types.String)
		fc.block.NewCall(fc.g.rt.panic, msg)
		fc.block.NewUnreachable()
		return nil
	}

	irFn, ok := fc.g.funcs[fc.mod.CanonicalPath][x.Callee]
	if !ok {
		fc.g.errs = append(fc.g.errs, errInternal(x.Span(), "unresolved function %q at codegen time", x.Callee))
		return nil
	}
	args := fc.lowerArgs(fc.mod.CanonicalPath, x.Callee, irFn, x.Args)
	return fc.block.NewCall(irFn, args...)
}

func (fc *funcCtx) lowerModuleCall(x *ast.ModuleCall) value.Value {
	canonical, ok := fc.aliasTarget(x.Module)
	if !ok {
		fc.g.errs = append(fc.g.errs, errInternal(x.Span(), "unresolved module %q at codegen time", x.Module))
		return nil
	}
	irFn, ok := fc.g.funcs[canonical][x.Function]
	if !ok {
		fc.g.errs = append(fc.g.errs, errInternal(x.Span(), "unresolved module function %q.%q at codegen time", x.Module, x.Function))
		return nil
	}
	args := fc.lowerArgs(canonical, x.Function, irFn, x.Args)
	return fc.block.NewCall(irFn, args...)
}

func (fc *funcCtx) lowerArgs(canonicalPath, fnName string, irFn *ir.Func, args []ast.Expr) []value.Value {
	kinds := fc.g.paramKinds[canonicalPath][fnName]
	out := make([]value.Value, len(args))
	for i, a := range args {
		k := types.DefaultIntKind
		if i < len(kinds) {
			k = kinds[i]
		}
		out[i] = fc.lowerExpr(a, k)
	}
	return out
}

func (fc *funcCtx) emitPanic(reason string) {
	msg := fc.lowerStringLit(&ast.StringLit{Value: "panic: " + reason})
	fc.block.NewCall(fc.g.rt.panic, msg)
	fc.block.NewUnreachable()
}

// lowerIfExpr compiles `if` used as a value: identical control flow
// to the statement form, plus a phi at the merge block typed to the
// common branch type (spec §4.5).
func (fc *funcCtx) lowerIfExpr(x *ast.IfExpr, target types.Kind) value.Value {
	cond := fc.lowerExpr(x.Cond, types.Bool)

	thenBlock := fc.newBlock("")
	elseBlock := fc.newBlock("")
	mergeBlock := fc.newBlock("")
	fc.block.NewCondBr(cond, thenBlock, elseBlock)

	fc.block = thenBlock
	fc.pushScope()
	thenVal := fc.lowerBranchValue(x.Then, target)
	fc.popScope()
	thenEnd := fc.block
	if thenEnd.Term == nil {
		thenEnd.NewBr(mergeBlock)
	}

	fc.block = elseBlock
	var elseVal value.Value
	switch e := x.Else.(type) {
	case []ast.Stmt:
		fc.pushScope()
		elseVal = fc.lowerBranchValue(e, target)
		fc.popScope()
	case *ast.IfExpr:
		elseVal = fc.lowerIfExpr(e, target)
	}
	elseEnd := fc.block
	if elseEnd.Term == nil {
		elseEnd.NewBr(mergeBlock)
	}

	fc.block = mergeBlock
	if thenVal == nil || elseVal == nil {
		return nil
	}
	return fc.block.NewPhi(ir.NewIncoming(thenVal, thenEnd), ir.NewIncoming(elseVal, elseEnd))
}

// lowerBranchValue lowers every statement but the last normally, and
// lowers the last as the branch's value when it's an
// expression-statement, mirroring the analyzer's tail-value rule.
func (fc *funcCtx) lowerBranchValue(stmts []ast.Stmt, target types.Kind) value.Value {
	if len(stmts) == 0 {
		return nil
	}
	for _, st := range stmts[:len(stmts)-1] {
		fc.lowerStmt(st)
	}
	last := stmts[len(stmts)-1]
	if es, ok := last.(*ast.ExprStmt); ok {
		return fc.lowerExpr(es.Expr, target)
	}
	fc.lowerStmt(last)
	return nil
}

func stemOf(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '/' {
		i--
	}
	return path[i+1:]
}
