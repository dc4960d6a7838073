package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"lak/internal/ast"
	"lak/internal/resolve"
	"lak/internal/types"
	"lak/internal/utils/stack"
)

// slot is one variable's storage: an alloca pointer plus the source
// type that governs how it's loaded, stored, and operated on.
type slot struct {
	ptr  value.Value
	kind types.Kind
}

// loopCtx is one entry in the loop-context stack `break`/`continue`
// lowering walks through (spec §4.5, §5).
type loopCtx struct {
	head *ir.Block
	exit *ir.Block
}

// funcCtx lowers a single function body. It owns the current
// insertion block, a scope stack of variable slots keyed by
// identifier, and the loop-context stack; all three are balanced on
// every exit path (spec §5, "Scoped acquisition").
type funcCtx struct {
	g       *Generator
	mod     *resolve.Module
	irFn    *ir.Func
	block   *ir.Block
	vars    []map[string]*slot
	loops   *stack.Stack[loopCtx]
	isMain  bool
	retKind types.Kind // the function's source-level return type
	blockN  int
}

func (fc *funcCtx) pushScope() { fc.vars = append(fc.vars, make(map[string]*slot)) }
func (fc *funcCtx) popScope()  { fc.vars = fc.vars[:len(fc.vars)-1] }

func (fc *funcCtx) declare(name string, s *slot) {
	fc.vars[len(fc.vars)-1][name] = s
}

func (fc *funcCtx) lookup(name string) (*slot, bool) {
	for i := len(fc.vars) - 1; i >= 0; i-- {
		if s, ok := fc.vars[i][name]; ok {
			return s, true
		}
	}
	return nil, false
}

func (fc *funcCtx) newBlock(label string) *ir.Block {
	fc.blockN++
	return fc.irFn.NewBlock("")
}

func (g *Generator) defineFunction(mod *resolve.Module, fn *ast.Function, irFn *ir.Func, isMain bool) {
	retKind, ok := types.Lookup(fn.ReturnTypeText)
	if !ok {
		g.errs = append(g.errs, errInternal(fn.Span(), "unresolved return type on function %q", fn.Name))
		return
	}

	entry := irFn.NewBlock("entry")
	fc := &funcCtx{g: g, mod: mod, irFn: irFn, block: entry, loops: stack.New[loopCtx](), isMain: isMain, retKind: retKind}
	fc.pushScope()
	defer fc.popScope()

	for i, p := range fn.Params {
		k, _ := types.Lookup(p.Type.Name)
		param := irFn.Params[i]
		ptr := fc.block.NewAlloca(lowerType(k))
		fc.block.NewStore(param, ptr)
		fc.declare(p.Name, &slot{ptr: ptr, kind: k})
	}

	fc.lowerBlock(fn.Body)

	if fc.block.Term == nil {
		fc.emitImplicitReturn()
	}
}

// emitImplicitReturn terminates a still-open block at the end of a
// function whose return-path analysis already proved every other
// path returns: `main` returns 0, a void function falls off the end,
// and a non-void function reaching here is an analyzer invariant
// violation.
func (fc *funcCtx) emitImplicitReturn() {
	switch {
	case fc.isMain:
		fc.block.NewRet(constInt(types.I32, 0))
	case fc.retKind == types.Void:
		fc.block.NewRet(nil)
	default:
		fc.block.NewUnreachable()
	}
}
