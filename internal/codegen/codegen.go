package codegen

import (
	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"lak/internal/resolve"
	"lak/internal/source"
	"lak/internal/types"
)

// Generator lowers a resolved, analyzed program to one LLVM module.
// It owns the LLVM module for the lifetime of a single compilation
// and is never reused across compilations (spec §5); lowering the
// module to an object file happens outside this package.
type Generator struct {
	module     *ir.Module
	graph      *resolve.Graph
	bindings   map[source.Span]types.Kind
	entryPath  string
	rt         *runtime
	intrinsics map[string]*ir.Func
	funcs      map[string]map[string]*ir.Func     // canonical module path -> function name -> declared ir.Func
	paramKinds map[string]map[string][]types.Kind // canonical module path -> function name -> declared parameter kinds
	retKinds   map[string]map[string]types.Kind   // canonical module path -> function name -> declared return kind
	errs       []*Error
}

func NewGenerator() *Generator {
	return &Generator{
		intrinsics: make(map[string]*ir.Func),
		funcs:      make(map[string]map[string]*ir.Func),
		paramKinds: make(map[string]map[string][]types.Kind),
		retKinds:   make(map[string]map[string]types.Kind),
	}
}

// Generate implements spec §4.5's two-pass emission: declare every
// user function and runtime extern across all modules, then define
// every body, in the resolver's leaves-first order (spec §5,
// "Ordering guarantees").
func (g *Generator) Generate(graph *resolve.Graph, bindings map[source.Span]types.Kind) (*ir.Module, []*Error) {
	g.module = ir.NewModule()
	g.graph = graph
	g.bindings = bindings
	g.entryPath = graph.Entry.CanonicalPath
	g.rt = declareRuntime(g.module)

	for _, mod := range graph.Order {
		g.declareModule(mod)
	}
	if len(g.errs) > 0 {
		return nil, g.errs
	}

	for _, mod := range graph.Order {
		g.defineModule(mod)
	}
	if len(g.errs) > 0 {
		return nil, g.errs
	}
	return g.module, nil
}

func (g *Generator) declareModule(mod *resolve.Module) {
	isEntry := mod.CanonicalPath == g.entryPath
	prefix := ""
	if !isEntry {
		p, err := modulePrefix(mod.CanonicalPath, g.entryPath)
		if err != nil {
			g.errs = append(g.errs, err)
			return
		}
		prefix = p
	}

	fnMap := make(map[string]*ir.Func)
	g.funcs[mod.CanonicalPath] = fnMap
	kindMap := make(map[string][]types.Kind)
	g.paramKinds[mod.CanonicalPath] = kindMap
	retMap := make(map[string]types.Kind)
	g.retKinds[mod.CanonicalPath] = retMap

	for _, fn := range mod.AST.Functions {
		params := make([]*ir.Param, 0, len(fn.Params))
		kinds := make([]types.Kind, 0, len(fn.Params))
		for _, p := range fn.Params {
			k, ok := types.Lookup(p.Type.Name)
			if !ok {
				g.errs = append(g.errs, errInternal(fn.Span(), "unresolved parameter type on function %q", fn.Name))
				continue
			}
			params = append(params, ir.NewParam(p.Name, lowerType(k)))
			kinds = append(kinds, k)
		}
		kindMap[fn.Name] = kinds

		var symName string
		var retType lltypes.Type
		if isEntry && fn.Name == "main" {
			symName = "main"
			retType = lltypes.I32
			retMap[fn.Name] = types.I32
		} else {
			retKind, ok := types.Lookup(fn.ReturnTypeText)
			if !ok {
				g.errs = append(g.errs, errInternal(fn.Span(), "unresolved return type on function %q", fn.Name))
				continue
			}
			symName = mangle(prefix, fn.Name)
			retType = lowerType(retKind)
			retMap[fn.Name] = retKind
		}

		fnMap[fn.Name] = g.module.NewFunc(symName, retType, params...)
	}
}

func (g *Generator) defineModule(mod *resolve.Module) {
	isEntry := mod.CanonicalPath == g.entryPath
	for _, fn := range mod.AST.Functions {
		irFn := g.funcs[mod.CanonicalPath][fn.Name]
		if irFn == nil {
			continue // a declare-pass error already covers this function
		}
		g.defineFunction(mod, fn, irFn, isEntry && fn.Name == "main")
	}
}
