// Package semantic implements Lak's semantic analyzer: name
// resolution, mutability tracking, literal adaptation, operator and
// call typing, if-expression typing, return-path analysis, and
// cross-module import validation (spec §4.4).
package semantic

import (
	"lak/internal/ast"
	"lak/internal/resolve"
	"lak/internal/source"
	"lak/internal/symbol"
	"lak/internal/types"
)

const (
	preludePrintln = "println"
	preludePanic   = "panic"
	mainFunc       = "main"
)

func isPrelude(name string) bool { return name == preludePrintln || name == preludePanic }

// moduleInfo is one module's resolved function namespace plus its
// public subset, built during function collection and consulted by
// every later module that imports it.
type moduleInfo struct {
	mod    *resolve.Module
	fns    *symbol.Functions
	public map[string]*symbol.Function
	astFns map[string]*ast.Function // name -> the declaration that won registration
}

// Session is a reusable analyzer session. Construct once and call
// Analyze per program; Analyze resets all state itself so a session
// is safe to reuse across unrelated programs without contamination
// (spec §5).
type Session struct {
	modules map[string]*moduleInfo
	types   map[source.Span]types.Kind
	errs    []*Error
}

func NewSession() *Session { return &Session{} }

// Reset clears all per-program state.
func (s *Session) Reset() {
	s.modules = nil
	s.types = nil
	s.errs = nil
}

// Types returns the inferred-binding type map: the concrete type
// recorded for every `let` statement span whose binding had no
// explicit declared type (spec §4.4, "`let` inference").
func (s *Session) Types() map[source.Span]types.Kind { return s.types }

// Analyze validates every module in graph and returns the errors
// found, if any. graph.Entry receives entry validation; every other
// module is analyzed in library mode (spec §4.4).
func (s *Session) Analyze(graph *resolve.Graph) []*Error {
	s.Reset()
	s.modules = make(map[string]*moduleInfo, len(graph.Order))
	s.types = make(map[source.Span]types.Kind)

	for _, mod := range graph.Order {
		info := &moduleInfo{mod: mod, fns: symbol.NewFunctions(), public: make(map[string]*symbol.Function), astFns: make(map[string]*ast.Function)}
		s.modules[mod.CanonicalPath] = info
		s.collectFunctions(info)
	}
	if len(s.errs) > 0 {
		return s.errs
	}

	for _, mod := range graph.Order {
		info := s.modules[mod.CanonicalPath]
		isEntry := mod == graph.Entry
		if isEntry {
			s.validateEntry(info)
		}
		s.analyzeBody(info, isEntry)
	}
	return s.errs
}

func (s *Session) resolveType(tr *ast.TypeRef) types.Kind {
	k, ok := types.Lookup(tr.Name)
	if !ok {
		s.errs = append(s.errs, errUnknownType(tr.Span_, tr.Name))
		return types.Invalid
	}
	return k
}

// collectFunctions implements spec §4.4 phase 1.
func (s *Session) collectFunctions(info *moduleInfo) {
	for _, fn := range info.mod.AST.Functions {
		if isPrelude(fn.Name) {
			s.errs = append(s.errs, errReservedFunctionName(fn.NameSpan, fn.Name))
			continue
		}

		params := make([]symbol.Param, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = symbol.Param{Name: p.Name, Type: s.resolveType(p.Type)}
		}
		ret := s.resolveType(&ast.TypeRef{Name: fn.ReturnTypeText, Span_: fn.ReturnTypeSpan})

		sig := &symbol.Function{
			Name:       fn.Name,
			Visibility: fn.Visibility,
			Params:     params,
			ReturnType: ret,
			Span:       fn.SignatureSpan,
		}
		if !info.fns.Declare(sig) {
			s.errs = append(s.errs, errDuplicateFunction(fn.NameSpan, fn.Name))
			continue
		}
		info.astFns[fn.Name] = fn
		if fn.Visibility == ast.Public {
			info.public[fn.Name] = sig
		}
	}
}

// validateEntry implements spec §4.4 phase 2.
func (s *Session) validateEntry(info *moduleInfo) {
	main, ok := info.fns.Lookup(mainFunc)
	if !ok {
		s.errs = append(s.errs, errMissingMain())
		return
	}
	if len(main.Params) != 0 || main.ReturnType != types.Void {
		s.errs = append(s.errs, errInvalidMainSignature(main.Span))
	}
}
