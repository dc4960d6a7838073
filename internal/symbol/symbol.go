// Package symbol holds the analyzer's name tables: a flat namespace
// of function signatures per module, and a scope stack of variable
// bindings within a function body (spec §3, "Symbol table").
package symbol

import (
	"lak/internal/ast"
	"lak/internal/source"
	"lak/internal/types"
)

// Param is a resolved function parameter.
type Param struct {
	Name string
	Type types.Kind
}

// Function is a resolved function signature.
type Function struct {
	Name       string
	Visibility ast.Visibility
	Params     []Param
	ReturnType types.Kind
	Span       source.Span
}

// Functions is the flat per-module function namespace (spec §3,
// "global flat namespace of function signatures").
type Functions struct {
	byName map[string]*Function
	order  []*Function
}

func NewFunctions() *Functions {
	return &Functions{byName: make(map[string]*Function)}
}

// Declare registers fn, reporting false if the name is already taken.
func (f *Functions) Declare(fn *Function) bool {
	if _, exists := f.byName[fn.Name]; exists {
		return false
	}
	f.byName[fn.Name] = fn
	f.order = append(f.order, fn)
	return true
}

func (f *Functions) Lookup(name string) (*Function, bool) {
	fn, ok := f.byName[name]
	return fn, ok
}

func (f *Functions) All() []*Function { return f.order }

// Variable is one `let`-bound name in scope.
type Variable struct {
	Name       string
	Mutable    bool
	Type       types.Kind
	Definition source.Span
}

// Scope is one nesting level of variable bindings. Lookup walks
// innermost to outermost via Parent (spec §3).
type Scope struct {
	vars   map[string]*Variable
	Parent *Scope
}

func NewScope(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]*Variable), Parent: parent}
}

func (s *Scope) Declare(v *Variable) bool {
	if _, exists := s.vars[v.Name]; exists {
		return false
	}
	s.vars[v.Name] = v
	return true
}

func (s *Scope) Lookup(name string) (*Variable, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Module is one module's export table: its canonical path and every
// public function, keyed by name.
type Module struct {
	CanonicalPath string
	Public        map[string]*Function
}

// ModuleTable maps a canonical import path to its exported functions,
// and a local alias (or bare import string) to that canonical path,
// as recorded in resolve.Module.ResolvedImports (spec §3, "Module
// table").
type ModuleTable struct {
	ByPath map[string]*Module
	Alias  map[string]string // alias (or import string) -> canonical path
}

func NewModuleTable() *ModuleTable {
	return &ModuleTable{ByPath: make(map[string]*Module), Alias: make(map[string]string)}
}
