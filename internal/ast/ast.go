// Package ast defines the Lak abstract syntax tree. Every node pairs
// a syntactic shape with a source.Span; the tree is never mutated
// after parsing — inferred types live in the analyzer's side-channel
// instead (see internal/semantic).
package ast

import "lak/internal/source"

// Node is implemented by every AST element.
type Node interface {
	Span() source.Span
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node that does not itself produce a value.
type Stmt interface {
	Node
	stmtNode()
}

// TypeRef names a type as written in source: a primitive identifier
// such as "i32" or "string". nil means the position had no explicit
// type — the `Inferred` placeholder from spec §3.
type TypeRef struct {
	Name string
	Span_ source.Span
}

func (t *TypeRef) Span() source.Span { return t.Span_ }

// Param is one function parameter.
type Param struct {
	Name  string
	Type  *TypeRef
	Span_ source.Span
}

func (p *Param) Span() source.Span { return p.Span_ }

// Visibility of a function definition.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Function is one `fn` definition.
type Function struct {
	Visibility     Visibility
	Name           string
	NameSpan       source.Span
	Params         []*Param
	ReturnTypeText string
	ReturnTypeSpan source.Span
	Body           []Stmt
	SignatureSpan  source.Span
	Span_          source.Span
}

func (f *Function) Span() source.Span { return f.Span_ }

// Import is one `import` line.
type Import struct {
	Path  string
	Alias string // "" if no `as` clause
	Span_ source.Span
}

func (i *Import) Span() source.Span { return i.Span_ }

// Module is the parsed form of one source file.
type Module struct {
	Imports   []*Import
	Functions []*Function
	Span_     source.Span
}

func (m *Module) Span() source.Span { return m.Span_ }
