package ast

import "lak/internal/source"

// BinOp identifies a binary operator.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	NotEq
	Lt
	Gt
	LtEq
	GtEq
	AndAnd
	OrOr
)

// UnOp identifies a unary operator.
type UnOp int

const (
	Neg UnOp = iota
	Not
)

// StringLit is a post-escape string literal.
type StringLit struct {
	Value string
	Span_ source.Span
}

func (*StringLit) exprNode()          {}
func (e *StringLit) Span() source.Span { return e.Span_ }

// IntLit stores the literal as a sign flag plus an unsigned 64-bit
// magnitude so that a folded leading minus (e.g.
// -9223372036854775808) stays representable before a destination
// type narrows it (spec §3, §9).
type IntLit struct {
	// Magnitude is the literal's unsigned magnitude as written.
	Magnitude uint64
	// Negative is true when the parser folded a leading unary minus
	// into this literal.
	Negative bool
	Span_    source.Span
}

func (*IntLit) exprNode()           {}
func (e *IntLit) Span() source.Span { return e.Span_ }

// AsInt128 returns the literal's sign and unsigned magnitude; the
// pair is sufficient to hold -(1<<63)..(1<<64)-1.
func (l *IntLit) AsInt128() (neg bool, mag uint64) {
	return l.Negative, l.Magnitude
}

type FloatLit struct {
	Value float64
	Span_ source.Span
}

func (*FloatLit) exprNode()           {}
func (e *FloatLit) Span() source.Span { return e.Span_ }

type BoolLit struct {
	Value bool
	Span_ source.Span
}

func (*BoolLit) exprNode()           {}
func (e *BoolLit) Span() source.Span { return e.Span_ }

type Ident struct {
	Name  string
	Span_ source.Span
}

func (*Ident) exprNode()           {}
func (e *Ident) Span() source.Span { return e.Span_ }

// Call is `callee(args...)` where callee has no module qualifier.
type Call struct {
	Callee string
	CalleeSpan source.Span
	Args       []Expr
	Span_      source.Span
}

func (*Call) exprNode()           {}
func (e *Call) Span() source.Span { return e.Span_ }

// ModuleCall is `module.function(args...)`.
type ModuleCall struct {
	Module     string
	ModuleSpan source.Span
	Function   string
	FuncSpan   source.Span
	Args       []Expr
	Span_      source.Span
}

func (*ModuleCall) exprNode()           {}
func (e *ModuleCall) Span() source.Span { return e.Span_ }

type BinaryExpr struct {
	Op       BinOp
	OpSpan   source.Span
	Left     Expr
	Right    Expr
	Span_    source.Span
}

func (*BinaryExpr) exprNode()           {}
func (e *BinaryExpr) Span() source.Span { return e.Span_ }

type UnaryExpr struct {
	Op      UnOp
	OpSpan  source.Span
	Operand Expr
	Span_   source.Span
}

func (*UnaryExpr) exprNode()           {}
func (e *UnaryExpr) Span() source.Span { return e.Span_ }

// ModuleAccess is `module.name` used anywhere other than as the
// callee of a call; the grammar accepts it as an expression, but the
// analyzer rejects every use except as a ModuleCall callee
// (spec §4.4, ModuleAccessNotImplemented).
type ModuleAccess struct {
	Module     string
	ModuleSpan source.Span
	Member     string
	MemberSpan source.Span
	Span_      source.Span
}

func (*ModuleAccess) exprNode()           {}
func (e *ModuleAccess) Span() source.Span { return e.Span_ }

// IfExpr doubles as the statement form (Else == nil is legal only as
// a statement — the analyzer rejects a value-producing `if` missing
// an else branch).
type IfExpr struct {
	Cond  Expr
	Then  []Stmt
	// Else holds either []Stmt (an else block) or *IfExpr (an else-if
	// chain); nil means no else clause.
	Else  interface{}
	Span_ source.Span
}

func (*IfExpr) exprNode()           {}
func (e *IfExpr) Span() source.Span { return e.Span_ }
