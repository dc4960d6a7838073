package semantic

import (
	"fmt"

	"lak/internal/source"
)

// Kind is the semantic analyzer's error taxonomy (spec §4.4, §7).
type Kind string

const (
	DuplicateFunction                 Kind = "DuplicateFunction"
	ReservedFunctionName               Kind = "ReservedFunctionName"
	MissingMain                        Kind = "MissingMain"
	InvalidMainSignature               Kind = "InvalidMainSignature"
	UndefinedVariable                  Kind = "UndefinedVariable"
	UndefinedFunction                  Kind = "UndefinedFunction"
	CallToMain                         Kind = "CallToMain"
	ModuleNotImported                  Kind = "ModuleNotImported"
	UndefinedModule                    Kind = "UndefinedModule"
	UndefinedModuleFunction            Kind = "UndefinedModuleFunction"
	ModuleAccessNotImplemented         Kind = "ModuleAccessNotImplemented"
	CrossModuleCallInImportedModule    Kind = "CrossModuleCallInImportedModule"
	ImmutableVariableReassignment      Kind = "ImmutableVariableReassignment"
	DuplicateVariable                  Kind = "DuplicateVariable"
	SelfReferentialInitializer         Kind = "SelfReferentialInitializer"
	TypeMismatch                       Kind = "TypeMismatch"
	IntegerOverflow                    Kind = "IntegerOverflow"
	InvalidFloatLiteral                Kind = "InvalidFloatLiteral"
	ModuloOnFloat                      Kind = "ModuloOnFloat"
	InvalidOperandTypes                Kind = "InvalidOperandTypes"
	ArgumentCountMismatch              Kind = "ArgumentCountMismatch"
	ArgumentTypeMismatch               Kind = "ArgumentTypeMismatch"
	UnusedNonVoidResult                Kind = "UnusedNonVoidResult"
	IfExpressionBranchTypeMismatch     Kind = "IfExpressionBranchTypeMismatch"
	IfExpressionMissingElse            Kind = "IfExpressionMissingElse"
	MissingReturn                      Kind = "MissingReturn"
	InvalidControlFlow                 Kind = "InvalidControlFlow"
	UnknownType                        Kind = "UnknownType"
	InternalError                      Kind = "InternalError"
)

// Error is a structured semantic failure. Span is the zero value and
// HasSpan is false for program-level issues with no natural anchor
// (e.g. MissingMain); the diagnostics package renders those with the
// message, file path and hint only, without a source snippet or an
// end-of-source anchor.
type Error struct {
	Kind    Kind
	Span    source.Span
	HasSpan bool
	Message string
	Help    string
}

func (e *Error) Error() string { return e.Message }

func errAt(kind Kind, span source.Span, msg string) *Error {
	return &Error{Kind: kind, Span: span, HasSpan: true, Message: msg}
}

func errProgram(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func (e *Error) withHint(h string) *Error {
	e.Help = h
	return e
}

func errDuplicateFunction(span source.Span, name string) *Error {
	return errAt(DuplicateFunction, span, fmt.Sprintf("function '%s' is already defined in this module", name))
}

func errReservedFunctionName(span source.Span, name string) *Error {
	e := errAt(ReservedFunctionName, span, fmt.Sprintf("'%s' is a prelude builtin and cannot be redefined", name))
	e.Help = "choose a different name"
	return e
}

func errMissingMain() *Error {
	e := errProgram(MissingMain, "entry module must define 'fn main() -> void'")
	return e
}

func errInvalidMainSignature(span source.Span) *Error {
	e := errAt(InvalidMainSignature, span, "'main' must take no parameters and return 'void'")
	return e
}

func errUndefinedVariable(span source.Span, name string) *Error {
	return errAt(UndefinedVariable, span, fmt.Sprintf("undefined variable '%s'", name))
}

func errUndefinedFunction(span source.Span, name string) *Error {
	return errAt(UndefinedFunction, span, fmt.Sprintf("undefined function '%s'", name))
}

func errCallToMain(span source.Span) *Error {
	e := errAt(CallToMain, span, "'main' cannot be called")
	return e
}

func errModuleNotImported(span source.Span, alias string) *Error {
	return errAt(ModuleNotImported, span, fmt.Sprintf("module '%s' is not imported in this file", alias))
}

func errUndefinedModule(span source.Span, alias string) *Error {
	return errAt(UndefinedModule, span, fmt.Sprintf("no such module '%s'", alias))
}

func errUndefinedModuleFunction(span source.Span, module, fn string) *Error {
	return errAt(UndefinedModuleFunction, span, fmt.Sprintf("module '%s' has no public function '%s'", module, fn))
}

func errModuleAccessNotImplemented(span source.Span) *Error {
	e := errAt(ModuleAccessNotImplemented, span, "only calling a module function is supported; other member access is not implemented")
	return e
}

func errCrossModuleCallInImportedModule(span source.Span) *Error {
	e := errAt(CrossModuleCallInImportedModule, span, "imported modules may not make cross-module calls in this release")
	return e
}

func errImmutableReassignment(span source.Span, name string) *Error {
	e := errAt(ImmutableVariableReassignment, span, fmt.Sprintf("cannot assign to immutable variable '%s'", name))
	e.Help = "declare it with 'let mut' if it needs to change"
	return e
}

func errDuplicateVariable(span source.Span, name string) *Error {
	return errAt(DuplicateVariable, span, fmt.Sprintf("variable '%s' is already declared in this scope", name))
}

func errSelfReferentialInitializer(span source.Span, name string) *Error {
	return errAt(SelfReferentialInitializer, span, fmt.Sprintf("initializer for '%s' cannot reference '%s' itself", name, name))
}

func errTypeMismatch(span source.Span, want, got string) *Error {
	return errAt(TypeMismatch, span, fmt.Sprintf("expected type %s, found %s", want, got))
}

func errIntegerOverflow(span source.Span, kind string) *Error {
	return errAt(IntegerOverflow, span, fmt.Sprintf("integer literal does not fit in type %s", kind))
}

func errInvalidFloatLiteral(span source.Span, kind string) *Error {
	return errAt(InvalidFloatLiteral, span, fmt.Sprintf("float literal is not representable as %s", kind))
}

func errModuloOnFloat(span source.Span) *Error {
	return errAt(ModuloOnFloat, span, "'%' is not defined for floating-point operands")
}

func errInvalidOperandTypes(span source.Span, op string, left, right string) *Error {
	return errAt(InvalidOperandTypes, span, fmt.Sprintf("operator '%s' is not defined for %s and %s", op, left, right))
}

func errArgumentCountMismatch(span source.Span, name string, want, got int) *Error {
	return errAt(ArgumentCountMismatch, span, fmt.Sprintf("'%s' expects %d argument(s), found %d", name, want, got))
}

func errArgumentTypeMismatch(span source.Span, name string, index int, want, got string) *Error {
	return errAt(ArgumentTypeMismatch, span, fmt.Sprintf("argument %d of '%s' expects %s, found %s", index+1, name, want, got))
}

func errUnusedNonVoidResult(span source.Span, name string) *Error {
	e := errAt(UnusedNonVoidResult, span, fmt.Sprintf("result of '%s' is not used", name))
	e.Help = "bind it with 'let' or discard it with 'let _ ='"
	return e
}

func errIfExpressionBranchTypeMismatch(span source.Span, then, els string) *Error {
	return errAt(IfExpressionBranchTypeMismatch, span, fmt.Sprintf("if-expression branches have different types: %s and %s", then, els))
}

func errIfExpressionMissingElse(span source.Span) *Error {
	e := errAt(IfExpressionMissingElse, span, "if-expression used as a value must have an 'else' branch")
	return e
}

func errMissingReturn(span source.Span, name string) *Error {
	e := errAt(MissingReturn, span, fmt.Sprintf("function '%s' does not return a value on all paths", name))
	return e
}

func errInvalidControlFlow(span source.Span, kw string) *Error {
	e := errAt(InvalidControlFlow, span, fmt.Sprintf("'%s' outside a loop", kw))
	return e
}

func errUnknownType(span source.Span, name string) *Error {
	e := errAt(UnknownType, span, fmt.Sprintf("unknown type '%s'", name))
	e.Help = "valid types are i8, i16, i32, i64, u8, u16, u32, u64, f32, f64, bool, string, void"
	return e
}

func errInternal(span source.Span, msg string) *Error {
	return errAt(InternalError, span, msg+". This is a compiler bug.")
}
