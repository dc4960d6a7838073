// Package codegen lowers validated modules plus the analyzer's
// inferred-type side-channel to an LLVM module (spec §4.5), using
// github.com/llir/llvm for IR construction.
package codegen

import (
	"fmt"

	"lak/internal/source"
)

// Kind is the code generator's error taxonomy (spec §7).
type Kind string

const (
	InternalError    Kind = "InternalError"
	TargetError      Kind = "TargetError"
	InvalidModulePath Kind = "InvalidModulePath"
)

// Error is a structured codegen failure.
type Error struct {
	Kind    Kind
	Span    source.Span
	HasSpan bool
	Message string
}

func (e *Error) Error() string { return e.Message }

// errInternal reports a condition the earlier phases guarantee cannot
// happen; the message cites only source-level identifiers, never
// mangled names (spec §4.5, "Internal-error policy").
func errInternal(span source.Span, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...) + ". This is a compiler bug."
	return &Error{Kind: InternalError, Span: span, HasSpan: true, Message: msg}
}

func errTarget(msg string) *Error {
	return &Error{Kind: TargetError, Message: msg}
}

func errInvalidModulePath(path string) *Error {
	return &Error{Kind: InvalidModulePath, Message: fmt.Sprintf("module path %q cannot be mangled into a symbol prefix", path)}
}
