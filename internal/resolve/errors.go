package resolve

import (
	"fmt"

	"lak/internal/source"
)

// Kind is the resolver error taxonomy from spec §4.3/§7.
type Kind string

const (
	FileNotFound               Kind = "FileNotFound"
	InvalidImportPath          Kind = "InvalidImportPath"
	CircularImport             Kind = "CircularImport"
	IoError                    Kind = "IoError"
	InvalidModuleName          Kind = "InvalidModuleName"
	StandardLibraryNotSupported Kind = "StandardLibraryNotSupported"
	DuplicateModuleImport      Kind = "DuplicateModuleImport"
	WrappedLexParseError       Kind = "WrappedLexParseError"
)

// Error is a structured resolver failure. File/Text are populated for
// WrappedLexParseError so diagnostics can open the offending imported
// file even though the failure surfaces while resolving the importer
// (spec §4.3 step 5, §4.6).
type Error struct {
	Kind    Kind
	Span    source.Span
	Message string
	Help    string
	File    string
	Text    []byte
	Wrapped error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Wrapped }

func errFileNotFound(span source.Span, path string) *Error {
	return &Error{Kind: FileNotFound, Span: span, Message: fmt.Sprintf("module file not found: '%s'", path)}
}

func errIo(span source.Span, path string, cause error) *Error {
	return &Error{Kind: IoError, Span: span, Message: fmt.Sprintf("failed to read '%s': %s", path, cause.Error()), Wrapped: cause}
}

func errInvalidImportPath(span source.Span, path string) *Error {
	e := &Error{Kind: InvalidImportPath, Span: span, Message: fmt.Sprintf("invalid import path '%s'", path)}
	e.Help = "import paths must be relative, e.g. \"./util\" or \"../shared/util\", with no file extension"
	return e
}

func errStandardLibraryNotSupported(span source.Span, path string) *Error {
	e := &Error{Kind: StandardLibraryNotSupported, Span: span, Message: fmt.Sprintf("standard library import '%s' is not supported yet", path)}
	e.Help = "only relative imports starting with './' or '../' are supported in this release"
	return e
}

func errInvalidModuleName(span source.Span, name string) *Error {
	return &Error{Kind: InvalidModuleName, Span: span, Message: fmt.Sprintf("'%s' is not a valid module name", name)}
}

func errCircularImport(span source.Span, cycle []string) *Error {
	msg := "circular import: "
	for i, p := range cycle {
		if i > 0 {
			msg += " -> "
		}
		msg += p
	}
	return &Error{Kind: CircularImport, Span: span, Message: msg}
}

func errDuplicateImport(span source.Span, path string) *Error {
	return &Error{Kind: DuplicateModuleImport, Span: span, Message: fmt.Sprintf("module '%s' is already imported in this file", path)}
}

func wrapLexParseError(file string, text []byte, span source.Span, cause error) *Error {
	return &Error{
		Kind:    WrappedLexParseError,
		Span:    span,
		Message: cause.Error(),
		File:    file,
		Text:    text,
		Wrapped: cause,
	}
}
