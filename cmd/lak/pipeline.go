package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/llir/llvm/ir"

	"lak/internal/codegen"
	"lak/internal/diagnostic"
	"lak/internal/resolve"
	"lak/internal/semantic"
)

// compileError wraps the one diagnostic (or batch of diagnostics)
// that aborted a compilation so the caller can render them against
// the entry file without re-deriving which phase produced them
// (spec §7, "the driver unifies them into one outer error type").
type compileError struct {
	entryPath string
	entryText []byte
	diags     []diagnostic.Diagnostic
}

func (e *compileError) Error() string {
	if len(e.diags) == 0 {
		return "compilation failed"
	}
	return e.diags[0].Message
}

func (e *compileError) render() string {
	out := ""
	for _, d := range e.diags {
		out += diagnostic.Render(e.entryPath, e.entryText, d)
	}
	return out
}

// compile runs the full front end through code generation and
// returns the lowered LLVM module, ready to be printed to a .ll file.
func compile(entryPath string) (*ir.Module, error) {
	graph, err := resolve.Resolve(entryPath)
	if err != nil {
		return nil, resolveErrToCompileError(entryPath, err)
	}

	session := semantic.NewSession()
	semErrs := session.Analyze(graph)
	if len(semErrs) > 0 {
		text, _ := os.ReadFile(entryPath)
		return nil, &compileError{entryPath: entryPath, entryText: text, diags: diagnostic.FromSemanticAll(semErrs)}
	}

	gen := codegen.NewGenerator()
	module, cgErrs := gen.Generate(graph, session.Types())
	if len(cgErrs) > 0 {
		text, _ := os.ReadFile(entryPath)
		return nil, &compileError{entryPath: entryPath, entryText: text, diags: diagnostic.FromCodegenAll(cgErrs)}
	}

	return module, nil
}

// resolveErrToCompileError unwraps a resolve.Error so a lex/parse
// failure inside an imported file renders against that file's own
// text, not the entry module's (spec §4.3 step 5, §4.6).
func resolveErrToCompileError(entryPath string, err error) error {
	var rerr *resolve.Error
	if !errors.As(err, &rerr) {
		text, _ := os.ReadFile(entryPath)
		return &compileError{entryPath: entryPath, entryText: text, diags: []diagnostic.Diagnostic{{
			Phase: "resolving", Message: err.Error(), Severity: diagnostic.SeverityError,
		}}}
	}

	text, _ := os.ReadFile(entryPath)
	d := diagnostic.FromResolve(rerr)
	return &compileError{entryPath: entryPath, entryText: text, diags: []diagnostic.Diagnostic{d}}
}

func reportAndExit(err error) {
	var ce *compileError
	if errors.As(err, &ce) {
		fmt.Fprint(os.Stderr, ce.render())
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
