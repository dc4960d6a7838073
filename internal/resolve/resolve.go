// Package resolve implements Lak's module resolver: given an entry
// file it transitively loads every "./" or "../" import, canonicalizes
// paths so two imports of the same file share one parsed module,
// detects import cycles, and returns modules in leaves-first
// (topological) order for the analyzer and code generator (spec
// §4.3, §5).
package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"lak/internal/ast"
	"lak/internal/lexer"
	"lak/internal/parser"
	"lak/internal/source"
	"lak/internal/utils/stack"
)

const sourceExt = ".lak"

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Module is one fully loaded, but not yet semantically validated,
// source file plus its import graph edges.
type Module struct {
	CanonicalPath   string
	DerivedName     string
	AST             *ast.Module
	Source          *source.File
	ResolvedImports map[string]string // import string -> canonical path
}

// Graph is the resolver's output: every reachable module in
// topological (leaves-first) order, plus the entry module.
type Graph struct {
	Order []*Module
	Entry *Module
}

type resolver struct {
	cache  map[string]*Module
	active *stack.Stack[string]
	order  []*Module
}

// Resolve loads entryPath and every module it transitively imports.
func Resolve(entryPath string) (*Graph, error) {
	r := &resolver{cache: make(map[string]*Module), active: stack.New[string]()}

	canonical, err := canonicalize(entryPath)
	if err != nil {
		return nil, errIo(source.Span{}, entryPath, err)
	}

	entry, rerr := r.load(canonical, source.Span{})
	if rerr != nil {
		return nil, rerr
	}

	return &Graph{Order: r.order, Entry: entry}, nil
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// load reads, lexes, and parses the file at canonical, then
// recursively loads its imports. The active stack push/pop is
// balanced on every exit path, including error returns, so a failure
// deep in the import graph never leaves stale cycle-detection state
// behind (spec §5).
func (r *resolver) load(canonical string, referrerSpan source.Span) (*Module, *Error) {
	if m, ok := r.cache[canonical]; ok {
		return m, nil
	}

	if containsString(r.active.Values(), canonical) {
		cycle := append(append([]string{}, r.active.Values()...), canonical)
		return nil, errCircularImport(referrerSpan, cycle)
	}

	text, err := os.ReadFile(canonical)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errFileNotFound(referrerSpan, canonical)
		}
		return nil, errIo(referrerSpan, canonical, err)
	}

	stem := strings.TrimSuffix(filepath.Base(canonical), filepath.Ext(canonical))
	if !identRE.MatchString(stem) {
		return nil, errInvalidModuleName(referrerSpan, stem)
	}

	file := &source.File{Path: canonical, Text: text}

	toks, lexErrs := lexer.Tokenize(text)
	if len(lexErrs) > 0 {
		first := lexErrs[0]
		return nil, wrapLexParseError(canonical, text, first.Span, first)
	}

	modAST, parseErrs := parser.Parse(toks)
	if len(parseErrs) > 0 {
		first := parseErrs[0]
		return nil, wrapLexParseError(canonical, text, first.Span, first)
	}

	mod := &Module{
		CanonicalPath:   canonical,
		DerivedName:     stem,
		AST:             modAST,
		Source:          file,
		ResolvedImports: make(map[string]string),
	}

	r.active.Push(canonical)
	seen := make(map[string]string) // canonical path -> original import string, for duplicate detection
	for _, imp := range modAST.Imports {
		target, verr := r.validateAndResolveImportPath(canonical, imp)
		if verr != nil {
			r.active.Pop()
			return nil, verr
		}
		if prior, dup := seen[target]; dup {
			r.active.Pop()
			return nil, errDuplicateImport(imp.Span(), prior)
		}
		seen[target] = imp.Path

		child, cerr := r.load(target, imp.Span())
		if cerr != nil {
			r.active.Pop()
			return nil, cerr
		}
		mod.ResolvedImports[imp.Path] = child.CanonicalPath
	}
	r.active.Pop()

	r.cache[canonical] = mod
	r.order = append(r.order, mod)
	return mod, nil
}

// validateAndResolveImportPath enforces spec §4.3's import path rules
// and returns the canonical path of the imported file.
func (r *resolver) validateAndResolveImportPath(importerPath string, imp *ast.Import) (string, *Error) {
	path := imp.Path

	if path == "" {
		return "", errInvalidImportPath(imp.Span(), path)
	}
	if filepath.Ext(path) != "" {
		return "", errInvalidImportPath(imp.Span(), path)
	}
	if !strings.HasPrefix(path, "./") && !strings.HasPrefix(path, "../") {
		return "", errStandardLibraryNotSupported(imp.Span(), path)
	}

	dir := filepath.Dir(importerPath)
	target := filepath.Join(dir, path+sourceExt)
	canonical, err := canonicalize(target)
	if err != nil {
		return "", errIo(imp.Span(), target, err)
	}
	return canonical, nil
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
