package codegen

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const reservedPrefix = "lak_"

var identSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// modulePrefix derives a module's mangling prefix from its canonical
// path, stripping the extension and replacing path separators so two
// modules in different directories with the same file stem never
// collide (spec §4.5).
func modulePrefix(canonicalPath, entryPath string) (string, *Error) {
	if canonicalPath == entryPath {
		return "entry", nil
	}
	stem := strings.TrimSuffix(canonicalPath, filepath.Ext(canonicalPath))
	sanitized := identSanitizer.ReplaceAllString(stem, "_")
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		return "", errInvalidModulePath(canonicalPath)
	}
	return sanitized, nil
}

// mangle implements spec §4.5's `_L<len>_<module_prefix>_<function_name>`
// scheme. The entry module's `main` is handled separately by the
// caller and never passes through here.
func mangle(prefix, name string) string {
	full := prefix + "_" + name
	return "_L" + strconv.Itoa(len(full)) + "_" + full
}

// isReservedIdent reports whether name collides with the runtime's
// lak_ namespace; mangling already prevents this for user functions,
// so this is only consulted defensively.
func isReservedIdent(name string) bool {
	return strings.HasPrefix(name, reservedPrefix)
}
