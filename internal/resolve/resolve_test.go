package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lak/internal/testutil"
)

func TestResolveSingleModule(t *testing.T) {
	dir := testutil.TempProject(t)
	entry := testutil.WriteModule(t, dir, "main", `fn main() -> void { println("hi") }`)

	graph, err := Resolve(entry)
	require.NoError(t, err)
	require.Len(t, graph.Order, 1)
	require.Equal(t, "main", graph.Entry.DerivedName)
}

func TestResolveSharedImportIsCachedOnce(t *testing.T) {
	dir := testutil.TempProject(t)
	testutil.WriteModule(t, dir, "util", `pub fn hello() -> void { println("hi") }`)
	testutil.WriteModule(t, dir, "a", `import "./util"
fn use_it() -> void { util.hello() }`)
	entry := testutil.WriteModule(t, dir, "main", `import "./util"
import "./a"
fn main() -> void { util.hello() }`)

	graph, err := Resolve(entry)
	require.NoError(t, err)
	require.Len(t, graph.Order, 3) // util, a, main — leaves first
	require.Equal(t, "main", graph.Order[len(graph.Order)-1].DerivedName)
}

func TestResolveDetectsCycle(t *testing.T) {
	dir := testutil.TempProject(t)
	testutil.WriteModule(t, dir, "a", `import "./b"
fn f() -> void {}`)
	testutil.WriteModule(t, dir, "b", `import "./a"
fn g() -> void {}`)
	entry := testutil.WriteModule(t, dir, "a", `import "./b"
fn f() -> void {}`)

	_, err := Resolve(entry)
	require.Error(t, err)
	rerr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, CircularImport, rerr.Kind)
}

func TestResolveRejectsNonRelativeImport(t *testing.T) {
	dir := testutil.TempProject(t)
	entry := testutil.WriteModule(t, dir, "main", `import "std/io"
fn main() -> void {}`)

	_, err := Resolve(entry)
	require.Error(t, err)
	rerr := err.(*Error)
	require.Equal(t, StandardLibraryNotSupported, rerr.Kind)
}

func TestResolveRejectsDuplicateImport(t *testing.T) {
	dir := testutil.TempProject(t)
	testutil.WriteModule(t, dir, "util", `pub fn hello() -> void {}`)
	entry := testutil.WriteModule(t, dir, "main", `import "./util"
import "./util"
fn main() -> void {}`)

	_, err := Resolve(entry)
	require.Error(t, err)
	rerr := err.(*Error)
	require.Equal(t, DuplicateModuleImport, rerr.Kind)
}

func TestResolveFileNotFound(t *testing.T) {
	dir := testutil.TempProject(t)
	entry := testutil.WriteModule(t, dir, "main", `import "./missing"
fn main() -> void {}`)

	_, err := Resolve(entry)
	require.Error(t, err)
	rerr := err.(*Error)
	require.Equal(t, FileNotFound, rerr.Kind)
}
