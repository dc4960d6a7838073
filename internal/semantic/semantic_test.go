package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lak/internal/resolve"
	"lak/internal/testutil"
)

func graphOf(t *testing.T, src string) *resolve.Graph {
	t.Helper()
	dir := testutil.TempProject(t)
	entry := testutil.WriteModule(t, dir, "main", src)
	graph, err := resolve.Resolve(entry)
	require.NoError(t, err)
	return graph
}

func errKinds(errs []*Error) []Kind {
	kinds := make([]Kind, len(errs))
	for i, e := range errs {
		kinds[i] = e.Kind
	}
	return kinds
}

func TestAnalyzeValidProgram(t *testing.T) {
	graph := graphOf(t, `fn main() -> void {
  let x: i32 = 2
  println(x + 1)
}`)
	errs := NewSession().Analyze(graph)
	require.Empty(t, errs)
}

func TestAnalyzeMissingMain(t *testing.T) {
	graph := graphOf(t, `fn helper() -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), MissingMain)
}

func TestAnalyzeInvalidMainSignature(t *testing.T) {
	graph := graphOf(t, `fn main(x: i32) -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), InvalidMainSignature)
}

func TestAnalyzeUndefinedVariable(t *testing.T) {
	graph := graphOf(t, `fn main() -> void { println(missing) }`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), UndefinedVariable)
}

func TestAnalyzeUndefinedFunction(t *testing.T) {
	graph := graphOf(t, `fn main() -> void { bogus() }`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), UndefinedFunction)
}

func TestAnalyzeImmutableReassignment(t *testing.T) {
	graph := graphOf(t, `fn main() -> void {
  let x: i32 = 1
  x = 2
}`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), ImmutableVariableReassignment)
}

func TestAnalyzeMutableReassignmentOk(t *testing.T) {
	graph := graphOf(t, `fn main() -> void {
  let mut x: i32 = 1
  x = 2
}`)
	errs := NewSession().Analyze(graph)
	require.Empty(t, errs)
}

func TestAnalyzeIntegerOverflow(t *testing.T) {
	graph := graphOf(t, `fn main() -> void { let x: i8 = 200 }`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), IntegerOverflow)
}

func TestAnalyzeDuplicateFunction(t *testing.T) {
	graph := graphOf(t, `fn helper() -> void {}
fn helper() -> void {}
fn main() -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), DuplicateFunction)
}

func TestAnalyzeReservedFunctionName(t *testing.T) {
	graph := graphOf(t, `fn println() -> void {}
fn main() -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), ReservedFunctionName)
}

func TestAnalyzeCallToMainRejected(t *testing.T) {
	graph := graphOf(t, `fn main() -> void { main() }`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), CallToMain)
}

func TestAnalyzeMissingReturn(t *testing.T) {
	graph := graphOf(t, `fn add(a: i32, b: i32) -> i32 {
  let sum: i32 = a + b
}
fn main() -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), MissingReturn)
}

func TestAnalyzeReturnOnAllPathsOk(t *testing.T) {
	graph := graphOf(t, `fn add(a: i32, b: i32) -> i32 {
  if a > b {
    return a
  } else {
    return b
  }
}
fn main() -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Empty(t, errs)
}

func TestAnalyzeInfiniteLoopWithoutBreakSatisfiesReturn(t *testing.T) {
	graph := graphOf(t, `fn spin() -> i32 {
  while true {
    return 1
  }
}
fn main() -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Empty(t, errs)
}

func TestAnalyzeBreakOutsideLoop(t *testing.T) {
	graph := graphOf(t, `fn main() -> void { break }`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), InvalidControlFlow)
}

func TestAnalyzeBreakInsideWhileOk(t *testing.T) {
	graph := graphOf(t, `fn main() -> void {
  while true {
    break
  }
}`)
	errs := NewSession().Analyze(graph)
	require.Empty(t, errs)
}

func TestAnalyzeUnusedNonVoidResult(t *testing.T) {
	graph := graphOf(t, `fn one() -> i32 { return 1 }
fn main() -> void { one() }`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), UnusedNonVoidResult)
}

func TestAnalyzeDiscardedResultOk(t *testing.T) {
	graph := graphOf(t, `fn one() -> i32 { return 1 }
fn main() -> void { let _ = one() }`)
	errs := NewSession().Analyze(graph)
	require.Empty(t, errs)
}

func TestAnalyzeModuleNotImported(t *testing.T) {
	graph := graphOf(t, `fn main() -> void { other.hello() }`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), ModuleNotImported)
}

func TestAnalyzeUndefinedModuleFunction(t *testing.T) {
	dir := testutil.TempProject(t)
	testutil.WriteModule(t, dir, "util", `fn private_helper() -> void {}`)
	entry := testutil.WriteModule(t, dir, "main", `import "./util"
fn main() -> void { util.private_helper() }`)
	graph, err := resolve.Resolve(entry)
	require.NoError(t, err)

	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), UndefinedModuleFunction)
}

func TestAnalyzeModuleCallOk(t *testing.T) {
	dir := testutil.TempProject(t)
	testutil.WriteModule(t, dir, "util", `pub fn hello() -> void { println("hi") }`)
	entry := testutil.WriteModule(t, dir, "main", `import "./util"
fn main() -> void { util.hello() }`)
	graph, err := resolve.Resolve(entry)
	require.NoError(t, err)

	errs := NewSession().Analyze(graph)
	require.Empty(t, errs)
}

func TestAnalyzeCrossModuleCallInImportedModule(t *testing.T) {
	dir := testutil.TempProject(t)
	testutil.WriteModule(t, dir, "other", `pub fn hi() -> void {}`)
	testutil.WriteModule(t, dir, "util", `import "./other"
pub fn hello() -> void { other.hi() }`)
	entry := testutil.WriteModule(t, dir, "main", `import "./util"
fn main() -> void { util.hello() }`)
	graph, err := resolve.Resolve(entry)
	require.NoError(t, err)

	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), CrossModuleCallInImportedModule)
}

func TestAnalyzeIfExpressionAsValueOk(t *testing.T) {
	graph := graphOf(t, `fn max(a: i32, b: i32) -> i32 {
  let bigger: i32 = if a > b {
    a_helper()
  } else {
    b_helper()
  }
  return bigger
}
fn a_helper() -> i32 { return 1 }
fn b_helper() -> i32 { return 2 }
fn main() -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Empty(t, errs)
}

func TestAnalyzeIfExpressionMissingElseAsValue(t *testing.T) {
	graph := graphOf(t, `fn pick() -> i32 {
  let x: i32 = if true {
    helper()
  }
  return x
}
fn helper() -> i32 { return 1 }
fn main() -> void {}`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), IfExpressionMissingElse)
}

func TestAnalyzeSessionResetBetweenCalls(t *testing.T) {
	s := NewSession()
	bad := graphOf(t, `fn helper() -> void {}`)
	errs := s.Analyze(bad)
	require.Contains(t, errKinds(errs), MissingMain)

	good := graphOf(t, `fn main() -> void { println("hi") }`)
	errs = s.Analyze(good)
	require.Empty(t, errs)
}

func TestAnalyzeSelfReferentialInitializer(t *testing.T) {
	graph := graphOf(t, `fn main() -> void { let x: i32 = x }`)
	errs := NewSession().Analyze(graph)
	require.Contains(t, errKinds(errs), SelfReferentialInitializer)
}
