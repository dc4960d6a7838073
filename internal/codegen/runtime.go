package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"lak/internal/types"
)

// runtime holds the declarations for the ABI in spec §6: the
// lak_println* family, the string comparison helpers, and lak_panic.
// All use C calling convention with no name mangling, matching the
// runtime static archive's own symbol names.
type runtime struct {
	println     map[types.Kind]*ir.Func // keyed by the lowered argument kind
	printlnStr  *ir.Func
	printlnBool *ir.Func
	streq       *ir.Func
	strcmp      *ir.Func
	panic       *ir.Func
}

func declareRuntime(m *ir.Module) *runtime {
	rt := &runtime{println: make(map[types.Kind]*ir.Func)}

	rt.printlnStr = m.NewFunc("lak_println", lltypes.Void, ir.NewParam("s", lltypes.I8Ptr))
	rt.printlnBool = m.NewFunc("lak_println_bool", lltypes.Void, ir.NewParam("v", lltypes.I1))

	for _, k := range []types.Kind{types.I8, types.I16, types.I32, types.I64, types.U8, types.U16, types.U32, types.U64} {
		name := fmt.Sprintf("lak_println_%s", k.String())
		rt.println[k] = m.NewFunc(name, lltypes.Void, ir.NewParam("v", lowerType(k)))
	}
	rt.println[types.F32] = m.NewFunc("lak_println_f32", lltypes.Void, ir.NewParam("v", lltypes.Float))
	rt.println[types.F64] = m.NewFunc("lak_println_f64", lltypes.Void, ir.NewParam("v", lltypes.Double))

	rt.streq = m.NewFunc("lak_streq", lltypes.I32, ir.NewParam("a", lltypes.I8Ptr), ir.NewParam("b", lltypes.I8Ptr))
	rt.strcmp = m.NewFunc("lak_strcmp", lltypes.I32, ir.NewParam("a", lltypes.I8Ptr), ir.NewParam("b", lltypes.I8Ptr))
	rt.panic = m.NewFunc("lak_panic", lltypes.Void, ir.NewParam("msg", lltypes.I8Ptr))

	return rt
}

// printlnTarget selects the runtime extern for a println call site's
// analyzer-typed argument (spec §4.5, "println dispatch").
func (rt *runtime) printlnTarget(k types.Kind) *ir.Func {
	if k == types.String {
		return rt.printlnStr
	}
	if k == types.Bool {
		return rt.printlnBool
	}
	if fn, ok := rt.println[k]; ok {
		return fn
	}
	return nil
}

// overflowIntrinsic declares (once) the llvm.{s,u}{add,sub,mul}.with.overflow
// intrinsic for the given integer width, returning the struct-typed
// function used to implement checked arithmetic (spec §4.5).
func (g *Generator) overflowIntrinsic(op string, signed bool, width int) *ir.Func {
	sign := "u"
	if signed {
		sign = "s"
	}
	name := fmt.Sprintf("llvm.%s%s.with.overflow.i%d", sign, op, width)
	if fn, ok := g.intrinsics[name]; ok {
		return fn
	}
	intType := lltypes.NewInt(int64(width))
	retType := lltypes.NewStruct(intType, lltypes.I1)
	fn := g.module.NewFunc(name, retType, ir.NewParam("a", intType), ir.NewParam("b", intType))
	g.intrinsics[name] = fn
	return fn
}
