package codegen

import (
	lltypes "github.com/llir/llvm/ir/types"

	"lak/internal/types"
)

// lowerType implements spec §4.5's type lowering table. Signedness
// does not affect storage width, only the operations later chosen
// over a value, so signed and unsigned integers of the same width
// share one LLVM type.
func lowerType(k types.Kind) lltypes.Type {
	switch k {
	case types.I8, types.U8:
		return lltypes.I8
	case types.I16, types.U16:
		return lltypes.I16
	case types.I32, types.U32:
		return lltypes.I32
	case types.I64, types.U64:
		return lltypes.I64
	case types.F32:
		return lltypes.Float
	case types.F64:
		return lltypes.Double
	case types.Bool:
		return lltypes.I1
	case types.String:
		return lltypes.I8Ptr
	case types.Void, types.Never:
		return lltypes.Void
	default:
		return lltypes.Void
	}
}
