package codegen

import (
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"lak/internal/types"
)

func constInt(k types.Kind, v int64) *constant.Int {
	return constant.NewInt(lowerType(k).(*lltypes.IntType), v)
}

func constIntFromUint(k types.Kind, neg bool, magnitude uint64) *constant.Int {
	it := lowerType(k).(*lltypes.IntType)
	if neg {
		return constant.NewInt(it, -int64(magnitude))
	}
	return constant.NewInt(it, int64(magnitude))
}

func constFloat(k types.Kind, v float64) *constant.Float {
	return constant.NewFloat(lowerType(k).(*lltypes.FloatType), v)
}

func constBool(v bool) *constant.Int {
	if v {
		return constant.NewInt(lltypes.I1, 1)
	}
	return constant.NewInt(lltypes.I1, 0)
}
