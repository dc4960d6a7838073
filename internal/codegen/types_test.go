package codegen

import (
	"testing"

	lltypes "github.com/llir/llvm/ir/types"

	"lak/internal/types"
)

func TestLowerTypeSharesWidthAcrossSignedness(t *testing.T) {
	if !lowerType(types.I32).Equal(lowerType(types.U32)) {
		t.Fatal("i32 and u32 must lower to the same LLVM type")
	}
	if !lowerType(types.I64).Equal(lowerType(types.U64)) {
		t.Fatal("i64 and u64 must lower to the same LLVM type")
	}
}

func TestLowerTypeDistinguishesWidths(t *testing.T) {
	if lowerType(types.I16).Equal(lowerType(types.I32)) {
		t.Fatal("i16 and i32 must not share an LLVM type")
	}
}

func TestLowerTypeFloats(t *testing.T) {
	if !lowerType(types.F32).Equal(lltypes.Float) {
		t.Fatal("f32 must lower to float")
	}
	if !lowerType(types.F64).Equal(lltypes.Double) {
		t.Fatal("f64 must lower to double")
	}
}

func TestLowerTypeBoolAndString(t *testing.T) {
	if !lowerType(types.Bool).Equal(lltypes.I1) {
		t.Fatal("bool must lower to i1")
	}
	if !lowerType(types.String).Equal(lltypes.I8Ptr) {
		t.Fatal("string must lower to i8*")
	}
}

func TestLowerTypeVoidAndNever(t *testing.T) {
	if !lowerType(types.Void).Equal(lltypes.Void) {
		t.Fatal("void must lower to void")
	}
	if !lowerType(types.Never).Equal(lltypes.Void) {
		t.Fatal("never must lower to void")
	}
}
