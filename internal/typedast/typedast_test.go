package typedast

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/types"
)

func TestBlockTypeFallsBackToUnit(t *testing.T) {
	b := &Block{}
	if b.Type() != types.Unit {
		t.Fatalf("empty block should be unit-typed, got %v", b.Type())
	}
}

func TestBlockTypeFromImplicit(t *testing.T) {
	b := &Block{Implicit: &IntLit{ExprBase: ExprBase{Type: types.U64}, Value: 7}}
	if b.Type() != types.U64 {
		t.Fatalf("block type = %v, want U64", b.Type())
	}
}

func TestExprReturnType(t *testing.T) {
	var e Expr = &BoolLit{ExprBase: ExprBase{Type: types.Bool}, Value: true}
	if e.ReturnType() != types.Bool {
		t.Fatalf("ReturnType() = %v, want Bool", e.ReturnType())
	}
}
