package ir

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/types"
	"github.com/FuelLabs/sway-core-go/testutil"
)

// TestDumpMatchesGolden snapshots Dump's text form of buildReturn42's module,
// per SPEC_FULL §10.5's "testutil/golden.go adapted to snapshot IR-dump ...
// text" commitment.
func TestDumpMatchesGolden(t *testing.T) {
	m := buildReturn42()
	testutil.CompareTextGolden(t, "ir", "return_42", Dump(m))
}

func TestDumpRendersConstantPool(t *testing.T) {
	m := NewModule(ast.KindLibrary, "consts")
	m.AddConstant("MAX", &Constant{Type: types.U64, Kind: ConstInt, Int: 100})
	out := Dump(m)
	if out == "" {
		t.Fatalf("expected non-empty dump")
	}
}
