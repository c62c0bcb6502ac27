package ir

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// buildReturn42 constructs `fn main() -> u64 { 42 }` by hand, mirroring
// spec §8 scenario S1.
func buildReturn42() *Module {
	m := NewModule(ast.KindScript, "main")
	fn := NewFunction("main", nil, types.U64, false, nil)
	entry := fn.Entry()
	c := &Constant{Type: types.U64, Kind: ConstInt, Int: 42}
	v := fn.NewValue(types.U64)
	entry.Append(&loadConst{InstrBase: InstrBase{}, res: v, c: c})
	entry.Append(&Ret{Value: v})
	m.AddFunction(fn)
	return m
}

// loadConst is a test-only instruction standing in for whatever opcode
// internal/irbuild eventually uses to materialize a constant into a
// Value; internal/ir only needs Instruction to be satisfiable, not an
// exhaustive opcode set.
type loadConst struct {
	InstrBase
	res *Value
	c   *Constant
}

func (i *loadConst) Result() *Value            { return i.res }
func (i *loadConst) ReplaceValue(old, new *Value) {}

func TestVerifyPassesWellFormedModule(t *testing.T) {
	te := types.New()
	m := buildReturn42()
	reports := Verify(m, te)
	if len(reports) != 0 {
		t.Fatalf("expected no verification errors, got %v", reports)
	}
}

func TestVerifyCatchesMissingTerminator(t *testing.T) {
	te := types.New()
	fn := NewFunction("broken", nil, types.Unit, false, nil)
	m := NewModule(ast.KindLibrary, "m")
	m.AddFunction(fn)
	reports := Verify(m, te)
	if len(reports) != 1 || reports[0].Code != "IRV001" {
		t.Fatalf("expected one IRV001, got %v", reports)
	}
}

func TestVerifyCatchesBranchArityMismatch(t *testing.T) {
	te := types.New()
	fn := NewFunction("f", nil, types.Unit, false, nil)
	entry := fn.Entry()
	target := fn.NewBlock("join")
	target.AddArg(types.U64)
	entry.Append(&Branch{Target: target})
	target.Append(&Ret{Value: &Value{Type: types.Unit, Kind: ValConst, Const: &Constant{Type: types.Unit, Kind: ConstUnit}}})
	m := NewModule(ast.KindLibrary, "m")
	m.AddFunction(fn)
	reports := Verify(m, te)
	found := false
	for _, r := range reports {
		if r.Code == "IRV006" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected IRV006, got %v", reports)
	}
}

func TestVerifyCatchesReturnTypeMismatch(t *testing.T) {
	te := types.New()
	fn := NewFunction("f", nil, types.Bool, false, nil)
	entry := fn.Entry()
	badVal := &Value{Type: types.U64, Kind: ValConst, Const: &Constant{Type: types.U64, Kind: ConstInt, Int: 1}}
	entry.Append(&Ret{Value: badVal})
	m := NewModule(ast.KindLibrary, "m")
	m.AddFunction(fn)
	reports := Verify(m, te)
	if len(reports) != 1 || reports[0].Code != "IRV005" {
		t.Fatalf("expected one IRV005, got %v", reports)
	}
}

func TestFunctionUniqueLabel(t *testing.T) {
	fn := NewFunction("f", nil, types.Unit, false, nil)
	b1 := fn.NewBlock("join")
	b2 := fn.NewBlock("join")
	if b1.Label == b2.Label {
		t.Fatalf("expected distinct labels, got %q twice", b1.Label)
	}
}

func TestModuleConstantPoolInternsByName(t *testing.T) {
	m := NewModule(ast.KindLibrary, "m")
	c1 := m.AddConstant("MAX", &Constant{Type: types.U64, Kind: ConstInt, Int: 100})
	c2 := m.AddConstant("MAX", &Constant{Type: types.U64, Kind: ConstInt, Int: 200})
	if c1 != c2 {
		t.Fatalf("expected the same NamedConstant for a repeated name")
	}
	if len(m.Constants) != 1 {
		t.Fatalf("expected one pooled constant, got %d", len(m.Constants))
	}
}
