package abi

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

func TestBuildSkipsNonEntryFunctions(t *testing.T) {
	te := types.New()
	de := decl.New()
	mod := ir.NewModule(ast.KindContract, "counter")

	// An internal helper never given a selector (not a public contract
	// entry, or generic) must not appear in the ABI.
	internal := ir.NewFunction("helper", nil, types.U64, false, nil)
	mod.AddFunction(internal)

	sel := [4]byte{0xAA, 0xBB, 0xCC, 0xDD}
	entry := ir.NewFunction("get", []ir.ParamSpec{{Name: "key", Type: types.U64}}, types.U64, true, &sel)
	mod.AddFunction(entry)

	prog := NewBuilder(te, de).Build(mod)
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 ABI entry, got %d: %+v", len(prog.Functions), prog.Functions)
	}
	if prog.Functions[0].Name != "get" {
		t.Fatalf("expected entry named get, got %s", prog.Functions[0].Name)
	}
	if prog.Functions[0].Selector != sel {
		t.Fatalf("selector = %v, want %v", prog.Functions[0].Selector, sel)
	}
	if len(prog.Functions[0].Inputs) != 1 || prog.Functions[0].Inputs[0].Name != "key" {
		t.Fatalf("expected one input named key, got %+v", prog.Functions[0].Inputs)
	}
}

func TestDescribeStructRecursesIntoFieldComponents(t *testing.T) {
	te := types.New()
	de := decl.New()

	pointID := de.InsertStruct(&decl.StructDecl{Name: "Point", Fields: []decl.Field{
		{Name: "x", Type: types.U64},
		{Name: "y", Type: types.U64},
	}})
	pointTy := te.Struct(pointID, "Point")

	d := NewBuilder(te, de).Describe(pointTy)
	if d.Name != "Point" {
		t.Fatalf("descriptor name = %s, want Point", d.Name)
	}
	if len(d.Components) != 2 {
		t.Fatalf("expected 2 field components, got %d: %+v", len(d.Components), d.Components)
	}
	if d.Components[0].Name != "x" || d.Components[1].Name != "y" {
		t.Fatalf("expected components named x,y in field order, got %+v", d.Components)
	}
	if d.Components[0].Components[0].Name != "u64" {
		t.Fatalf("x's nested type descriptor should name u64, got %+v", d.Components[0].Components)
	}
}

func TestDescribeEnumRecursesIntoVariantComponents(t *testing.T) {
	te := types.New()
	de := decl.New()

	resultID := de.InsertEnum(&decl.EnumDecl{Name: "Result", Variants: []decl.Variant{
		{Name: "Ok", Type: types.U64},
		{Name: "Err", Type: types.Bool},
	}})
	resultTy := te.Enum(resultID, "Result")

	d := NewBuilder(te, de).Describe(resultTy)
	if len(d.Components) != 2 || d.Components[0].Name != "Ok" || d.Components[1].Name != "Err" {
		t.Fatalf("expected variant components Ok,Err, got %+v", d.Components)
	}
}

func TestDescribeArrayWrapsElementComponent(t *testing.T) {
	te := types.New()
	de := decl.New()
	arrTy := te.Array(types.U64, 3)

	d := NewBuilder(te, de).Describe(arrTy)
	if len(d.Components) != 1 || d.Components[0].Name != "u64" {
		t.Fatalf("array descriptor should wrap one u64 element component, got %+v", d.Components)
	}
}

func TestDescribePrimitiveHasNoComponents(t *testing.T) {
	te := types.New()
	de := decl.New()
	d := NewBuilder(te, de).Describe(types.U64)
	if len(d.Components) != 0 {
		t.Fatalf("primitive descriptor should have no components, got %+v", d.Components)
	}
}
