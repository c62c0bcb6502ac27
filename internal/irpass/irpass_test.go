package irpass

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

func u64Const(v uint64) *ir.Value {
	return &ir.Value{Kind: ir.ValConst, Type: types.U64, Const: &ir.Constant{Type: types.U64, Kind: ir.ConstInt, Int: v}}
}

func newEngine(t *testing.T) (*types.Engine, *decl.Engine) {
	t.Helper()
	te := types.New()
	de := decl.New()
	te.SetAggregateFieldsFn(de.FieldTypes)
	return te, de
}

func TestArgDemotionRewritesStructParamAndCallSites(t *testing.T) {
	te, de := newEngine(t)
	structID := de.InsertStruct(&decl.StructDecl{
		Name: "Point",
		Fields: []decl.Field{
			{Name: "x", Type: types.U64},
			{Name: "y", Type: types.U64},
		},
	})
	pointTy := te.Struct(structID, "Point")

	callee := ir.NewFunction("sum", []ir.ParamSpec{{Name: "p", Type: pointTy}}, types.U64, false, nil)
	px := callee.Params[0].Value
	ev0 := callee.NewValue(types.U64)
	callee.Entry().Append(&ir.ExtractValue{Res: ev0, Aggregate: px, Indices: []uint64{0}})
	callee.Entry().Append(&ir.Ret{Value: ev0})

	mainFn := ir.NewFunction("main", nil, types.U64, true, nil)
	argStruct := &ir.Value{Kind: ir.ValConst, Type: pointTy, Const: &ir.Constant{
		Type: pointTy, Kind: ir.ConstStruct,
		Elems: []*ir.Constant{{Type: types.U64, Kind: ir.ConstInt, Int: 10}, {Type: types.U64, Kind: ir.ConstInt, Int: 20}},
	}}
	callRes := mainFn.NewValue(types.U64)
	mainFn.Entry().Append(&ir.Call{Res: callRes, Callee: callee, Args: []*ir.Value{argStruct}})
	mainFn.Entry().Append(&ir.Ret{Value: callRes})

	mod := ir.NewModule(ast.KindScript, "test")
	mod.AddFunction(mainFn)
	mod.AddFunction(callee)

	changed := runArgDemotion(te, mod, callee, nil)
	if !changed {
		t.Fatalf("expected arg demotion to fire on a struct-typed parameter")
	}
	if te.Get(callee.Params[0].Value.Type).Kind != types.KindPointer {
		t.Fatalf("expected demoted param type to become a pointer, got %v", te.Get(callee.Params[0].Value.Type).Kind)
	}
	loadInstr, ok := callee.Entry().Instrs[0].(*ir.Load)
	if !ok {
		t.Fatalf("expected entry block to start with a Load, got %T", callee.Entry().Instrs[0])
	}
	if loadInstr.Ptr != callee.Params[0].Value {
		t.Fatalf("expected the entry load to read the new pointer param")
	}

	// demoteCallSites inserts the temp's GetLocal and Store ahead of the call.
	call := mainFn.Entry().Instrs[2].(*ir.Call)
	getLocal, ok := call.Args[0].Instr.(*ir.GetLocal)
	if !ok {
		t.Fatalf("expected call site arg to now come from a GetLocal, got %T", call.Args[0].Instr)
	}
	if getLocal.Local.Type != pointTy {
		t.Fatalf("expected temp local to have the original struct type, got %v", getLocal.Local.Type)
	}

	if reports := ir.Verify(mod, te); len(reports) != 0 {
		t.Fatalf("expected valid IR after demotion, got %v", reports)
	}
}

func TestInlineSplicesNonEntryCallee(t *testing.T) {
	te, _ := newEngine(t)

	helper := ir.NewFunction("helper", []ir.ParamSpec{{Name: "x", Type: types.U64}}, types.U64, false, nil)
	addRes := helper.NewValue(types.U64)
	helper.Entry().Append(&ir.BinOp{Res: addRes, Op: ir.IAdd, Left: helper.Params[0].Value, Right: u64Const(1)})
	helper.Entry().Append(&ir.Ret{Value: addRes})

	mainFn := ir.NewFunction("main", nil, types.U64, true, nil)
	callRes := mainFn.NewValue(types.U64)
	mainFn.Entry().Append(&ir.Call{Res: callRes, Callee: helper, Args: []*ir.Value{u64Const(41)}})
	mainFn.Entry().Append(&ir.Ret{Value: callRes})

	mod := ir.NewModule(ast.KindScript, "test")
	mod.AddFunction(mainFn)
	mod.AddFunction(helper)

	if isABIEntry(mod, helper) {
		t.Fatalf("helper should not be considered an ABI entry")
	}
	if !isABIEntry(mod, mainFn) {
		t.Fatalf("main should be considered an ABI entry for a script module")
	}

	changed := runInline(te, mod, mainFn, nil)
	if !changed {
		t.Fatalf("expected inlining to fire on the call to helper")
	}
	for _, b := range mainFn.Blocks {
		for _, instr := range b.Instrs {
			if call, ok := instr.(*ir.Call); ok && call.Callee == helper {
				t.Fatalf("expected no remaining call to helper after inlining")
			}
		}
	}

	if reports := ir.Verify(mod, te); len(reports) != 0 {
		t.Fatalf("expected valid IR after inlining, got %v", reports)
	}
}

func TestRegistryRunsToFixpointAndInvalidatesCache(t *testing.T) {
	te, _ := newEngine(t)
	helper := ir.NewFunction("helper", []ir.ParamSpec{{Name: "x", Type: types.U64}}, types.U64, false, nil)
	helper.Entry().Append(&ir.Ret{Value: helper.Params[0].Value})

	mainFn := ir.NewFunction("main", nil, types.U64, true, nil)
	callRes := mainFn.NewValue(types.U64)
	mainFn.Entry().Append(&ir.Call{Res: callRes, Callee: helper, Args: []*ir.Value{u64Const(1)}})
	mainFn.Entry().Append(&ir.Ret{Value: callRes})

	mod := ir.NewModule(ast.KindScript, "test")
	mod.AddFunction(mainFn)
	mod.AddFunction(helper)

	Default().Run(te, mod, nil)

	if reports := ir.Verify(mod, te); len(reports) != 0 {
		t.Fatalf("expected valid IR after the default pass pipeline, got %v", reports)
	}
}
