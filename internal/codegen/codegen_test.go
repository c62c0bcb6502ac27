package codegen

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// structFields maps a test DeclID straight to its field layout, standing in
// for the real internal/decl lookups selection ordinarily goes through.
type structFields struct {
	names map[types.DeclID][]string
	types map[types.DeclID][]types.TypeId
}

func newStructFields() *structFields {
	return &structFields{names: map[types.DeclID][]string{}, types: map[types.DeclID][]types.TypeId{}}
}

func (s *structFields) define(id types.DeclID, names []string, tys []types.TypeId) {
	s.names[id] = names
	s.types[id] = tys
}

func TestLayoutStructFieldOffsets(t *testing.T) {
	te := types.New()
	fields := newStructFields()
	const pointDecl types.DeclID = 1
	fields.define(pointDecl, []string{"x", "y"}, []types.TypeId{types.U64, types.U64})
	pointTy := te.Struct(pointDecl, "Point")

	layout := NewLayout(te, func(id types.DeclID) []string { return fields.names[id] })
	layout.SetFieldTypesFn(func(id types.DeclID) []types.TypeId { return fields.types[id] })

	if got := layout.SizeInWords(pointTy); got != 2 {
		t.Fatalf("Point size = %d words, want 2", got)
	}
	if off, ok := layout.FieldOffset(pointTy, "y"); !ok || off != 1 {
		t.Fatalf("offset of y = (%d,%v), want (1,true)", off, ok)
	}
	if off := layout.FieldOffsetByIndex(pointTy, 0); off != 0 {
		t.Fatalf("offset of field 0 = %d, want 0", off)
	}
}

func TestLayoutEnumIsTagPlusWidestVariant(t *testing.T) {
	te := types.New()
	fields := newStructFields()
	const resultDecl types.DeclID = 2
	// Ok(u64) | Err(str:4) — Err's 4-byte payload rounds up to one word,
	// the same width as Ok's.
	errTy := te.Str(4)
	fields.define(resultDecl, []string{"Ok", "Err"}, []types.TypeId{types.U64, errTy})
	resultTy := te.Enum(resultDecl, "Result")

	layout := NewLayout(te, func(id types.DeclID) []string { return fields.names[id] })
	layout.SetFieldTypesFn(func(id types.DeclID) []types.TypeId { return fields.types[id] })

	// tag word (1) + widest variant (str:4 -> ceil(4/8) = 1 word) = 2.
	if got := layout.SizeInWords(resultTy); got != 2 {
		t.Fatalf("Result size = %d words, want 2", got)
	}
}

func TestLayoutArrayAndTuple(t *testing.T) {
	te := types.New()
	layout := NewLayout(te, nil)

	arrTy := te.Array(types.U64, 4)
	if got := layout.SizeInWords(arrTy); got != 4 {
		t.Fatalf("[u64;4] size = %d, want 4", got)
	}

	tupTy := te.Tuple(types.U64, types.Bool, types.B256)
	if got := layout.SizeInWords(tupTy); got != 1+1+4 {
		t.Fatalf("(u64,bool,b256) size = %d, want 6", got)
	}
	if off := layout.FieldOffsetByIndex(tupTy, 2); off != 2 {
		t.Fatalf("offset of tuple field 2 = %d, want 2", off)
	}
}

func TestSelectFunctionEmitsEntryLabelAndRet(t *testing.T) {
	te := types.New()
	layout := NewLayout(te, nil)
	sel := NewSelector(te, layout, func(types.TypeId, string) int { return 0 })

	fn := ir.NewFunction("double", []ir.ParamSpec{{Name: "x", Type: types.U64}}, types.U64, true, nil)
	x, _ := fn.GetParam("x")
	entry := fn.Entry()
	res := fn.NewValue(types.U64)
	entry.Append(&ir.BinOp{Res: res, Op: ir.IAdd, Left: x, Right: x})
	entry.Append(&ir.Ret{Value: res})

	ops := sel.SelectFunction(fn)
	if len(ops) == 0 {
		t.Fatal("SelectFunction produced no ops")
	}
	if ops[0].Org != OrgLabel || ops[0].Label != "double.entry" {
		t.Fatalf("first op = %+v, want entry label", ops[0])
	}
	last := ops[len(ops)-1]
	if last.Org != OrgNone || last.Opcode != OpRet {
		t.Fatalf("last op = %+v, want RET", last)
	}

	var sawAdd bool
	for _, op := range ops {
		if op.Org == OrgNone && op.Opcode == OpAdd {
			sawAdd = true
			if op.Src1 == NoReg || op.Src2 == NoReg || op.Dest == NoReg {
				t.Fatalf("ADD has an unset operand: %+v", op)
			}
		}
	}
	if !sawAdd {
		t.Fatal("expected an ADD op lowering the BinOp")
	}
}

func TestSelectNeLowersToEqThenNot(t *testing.T) {
	te := types.New()
	layout := NewLayout(te, nil)
	sel := NewSelector(te, layout, func(types.TypeId, string) int { return 0 })

	fn := ir.NewFunction("ne", []ir.ParamSpec{{Name: "a", Type: types.U64}, {Name: "b", Type: types.U64}}, types.Bool, true, nil)
	a, _ := fn.GetParam("a")
	b, _ := fn.GetParam("b")
	entry := fn.Entry()
	res := fn.NewValue(types.Bool)
	entry.Append(&ir.BinOp{Res: res, Op: ir.INe, Left: a, Right: b})
	entry.Append(&ir.Ret{Value: res})

	ops := sel.SelectFunction(fn)
	var sawEq, sawNot bool
	for _, op := range ops {
		if op.Org != OrgNone {
			continue
		}
		if op.Opcode == OpEq {
			sawEq = true
		}
		if op.Opcode == OpNot {
			sawNot = true
		}
	}
	if !sawEq || !sawNot {
		t.Fatalf("INe should lower to EQ+NOT, got ops=%v", ops)
	}
}

func TestRemoveSequentialJumpsDropsFallthroughJumpAndDeadLabel(t *testing.T) {
	set := &AbstractInstructionSet{Ops: []Op{
		jump("next"),
		label("next"),
		label("unused"),
		ret(VReg(0)),
	}}
	set.RemoveSequentialJumps()

	for _, op := range set.Ops {
		if op.Org == OrgJump {
			t.Fatalf("fallthrough jump should have been removed, got %+v", set.Ops)
		}
		if op.Org == OrgLabel && op.Label == "unused" {
			t.Fatalf("unreferenced label should have been removed, got %+v", set.Ops)
		}
	}
}

func TestRealizeLabelsComputesJumpTargetOffset(t *testing.T) {
	data := NewDataSection()
	set := &AbstractInstructionSet{Ops: []Op{
		movi(VReg(0), 1),             // cost 1, offset 0
		jump("target"),               // cost 1, offset 1
		label("target"),              // cost 0, offset 2
		ret(VReg(0)),                 // cost 1, offset 2
	}}
	realized := set.RealizeLabels(data)

	var jumpOp RealizedOp
	for _, op := range realized.Ops {
		if op.Org == OrgJump {
			jumpOp = op
		}
	}
	if jumpOp.Imm != 2 {
		t.Fatalf("jump target offset = %d, want 2", jumpOp.Imm)
	}
}

func TestRealizeLabelsChargesTwoWordsForMemoryConstant(t *testing.T) {
	data := NewDataSection()
	id := data.Insert(encodeU64(0), false) // memory-type (copyType=false)
	set := &AbstractInstructionSet{Ops: []Op{
		lwDataID(VReg(0), id),
		ret(VReg(0)),
	}}
	realized := set.RealizeLabels(data)
	if realized.Ops[1].Offset != 2 {
		t.Fatalf("second op offset = %d, want 2 (memory-type LWDataId costs 2)", realized.Ops[1].Offset)
	}
}

func TestFoldConstantIndexedAggregatesFoldsAddIntoLoadImmediate(t *testing.T) {
	fp := framePointerReg
	local := VReg(0)
	off := VReg(1)
	addr := VReg(2)
	dest := VReg(3)

	// Mirrors addrOfLocal's shape: a MOVE captures the frame pointer as a
	// trackable base, then ADD with a constant byte offset derives the
	// field address — exactly the pattern selection produces for GetLocal.
	ops := []Op{
		move(local, fp),
		movi(off, 16), // byte offset 16 -> word offset 2
		binOp(OpAdd, addr, local, off),
		lw(dest, addr, 0),
	}
	folded := FoldConstantIndexedAggregates(ops)

	var lastLw *Op
	for i := range folded {
		if folded[i].Opcode == OpLw {
			lastLw = &folded[i]
		}
	}
	if lastLw == nil {
		t.Fatal("expected a surviving LW op")
	}
	if lastLw.Src1 != fp {
		t.Fatalf("folded LW base = %v, want %v", lastLw.Src1, fp)
	}
	if lastLw.Imm != 2 {
		t.Fatalf("folded LW immediate = %d, want 2 (16 bytes / 8)", lastLw.Imm)
	}
}

func TestFoldConstantIndexedAggregatesClearsStateAcrossLabels(t *testing.T) {
	fp := framePointerReg
	local := VReg(0)
	off := VReg(1)
	addr := VReg(2)
	dest := VReg(3)

	ops := []Op{
		move(local, fp),
		movi(off, 8),
		binOp(OpAdd, addr, local, off),
		label("joined"), // a different predecessor may reach here with addr meaning something else
		lw(dest, addr, 0),
	}
	folded := FoldConstantIndexedAggregates(ops)

	for _, op := range folded {
		if op.Opcode == OpLw && op.Src1 != addr {
			t.Fatalf("LW base should remain addr across a label boundary, got %+v", op)
		}
	}
}

func TestSelectGetLocalZeroOffsetUsesPlainMove(t *testing.T) {
	te := types.New()
	layout := NewLayout(te, nil)
	sel := NewSelector(te, layout, func(types.TypeId, string) int { return 0 })

	fn := ir.NewFunction("first_local", nil, types.U64, true, nil)
	local, err := fn.NewLocal("x", types.U64, nil)
	if err != nil {
		t.Fatal(err)
	}
	entry := fn.Entry()
	ptr := fn.NewValue(te.Pointer(types.U64))
	entry.Append(&ir.GetLocal{Res: ptr, Local: local})
	val := fn.NewValue(types.U64)
	entry.Append(&ir.Load{Res: val, Ptr: ptr})
	entry.Append(&ir.Ret{Value: val})

	ops := sel.SelectFunction(fn)
	var sawMoveFromFP bool
	for _, op := range ops {
		if op.Org == OrgNone && op.Opcode == OpMove && op.Src1 == framePointerReg {
			sawMoveFromFP = true
		}
	}
	if !sawMoveFromFP {
		t.Fatalf("first local at offset 0 should address via a plain MOVE from the frame pointer, got %v", ops)
	}
}

