package regalloc

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/codegen"
)

func realize(ops ...codegen.Op) []codegen.RealizedOp {
	out := make([]codegen.RealizedOp, len(ops))
	for i, op := range ops {
		out[i] = codegen.RealizedOp{Op: op, Offset: i}
	}
	return out
}

// op builders mirroring codegen's own unexported constructors, since this
// package only consumes codegen.Op values from outside the package.
func movi(dest codegen.VReg, imm uint64) codegen.Op {
	return codegen.Op{Opcode: codegen.OpMovi, Dest: dest, Src1: codegen.NoReg, Src2: codegen.NoReg, Imm: imm}
}
func add(dest, a, b codegen.VReg) codegen.Op {
	return codegen.Op{Opcode: codegen.OpAdd, Dest: dest, Src1: a, Src2: b}
}
func move(dest, src codegen.VReg) codegen.Op {
	return codegen.Op{Opcode: codegen.OpMove, Dest: dest, Src1: src, Src2: codegen.NoReg}
}
func ret(src codegen.VReg) codegen.Op {
	return codegen.Op{Opcode: codegen.OpRet, Dest: codegen.NoReg, Src1: src, Src2: codegen.NoReg}
}

func TestLivenessStraightLineChain(t *testing.T) {
	// a = movi 1; b = movi 2; c = add a b; ret c
	a, b, c := codegen.VReg(0), codegen.VReg(1), codegen.VReg(2)
	ops := realize(movi(a, 1), movi(b, 2), add(c, a, b), ret(c))
	live := AnalyzeLiveness(ops)

	if _, ok := live.LiveOut[0][a]; !ok {
		t.Fatalf("a should be live across its own definition to the ADD that uses it, liveOut[0]=%v", live.LiveOut[0])
	}
	if _, ok := live.LiveOut[2][c]; !ok {
		t.Fatalf("c should be live out of the ADD into the RET, liveOut[2]=%v", live.LiveOut[2])
	}
	if _, ok := live.LiveOut[3][c]; ok {
		t.Fatalf("c should not be live past the function's only RET, liveOut[3]=%v", live.LiveOut[3])
	}
}

func TestLivenessBranchMerge(t *testing.T) {
	a := codegen.VReg(0)
	b := codegen.VReg(1)
	cond := codegen.VReg(2)
	ops := []codegen.Op{
		movi(a, 1),              // 0
		movi(cond, 0),           // 1
		{Org: codegen.OrgJumpIfNotZero, CondZ: cond, Label: "else", Imm: 5, Dest: codegen.NoReg, Src1: codegen.NoReg, Src2: codegen.NoReg}, // 2
		movi(b, 10),             // 3 (then-branch)
		{Org: codegen.OrgJump, Label: "join", Imm: 7, Dest: codegen.NoReg, Src1: codegen.NoReg, Src2: codegen.NoReg},                // 4
		{Org: codegen.OrgLabel, Label: "else", Dest: codegen.NoReg, Src1: codegen.NoReg, Src2: codegen.NoReg},                       // 5
		movi(b, 20),             // 6 (else-branch)
		{Org: codegen.OrgLabel, Label: "join", Dest: codegen.NoReg, Src1: codegen.NoReg, Src2: codegen.NoReg},                       // 7
		ret(b),                  // 8
	}
	realized := make([]codegen.RealizedOp, len(ops))
	for i, op := range ops {
		realized[i] = codegen.RealizedOp{Op: op, Offset: i}
	}
	live := AnalyzeLiveness(realized)

	if _, ok := live.LiveOut[3][b]; !ok {
		t.Fatalf("then-branch's b should reach the join via the unconditional jump, liveOut[3]=%v", live.LiveOut[3])
	}
	if _, ok := live.LiveOut[6][b]; !ok {
		t.Fatalf("else-branch's b should reach the join via fallthrough, liveOut[6]=%v", live.LiveOut[6])
	}
}

func TestInterferenceGraphNoEdgeBetweenNonOverlappingLifetimes(t *testing.T) {
	// a's lifetime ends before b's begins: a = movi 1; use a in ret-less op;
	// then b = movi 2; ret b. They should not interfere.
	a, b, tmp := codegen.VReg(0), codegen.VReg(1), codegen.VReg(2)
	ops := realize(
		movi(a, 1),
		move(tmp, a), // last use of a
		movi(b, 2),
		ret(b),
	)
	live := AnalyzeLiveness(ops)
	g := NewGraph(ops, live)
	if g.Interferes(a, b) {
		t.Fatalf("a and b have disjoint lifetimes and should not interfere")
	}
}

func TestInterferenceGraphEdgeBetweenOverlappingLifetimes(t *testing.T) {
	a, b, c := codegen.VReg(0), codegen.VReg(1), codegen.VReg(2)
	ops := realize(
		movi(a, 1),
		movi(b, 2), // a still live here
		add(c, a, b),
		ret(c),
	)
	live := AnalyzeLiveness(ops)
	g := NewGraph(ops, live)
	if !g.Interferes(a, b) {
		t.Fatalf("a and b are simultaneously live across the second MOVI and should interfere")
	}
}

func TestCoalesceRemovesNonInterferingMove(t *testing.T) {
	a, b := codegen.VReg(0), codegen.VReg(1)
	ops := realize(
		movi(a, 1),
		move(b, a), // a's last use; b and a do not interfere
		ret(b),
	)
	live := AnalyzeLiveness(ops)
	g := NewGraph(ops, live)
	_, pruned := Coalesce(g, ops)

	for _, op := range pruned {
		if op.Org == codegen.OrgNone && op.Opcode == codegen.OpMove {
			t.Fatalf("the non-interfering MOVE should have been coalesced away, got %+v", op)
		}
	}
}

func TestAllocateFunctionAssignsDisjointColorsToInterferingRegisters(t *testing.T) {
	a, b, c := codegen.VReg(0), codegen.VReg(1), codegen.VReg(2)
	ops := codegen.RealizedInstructionSet{Ops: realize(
		movi(a, 1),
		movi(b, 2),
		add(c, a, b),
		ret(c),
	)}
	allocated, err := AllocateFunction("three_regs", ops)
	if err != nil {
		t.Fatalf("unexpected allocation failure: %v", err)
	}

	// Recover each instruction's destination physical register in order:
	// MOVI a, MOVI b, ADD c, RET. a and b interfere (both live into the
	// ADD) so they must land in different physical registers.
	if len(allocated) != 4 {
		t.Fatalf("expected 4 ops, got %d", len(allocated))
	}
	physA := allocated[0].Dest
	physB := allocated[1].Dest
	if physA == physB {
		t.Fatalf("interfering registers a and b were assigned the same physical register %v", physA)
	}
}

func TestAllocateFunctionPassesThroughReservedPseudoRegisters(t *testing.T) {
	dest := codegen.VReg(0)
	ops := codegen.RealizedInstructionSet{Ops: realize(
		codegen.Op{Opcode: codegen.OpMove, Dest: dest, Src1: codegen.VReg(-2), Src2: codegen.NoReg}, // move dest, fp
		ret(dest),
	)}
	allocated, err := AllocateFunction("uses_fp", ops)
	if err != nil {
		t.Fatalf("unexpected allocation failure: %v", err)
	}
	if allocated[0].Src1 != physRegForReserved(codegen.VReg(-2)) {
		t.Fatalf("frame pointer operand should pass through to its reserved physical slot, got %v", allocated[0].Src1)
	}
}

func TestAllocateFunctionSpillsWhenDemandExceedsRegisters(t *testing.T) {
	// Build a clique of NumAllocatable+1 simultaneously-live registers: each
	// is defined, and all are used together in one instruction that outlives
	// every individual definition, so none can be removed as "dead" before
	// the final use and every pair interferes.
	k := codegen.NumAllocatable
	var ops []codegen.Op
	regs := make([]codegen.VReg, k+1)
	for i := range regs {
		regs[i] = codegen.VReg(i)
		ops = append(ops, movi(regs[i], uint64(i)))
	}
	// Fold them pairwise with ADD so every register is used by something
	// that also uses a later-defined (still-live) register, keeping the
	// whole set simultaneously live up to the last fold.
	acc := regs[0]
	nextID := k + 1
	for i := 1; i < len(regs); i++ {
		next := codegen.VReg(nextID)
		nextID++
		ops = append(ops, add(next, acc, regs[i]))
		acc = next
	}
	ops = append(ops, ret(acc))

	realized := realize(ops...)
	_, err := AllocateFunction("too_many_live", codegen.RealizedInstructionSet{Ops: realized})
	if err == nil {
		t.Fatalf("expected a SpillError when live-range demand exceeds NumAllocatable, got success")
	}
	if _, ok := err.(*SpillError); !ok {
		t.Fatalf("expected a *SpillError, got %T: %v", err, err)
	}
}
