// Package regalloc assigns physical registers to the virtual registers a
// codegen.RealizedInstructionSet still addresses, via Chaitin's
// graph-coloring algorithm (spec §4.5 step 4): liveness analysis,
// interference-graph construction with MOVE coalesce candidates,
// coalescing, simplification with heuristic spilling, assignment, and a
// final rewrite pass. No example repo in the retrieval pack implements a
// register allocator (the teacher is a tree-walking interpreter; nothing
// else in the pack targets a register machine), so this package is built
// directly from spec.md's algorithmic description rather than ported from
// a source file, following spec §9's own design note for cyclic graphs
// ("store nodes in an arena; edges are index pairs").
package regalloc

import "github.com/FuelLabs/sway-core-go/internal/codegen"

// Liveness holds, for every instruction index in the op list it was
// computed over, the set of virtual registers live immediately before
// (LiveIn) and immediately after (LiveOut) that instruction.
type Liveness struct {
	LiveIn  []map[codegen.VReg]struct{}
	LiveOut []map[codegen.VReg]struct{}
}

// successors returns, for each op index, the indices control may transfer
// to next: the following instruction for a fallthrough, the jump target
// for an unconditional jump, both for a conditional jump, and none for a
// function return.
func successors(ops []codegen.RealizedOp) [][]int {
	offsetIndex := make(map[int]int, len(ops))
	for idx, op := range ops {
		if _, ok := offsetIndex[op.Offset]; !ok {
			offsetIndex[op.Offset] = idx
		}
	}

	succ := make([][]int, len(ops))
	for idx, op := range ops {
		switch op.Org {
		case codegen.OrgJump:
			succ[idx] = []int{offsetIndex[int(op.Imm)]}
		case codegen.OrgJumpIfNotEq, codegen.OrgJumpIfNotZero:
			var s []int
			if idx+1 < len(ops) {
				s = append(s, idx+1)
			}
			s = append(s, offsetIndex[int(op.Imm)])
			succ[idx] = s
		default:
			if op.Org == codegen.OrgNone && (op.Opcode == codegen.OpRet || op.Opcode == codegen.OpRetd) {
				continue
			}
			if idx+1 < len(ops) {
				succ[idx] = []int{idx + 1}
			}
		}
	}
	return succ
}

// AnalyzeLiveness runs the standard backward dataflow fixed point
// (spec §4.5 step 4's "liveness analysis (backward dataflow)"):
// live-out[n] = union of live-in[s] over n's successors s;
// live-in[n]  = uses[n] ∪ (live-out[n] \ defs[n]).
func AnalyzeLiveness(ops []codegen.RealizedOp) *Liveness {
	n := len(ops)
	succ := successors(ops)
	liveIn := make([]map[codegen.VReg]struct{}, n)
	liveOut := make([]map[codegen.VReg]struct{}, n)
	for i := 0; i < n; i++ {
		liveIn[i] = map[codegen.VReg]struct{}{}
		liveOut[i] = map[codegen.VReg]struct{}{}
	}

	changed := true
	for changed {
		changed = false
		for i := n - 1; i >= 0; i-- {
			newOut := map[codegen.VReg]struct{}{}
			for _, s := range succ[i] {
				for r := range liveIn[s] {
					newOut[r] = struct{}{}
				}
			}

			defs := make(map[codegen.VReg]struct{}, 2)
			for _, d := range ops[i].DefRegisters() {
				defs[d] = struct{}{}
			}

			newIn := map[codegen.VReg]struct{}{}
			for _, u := range ops[i].UseRegisters() {
				newIn[u] = struct{}{}
			}
			for r := range newOut {
				if _, isDef := defs[r]; !isDef {
					newIn[r] = struct{}{}
				}
			}

			if !setEqual(newIn, liveIn[i]) || !setEqual(newOut, liveOut[i]) {
				liveIn[i] = newIn
				liveOut[i] = newOut
				changed = true
			}
		}
	}
	return &Liveness{LiveIn: liveIn, LiveOut: liveOut}
}

func setEqual(a, b map[codegen.VReg]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if _, ok := b[r]; !ok {
			return false
		}
	}
	return true
}
