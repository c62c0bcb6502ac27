package regalloc

import "github.com/FuelLabs/sway-core-go/internal/codegen"

// PhysNoReg marks an operand slot that carried codegen.NoReg before
// rewriting — kept distinct from any real codegen.PhysReg value so "no
// operand here" survives physical-register substitution the same way
// codegen.NoReg survived virtual selection.
const PhysNoReg codegen.PhysReg = -1

// physRegForReserved maps the selector's negative pseudo-registers (the
// frame pointer, the stack pointer) onto fixed physical slots just past
// the allocatable range, so Rewrite has a total function from VReg to
// PhysReg without asking the allocator to color registers it never put in
// the interference graph. This package only needs them to round-trip
// through AllocatedOp consistently.
func physRegForReserved(v codegen.VReg) codegen.PhysReg {
	return codegen.PhysReg(codegen.NumAllocatable + int(-v) - 1)
}

func physRegFor(v codegen.VReg, g *Graph, uf *unionFind, color *Coloring) codegen.PhysReg {
	if v == codegen.NoReg {
		return PhysNoReg
	}
	if isReserved(v) {
		return physRegForReserved(v)
	}
	idx := representative(g, uf, v)
	if idx < 0 {
		// A register that was used/defined but never entered the graph
		// (e.g. a function with a single instruction and no liveness
		// edges at all) still needs some color; give it the same
		// treatment coalescing would have, one-node, no neighbors.
		return 0
	}
	return color.Color[uf.Find(idx)]
}

// AllocatedOp mirrors codegen.Op with every virtual-register-typed operand
// field replaced by its assigned codegen.PhysReg, the final form
// internal/pipeline returns per function and cmd/swaycorec renders as
// assembly text.
type AllocatedOp struct {
	Org codegen.OrgKind

	Opcode                 codegen.Opcode
	Dest, Src1, Src2       codegen.PhysReg
	Args                   []codegen.PhysReg
	Imm                    uint64
	DataID                 int

	Label       codegen.Label
	Cond1, Cond2 codegen.PhysReg
	CondZ       codegen.PhysReg

	Comment string
}

// Rewrite substitutes every virtual register in ops with the physical
// register color assigned, after coalescing (uf) and coloring (color)
// have run over g. ops must already have had its MOVEs pruned by Coalesce
// — Rewrite only performs the final substitution (spec §4.5 step 4's
// closing "rewrite — substitute every virtual register occurrence with
// its assigned physical register").
func Rewrite(ops []codegen.RealizedOp, g *Graph, uf *unionFind, color *Coloring) []AllocatedOp {
	phys := func(v codegen.VReg) codegen.PhysReg { return physRegFor(v, g, uf, color) }

	out := make([]AllocatedOp, 0, len(ops))
	for _, rop := range ops {
		op := rop.Op
		a := AllocatedOp{
			Org:     op.Org,
			Opcode:  op.Opcode,
			Dest:    phys(op.Dest),
			Src1:    phys(op.Src1),
			Src2:    phys(op.Src2),
			Imm:     op.Imm,
			DataID:  op.DataID,
			Label:   op.Label,
			Cond1:   phys(op.Cond1),
			Cond2:   phys(op.Cond2),
			CondZ:   phys(op.CondZ),
			Comment: op.Comment,
		}
		if op.Args != nil {
			a.Args = make([]codegen.PhysReg, len(op.Args))
			for i, arg := range op.Args {
				a.Args[i] = phys(arg)
			}
		}
		out = append(out, a)
	}
	return out
}
