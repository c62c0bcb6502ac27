package codegen

import "github.com/FuelLabs/sway-core-go/internal/ast"

// Label names a jump target within an AbstractInstructionSet. Qualified as
// "function.block" at selection time so two functions' blocks never
// collide once concatenated into one program-wide op list (spec §6.3's
// assembly is one flat sequence, not one per function).
type Label string

// NoReg marks an unused register operand slot.
const NoReg VReg = -1

// Op is either a virtual instruction (Org == OrgNone) or an organizational
// pseudo-op that produces no machine word of its own until label
// realization resolves it (spec §4.5 step 2). Grounded directly on
// abstract_instruction_set.rs's Op{opcode: Either<VirtualOp,
// OrganizationalOp>}; collapsed into one struct with a Kind discriminant
// since Go has no ergonomic Either.
type Op struct {
	Org OrgKind

	// Meaningful when Org == OrgNone.
	Opcode           Opcode
	Dest, Src1, Src2 VReg
	Args             []VReg // OpCall's argument registers, in order
	Imm              uint64
	DataID           int // OpLwDataID

	// Meaningful for organizational ops.
	Label  Label // OrgLabel's own label, or the target of a jump op / OpCall
	Cond1  VReg  // OrgJumpIfNotEq's two compared registers
	Cond2  VReg
	CondZ  VReg // OrgJumpIfNotZero's tested register

	Span    ast.Span
	Comment string
}

// OrgKind tags an Op as a plain virtual instruction or one of the six
// organizational pseudo-ops label realization resolves.
type OrgKind int

const (
	OrgNone OrgKind = iota
	OrgLabel
	OrgJump
	OrgJumpIfNotEq
	OrgJumpIfNotZero
	OrgComment
	OrgDataOffsetPlaceholder
)

func label(l Label) Op                   { return Op{Org: OrgLabel, Label: l, Dest: NoReg, Src1: NoReg, Src2: NoReg} }
func jump(l Label) Op                    { return Op{Org: OrgJump, Label: l, Dest: NoReg, Src1: NoReg, Src2: NoReg} }
func jumpIfNotEq(r1, r2 VReg, l Label) Op { return Op{Org: OrgJumpIfNotEq, Cond1: r1, Cond2: r2, Label: l, Dest: NoReg, Src1: NoReg, Src2: NoReg} }
func jumpIfNotZero(r VReg, l Label) Op    { return Op{Org: OrgJumpIfNotZero, CondZ: r, Label: l, Dest: NoReg, Src1: NoReg, Src2: NoReg} }

// The following constructors build a fully-NoReg-initialized Op for each
// opcode shape, so UseRegisters/DefRegisters/ReplaceReg never mistake a
// zero-value VReg(0) slot for a real operand — VReg(0) is itself a valid
// virtual register id, so every unused slot must be explicitly NoReg rather
// than left at the Go zero value.
func binOp(op Opcode, dest, left, right VReg) Op {
	return Op{Opcode: op, Dest: dest, Src1: left, Src2: right}
}
func unOp(op Opcode, dest, src VReg) Op {
	return Op{Opcode: op, Dest: dest, Src1: src, Src2: NoReg}
}
func movi(dest VReg, imm uint64) Op {
	return Op{Opcode: OpMovi, Dest: dest, Src1: NoReg, Src2: NoReg, Imm: imm}
}
func lwDataID(dest VReg, dataID int) Op {
	return Op{Opcode: OpLwDataID, Dest: dest, Src1: NoReg, Src2: NoReg, DataID: dataID}
}
func cfei(words uint64) Op {
	return Op{Opcode: OpCfei, Dest: NoReg, Src1: NoReg, Src2: NoReg, Imm: words}
}
func cfsi(words uint64) Op {
	return Op{Opcode: OpCfsi, Dest: NoReg, Src1: NoReg, Src2: NoReg, Imm: words}
}
func lw(dest, base VReg, wordOffset uint64) Op {
	return Op{Opcode: OpLw, Dest: dest, Src1: base, Src2: NoReg, Imm: wordOffset}
}
func sw(base, src VReg, wordOffset uint64) Op {
	return Op{Opcode: OpSw, Dest: NoReg, Src1: base, Src2: src, Imm: wordOffset}
}
func mcpi(destAddr, srcAddr VReg, byteLen uint64) Op {
	return Op{Opcode: OpMcpi, Dest: NoReg, Src1: destAddr, Src2: srcAddr, Imm: byteLen}
}
func call(dest VReg, callee Label, args []VReg) Op {
	return Op{Opcode: OpCall, Dest: dest, Src1: NoReg, Src2: NoReg, Label: callee, Args: args}
}
func ret(src VReg) Op {
	return Op{Opcode: OpRet, Dest: NoReg, Src1: src, Src2: NoReg}
}
func retd(ptr, length VReg) Op {
	return Op{Opcode: OpRetd, Dest: NoReg, Src1: ptr, Src2: length}
}
func srw(dest VReg, fieldID uint64) Op {
	return Op{Opcode: OpSrw, Dest: dest, Src1: NoReg, Src2: NoReg, Imm: fieldID}
}
func srwq(dest VReg, fieldID uint64) Op {
	return Op{Opcode: OpSrwq, Dest: dest, Src1: NoReg, Src2: NoReg, Imm: fieldID}
}
func sww(fieldID uint64, src VReg) Op {
	return Op{Opcode: OpSww, Dest: NoReg, Src1: src, Src2: NoReg, Imm: fieldID}
}
func swwq(fieldID uint64, src VReg) Op {
	return Op{Opcode: OpSwwq, Dest: NoReg, Src1: src, Src2: NoReg, Imm: fieldID}
}
func move(dest, src VReg) Op {
	return Op{Opcode: OpMove, Dest: dest, Src1: src, Src2: NoReg}
}

// DefRegisters returns the registers op writes to, used by liveness
// analysis and the constant-indexed-aggregate fold's "forget what we knew"
// rule for unrecognized opcodes (const_indexed_aggregates.rs's
// `op.def_registers()`).
func (op Op) DefRegisters() []VReg {
	if op.Org != OrgNone {
		return nil
	}
	switch op.Opcode {
	case OpSw, OpSww, OpSwwq, OpRet, OpRetd, OpMcpi:
		return nil
	case OpCall:
		if op.Dest == NoReg {
			return nil
		}
		return []VReg{op.Dest}
	default:
		if op.Dest == NoReg {
			return nil
		}
		return []VReg{op.Dest}
	}
}

// UseRegisters returns the registers op reads from.
func (op Op) UseRegisters() []VReg {
	var uses []VReg
	add := func(r VReg) {
		if r != NoReg {
			uses = append(uses, r)
		}
	}
	switch op.Org {
	case OrgJumpIfNotEq:
		add(op.Cond1)
		add(op.Cond2)
		return uses
	case OrgJumpIfNotZero:
		add(op.CondZ)
		return uses
	case OrgNone:
		switch op.Opcode {
		case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpAnd, OpOr, OpXor, OpShl, OpShr, OpEq, OpLt, OpGt:
			add(op.Src1)
			add(op.Src2)
		case OpNot, OpMove:
			add(op.Src1)
		case OpLw, OpSrw, OpSrwq:
			add(op.Src1)
		case OpSw:
			add(op.Src1)
			add(op.Src2)
		case OpSww, OpSwwq:
			add(op.Src1)
		case OpMcpi:
			add(op.Src1) // destination address
			add(op.Src2) // source address
		case OpRet, OpRetd:
			add(op.Src1)
			add(op.Src2)
		case OpCall:
			uses = append(uses, op.Args...)
		}
	}
	return uses
}

// ReplaceReg rewrites every occurrence of old with new across op's operand
// fields, used by internal/regalloc's coalescing step.
func (op *Op) ReplaceReg(old, new VReg) {
	repl := func(r *VReg) {
		if *r == old {
			*r = new
		}
	}
	repl(&op.Dest)
	repl(&op.Src1)
	repl(&op.Src2)
	repl(&op.Cond1)
	repl(&op.Cond2)
	repl(&op.CondZ)
	for i := range op.Args {
		if op.Args[i] == old {
			op.Args[i] = new
		}
	}
}
