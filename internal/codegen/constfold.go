package codegen

// regContents is a per-block "poor man's SSA" fact about what a virtual
// register currently holds: either a known constant, or a known offset
// from another register's value as of some version of that register.
// Grounded directly on
// original_source/sway-core/src/asm_generation/fuel/optimizations/const_indexed_aggregates.rs's
// RegContents enum.
type regContents struct {
	isConst bool
	constV  uint64

	isBase  bool
	baseReg VReg
	baseVer int
	baseOff uint64
}

// FoldConstantIndexedAggregates runs a single forward pass over ops
// tracking register contents well enough to turn an LW/SW whose base
// register is known to be (someRegAtVersion + constOffset) into a single
// instruction with the combined offset folded into its 12-bit immediate.
// Only the LW/SW itself is rewritten: the ADD/MOVE/MOVI ops that built the
// address stay in the output, even when the fold leaves their result
// unread. Grounded
// on const_indexed_aggregates.rs's fold_const_indexed_aggregates, which
// this package runs on fully-selected abstract ops rather than on the IR
// (internal/irpass never sees a concrete immediate-width constraint, since
// that constraint only exists once addresses are expressed in terms of the
// target's LW/SW instruction encoding).
func FoldConstantIndexedAggregates(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	contents := make(map[VReg]regContents)
	version := make(map[VReg]int)

	verOf := func(r VReg) int { return version[r] }
	forget := func(r VReg) {
		delete(contents, r)
		version[r]++
	}

	for _, op := range ops {
		if op.Org != OrgNone {
			// Any block boundary invalidates every tracked fact: a jump
			// target may be reached from a different predecessor whose
			// register contents disagree with what this pass has inferred
			// along the fallthrough path.
			contents = make(map[VReg]regContents)
			out = append(out, op)
			continue
		}

		switch op.Opcode {
		case OpMovi:
			contents[op.Dest] = regContents{isConst: true, constV: op.Imm}
			out = append(out, op)

		case OpAdd:
			out = append(out, processAdd(op, contents, verOf))

		case OpMove:
			// A bare copy: dest now aliases src's current value at offset
			// zero. A self-move (dest == src, e.g. a coalesced no-op) is
			// dropped outright.
			if op.Dest == op.Src1 {
				continue
			}
			contents[op.Dest] = regContents{isBase: true, baseReg: op.Src1, baseVer: verOf(op.Src1), baseOff: 0}
			out = append(out, op)

		case OpLwDataID:
			forget(op.Dest)
			out = append(out, op)

		case OpLw:
			if folded, ok := foldLoadStoreOffset(op.Src1, op.Imm, contents, verOf); ok {
				op.Src1 = folded.reg
				op.Imm = folded.offset
			}
			forget(op.Dest)
			out = append(out, op)

		case OpSw:
			if folded, ok := foldLoadStoreOffset(op.Src1, op.Imm, contents, verOf); ok {
				op.Src1 = folded.reg
				op.Imm = folded.offset
			}
			out = append(out, op)

		default:
			for _, d := range op.DefRegisters() {
				forget(d)
			}
			out = append(out, op)
		}
	}
	return out
}

// processAdd folds ADD dest, a, b when both operands are known constants
// (constant-fold) or when one side is a known BaseOffset and the other a
// known constant (fold into a new BaseOffset), mirroring
// const_indexed_aggregates.rs's process_add. When neither shape applies,
// dest's prior contents are simply forgotten by the caller.
func processAdd(op Op, contents map[VReg]regContents, verOf func(VReg) int) Op {
	left, leftOK := contents[op.Src1]
	right, rightOK := contents[op.Src2]

	switch {
	case leftOK && left.isConst && rightOK && right.isConst:
		contents[op.Dest] = regContents{isConst: true, constV: left.constV + right.constV}
		return movi(op.Dest, left.constV+right.constV)
	case leftOK && left.isBase && rightOK && right.isConst:
		contents[op.Dest] = regContents{isBase: true, baseReg: left.baseReg, baseVer: left.baseVer, baseOff: left.baseOff + right.constV}
		return op
	case rightOK && right.isBase && leftOK && left.isConst:
		contents[op.Dest] = regContents{isBase: true, baseReg: right.baseReg, baseVer: right.baseVer, baseOff: right.baseOff + left.constV}
		return op
	default:
		delete(contents, op.Dest)
		return op
	}
}

type foldedAddr struct {
	reg    VReg
	offset uint64
}

// foldLoadStoreOffset combines an LW/SW's base register and immediate
// offset with a tracked BaseOffset fact. Every ADD chain this package's
// selector builds for addressing (GetLocal/GetPtr/ExtractValue/InsertValue)
// accumulates a byte offset via MOVI, while LW/SW's own Imm field is
// word-granular (word = base + imm*8) — so a fold is only valid when the
// tracked byte offset lands on a word boundary, and only profitable when
// the resulting combined word count still fits the 12-bit immediate field.
// Mirrors const_indexed_aggregates.rs's own guard,
// `offset % 8 == 0 && (offset / 8) + imm < 4096`.
func foldLoadStoreOffset(base VReg, imm uint64, contents map[VReg]regContents, verOf func(VReg) int) (foldedAddr, bool) {
	rc, ok := contents[base]
	if !ok || !rc.isBase || rc.baseVer != verOf(rc.baseReg) {
		return foldedAddr{}, false
	}
	if rc.baseOff%wordBytes != 0 {
		return foldedAddr{}, false
	}
	combined := imm + rc.baseOff/wordBytes
	if combined >= 1<<12 {
		return foldedAddr{}, false
	}
	return foldedAddr{reg: rc.baseReg, offset: combined}, true
}
