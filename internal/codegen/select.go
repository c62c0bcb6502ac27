package codegen

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// Selector walks verified, passed IR in block order and emits one abstract
// op (or a short fixed sequence of them) per instruction, parameterized by
// freshly minted virtual registers (spec §4.5 step 1). One Selector is
// built per compilation unit and shared across every function in the
// module so labels and data-section ids stay unique program-wide.
type Selector struct {
	te     *types.Engine
	layout *Layout
	seq    RegSequencer
	data   *DataSection

	enumVariantIndex func(t types.TypeId, variant string) int

	vregOf map[*ir.Value]VReg
	fnName string
}

// NewSelector builds a Selector. enumVariantIndex resolves a named enum
// variant to its declaration-order tag (internal/irbuild already computes
// this the same way for EnumInstantiation/pattern-match lowering; codegen
// reuses the identical numbering so a constant enum value's tag agrees
// with the tag a live InsertValue/ExtractValue-based comparison computes).
func NewSelector(te *types.Engine, layout *Layout, enumVariantIndex func(types.TypeId, string) int) *Selector {
	return &Selector{te: te, layout: layout, data: NewDataSection(), enumVariantIndex: enumVariantIndex}
}

// DataSection returns the shared data section every selected function's
// LWDataId ops reference.
func (s *Selector) DataSection() *DataSection { return s.data }

// SelectModule lowers every function of mod to one concatenated
// AbstractInstructionSet (spec §6.3: the emitted assembly is one flat
// sequence), in module function order (spec §5 "Ordering").
func (s *Selector) SelectModule(mod *ir.Module) *AbstractInstructionSet {
	out := &AbstractInstructionSet{}
	for _, fn := range mod.Functions {
		out.Ops = append(out.Ops, s.SelectFunction(fn)...)
	}
	return out
}

// SelectFunction lowers one function's blocks, in block order, to a run of
// ops prefixed by a label naming its entry point.
func (s *Selector) SelectFunction(fn *ir.Function) []Op {
	s.vregOf = make(map[*ir.Value]VReg)
	s.fnName = fn.Name

	var ops []Op
	ops = append(ops, label(s.blockLabel(fn.Entry())))

	for i, p := range fn.Params {
		_ = i
		s.vregOf[p.Value] = s.seq.Next()
	}
	frameWords := s.frameWords(fn)
	if frameWords > 0 {
		ops = append(ops, cfei(uint64(frameWords)))
	}
	localOffset := s.assignLocalOffsets(fn)

	for bi, b := range fn.Blocks {
		if bi > 0 {
			ops = append(ops, label(s.blockLabel(b)))
		}
		for _, a := range b.Args {
			if _, ok := s.vregOf[a]; !ok {
				s.vregOf[a] = s.seq.Next()
			}
		}
		for _, instr := range b.Instrs {
			ops = append(ops, s.selectInstr(fn, instr, localOffset)...)
		}
	}
	return ops
}

func (s *Selector) blockLabel(b *ir.Block) Label {
	return Label(fmt.Sprintf("%s.%s", s.fnName, b.Label))
}

// frameWords sums the size of every local declared directly in the
// function — the stack-frame extension spec §4.5 step 1 calls for before
// any field-by-field aggregate write ("CFEI sized to the struct layout").
// Locals are addressed relative to the frame pointer via their assigned
// offset, computed once up front since Locals never grow mid-function.
func (s *Selector) frameWords(fn *ir.Function) int {
	total := 0
	for _, l := range fn.Locals {
		total += s.layout.SizeInWords(l.Type)
	}
	return total
}

func (s *Selector) assignLocalOffsets(fn *ir.Function) map[*ir.Local]int {
	offsets := make(map[*ir.Local]int, len(fn.Locals))
	offset := 0
	for _, l := range fn.Locals {
		offsets[l] = offset
		offset += s.layout.SizeInWords(l.Type)
	}
	return offsets
}

// reg returns the virtual register holding v, minting one and (for a
// constant) emitting its materialization if this is the first reference.
func (s *Selector) reg(ops *[]Op, v *ir.Value) VReg {
	if r, ok := s.vregOf[v]; ok {
		return r
	}
	r := s.seq.Next()
	s.vregOf[v] = r
	if v.Kind == ir.ValConst {
		*ops = append(*ops, s.materializeConst(r, v.Const)...)
	}
	return r
}

// materializeConst loads a constant into dest: small scalars use MOVI
// directly (no data-section round trip needed for values within the
// immediate field), everything else goes through the data section via
// LWDataId (spec §4.5 step 2's "LWDataId produces 1 or 2 depending on
// whether the referenced constant is copy-type").
func (s *Selector) materializeConst(dest VReg, c *ir.Constant) []Op {
	if c.Kind == ir.ConstInt && c.Int < (1<<18) {
		return []Op{movi(dest, c.Int)}
	}
	if c.Kind == ir.ConstBool {
		v := uint64(0)
		if c.Bool {
			v = 1
		}
		return []Op{movi(dest, v)}
	}
	bytes, copyType := s.encodeConst(c)
	id := s.data.Insert(bytes, copyType)
	return []Op{lwDataID(dest, id)}
}

func (s *Selector) encodeConst(c *ir.Constant) ([]byte, bool) {
	switch c.Kind {
	case ir.ConstUnit:
		return []byte{0, 0, 0, 0, 0, 0, 0, 0}, true
	case ir.ConstBool:
		if c.Bool {
			return []byte{0, 0, 0, 0, 0, 0, 0, 1}, true
		}
		return []byte{0, 0, 0, 0, 0, 0, 0, 0}, true
	case ir.ConstByte:
		return []byte{0, 0, 0, 0, 0, 0, 0, c.Byte}, true
	case ir.ConstInt:
		return encodeU64(c.Int), true
	case ir.ConstB256:
		return append([]byte(nil), c.B256[:]...), false
	case ir.ConstString:
		return padToWord([]byte(c.String)), false
	case ir.ConstStruct, ir.ConstTuple, ir.ConstArray:
		var out []byte
		for _, e := range c.Elems {
			b, _ := s.encodeConst(e)
			out = append(out, b...)
		}
		return out, false
	case ir.ConstEnum:
		tag := uint64(s.enumVariantIndex(c.Type, c.Variant))
		out := encodeU64(tag)
		if c.Payload != nil {
			b, _ := s.encodeConst(c.Payload)
			out = append(out, b...)
		}
		return out, false
	default:
		return []byte{0, 0, 0, 0, 0, 0, 0, 0}, true
	}
}

func (s *Selector) selectInstr(fn *ir.Function, instr ir.Instruction, localOffset map[*ir.Local]int) []Op {
	var ops []Op
	switch i := instr.(type) {
	case *ir.BinOp:
		left := s.reg(&ops, i.Left)
		right := s.reg(&ops, i.Right)
		dest := s.regFor(i.Res)
		switch i.Op {
		case ir.INe:
			tmp := s.seq.Next()
			ops = append(ops, binOp(OpEq, tmp, left, right), unOp(OpNot, dest, tmp))
		case ir.ILe:
			tmp := s.seq.Next()
			ops = append(ops, binOp(OpGt, tmp, left, right), unOp(OpNot, dest, tmp))
		case ir.IGe:
			tmp := s.seq.Next()
			ops = append(ops, binOp(OpLt, tmp, left, right), unOp(OpNot, dest, tmp))
		default:
			ops = append(ops, binOp(binOpcode(i.Op), dest, left, right))
		}
	case *ir.UnOp:
		x := s.reg(&ops, i.X)
		dest := s.regFor(i.Res)
		switch i.Op {
		case ir.INeg:
			zero := s.seq.Next()
			ops = append(ops, movi(zero, 0), binOp(OpSub, dest, zero, x))
		case ir.INot:
			ops = append(ops, unOp(OpNot, dest, x))
		}
	case *ir.GetLocal:
		dest := s.regFor(i.Res)
		ops = append(ops, s.addrOfLocal(dest, localOffset[i.Local])...)
	case *ir.GetPtr:
		base := s.reg(&ops, i.Base)
		dest := s.regFor(i.Res)
		if i.Offset == 0 {
			ops = append(ops, move(dest, base))
		} else {
			off := s.seq.Next()
			ops = append(ops, movi(off, uint64(i.Offset)), binOp(OpAdd, dest, base, off))
		}
	case *ir.Load:
		ptr := s.reg(&ops, i.Ptr)
		dest := s.regFor(i.Res)
		words := s.layout.SizeInWords(i.Res.Type)
		if words <= 1 {
			ops = append(ops, lw(dest, ptr, 0))
		} else {
			ops = append(ops, mcpi(dest, ptr, uint64(words*wordBytes)))
		}
	case *ir.Store:
		ptr := s.reg(&ops, i.Ptr)
		val := s.reg(&ops, i.Value)
		words := s.layout.SizeInWords(i.Value.Type)
		if words <= 1 {
			ops = append(ops, sw(ptr, val, 0))
		} else {
			ops = append(ops, mcpi(ptr, val, uint64(words*wordBytes)))
		}
	case *ir.ExtractValue:
		ops = append(ops, s.selectExtractValue(i)...)
	case *ir.InsertValue:
		ops = append(ops, s.selectInsertValue(i)...)
	case *ir.Call:
		var args []VReg
		for _, a := range i.Args {
			args = append(args, s.reg(&ops, a))
		}
		dest := NoReg
		if i.Res != nil {
			dest = s.regFor(i.Res)
		}
		ops = append(ops, call(dest, Label(i.Callee.Name+".entry"), args))
	case *ir.Branch:
		var setup []Op
		s.bindArgs(&setup, i.Target, i.Args)
		ops = append(ops, setup...)
		ops = append(ops, jump(s.blockLabel(i.Target)))
	case *ir.CondBranch:
		cond := s.reg(&ops, i.Cond)
		var trueSetup, falseSetup []Op
		s.bindArgs(&trueSetup, i.TrueTarget, i.TrueArgs)
		s.bindArgs(&falseSetup, i.FalseTarget, i.FalseArgs)
		zero := s.seq.Next()
		ops = append(ops, movi(zero, 0))
		ops = append(ops, falseSetup...)
		ops = append(ops, jumpIfNotEq(cond, zero, s.blockLabel(i.TrueTarget)))
		ops = append(ops, trueSetup...)
		ops = append(ops, jump(s.blockLabel(i.FalseTarget)))
	case *ir.Ret:
		val := s.reg(&ops, i.Value)
		words := s.layout.SizeInWords(i.Value.Type)
		if words <= 1 {
			ops = append(ops, ret(val))
		} else {
			lenReg := s.immReg(&ops, uint64(words*wordBytes))
			ops = append(ops, retd(val, lenReg))
		}
	case *ir.AsmBlock:
		// Inline asm text is opaque (spec §3.4 "asm-block escape"); its
		// captured inputs are still live values that must reach this
		// point in a register, so they are materialized, but the asm
		// body itself is emitted as a single organizational comment
		// carrying the source text for a human reader of the dump —
		// the target VM instructions it names are not in this package's
		// fixed opcode set.
		for _, a := range i.Args {
			s.reg(&ops, a)
		}
		if i.Res != nil {
			s.regFor(i.Res)
		}
		ops = append(ops, Op{Org: OrgComment, Dest: NoReg, Src1: NoReg, Src2: NoReg, Comment: "asm: " + i.Text})
	case *ir.StorageLoad:
		dest := s.regFor(i.Res)
		words := s.layout.SizeInWords(i.Res.Type)
		if words <= 1 {
			ops = append(ops, srw(dest, fieldID(i.Field)))
		} else {
			ops = append(ops, srwq(dest, fieldID(i.Field)))
		}
	case *ir.StorageStore:
		val := s.reg(&ops, i.Value)
		words := s.layout.SizeInWords(i.Value.Type)
		if words <= 1 {
			ops = append(ops, sww(fieldID(i.Field), val))
		} else {
			ops = append(ops, swwq(fieldID(i.Field), val))
		}
	}
	return ops
}

func (s *Selector) regFor(v *ir.Value) VReg {
	r := s.seq.Next()
	s.vregOf[v] = r
	return r
}

// immReg materializes a compile-time-known immediate into a fresh register.
func (s *Selector) immReg(ops *[]Op, v uint64) VReg {
	r := s.seq.Next()
	*ops = append(*ops, movi(r, v))
	return r
}

// bindArgs emits the stores/moves a branch must perform so the successor
// block's arguments are ready before control transfers — block arguments
// are the IR's phi-node equivalent (spec §3.4), but the abstract ISA has
// no phi; each predecessor simply moves its argument values into the
// successor's already-assigned registers.
func (s *Selector) bindArgs(ops *[]Op, target *ir.Block, args []*ir.Value) {
	for i, a := range args {
		src := s.reg(ops, a)
		var dest VReg
		if d, ok := s.vregOf[target.Args[i]]; ok {
			dest = d
		} else {
			dest = s.seq.Next()
			s.vregOf[target.Args[i]] = dest
		}
		if dest != src {
			*ops = append(*ops, move(dest, src))
		}
	}
}

func (s *Selector) selectExtractValue(i *ir.ExtractValue) []Op {
	var ops []Op
	base := s.reg(&ops, i.Aggregate)
	dest := s.regFor(i.Res)
	offset := s.offsetOf(i.Aggregate.Type, i.Indices)
	words := s.layout.SizeInWords(i.Res.Type)
	if words <= 1 {
		ops = append(ops, lw(dest, base, uint64(offset)))
	} else {
		addr := s.seq.Next()
		off := s.seq.Next()
		ops = append(ops, movi(off, uint64(offset*wordBytes)), binOp(OpAdd, addr, base, off),
			mcpi(dest, addr, uint64(words*wordBytes)))
	}
	return ops
}

func (s *Selector) selectInsertValue(i *ir.InsertValue) []Op {
	var ops []Op
	base := s.reg(&ops, i.Aggregate)
	elem := s.reg(&ops, i.Elem)
	dest := s.regFor(i.Res)
	// SSA functional update: copy the base aggregate into a fresh frame
	// slot, then overwrite the touched field — mirrors InsertValue's
	// value semantics (original left unmodified) at the cost of a copy
	// per update, same trade-off sway-ir's own InsertValue lowering makes.
	words := s.layout.SizeInWords(i.Aggregate.Type)
	local := s.seq.Next()
	ops = append(ops, s.addrOfFresh(local, words)...)
	ops = append(ops, mcpi(local, base, uint64(words*wordBytes)))
	offset := s.offsetOf(i.Aggregate.Type, i.Indices)
	elemWords := s.layout.SizeInWords(i.Elem.Type)
	if elemWords <= 1 {
		ops = append(ops, sw(local, elem, uint64(offset)))
	} else {
		addr := s.seq.Next()
		off := s.seq.Next()
		ops = append(ops, movi(off, uint64(offset*wordBytes)), binOp(OpAdd, addr, local, off),
			mcpi(addr, elem, uint64(elemWords*wordBytes)))
	}
	ops = append(ops, move(dest, local))
	return ops
}

// offsetOf resolves a (possibly nested) index path to a word offset from
// the start of t, walking one level of struct-field or enum-payload
// indexing per path element (spec §3.4 "a path of indices" for nested
// struct-of-struct access).
func (s *Selector) offsetOf(t types.TypeId, indices []uint64) int {
	offset := 0
	cur := t
	for _, idx := range indices {
		info := s.te.Get(cur)
		if info.Kind == types.KindEnum {
			// field 0 is the tag word; field 1 is the payload, which
			// starts right after it. irbuild never nests an index path
			// past an enum's own payload field (zero.go/expr.go only
			// ever use Indices{0} or Indices{1} on an enum aggregate),
			// so the path bottoms out here.
			if idx == 0 {
				return offset
			}
			return offset + 1
		}
		offset += s.layout.FieldOffsetByIndex(cur, int(idx))
		cur = s.layout.FieldTypeAt(cur, int(idx))
	}
	return offset
}

func binOpcode(op ir.BinOpKind) Opcode {
	switch op {
	case ir.IAdd:
		return OpAdd
	case ir.ISub:
		return OpSub
	case ir.IMul:
		return OpMul
	case ir.IDiv:
		return OpDiv
	case ir.IMod:
		return OpMod
	case ir.IAnd:
		return OpAnd
	case ir.IOr:
		return OpOr
	case ir.IXor:
		return OpXor
	case ir.IShl:
		return OpShl
	case ir.IShr:
		return OpShr
	case ir.IEq:
		return OpEq
	case ir.ILt:
		return OpLt
	case ir.IGt:
		return OpGt
	default:
		return OpNoop
	}
}

func fieldID(name string) uint64 {
	var h uint32 = 2166136261
	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i])
		h *= 16777619
	}
	return uint64(h)
}

// addrOfLocal computes the address of a local at wordOffset from the frame
// pointer. OpAdd is a pure register-register instruction (no immediate
// operand), so a non-zero offset is first materialized into its own
// register with MOVI, same pattern as the GetPtr case above; an offset of
// zero collapses to a plain MOVE.
func (s *Selector) addrOfLocal(dest VReg, wordOffset int) []Op {
	if wordOffset == 0 {
		return []Op{move(dest, framePointerReg)}
	}
	off := s.seq.Next()
	return []Op{movi(off, uint64(wordOffset*wordBytes)), binOp(OpAdd, dest, framePointerReg, off)}
}

// addrOfFresh returns ops that leave dest holding the address of a
// freshly-extended words-sized stack region: the region starts at the
// current stack pointer, so $sp must be captured into dest before CFEI
// grows the frame past it (structs.rs's instantiate-then-populate order —
// extending first and reading $sp after would point past the new region).
func (s *Selector) addrOfFresh(dest VReg, words int) []Op {
	return []Op{move(dest, stackPointerReg), cfei(uint64(words))}
}

// framePointerReg and stackPointerReg are reserved virtual registers —
// selection never allocates either from the
// RegSequencer, and internal/regalloc treats any negative VReg as already
// physical (pass-through, never spilled or colored).
const (
	framePointerReg VReg = -2
	stackPointerReg VReg = -3
)
