package ir

import "github.com/FuelLabs/sway-core-go/internal/types"

// Block is a basic block: a label, ordered block arguments, and an
// ordered instruction list ending in exactly one terminator (spec §3.4).
// The entry block of a Function has no predecessors and no block
// arguments beyond the function's own parameters.
type Block struct {
	Label  string
	Func   *Function
	Args   []*Value
	Instrs []Instruction
}

// AddArg appends a new block-argument value of type t, to be supplied
// positionally by every predecessor's branch/conditional-branch.
func (b *Block) AddArg(t types.TypeId) *Value {
	v := newValue(b.Func.nextValueID(), ValBlockArg, t)
	v.Block = b
	v.ArgIndex = len(b.Args)
	b.Args = append(b.Args, v)
	return v
}

// Append adds instr to the end of the block's instruction list. If instr
// produces a Value, that value's Instr backlink is wired here so later
// passes can walk from a Value to its defining instruction.
func (b *Block) Append(instr Instruction) {
	if r := instr.Result(); r != nil {
		r.Instr = instr
	}
	b.Instrs = append(b.Instrs, instr)
}

// Terminator returns the block's final instruction, or nil if the block
// is (invalidly) empty — IR verification (IRV001) catches that case.
func (b *Block) Terminator() Instruction {
	if len(b.Instrs) == 0 {
		return nil
	}
	return b.Instrs[len(b.Instrs)-1]
}

// Successors returns the blocks this block's terminator may transfer
// control to, in a fixed order (true-target before false-target for a
// conditional branch). Empty for a Ret terminator or a malformed block.
func (b *Block) Successors() []*Block {
	switch term := b.Terminator().(type) {
	case *Branch:
		return []*Block{term.Target}
	case *CondBranch:
		return []*Block{term.TrueTarget, term.FalseTarget}
	default:
		return nil
	}
}

// ReplaceValue rewrites old to new in every instruction of the block,
// grounded on sway-ir's Block::replace_value.
func (b *Block) ReplaceValue(old, new *Value) {
	for _, instr := range b.Instrs {
		instr.ReplaceValue(old, new)
	}
}
