// Package ir implements the intermediate representation (spec §3.4): a
// Module owns an ordered function list and a shared constant pool; each
// Function owns ordered basic blocks (first is entry) and named locals;
// each Block ends in exactly one terminator instruction. Grounded on
// original_source/sway-ir/src/{function,instruction}.rs for the
// vocabulary, adapted from the Rust arena-of-indices representation
// (Context owns generational_arena tables, Function/Block/Value are index
// handles into it) to plain Go pointer graphs — the teacher's
// internal/core package shows the same trade: a CoreNode embedding idiom
// over a handle-into-arena one, since Go's GC makes the arena indirection
// pure overhead here. DESIGN.md records this as the one deliberate
// structural departure from the grounding source.
package ir

import "github.com/FuelLabs/sway-core-go/internal/types"

// ValueKind tags what produced a Value (spec §3.4 "Value").
type ValueKind int

const (
	ValConst ValueKind = iota
	ValBlockArg
	ValInstr
)

// Value is one of {constant, block-argument, instruction-result}. Only the
// fields matching Kind are meaningful. A terminator instruction has no
// result Value at all (Instruction.Result returns nil), so Value.Kind ==
// ValInstr is only ever seen for non-terminator instructions.
type Value struct {
	ID   int
	Kind ValueKind
	Type types.TypeId

	// ValConst
	Const *Constant

	// ValBlockArg
	Block    *Block
	ArgIndex int

	// ValInstr
	Instr Instruction
}

func newValue(id int, kind ValueKind, t types.TypeId) *Value {
	return &Value{ID: id, Kind: kind, Type: t}
}
