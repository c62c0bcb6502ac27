package ir

import (
	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// BinOpKind mirrors ast.BinOp but at the IR level arithmetic and compare
// ops are distinguished by their opcode, not folded into one "BinaryExpr"
// node the way the typed AST does.
type BinOpKind int

const (
	IAdd BinOpKind = iota
	ISub
	IMul
	IDiv
	IMod
	IAnd
	IOr
	IXor
	IShl
	IShr
	IEq
	INe
	ILt
	ILe
	IGt
	IGe
)

type UnOpKind int

const (
	INeg UnOpKind = iota
	INot
)

// Instruction is a single IR operation. Every concrete type embeds
// InstrBase. Instructions that produce a value expose it via Result();
// terminators (Branch, CondBranch, Ret) return nil.
type Instruction interface {
	Span() ast.Span
	Result() *Value
	// ReplaceValue rewrites any operand equal to old to new, grounded on
	// sway-ir's Instruction::replace_value (used by inlining and argument
	// demotion to rewire operands without rebuilding the instruction).
	ReplaceValue(old, new *Value)
	instrNode()
}

type InstrBase struct {
	ISpan ast.Span
}

func (b InstrBase) Span() ast.Span { return b.ISpan }
func (InstrBase) instrNode()       {}

// BinOp computes an arithmetic or comparison result from two operands.
type BinOp struct {
	InstrBase
	Res         *Value
	Op          BinOpKind
	Left, Right *Value
}

func (i *BinOp) Result() *Value { return i.Res }
func (i *BinOp) ReplaceValue(old, new *Value) {
	if i.Left == old {
		i.Left = new
	}
	if i.Right == old {
		i.Right = new
	}
}

// UnOp computes a unary result from one operand.
type UnOp struct {
	InstrBase
	Res *Value
	Op  UnOpKind
	X   *Value
}

func (i *UnOp) Result() *Value { return i.Res }
func (i *UnOp) ReplaceValue(old, new *Value) {
	if i.X == old {
		i.X = new
	}
}

// GetLocal produces the address (a pointer-typed value) of a named local.
type GetLocal struct {
	InstrBase
	Res   *Value
	Local *Local
}

func (i *GetLocal) Result() *Value                { return i.Res }
func (i *GetLocal) ReplaceValue(old, new *Value) {}

// GetPtr computes a derived pointer from a base pointer plus a constant
// word offset — the addressing primitive aggregate field access and the
// constant-indexed-aggregate-fold pass (spec §4.4.3) operate on.
type GetPtr struct {
	InstrBase
	Res    *Value
	Base   *Value
	Offset int
}

func (i *GetPtr) Result() *Value { return i.Res }
func (i *GetPtr) ReplaceValue(old, new *Value) {
	if i.Base == old {
		i.Base = new
	}
}

// Load reads the value at a pointer.
type Load struct {
	InstrBase
	Res *Value
	Ptr *Value
}

func (i *Load) Result() *Value { return i.Res }
func (i *Load) ReplaceValue(old, new *Value) {
	if i.Ptr == old {
		i.Ptr = new
	}
}

// Store writes a value to a pointer. No result.
type Store struct {
	InstrBase
	Ptr   *Value
	Value *Value
}

func (i *Store) Result() *Value { return nil }
func (i *Store) ReplaceValue(old, new *Value) {
	if i.Ptr == old {
		i.Ptr = new
	}
	if i.Value == old {
		i.Value = new
	}
}

// ExtractValue reads one field/element out of an aggregate value by a path
// of indices (nested struct-of-struct access walks multiple indices).
type ExtractValue struct {
	InstrBase
	Res       *Value
	Aggregate *Value
	Indices   []uint64
}

func (i *ExtractValue) Result() *Value { return i.Res }
func (i *ExtractValue) ReplaceValue(old, new *Value) {
	if i.Aggregate == old {
		i.Aggregate = new
	}
}

// InsertValue produces a new aggregate value with one field/element
// replaced, leaving the original unmodified (SSA-style functional update).
type InsertValue struct {
	InstrBase
	Res       *Value
	Aggregate *Value
	Elem      *Value
	Indices   []uint64
}

func (i *InsertValue) Result() *Value { return i.Res }
func (i *InsertValue) ReplaceValue(old, new *Value) {
	if i.Aggregate == old {
		i.Aggregate = new
	}
	if i.Elem == old {
		i.Elem = new
	}
}

// Call invokes a function with positional arguments.
type Call struct {
	InstrBase
	Res    *Value
	Callee *Function
	Args   []*Value
}

func (i *Call) Result() *Value { return i.Res }
func (i *Call) ReplaceValue(old, new *Value) {
	for j, a := range i.Args {
		if a == old {
			i.Args[j] = new
		}
	}
}

// Branch unconditionally jumps to Target, supplying Args as its block
// arguments (spec §3.4 "Block arguments serve the role of SSA phi nodes").
type Branch struct {
	InstrBase
	Target *Block
	Args   []*Value
}

func (i *Branch) Result() *Value { return nil }
func (i *Branch) ReplaceValue(old, new *Value) {
	for j, a := range i.Args {
		if a == old {
			i.Args[j] = new
		}
	}
}

// CondBranch jumps to TrueTarget or FalseTarget depending on Cond, each
// supplied with its own block-argument list.
type CondBranch struct {
	InstrBase
	Cond                   *Value
	TrueTarget             *Block
	TrueArgs               []*Value
	FalseTarget            *Block
	FalseArgs              []*Value
}

func (i *CondBranch) Result() *Value { return nil }
func (i *CondBranch) ReplaceValue(old, new *Value) {
	if i.Cond == old {
		i.Cond = new
	}
	for j, a := range i.TrueArgs {
		if a == old {
			i.TrueArgs[j] = new
		}
	}
	for j, a := range i.FalseArgs {
		if a == old {
			i.FalseArgs[j] = new
		}
	}
}

// Ret returns Value from the enclosing function. Value is never nil: a
// unit constant is synthesized by the builder when a body has no trailing
// expression (spec §4.3 "Implicit return").
type Ret struct {
	InstrBase
	Value *Value
}

func (i *Ret) Result() *Value { return nil }
func (i *Ret) ReplaceValue(old, new *Value) {
	if i.Value == old {
		i.Value = new
	}
}

// AsmBlock is the escape hatch for inline assembly blocks (spec §3.4
// "asm-block escape"): RetType is the declared result type (types.Unit
// when the block has none), Text is the opaque asm source carried through
// from the typed AST unparsed, and Args are the asm block's captured
// input values, in declaration order.
type AsmBlock struct {
	InstrBase
	Res     *Value
	RetType types.TypeId
	Text    string
	Args    []*Value
}

func (i *AsmBlock) Result() *Value { return i.Res }
func (i *AsmBlock) ReplaceValue(old, new *Value) {
	for j, a := range i.Args {
		if a == old {
			i.Args[j] = new
		}
	}
}

// StorageLoad reads a contract storage field by name. Grounded on spec
// §6.3's note that the opcode set includes "contract-specific" operations
// (the VM's SRW/SRWQ storage-read instructions) — storage access needs its
// own IR instruction since, unlike a local, a storage slot has no pointer
// value to route through Load.
type StorageLoad struct {
	InstrBase
	Res   *Value
	Field string
}

func (i *StorageLoad) Result() *Value                { return i.Res }
func (i *StorageLoad) ReplaceValue(old, new *Value) {}

// StorageStore writes a contract storage field by name (VM's SWW/SWWQ).
type StorageStore struct {
	InstrBase
	Field string
	Value *Value
}

func (i *StorageStore) Result() *Value { return nil }
func (i *StorageStore) ReplaceValue(old, new *Value) {
	if i.Value == old {
		i.Value = new
	}
}

// IsTerminator reports whether instr ends a block (spec §3.4 invariant:
// "each block has exactly one terminator, at the end").
func IsTerminator(instr Instruction) bool {
	switch instr.(type) {
	case *Branch, *CondBranch, *Ret:
		return true
	default:
		return false
	}
}
