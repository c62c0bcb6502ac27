package ir

import "github.com/FuelLabs/sway-core-go/internal/types"

// ConstKind tags the shape of a Constant's payload.
type ConstKind int

const (
	ConstUnit ConstKind = iota
	ConstBool
	ConstInt
	ConstByte
	ConstB256
	ConstString
	ConstStruct
	ConstEnum
	ConstArray
	ConstTuple
)

// Constant is an immutable compile-time value, interned into a Module's
// constant pool or embedded directly as an operand. Aggregates nest their
// element Constants rather than referencing the pool, matching the
// teacher's sway-ir Constant::Array/Struct shape.
type Constant struct {
	Type types.TypeId
	Kind ConstKind

	Bool   bool
	Int    uint64
	Byte   byte
	B256   [32]byte
	String string

	// ConstStruct / ConstArray / ConstTuple
	Elems []*Constant

	// ConstEnum: which variant and its payload, if any.
	Variant string
	Payload *Constant
}

// NamedConstant is a module-level constant declaration lowered once per
// name (spec §4.3 "Constants").
type NamedConstant struct {
	Name  string
	Value *Constant
}
