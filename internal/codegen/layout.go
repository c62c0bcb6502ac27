// Package codegen lowers verified, passed IR (internal/ir, post
// internal/irpass) to an abstract virtual-register instruction set, then
// hands it to internal/regalloc for physical register assignment (spec
// §4.5 "Code Generator"). Grounded throughout on
// original_source/sway-core/src/asm_generation/{abstract_instruction_set,
// expression/structs,fuel/optimizations/const_indexed_aggregates}.rs; the
// teacher carries no assembly-emission stage of its own (it is a tree-walk
// interpreter), so the package shape here follows the teacher's internal/ir
// authoring style (doc comments, InstrBase-like small value types) applied
// to material the teacher itself has no equivalent for.
package codegen

import "github.com/FuelLabs/sway-core-go/internal/types"

const wordBytes = 8

// Layout computes the in-memory size and field offsets of aggregate types,
// in machine words. Grounded on structs.rs's ContiguousMemoryLayoutDescriptor
// (get_contiguous_memory_layout / offset_to_field_name / total_size): a
// struct's fields are laid out contiguously in declaration order, each
// field's size rounded up to a whole word, and a field's offset is the sum
// of the sizes of every field before it. Enums are not covered by that
// file (the original's enum instantiation code lives elsewhere and predates
// this retrieval pack's slice of asm_generation), so enum layout here is
// this package's own decision, recorded in DESIGN.md: one tag word followed
// by the widest variant's payload, so every variant's payload starts at the
// same fixed offset regardless of which one is active.
type Layout struct {
	te           *types.Engine
	fieldsOf     func(types.DeclID) []string
	fieldTypesOf func(types.DeclID) []types.TypeId
	cache        map[types.TypeId]int
}

// NewLayout builds a Layout over te. fieldsOf resolves a struct/enum
// declaration id to its ordered field/variant names, used only by
// FieldOffset for name-based lookups; layout size computation walks field
// types through the function registered with SetFieldTypesFn.
func NewLayout(te *types.Engine, fieldsOf func(types.DeclID) []string) *Layout {
	return &Layout{te: te, fieldsOf: fieldsOf, cache: make(map[types.TypeId]int)}
}

// SizeInWords returns t's size in machine words, rounding byte-granular
// types (strings) up to a whole number of words.
func (l *Layout) SizeInWords(t types.TypeId) int {
	if n, ok := l.cache[t]; ok {
		return n
	}
	n := l.sizeInWords(t)
	l.cache[t] = n
	return n
}

func (l *Layout) sizeInWords(t types.TypeId) int {
	info := l.te.Get(t)
	switch info.Kind {
	case types.KindUnit:
		return 0
	case types.KindBool, types.KindByte, types.KindU8, types.KindU16, types.KindU32, types.KindU64:
		return 1
	case types.KindB256:
		return 4
	case types.KindPointer:
		return 1
	case types.KindStr:
		if info.StrLen == 0 {
			return 0
		}
		return (info.StrLen + wordBytes - 1) / wordBytes
	case types.KindArray:
		return l.SizeInWords(info.Elem) * info.Len
	case types.KindTuple:
		total := 0
		for _, el := range info.Elems {
			total += l.SizeInWords(el)
		}
		return total
	case types.KindStruct:
		total := 0
		for _, fieldTy := range l.aggregateFieldTypes(t) {
			total += l.SizeInWords(fieldTy)
		}
		return total
	case types.KindEnum:
		widest := 0
		for _, variantTy := range l.aggregateFieldTypes(t) {
			if s := l.SizeInWords(variantTy); s > widest {
				widest = s
			}
		}
		return 1 + widest // tag word + widest payload
	default:
		return 1
	}
}

// aggregateFieldTypes returns t's ordered member types: a tuple's elements
// directly, or a struct/enum's fields/variant-payloads via the
// declaration-engine callback registered by SetFieldTypesFn.
func (l *Layout) aggregateFieldTypes(t types.TypeId) []types.TypeId {
	info := l.te.Get(t)
	if info.Kind == types.KindTuple {
		return info.Elems
	}
	if l.fieldTypesOf == nil {
		return nil
	}
	return l.fieldTypesOf(info.Decl)
}

// FieldTypeAt returns the type of t's idx'th member (struct field, enum
// variant payload, or tuple element), or t itself if idx is out of range.
func (l *Layout) FieldTypeAt(t types.TypeId, idx int) types.TypeId {
	ts := l.aggregateFieldTypes(t)
	if idx < len(ts) {
		return ts[idx]
	}
	return t
}

// fieldTypesOf is set by SetFieldTypesFn; kept distinct from fieldsOf
// (name lookup) since the size walk only needs types, not names.
func (l *Layout) SetFieldTypesFn(fn func(types.DeclID) []types.TypeId) { l.fieldTypesOf = fn }

// FieldOffset returns the word offset of the named field within a struct of
// type t (spec §4.5 step 1 "offsets are computed from a contiguous memory
// layout descriptor"), grounded directly on
// ContiguousMemoryLayoutDescriptor::offset_to_field_name's prefix-sum walk.
func (l *Layout) FieldOffset(t types.TypeId, field string) (int, bool) {
	names := l.fieldsOf(l.te.Get(t).Decl)
	types_ := l.aggregateFieldTypes(t)
	offset := 0
	for i, n := range names {
		if n == field {
			return offset, true
		}
		if i < len(types_) {
			offset += l.SizeInWords(types_[i])
		}
	}
	return 0, false
}

// FieldOffsetByIndex mirrors FieldOffset but indexes positionally, used by
// ExtractValue/InsertValue lowering which already carries a field index
// rather than a name (internal/ir's aggregate instructions index
// positionally — spec §3.4 "a path of indices").
func (l *Layout) FieldOffsetByIndex(t types.TypeId, idx int) int {
	types_ := l.aggregateFieldTypes(t)
	offset := 0
	for i := 0; i < idx && i < len(types_); i++ {
		offset += l.SizeInWords(types_[i])
	}
	return offset
}
