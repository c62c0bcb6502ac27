// Package abi builds the in-memory ABI descriptor for a contract module
// (spec §6.4): for each public, non-generic contract entry, its 4-byte
// selector plus a structured description of its inputs and output,
// including a recursive `components` breakdown for struct/enum types so a
// downstream serializer can render the same nested shape Sway's own ABI
// JSON uses. This package only builds the structure — spec §6.4 is explicit
// that JSON serialization is an external collaborator's job, not the
// core's.
package abi

import (
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// TypeDescriptor names a type for the ABI, recursing into a struct or
// enum's field/variant types (and an array/tuple/pointer's element types)
// as nested Components — the "recursive components for struct/enum type
// arguments of generics" spec §6.4 calls for.
type TypeDescriptor struct {
	Name       string
	Components []TypeDescriptor `json:",omitempty"`
}

// Param is one named, typed function input.
type Param struct {
	Name string
	Type TypeDescriptor
}

// Function is one contract ABI entry: its 4-byte selector (as produced by
// internal/irbuild's computeSelector, carried on ir.Function.Selector),
// its inputs in declaration order, and its output type.
type Function struct {
	Name     string
	Selector [4]byte
	Inputs   []Param
	Output   TypeDescriptor
}

// Program is the full ABI surface of one contract module: every public,
// non-generic function in emission order.
type Program struct {
	Functions []Function
}

// Builder renders types.TypeId values into TypeDescriptor trees, using a
// decl.Engine to recover struct/enum field names (types.Engine alone only
// carries field type ids, not names — internal/types deliberately has no
// dependency on internal/decl).
type Builder struct {
	te *types.Engine
	de *decl.Engine
}

// NewBuilder constructs a Builder over the type and declaration engines a
// compilation unit produced.
func NewBuilder(te *types.Engine, de *decl.Engine) *Builder {
	return &Builder{te: te, de: de}
}

// Build collects the ABI descriptor for every public, non-generic function
// of mod — precisely the functions internal/irbuild gave a non-nil
// Selector (spec §4.3 "Functions": "only non-generic functions are
// emitted... for contract, each public function gets an ABI selector").
// Each input's name and type come from the function's ir.FuncParam
// entries, in declaration order.
func (b *Builder) Build(mod *ir.Module) Program {
	var prog Program
	for _, fn := range mod.Functions {
		if fn.Selector == nil {
			continue
		}
		entry := Function{
			Name:     fn.Name,
			Selector: *fn.Selector,
			Output:   b.Describe(fn.ReturnType),
		}
		for _, p := range fn.Params {
			entry.Inputs = append(entry.Inputs, Param{Name: p.Name, Type: b.Describe(p.Value.Type)})
		}
		prog.Functions = append(prog.Functions, entry)
	}
	return prog
}

// Describe renders one type as a TypeDescriptor, recursing into aggregate
// fields, array/pointer elements, and tuple elements.
func (b *Builder) Describe(id types.TypeId) TypeDescriptor {
	info := b.te.Get(id)
	switch info.Kind {
	case types.KindStruct, types.KindEnum:
		return TypeDescriptor{Name: b.te.String(id), Components: b.aggregateComponents(info)}
	case types.KindArray:
		return TypeDescriptor{Name: b.te.String(id), Components: []TypeDescriptor{b.Describe(info.Elem)}}
	case types.KindPointer:
		return TypeDescriptor{Name: b.te.String(id), Components: []TypeDescriptor{b.Describe(info.Elem)}}
	case types.KindTuple:
		comps := make([]TypeDescriptor, len(info.Elems))
		for i, el := range info.Elems {
			comps[i] = b.Describe(el)
		}
		return TypeDescriptor{Name: b.te.String(id), Components: comps}
	default:
		return TypeDescriptor{Name: b.te.String(id)}
	}
}

// aggregateComponents renders one Component per field (struct) or variant
// (enum), named the way the ABI JSON names them, falling back to bare type
// names when the declaration has since been pruned from de (should not
// happen for a well-formed compilation, but Describe must still terminate).
func (b *Builder) aggregateComponents(info types.TypeInfo) []TypeDescriptor {
	if s := b.de.GetStruct(info.Decl); s != nil {
		comps := make([]TypeDescriptor, len(s.Fields))
		for i, f := range s.Fields {
			comps[i] = TypeDescriptor{Name: f.Name, Components: []TypeDescriptor{b.Describe(f.Type)}}
		}
		return comps
	}
	if en := b.de.GetEnum(info.Decl); en != nil {
		comps := make([]TypeDescriptor, len(en.Variants))
		for i, v := range en.Variants {
			comps[i] = TypeDescriptor{Name: v.Name, Components: []TypeDescriptor{b.Describe(v.Type)}}
		}
		return comps
	}
	return nil
}
