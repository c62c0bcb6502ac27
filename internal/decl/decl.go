// Package decl is the declaration engine: an append-only, per-kind table of
// struct/enum/trait/impl declarations keyed by small integer ids, mirroring
// how internal/types interns type structure. Grounded on
// sway-core/src/decl_engine/parsed_engine.rs's per-kind slab arena
// (ParsedDeclEngine: one ConcurrentSlab<T> field per declaration kind, with
// typed insert/get accessors) — generalized from Rust's per-kind Arc<T>
// slabs to Go maps, and from "parsed" declarations to typed ones, since this
// engine stores the output of internal/typecheck rather than the parser.
package decl

import (
	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// ID is a local alias for types.DeclID: a struct/enum TypeInfo's Decl field
// indexes into this engine's struct/enum tables under the same id space.
type ID = types.DeclID

// Field is one field of a struct declaration.
type Field struct {
	Name       string
	Type       types.TypeId
	Visibility ast.Visibility
	Span       ast.Span
}

// StructDecl is a typed struct declaration.
type StructDecl struct {
	Name       string
	TypeParams []string
	Fields     []Field
	Visibility ast.Visibility
	Span       ast.Span
}

// Variant is one variant of an enum declaration.
type Variant struct {
	Name string
	// Type is the variant's payload type, or types.Unit for a unit variant.
	Type types.TypeId
	Span ast.Span
}

// EnumDecl is a typed enum declaration.
type EnumDecl struct {
	Name       string
	TypeParams []string
	Variants   []Variant
	Visibility ast.Visibility
	Span       ast.Span
}

// TraitMethodSig is one method signature declared by a trait.
type TraitMethodSig struct {
	Name       string
	Params     []typedast.Param
	ReturnType types.TypeId
	// Default is the method's default body, if the trait supplies one.
	Default *typedast.Block
}

// TraitDecl is a typed trait declaration.
type TraitDecl struct {
	Name        string
	SuperTraits []string
	Methods     []TraitMethodSig
	Span        ast.Span
}

// ImplDecl is a typed `impl Trait for Type` (or inherent `impl Type`, where
// Trait is empty).
type ImplDecl struct {
	Trait   string
	ForType types.TypeId
	Methods []*typedast.FuncDecl
	Span    ast.Span
}

// Engine is the declaration table; the zero value is ready to use.
type Engine struct {
	structs map[ID]*StructDecl
	enums   map[ID]*EnumDecl
	traits  map[ID]*TraitDecl
	impls   map[ID]*ImplDecl
	next    ID
}

// New constructs an empty Engine.
func New() *Engine {
	return &Engine{
		structs: make(map[ID]*StructDecl),
		enums:   make(map[ID]*EnumDecl),
		traits:  make(map[ID]*TraitDecl),
		impls:   make(map[ID]*ImplDecl),
	}
}

func (e *Engine) nextID() ID {
	e.next++
	return e.next
}

// InsertStruct stores a struct declaration and returns its id.
func (e *Engine) InsertStruct(d *StructDecl) ID {
	id := e.nextID()
	e.structs[id] = d
	return id
}

// GetStruct returns the struct declaration stored under id.
func (e *Engine) GetStruct(id ID) *StructDecl { return e.structs[id] }

// InsertEnum stores an enum declaration and returns its id.
func (e *Engine) InsertEnum(d *EnumDecl) ID {
	id := e.nextID()
	e.enums[id] = d
	return id
}

// GetEnum returns the enum declaration stored under id.
func (e *Engine) GetEnum(id ID) *EnumDecl { return e.enums[id] }

// InsertTrait stores a trait declaration and returns its id.
func (e *Engine) InsertTrait(d *TraitDecl) ID {
	id := e.nextID()
	e.traits[id] = d
	return id
}

// GetTrait returns the trait declaration stored under id.
func (e *Engine) GetTrait(id ID) *TraitDecl { return e.traits[id] }

// InsertImpl stores an impl declaration and returns its id.
func (e *Engine) InsertImpl(d *ImplDecl) ID {
	id := e.nextID()
	e.impls[id] = d
	return id
}

// GetImpl returns the impl declaration stored under id.
func (e *Engine) GetImpl(id ID) *ImplDecl { return e.impls[id] }

// FieldTypes returns the field/variant payload type ids of the aggregate
// (struct or enum) stored under id, or nil if id names neither. Intended to
// be wired into types.Engine.SetAggregateFieldsFn so IsStorageOnly can walk
// into aggregate fields without the types package depending on decl.
func (e *Engine) FieldTypes(id ID) []types.TypeId {
	if s, ok := e.structs[id]; ok {
		ids := make([]types.TypeId, len(s.Fields))
		for i, f := range s.Fields {
			ids[i] = f.Type
		}
		return ids
	}
	if en, ok := e.enums[id]; ok {
		ids := make([]types.TypeId, len(en.Variants))
		for i, v := range en.Variants {
			ids[i] = v.Type
		}
		return ids
	}
	return nil
}
