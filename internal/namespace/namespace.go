// Package namespace implements the module tree (spec §3.2): a Module owns a
// symbol map, a trait-impl table, a use-table, and at most one storage
// declaration; submodule insertion is write-once per name. Grounded on the
// teacher's internal/module/resolver.go (module-tree-with-symbol-map shape)
// and internal/link/resolver.go (import/use resolution), generalized from
// ailang's untyped value bindings to our typed declaration references.
package namespace

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// DeclKind tags which field of DeclRef is populated.
type DeclKind int

const (
	DeclFunc DeclKind = iota
	DeclStruct
	DeclEnum
	DeclTrait
	DeclConst
	DeclGenericParam
)

// DeclRef is a symbol table entry: identifier resolves to exactly one of
// these, tagged by Kind. Struct/Enum/Trait are looked up by id in the
// shared internal/decl engine; Func/Const carry their typed declaration
// directly since nothing else needs to reference them by id.
type DeclRef struct {
	Kind       DeclKind
	Func       *typedast.FuncDecl
	Struct     decl.ID
	Enum       decl.ID
	Trait      decl.ID
	Const      *typedast.ConstDecl
	Visibility ast.Visibility
}

// TraitImplKey identifies one trait implementation: a trait name plus the
// concrete type id it is implemented for.
type TraitImplKey struct {
	Trait string
	Type  types.TypeId
}

// UseEntry is one imported identifier's resolution: an absolute module path
// plus an optional alias it was imported under.
type UseEntry struct {
	Path  []string
	Alias string
}

// Module is one node in the namespace tree (spec §3.2). Visibility is how
// this module is reachable from a `use` path rooted outside it — set by
// the parent at insertion time, meaningless on the root.
type Module struct {
	Name       string
	Parent     *Module
	Submodules map[string]*Module
	Symbols    map[string]*DeclRef
	TraitImpls map[TraitImplKey]decl.ID
	UseTable   map[string]UseEntry
	Storage    *typedast.StorageDecl
	IsContract bool
	Visibility ast.Visibility

	storageSet bool
}

func newModule(name string, parent *Module) *Module {
	return &Module{
		Name:       name,
		Parent:     parent,
		Submodules: make(map[string]*Module),
		Symbols:    make(map[string]*DeclRef),
		TraitImpls: make(map[TraitImplKey]decl.ID),
		UseTable:   make(map[string]UseEntry),
	}
}

// ShadowWarning is returned (never as an error) when InsertSymbol replaces
// an existing non-aggregate symbol, per spec §3.2: "Symbol insertion may
// shadow with a warning."
type ShadowWarning struct {
	Module string
	Name   string
}

func (w *ShadowWarning) Error() string {
	return fmt.Sprintf("symbol %q shadows an existing binding in module %q", w.Name, w.Module)
}

// ShadowError is a hard error: a struct/enum/generic-param declaration
// shadowing an existing symbol (spec §3.2 invariant).
type ShadowError struct {
	Module string
	Name   string
}

func (e *ShadowError) Error() string {
	return fmt.Sprintf("%q already declared in module %q: struct/enum/generic-param shadowing is not allowed", e.Name, e.Module)
}

// ResubmoduleError is a hard error: a submodule name already inserted under
// this module (spec §3.2: "Submodule insertion is write-once per name.").
type ResubmoduleError struct {
	Module string
	Name   string
}

func (e *ResubmoduleError) Error() string {
	return fmt.Sprintf("submodule %q already exists under module %q", e.Name, e.Module)
}

// Root constructs a fresh namespace root module.
func Root(name string) *Module { return newModule(name, nil) }

// InsertSubmodule creates and attaches a new child module under name with
// the given visibility. Write-once: a second call with the same name
// returns a *ResubmoduleError and does not replace the existing submodule.
func (m *Module) InsertSubmodule(name string, visibility ast.Visibility) (*Module, error) {
	if _, exists := m.Submodules[name]; exists {
		return nil, &ResubmoduleError{Module: m.Name, Name: name}
	}
	child := newModule(name, m)
	child.Visibility = visibility
	m.Submodules[name] = child
	return child, nil
}

// InsertSymbol binds name to ref within m. Struct/Enum/GenericParam
// declarations that would shadow an existing binding are a hard error;
// every other kind shadows silently but returns a *ShadowWarning so the
// caller can surface it as a diagnostic.
func (m *Module) InsertSymbol(name string, ref *DeclRef) error {
	existing, had := m.Symbols[name]
	_ = existing
	if had && (ref.Kind == DeclStruct || ref.Kind == DeclEnum || ref.Kind == DeclGenericParam) {
		return &ShadowError{Module: m.Name, Name: name}
	}
	m.Symbols[name] = ref
	if had {
		return &ShadowWarning{Module: m.Name, Name: name}
	}
	return nil
}

// Lookup resolves name within m only (no parent/use-table fallthrough).
func (m *Module) Lookup(name string) (*DeclRef, bool) {
	ref, ok := m.Symbols[name]
	return ref, ok
}

// AddUse registers an imported identifier's absolute path and optional
// alias.
func (m *Module) AddUse(localName string, path []string, alias string) {
	m.UseTable[localName] = UseEntry{Path: path, Alias: alias}
}

// AddTraitImpl registers a trait implementation for a concrete type.
func (m *Module) AddTraitImpl(trait string, forType types.TypeId, implID decl.ID) {
	m.TraitImpls[TraitImplKey{Trait: trait, Type: forType}] = implID
}

// HasTraitImpl reports whether forType implements trait, searching m and
// then ancestor modules (trait impls are visible transitively, matching
// Rust-style coherence: an impl is visible wherever its defining module is
// in scope).
func (m *Module) HasTraitImpl(trait string, forType types.TypeId) (decl.ID, bool) {
	for mod := m; mod != nil; mod = mod.Parent {
		if id, ok := mod.TraitImpls[TraitImplKey{Trait: trait, Type: forType}]; ok {
			return id, true
		}
	}
	return 0, false
}

// SetStorage installs m's storage declaration. A module may be given a
// storage declaration at most once, and only if it is a contract (spec
// §3.2: "at most one storage declaration (valid only for contracts)").
func (m *Module) SetStorage(s *typedast.StorageDecl) error {
	if !m.IsContract {
		return fmt.Errorf("storage declaration is only valid in a contract module, got %q", m.Name)
	}
	if m.storageSet {
		return fmt.Errorf("module %q already has a storage declaration", m.Name)
	}
	m.Storage = s
	m.storageSet = true
	return nil
}
