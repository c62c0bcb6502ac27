// Package types implements the interned type engine (spec §3.1): every type
// that appears anywhere in a compilation is assigned a small integer TypeId,
// and two types are equal iff their ids are equal. Grounded on
// sway-core/src/type_system/id.rs's TypeId(usize) plus type_engine.rs's
// intern-by-structural-key table; the teacher's internal/types package used
// a structural Hindley-Milner scheme instead, which this replaces outright.
package types

import "fmt"

// TypeId is an index into an Engine's type table. The zero value is never a
// valid id returned by an Engine — Engine's interning starts numbering at 1
// so a zero-valued TypeId field reliably means "not yet assigned".
type TypeId int

// DeclID identifies a struct/enum declaration owned by the declaration
// engine (internal/decl). Kept as a local alias here (rather than importing
// internal/decl) so the type engine has no dependency on the declaration
// engine; internal/decl depends on internal/types, not the reverse.
type DeclID int

// Kind tags the shape of a TypeInfo.
type Kind int

const (
	KindErrorRecovery Kind = iota
	KindUnit
	KindBool
	KindByte
	KindB256
	KindU8
	KindU16
	KindU32
	KindU64
	KindStr
	KindStruct
	KindEnum
	KindTuple
	KindArray
	KindPointer
	KindGenericParam
	KindTraitAssocType
)

func (k Kind) String() string {
	switch k {
	case KindErrorRecovery:
		return "{err}"
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindB256:
		return "b256"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindStr:
		return "str"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindTuple:
		return "tuple"
	case KindArray:
		return "array"
	case KindPointer:
		return "ptr"
	case KindGenericParam:
		return "generic"
	case KindTraitAssocType:
		return "assoc"
	default:
		return "?"
	}
}

// GenericParam describes an unresolved generic placeholder: the name it was
// declared under and the set of trait names it is constrained by.
type GenericParam struct {
	Name            string
	TraitConstraints []string
}

// TypeInfo is the structural payload behind a TypeId. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type TypeInfo struct {
	Kind Kind

	// KindStr
	StrLen int

	// KindStruct / KindEnum: the declaration this type instantiates, plus
	// the type arguments this particular instantiation binds (empty for a
	// non-generic declaration).
	Decl     DeclID
	DeclName string
	TypeArgs []TypeId

	// KindTuple
	Elems []TypeId

	// KindArray / KindPointer
	Elem TypeId
	Len  int // KindArray only

	// KindGenericParam
	Param *GenericParam

	// KindTraitAssocType
	TraitName string
	AssocName string
}

// key returns a structural key such that two TypeInfo values with equal keys
// denote the same type; used by Engine.intern for interning.
func (t TypeInfo) key() string {
	switch t.Kind {
	case KindStr:
		return fmt.Sprintf("str:%d", t.StrLen)
	case KindStruct, KindEnum:
		return fmt.Sprintf("%s:%d:%v", t.Kind, t.Decl, t.TypeArgs)
	case KindTuple:
		return fmt.Sprintf("tuple:%v", t.Elems)
	case KindArray:
		return fmt.Sprintf("array:%d:%d", t.Elem, t.Len)
	case KindPointer:
		return fmt.Sprintf("ptr:%d", t.Elem)
	case KindGenericParam:
		return fmt.Sprintf("generic:%s", t.Param.Name)
	case KindTraitAssocType:
		return fmt.Sprintf("assoc:%s:%s:%d", t.TraitName, t.AssocName, t.Elem)
	default:
		return t.Kind.String()
	}
}

// Engine is the shared, append-only type table every TypeId is an index
// into (spec §3.1 invariant: "Type ids never dangle; the engine outlives
// all values that reference it."). The zero value is not usable; use New.
type Engine struct {
	table       []TypeInfo
	byKey       map[string]TypeId
	storageOnly map[TypeId]bool
	fieldsOf    func(DeclID) []TypeId
}

// Well-known ids, pre-interned by New so callers never have to look them up.
const (
	ErrorRecovery TypeId = 1 + iota
	Unit
	Bool
	Byte
	B256
	U8
	U16
	U32
	U64
)

// New constructs an Engine with the fixed-arity primitives pre-interned at
// the ids above.
func New() *Engine {
	e := &Engine{byKey: make(map[string]TypeId), storageOnly: make(map[TypeId]bool)}
	for _, k := range []Kind{
		KindErrorRecovery, KindUnit, KindBool, KindByte, KindB256,
		KindU8, KindU16, KindU32, KindU64,
	} {
		e.intern(TypeInfo{Kind: k})
	}
	return e
}

func (e *Engine) intern(t TypeInfo) TypeId {
	k := t.key()
	if id, ok := e.byKey[k]; ok {
		return id
	}
	e.table = append(e.table, t)
	id := TypeId(len(e.table))
	e.byKey[k] = id
	return id
}

// Get returns the TypeInfo behind id. Panics on an out-of-range id, which
// indicates a bug in the caller (interned ids never dangle by construction).
func (e *Engine) Get(id TypeId) TypeInfo {
	if int(id) < 1 || int(id) > len(e.table) {
		panic(fmt.Sprintf("types: invalid TypeId %d", id))
	}
	return e.table[id-1]
}

// Str interns a fixed-length string type.
func (e *Engine) Str(n int) TypeId { return e.intern(TypeInfo{Kind: KindStr, StrLen: n}) }

// Tuple interns a tuple-of-types; an empty tuple is distinct from Unit.
func (e *Engine) Tuple(elems ...TypeId) TypeId {
	return e.intern(TypeInfo{Kind: KindTuple, Elems: append([]TypeId(nil), elems...)})
}

// Array interns a fixed-length array type.
func (e *Engine) Array(elem TypeId, length int) TypeId {
	return e.intern(TypeInfo{Kind: KindArray, Elem: elem, Len: length})
}

// Pointer interns a pointer-to-type.
func (e *Engine) Pointer(elem TypeId) TypeId {
	return e.intern(TypeInfo{Kind: KindPointer, Elem: elem})
}

// Struct interns a reference to a named struct declaration, instantiated
// with the given type arguments (nil/empty for non-generic structs).
func (e *Engine) Struct(decl DeclID, name string, typeArgs ...TypeId) TypeId {
	return e.intern(TypeInfo{Kind: KindStruct, Decl: decl, DeclName: name, TypeArgs: append([]TypeId(nil), typeArgs...)})
}

// Enum interns a reference to a named enum declaration.
func (e *Engine) Enum(decl DeclID, name string, typeArgs ...TypeId) TypeId {
	return e.intern(TypeInfo{Kind: KindEnum, Decl: decl, DeclName: name, TypeArgs: append([]TypeId(nil), typeArgs...)})
}

// GenericParam interns an unresolved generic placeholder bound to a declared
// type parameter (spec §3.1 invariant).
func (e *Engine) GenericParam(name string, traitConstraints ...string) TypeId {
	return e.intern(TypeInfo{Kind: KindGenericParam, Param: &GenericParam{Name: name, TraitConstraints: traitConstraints}})
}

// TraitAssocType interns a reference to a trait's associated type, as seen
// from within a generic function body before monomorphization resolves it.
func (e *Engine) TraitAssocType(traitName, assocName string, selfType TypeId) TypeId {
	return e.intern(TypeInfo{Kind: KindTraitAssocType, TraitName: traitName, AssocName: assocName, Elem: selfType})
}

// SetAggregateFieldsFn registers the callback internal/decl uses to expose a
// struct/enum declaration's field type ids, letting Engine walk into
// aggregates without importing the declaration engine. Called once during
// pipeline setup.
func (e *Engine) SetAggregateFieldsFn(fn func(DeclID) []TypeId) { e.fieldsOf = fn }

// MarkStorageOnly flags id (expected to be a KindStruct/KindEnum builtin
// such as a storage map or storage vector) as storage-only: it may appear
// only as a storage field's type, never elsewhere (spec §4.1 step 7).
func (e *Engine) MarkStorageOnly(id TypeId) { e.storageOnly[id] = true }

// IsStorageOnly is the single consolidated storage-only predicate consulted
// both during type-checking and by the standalone late pass (spec's Open
// Question on storage-only consistency): it walks id and, recursively, the
// inner types reachable from it (tuple elements, array/pointer elements,
// aggregate fields), returning true if any of them was marked storage-only.
func (e *Engine) IsStorageOnly(id TypeId) bool {
	return e.isStorageOnly(id, make(map[TypeId]bool))
}

func (e *Engine) isStorageOnly(id TypeId, seen map[TypeId]bool) bool {
	if seen[id] {
		return false
	}
	seen[id] = true
	if e.storageOnly[id] {
		return true
	}
	info := e.Get(id)
	switch info.Kind {
	case KindTuple:
		for _, el := range info.Elems {
			if e.isStorageOnly(el, seen) {
				return true
			}
		}
	case KindArray, KindPointer:
		return e.isStorageOnly(info.Elem, seen)
	case KindStruct, KindEnum:
		if e.fieldsOf == nil {
			return false
		}
		for _, f := range e.fieldsOf(info.Decl) {
			if e.isStorageOnly(f, seen) {
				return true
			}
		}
	}
	return false
}

// Equal reports whether a and b denote the same type. Interning already
// guarantees structural equality implies id equality, so this is the id
// comparison the spec calls out as the definition of type equality.
func Equal(a, b TypeId) bool { return a == b }

// IsNumeric reports whether id is one of the fixed-width unsigned integers.
func (e *Engine) IsNumeric(id TypeId) bool {
	switch e.Get(id).Kind {
	case KindU8, KindU16, KindU32, KindU64:
		return true
	default:
		return false
	}
}

// IsAggregate reports whether id names a struct or enum.
func (e *Engine) IsAggregate(id TypeId) bool {
	k := e.Get(id).Kind
	return k == KindStruct || k == KindEnum
}

// String renders id for diagnostics; structs/enums render their declared
// name plus any type arguments.
func (e *Engine) String(id TypeId) string {
	info := e.Get(id)
	switch info.Kind {
	case KindStr:
		return fmt.Sprintf("str[%d]", info.StrLen)
	case KindStruct, KindEnum:
		if len(info.TypeArgs) == 0 {
			return info.DeclName
		}
		s := info.DeclName + "<"
		for i, a := range info.TypeArgs {
			if i > 0 {
				s += ", "
			}
			s += e.String(a)
		}
		return s + ">"
	case KindTuple:
		s := "("
		for i, el := range info.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String(el)
		}
		return s + ")"
	case KindArray:
		return fmt.Sprintf("[%s; %d]", e.String(info.Elem), info.Len)
	case KindPointer:
		return "&" + e.String(info.Elem)
	case KindGenericParam:
		return info.Param.Name
	case KindTraitAssocType:
		return fmt.Sprintf("<%s as %s>::%s", e.String(info.Elem), info.TraitName, info.AssocName)
	default:
		return info.Kind.String()
	}
}
