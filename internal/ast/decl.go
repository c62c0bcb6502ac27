package ast

// Decl is any top-level or module-level declaration.
type Decl interface {
	Node
	declNode()
}

// TypeExpr is unresolved parse-tree type syntax; the type checker (S1)
// resolves each TypeExpr to an interned types.TypeId.
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedTypeExpr refers to a primitive or a named aggregate/trait-associated
// type, optionally applied to generic type arguments.
type NamedTypeExpr struct {
	Path     []string
	TypeArgs []TypeExpr
	TSpan    Span
}

func (t *NamedTypeExpr) Span() Span   { return t.TSpan }
func (t *NamedTypeExpr) typeExprNode() {}

// TupleTypeExpr is `(T1, T2, ...)`.
type TupleTypeExpr struct {
	Elems []TypeExpr
	TSpan Span
}

func (t *TupleTypeExpr) Span() Span   { return t.TSpan }
func (t *TupleTypeExpr) typeExprNode() {}

// ArrayTypeExpr is `[T; N]`.
type ArrayTypeExpr struct {
	Elem  TypeExpr
	Len   int
	TSpan Span
}

func (t *ArrayTypeExpr) Span() Span   { return t.TSpan }
func (t *ArrayTypeExpr) typeExprNode() {}

// PtrTypeExpr is `*T` (used internally after argument demotion; also valid
// surface syntax in low-level/asm contexts).
type PtrTypeExpr struct {
	Elem  TypeExpr
	TSpan Span
}

func (t *PtrTypeExpr) Span() Span   { return t.TSpan }
func (t *PtrTypeExpr) typeExprNode() {}

// Param is one function parameter.
type Param struct {
	Name    string
	Type    TypeExpr
	PSpan   Span
}

// TypeParam is one generic type parameter with its trait-constraint set.
type TypeParam struct {
	Name        string
	Constraints []string // trait names this parameter is bound by
	PSpan       Span
}

// FuncDecl is a function declaration (spec §3.3).
type FuncDecl struct {
	Name       string
	Visibility Visibility
	Generics   []TypeParam
	Params     []Param
	ReturnType TypeExpr // nil means unit
	Purity     Purity
	Body       *Block
	DSpan      Span
}

func (d *FuncDecl) Span() Span  { return d.DSpan }
func (d *FuncDecl) declNode()   {}

// Field is one struct field or enum variant payload.
type Field struct {
	Name       string
	Type       TypeExpr
	Visibility Visibility
}

// StructDecl declares a named aggregate with an ordered field list.
type StructDecl struct {
	Name       string
	Visibility Visibility
	Generics   []TypeParam
	Fields     []Field
	DSpan      Span
}

func (d *StructDecl) Span() Span { return d.DSpan }
func (d *StructDecl) declNode()  {}

// EnumDecl declares a tagged-union named aggregate; each variant carries at
// most one payload type (use a TupleTypeExpr for multiple fields).
type EnumDecl struct {
	Name       string
	Visibility Visibility
	Generics   []TypeParam
	Variants   []Field
	DSpan      Span
}

func (d *EnumDecl) Span() Span { return d.DSpan }
func (d *EnumDecl) declNode()  {}

// TraitDecl declares a trait (a set of method signatures a type may
// implement, used purely for constraint-checking at S1 — the core does
// not support dynamic trait-object dispatch).
type TraitDecl struct {
	Name    string
	Methods []FuncDecl // bodies empty for abstract methods
	DSpan   Span
}

func (d *TraitDecl) Span() Span { return d.DSpan }
func (d *TraitDecl) declNode()  {}

// ImplDecl implements a trait (or an inherent impl when Trait == "") for a
// concrete or generic type.
type ImplDecl struct {
	Trait    string // empty for an inherent impl block
	Generics []TypeParam
	ForType  TypeExpr
	Methods  []*FuncDecl
	DSpan    Span
}

func (d *ImplDecl) Span() Span { return d.DSpan }
func (d *ImplDecl) declNode()  {}

// ConstDecl is a compile-time constant declaration.
type ConstDecl struct {
	Name       string
	Visibility Visibility
	Type       TypeExpr
	Value      Expr
	DSpan      Span
}

func (d *ConstDecl) Span() Span { return d.DSpan }
func (d *ConstDecl) declNode()  {}

// StorageDecl is a contract's single storage declaration (spec §3.2: "at
// most one storage declaration (valid only for contracts)").
type StorageDecl struct {
	Fields []Field
	DSpan  Span
}

func (d *StorageDecl) Span() Span { return d.DSpan }
func (d *StorageDecl) declNode()  {}

// ModDecl declares a submodule inserted write-once per name (spec §3.2).
// Visibility gates whether a `use` from outside the declaring module may
// name this submodule at all (spec §7: "import of private module").
type ModDecl struct {
	Name       string
	Visibility Visibility
	DSpan      Span
}

func (d *ModDecl) Span() Span { return d.DSpan }
func (d *ModDecl) declNode()  {}
