package ast

// Pattern is a match-arm pattern (spec §4.3 match lowering,
// §4.4.2 decision-tree compilation consumes these).
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern matches anything and binds nothing (`_`).
type WildcardPattern struct{ PSpan Span }

func (p *WildcardPattern) Span() Span  { return p.PSpan }
func (p *WildcardPattern) patternNode() {}

// VarPattern matches anything and binds it to a name.
type VarPattern struct {
	Name  string
	PSpan Span
}

func (p *VarPattern) Span() Span  { return p.PSpan }
func (p *VarPattern) patternNode() {}

// LitPattern matches a literal value exactly.
type LitPattern struct {
	Value Expr // IntLit / BoolLit / StringLit
	PSpan Span
}

func (p *LitPattern) Span() Span  { return p.PSpan }
func (p *LitPattern) patternNode() {}

// CtorPattern matches an enum variant, binding its payload sub-patterns.
type CtorPattern struct {
	EnumName string
	Variant  string
	Args     []Pattern
	PSpan    Span
}

func (p *CtorPattern) Span() Span  { return p.PSpan }
func (p *CtorPattern) patternNode() {}

// StructPattern destructures a struct's fields.
type StructPattern struct {
	TypeName string
	Fields   []StructPatternField
	PSpan    Span
}

type StructPatternField struct {
	Name    string
	Pattern Pattern
}

func (p *StructPattern) Span() Span  { return p.PSpan }
func (p *StructPattern) patternNode() {}

// TuplePattern destructures a tuple.
type TuplePattern struct {
	Elems []Pattern
	PSpan Span
}

func (p *TuplePattern) Span() Span  { return p.PSpan }
func (p *TuplePattern) patternNode() {}
