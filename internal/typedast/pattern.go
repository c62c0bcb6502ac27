package typedast

import "github.com/FuelLabs/sway-core-go/internal/types"

// Pattern is a typed match-arm pattern, consumed by internal/irbuild's
// linear per-arm match lowering.
type Pattern interface {
	Node
	PatternType() types.TypeId
	patternNode()
}

// PatternBase is embedded by every concrete typed pattern.
type PatternBase struct {
	PSpan Span
	Type  types.TypeId
}

func (p PatternBase) Span() Span              { return p.PSpan }
func (p PatternBase) PatternType() types.TypeId { return p.Type }
func (p PatternBase) patternNode()             {}

// WildcardPattern matches anything, binding nothing.
type WildcardPattern struct{ PatternBase }

// VarPattern matches anything, binding it to Name.
type VarPattern struct {
	PatternBase
	Name string
}

// LitPattern matches a literal value.
type LitPattern struct {
	PatternBase
	Value Expr
}

// CtorPattern matches an enum variant, recursively destructuring its
// payload.
type CtorPattern struct {
	PatternBase
	EnumName string
	Variant  string
	Args     []Pattern
}

// StructPattern destructures a struct's fields.
type StructPattern struct {
	PatternBase
	TypeName string
	Fields   []StructPatternField
}

// StructPatternField is one field within a StructPattern.
type StructPatternField struct {
	Name    string
	Pattern Pattern
}

// TuplePattern destructures a tuple.
type TuplePattern struct {
	PatternBase
	Elems []Pattern
}
