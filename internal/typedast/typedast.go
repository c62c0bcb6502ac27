// Package typedast mirrors internal/ast but with every node carrying a
// resolved type id (spec §3.3): it is the output of internal/typecheck and
// the input to internal/cfa and internal/irbuild. Grounded on the teacher's
// internal/typedast package's embedding idiom (a common TypedExpr base
// struct mirroring each untyped node), generalized from the teacher's
// structural Type/EffectRow fields to our interned types.TypeId.
package typedast

import (
	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// Node is the base of every typed AST node: expression, declaration,
// side-effect, or implicit-return-expression (spec §3.3).
type Node interface {
	Span() ast.Span
}

// Expr is a typed expression; every expression carries a return type id.
type Expr interface {
	Node
	ReturnType() types.TypeId
	exprNode()
}

// ExprBase is embedded by every concrete typed expression.
type ExprBase struct {
	ESpan Span
	Type  types.TypeId
}

// Span aliases ast.Span so callers don't need to import internal/ast just
// to build one.
type Span = ast.Span

func (e ExprBase) Span() ast.Span          { return e.ESpan }
func (e ExprBase) ReturnType() types.TypeId { return e.Type }
func (e ExprBase) exprNode()               {}

// Var is a resolved variable reference (a local, parameter, or constant).
type Var struct {
	ExprBase
	Name string
}

// IntLit is a typed integer literal; its Type field (inherited from
// ExprBase) records which fixed-width unsigned type the literal decayed to.
type IntLit struct {
	ExprBase
	Value uint64
}

// BoolLit is a typed boolean literal.
type BoolLit struct {
	ExprBase
	Value bool
}

// StringLit is a typed fixed-length string literal.
type StringLit struct {
	ExprBase
	Value string
}

// Call is a resolved function call: Callee names the fully-qualified
// function this call binds to after overload/generic resolution.
type Call struct {
	ExprBase
	Callee string
	Args   []Expr
}

// FieldAccess reads a named field off a struct-typed expression.
type FieldAccess struct {
	ExprBase
	Struct Expr
	Field  string
}

// TupleIndex reads a positional element off a tuple-typed expression.
type TupleIndex struct {
	ExprBase
	Tuple Expr
	Index int
}

// StructLit constructs a struct value field by field, in declaration order.
type StructLit struct {
	ExprBase
	TypeName string
	Fields   []StructLitField
}

// StructLitField is one field initializer within a StructLit.
type StructLitField struct {
	Name  string
	Value Expr
}

// TupleLit constructs a tuple value.
type TupleLit struct {
	ExprBase
	Elems []Expr
}

// EnumInstantiation constructs an enum value for one variant, with an
// optional payload expression.
type EnumInstantiation struct {
	ExprBase
	EnumName string
	Variant  string
	Payload  Expr // nil for a unit variant
}

// BinOp is a typed binary operation; Op mirrors ast.BinOp's operator set.
type BinOp struct {
	ExprBase
	Op          ast.BinOp
	Left, Right Expr
}

// UnOp is a typed unary operation.
type UnOp struct {
	ExprBase
	Op      ast.UnOp
	Operand Expr
}

// If is a typed conditional expression; Else is nil when the surface syntax
// omitted it (implying unit type, matching Type).
type If struct {
	ExprBase
	Cond Expr
	Then *Block
	Else *Block
}

// While is a typed while loop; loops are always unit-typed.
type While struct {
	ExprBase
	Cond Expr
	Body *Block
}

// Match is a typed pattern-match expression; internal/irbuild lowers its
// Arms as a linear chain of per-arm tests.
type Match struct {
	ExprBase
	Scrutinee Expr
	Arms      []MatchArm
}

// MatchArm is one typed match arm.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // nil when absent
	Body    Expr
}

// Return is an explicit `return` expression; always unit-typed (spec §3.4's
// ret terminator is what it lowers to, not an expression in IR).
type Return struct {
	ExprBase
	Value Expr // nil for a bare `return;`
}

// StorageRead reads a storage field's current value.
type StorageRead struct {
	ExprBase
	Field string
}

// AsmBlock is an inline-asm escape hatch; typed as opaque register output.
type AsmBlock struct {
	ExprBase
	Text string
}

// Stmt is a typed statement within a Block.
type Stmt interface {
	Node
	stmtNode()
}

// StmtBase is embedded by every concrete typed statement.
type StmtBase struct{ SSpan Span }

func (s StmtBase) Span() ast.Span { return s.SSpan }
func (s StmtBase) stmtNode()      {}

// LetStmt binds a local variable.
type LetStmt struct {
	StmtBase
	Name  string
	Type  types.TypeId
	Value Expr
}

// ExprStmt evaluates an expression for effect, discarding its value.
type ExprStmt struct {
	StmtBase
	Value Expr
}

// AssignStmt reassigns an existing local or storage field.
type AssignStmt struct {
	StmtBase
	Target string
	Value  Expr
}

// Block is a typed code block: ordered statements plus an optional final
// implicit-return expression, which determines the block's own type.
type Block struct {
	BSpan    Span
	Stmts    []Stmt
	Implicit Expr // nil => unit-typed block
}

func (b *Block) Span() ast.Span { return b.BSpan }

// Type returns the block's own type: the implicit-return expression's type,
// or types.Unit if there is none.
func (b *Block) Type() types.TypeId {
	if b.Implicit != nil {
		return b.Implicit.ReturnType()
	}
	return types.Unit
}
