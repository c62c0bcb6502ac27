package ast

// Expr is any parse-tree expression node (spec §3.3: "A typed AST node is
// one of: expression, declaration, side-effect, or implicit-return-
// expression" — this file covers the untyped mirror of the first and
// fourth of those).
type Expr interface {
	Node
	exprNode()
}

// Block is an ordered sequence of statements with an optional trailing
// implicit-return expression (spec §3.3, §4.3 "implicit return").
type Block struct {
	Stmts      []Stmt
	Implicit   Expr // may be nil
	BSpan      Span
}

func (b *Block) Span() Span  { return b.BSpan }
func (b *Block) exprNode()   {}

// Stmt is a side-effecting statement: a let-binding, a bare expression
// evaluated for effect, or an assignment.
type Stmt interface {
	Node
	stmtNode()
}

// LetStmt binds a local variable, with an optional declared type.
type LetStmt struct {
	Name   string
	Type   TypeExpr // nil if inferred
	Value  Expr
	SSpan  Span
}

func (s *LetStmt) Span() Span { return s.SSpan }
func (s *LetStmt) stmtNode()  {}

// ExprStmt evaluates an expression purely for its side effect.
type ExprStmt struct {
	X     Expr
	SSpan Span
}

func (s *ExprStmt) Span() Span { return s.SSpan }
func (s *ExprStmt) stmtNode()  {}

// AssignStmt assigns to a local variable or storage path.
type AssignStmt struct {
	Target Expr
	Value  Expr
	SSpan  Span
}

func (s *AssignStmt) Span() Span { return s.SSpan }
func (s *AssignStmt) stmtNode()  {}

// IntLit, BoolLit, StringLit, ByteLit, B256Lit are literal expressions.
type IntLit struct {
	Value uint64
	ESpan Span
}

func (e *IntLit) Span() Span { return e.ESpan }
func (e *IntLit) exprNode()  {}

type BoolLit struct {
	Value bool
	ESpan Span
}

func (e *BoolLit) Span() Span { return e.ESpan }
func (e *BoolLit) exprNode()  {}

type StringLit struct {
	Value string
	ESpan Span
}

func (e *StringLit) Span() Span { return e.ESpan }
func (e *StringLit) exprNode()  {}

// UnitLit is the literal `()`.
type UnitLit struct {
	ESpan Span
}

func (e *UnitLit) Span() Span { return e.ESpan }
func (e *UnitLit) exprNode()  {}

// VarExpr references a name resolved by call-path (spec §4.1: "a::b::c").
type VarExpr struct {
	Path  []string
	ESpan Span
}

func (e *VarExpr) Span() Span { return e.ESpan }
func (e *VarExpr) exprNode()  {}

// CallExpr applies a function, with optional turbofish-explicit generic
// arguments (spec §4.1 step 4).
type CallExpr struct {
	Func        Expr
	TypeArgs    []TypeExpr // explicit turbofish args, empty if none given
	Args        []Expr
	ESpan       Span
}

func (e *CallExpr) Span() Span { return e.ESpan }
func (e *CallExpr) exprNode()  {}

// FieldAccessExpr is `x.field`.
type FieldAccessExpr struct {
	X     Expr
	Field string
	ESpan Span
}

func (e *FieldAccessExpr) Span() Span { return e.ESpan }
func (e *FieldAccessExpr) exprNode()  {}

// TupleIndexExpr is `x.0`.
type TupleIndexExpr struct {
	X     Expr
	Index int
	ESpan Span
}

func (e *TupleIndexExpr) Span() Span { return e.ESpan }
func (e *TupleIndexExpr) exprNode()  {}

// StructLitExpr constructs a named aggregate value.
type StructLitExpr struct {
	TypeName string
	Fields   []StructLitField
	ESpan    Span
}

type StructLitField struct {
	Name  string
	Value Expr
}

func (e *StructLitExpr) Span() Span { return e.ESpan }
func (e *StructLitExpr) exprNode()  {}

// TupleLitExpr constructs a tuple value.
type TupleLitExpr struct {
	Elems []Expr
	ESpan Span
}

func (e *TupleLitExpr) Span() Span { return e.ESpan }
func (e *TupleLitExpr) exprNode()  {}

// BinOp identifies a binary operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Op    BinOp
	Left  Expr
	Right Expr
	ESpan Span
}

func (e *BinaryExpr) Span() Span { return e.ESpan }
func (e *BinaryExpr) exprNode()  {}

// UnOp identifies a unary operator.
type UnOp int

const (
	OpNeg UnOp = iota
	OpNot
)

type UnaryExpr struct {
	Op    UnOp
	X     Expr
	ESpan Span
}

func (e *UnaryExpr) Span() Span { return e.ESpan }
func (e *UnaryExpr) exprNode()  {}

// IfExpr is `if cond { then } [else { else }]`, usable as a value when both
// arms are present (spec §4.3 "if/else with value").
type IfExpr struct {
	Cond  Expr
	Then  *Block
	Else  *Block // nil if there is no else branch
	ESpan Span
}

func (e *IfExpr) Span() Span { return e.ESpan }
func (e *IfExpr) exprNode()  {}

// WhileExpr is `while cond { body }`, always of unit type (spec §4.3).
type WhileExpr struct {
	Cond  Expr
	Body  *Block
	ESpan Span
}

func (e *WhileExpr) Span() Span { return e.ESpan }
func (e *WhileExpr) exprNode()  {}

// MatchExpr is a pattern match over a scrutinee (spec §4.3: "lowered to a
// decision tree of conditional branches").
type MatchExpr struct {
	Scrutinee Expr
	Arms      []MatchArm
	ESpan     Span
}

func (e *MatchExpr) Span() Span { return e.ESpan }
func (e *MatchExpr) exprNode()  {}

type MatchArm struct {
	Pattern Pattern
	Guard   Expr // nil if unguarded
	Body    Expr
}

// ReturnExpr is an explicit `return expr;` (spec §4.2 "return-expressions
// become return nodes that do not step forward").
type ReturnExpr struct {
	Value Expr // nil for `return;` (unit)
	ESpan Span
}

func (e *ReturnExpr) Span() Span { return e.ESpan }
func (e *ReturnExpr) exprNode()  {}

// StorageReadExpr reads a field of the contract's storage declaration.
type StorageReadExpr struct {
	Field string
	ESpan Span
}

func (e *StorageReadExpr) Span() Span { return e.ESpan }
func (e *StorageReadExpr) exprNode()  {}

// AsmBlockExpr is an inline-assembly escape hatch (spec §3.4 "asm-block
// escape"); the core does not interpret its contents beyond its declared
// output type, passing it through to code generation verbatim.
type AsmBlockExpr struct {
	Args     []string
	Body     string
	RetType  TypeExpr
	ESpan    Span
}

func (e *AsmBlockExpr) Span() Span { return e.ESpan }
func (e *AsmBlockExpr) exprNode()  {}
