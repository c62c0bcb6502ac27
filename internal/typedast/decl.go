package typedast

import (
	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// Decl is a typed top-level or nested declaration.
type Decl interface {
	Node
	declNode()
}

// DeclBase is embedded by every concrete typed declaration.
type DeclBase struct {
	DSpan      Span
	Visibility ast.Visibility
}

func (d DeclBase) Span() ast.Span { return d.DSpan }
func (d DeclBase) declNode()      {}

// Param is a typed function parameter.
type Param struct {
	Name string
	Type types.TypeId
}

// FuncDecl is a typed function: parameters, generics, return type, purity,
// and body are all resolved (spec §3.3).
type FuncDecl struct {
	DeclBase
	Name        string
	TypeParams  []string
	Params      []Param
	ReturnType  types.TypeId
	Purity      ast.Purity
	ABISelector *uint64
	Body        *Block
}

// StorageDecl is a typed storage declaration (valid only in a contract).
type StorageDecl struct {
	DeclBase
	Fields []StorageField
}

// StorageField is one typed field of a storage declaration, with its
// initializer expression.
type StorageField struct {
	Name    string
	Type    types.TypeId
	Initial Expr
}

// ConstDecl is a typed module-level constant.
type ConstDecl struct {
	DeclBase
	Name  string
	Type  types.TypeId
	Value Expr
}
