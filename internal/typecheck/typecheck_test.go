package typecheck

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/namespace"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

func u64Type() ast.TypeExpr { return &ast.NamedTypeExpr{Path: []string{"u64"}} }
func boolType() ast.TypeExpr { return &ast.NamedTypeExpr{Path: []string{"bool"}} }

func newChecker() (*Checker, *namespace.Module) {
	return New(types.New(), decl.New()), namespace.Root("root")
}

func TestSimpleFunctionChecksCleanly(t *testing.T) {
	c, mod := newChecker()
	fn := &ast.FuncDecl{
		Name:       "add_one",
		ReturnType: u64Type(),
		Params:     []ast.Param{{Name: "x", Type: u64Type()}},
		Body: &ast.Block{
			Implicit: &ast.BinaryExpr{Op: ast.OpAdd, Left: &ast.VarExpr{Path: []string{"x"}}, Right: &ast.IntLit{Value: 1}},
		},
	}
	f := &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{fn}}
	c.CheckFile(f, mod)
	res := c.Result()
	if len(res.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", res.Errors)
	}
}

func TestUnknownSymbolReportsRES001(t *testing.T) {
	c, mod := newChecker()
	fn := &ast.FuncDecl{
		Name:       "f",
		ReturnType: u64Type(),
		Body:       &ast.Block{Implicit: &ast.VarExpr{Path: []string{"nope"}}},
	}
	f := &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{fn}}
	c.CheckFile(f, mod)
	res := c.Result()
	if len(res.Errors) != 1 || res.Errors[0].Code != "RES001" {
		t.Fatalf("expected one RES001, got %v", res.Errors)
	}
}

func TestFunctionNameStyleWarning(t *testing.T) {
	c, mod := newChecker()
	fn := &ast.FuncDecl{Name: "AddOne", Body: &ast.Block{}}
	f := &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{fn}}
	c.CheckFile(f, mod)
	res := c.Result()
	if len(res.Warnings) != 1 || res.Warnings[0].Code != "STY001" {
		t.Fatalf("expected one STY001 warning, got %v", res.Warnings)
	}
}

func TestScriptRequiresExactlyOneMain(t *testing.T) {
	c, mod := newChecker()
	f := &ast.File{Kind: ast.KindScript, Decls: []ast.Decl{
		&ast.FuncDecl{Name: "helper", Body: &ast.Block{}},
	}}
	CheckProgram(c, mod, []*ast.File{f})
	res := c.Result()
	found := false
	for _, e := range res.Errors {
		if e.Code == "TYP007" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TYP007 for missing main, got %v", res.Errors)
	}
}

func TestPredicateMainMustReturnBool(t *testing.T) {
	c, mod := newChecker()
	f := &ast.File{Kind: ast.KindPredicate, Decls: []ast.Decl{
		&ast.FuncDecl{Name: "main", ReturnType: u64Type(), Body: &ast.Block{Implicit: &ast.IntLit{Value: 1}}},
	}}
	CheckProgram(c, mod, []*ast.File{f})
	res := c.Result()
	found := false
	for _, e := range res.Errors {
		if e.Code == "TYP006" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TYP006, got %v", res.Errors)
	}
}

func TestStorageReadInPureFunctionIsPUR001(t *testing.T) {
	c, mod := newChecker()
	mod.IsContract = true
	storage := &ast.StorageDecl{Fields: []ast.Field{{Name: "count", Type: u64Type()}}}
	fn := &ast.FuncDecl{
		Name:   "peek",
		Purity: ast.Pure,
		Body:   &ast.Block{Implicit: &ast.StorageReadExpr{Field: "count"}},
	}
	f := &ast.File{Kind: ast.KindContract, Decls: []ast.Decl{storage, fn}}
	c.CheckFile(f, mod)
	res := c.Result()
	found := false
	for _, e := range res.Errors {
		if e.Code == "PUR001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected PUR001, got %v", res.Errors)
	}
}

func TestStorageReadAllowedWhenDeclaredReads(t *testing.T) {
	c, mod := newChecker()
	mod.IsContract = true
	storage := &ast.StorageDecl{Fields: []ast.Field{{Name: "count", Type: u64Type()}}}
	fn := &ast.FuncDecl{
		Name:       "peek",
		Purity:     ast.Reads,
		ReturnType: u64Type(),
		Body:       &ast.Block{Implicit: &ast.StorageReadExpr{Field: "count"}},
	}
	f := &ast.File{Kind: ast.KindContract, Decls: []ast.Decl{storage, fn}}
	c.CheckFile(f, mod)
	res := c.Result()
	for _, e := range res.Errors {
		if e.Code == "PUR001" {
			t.Fatalf("did not expect PUR001, got %v", res.Errors)
		}
	}
}

func TestStorageReadAllowedWhenDeclaredWrites(t *testing.T) {
	c, mod := newChecker()
	mod.IsContract = true
	storage := &ast.StorageDecl{Fields: []ast.Field{{Name: "count", Type: u64Type()}}}
	fn := &ast.FuncDecl{
		Name:       "peek",
		Purity:     ast.Writes,
		ReturnType: u64Type(),
		Body:       &ast.Block{Implicit: &ast.StorageReadExpr{Field: "count"}},
	}
	f := &ast.File{Kind: ast.KindContract, Decls: []ast.Decl{storage, fn}}
	c.CheckFile(f, mod)
	res := c.Result()
	for _, e := range res.Errors {
		if e.Code == "PUR001" {
			t.Fatalf("did not expect PUR001, got %v", res.Errors)
		}
	}
}

func TestImportOfPrivateModuleIsRES003(t *testing.T) {
	c, mod := newChecker()
	hidden, err := mod.InsertSubmodule("hidden", ast.Private)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hidden.InsertSymbol("helper", &namespace.DeclRef{Kind: namespace.DeclFunc, Visibility: ast.Public})

	f := &ast.File{
		Kind:    ast.KindLibrary,
		Imports: []*ast.Import{{Path: []string{"hidden", "helper"}}},
	}
	c.CheckFile(f, mod)
	res := c.Result()
	if len(res.Errors) != 1 || res.Errors[0].Code != "RES003" {
		t.Fatalf("expected one RES003, got %v", res.Errors)
	}
}

func TestImportOfPrivateModuleItselfIsRES003(t *testing.T) {
	c, mod := newChecker()
	if _, err := mod.InsertSubmodule("hidden", ast.Private); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := &ast.File{
		Kind:    ast.KindLibrary,
		Imports: []*ast.Import{{Path: []string{"hidden"}}},
	}
	c.CheckFile(f, mod)
	res := c.Result()
	if len(res.Errors) != 1 || res.Errors[0].Code != "RES003" {
		t.Fatalf("expected one RES003, got %v", res.Errors)
	}
}

func TestImportOfPublicModuleIsAllowed(t *testing.T) {
	c, mod := newChecker()
	visible, err := mod.InsertSubmodule("visible", ast.Public)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	visible.InsertSymbol("helper", &namespace.DeclRef{Kind: namespace.DeclFunc, Visibility: ast.Public})

	f := &ast.File{
		Kind:    ast.KindLibrary,
		Imports: []*ast.Import{{Path: []string{"visible", "helper"}}},
	}
	c.CheckFile(f, mod)
	res := c.Result()
	for _, e := range res.Errors {
		if e.Code == "RES003" {
			t.Fatalf("did not expect RES003, got %v", res.Errors)
		}
	}
}

func TestMismatchedReturnTypeIsTYP001(t *testing.T) {
	c, mod := newChecker()
	fn := &ast.FuncDecl{
		Name:       "f",
		ReturnType: boolType(),
		Body:       &ast.Block{Implicit: &ast.IntLit{Value: 1}},
	}
	f := &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{fn}}
	c.CheckFile(f, mod)
	res := c.Result()
	found := false
	for _, e := range res.Errors {
		if e.Code == "TYP001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TYP001, got %v", res.Errors)
	}
}

func TestStructFieldAccessAndMismatch(t *testing.T) {
	c, mod := newChecker()
	st := &ast.StructDecl{Name: "Point", Fields: []ast.Field{{Name: "x", Type: u64Type()}, {Name: "y", Type: u64Type()}}}
	fn := &ast.FuncDecl{
		Name:       "get_x",
		ReturnType: u64Type(),
		Params:     []ast.Param{{Name: "p", Type: &ast.NamedTypeExpr{Path: []string{"Point"}}}},
		Body: &ast.Block{
			Implicit: &ast.FieldAccessExpr{X: &ast.VarExpr{Path: []string{"p"}}, Field: "x"},
		},
	}
	f := &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{st, fn}}
	c.CheckFile(f, mod)
	res := c.Result()
	if len(res.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", res.Errors)
	}
}

func TestTraitConstraintNotSatisfiedIsTRA002(t *testing.T) {
	c, mod := newChecker()
	trait := &ast.TraitDecl{Name: "Summable"}
	generic := &ast.FuncDecl{
		Name:       "sum_it",
		ReturnType: nil,
		Generics:   []ast.TypeParam{{Name: "T", Constraints: []string{"Summable"}}},
		Params:     []ast.Param{{Name: "x", Type: &ast.NamedTypeExpr{Path: []string{"T"}}}},
		Body:       &ast.Block{},
	}
	st := &ast.StructDecl{Name: "Widget"}
	caller := &ast.FuncDecl{
		Name: "use_it",
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ExprStmt{X: &ast.CallExpr{
				Func: &ast.VarExpr{Path: []string{"sum_it"}},
				Args: []ast.Expr{&ast.StructLitExpr{TypeName: "Widget"}},
			}},
		}},
	}
	f := &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{trait, generic, st, caller}}
	c.CheckFile(f, mod)
	res := c.Result()
	found := false
	for _, e := range res.Errors {
		if e.Code == "TRA002" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected TRA002, got %v", res.Errors)
	}
}
