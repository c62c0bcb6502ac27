package cfa

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

func intLit(v uint64, ty types.TypeId) *typedast.IntLit {
	return &typedast.IntLit{ExprBase: typedast.ExprBase{Type: ty}, Value: v}
}

func TestFunctionThatAlwaysReturnsIsClean(t *testing.T) {
	te := types.New()
	fn := &typedast.FuncDecl{
		Name:       "f",
		ReturnType: types.U64,
		Body: &typedast.Block{
			Stmts: []typedast.Stmt{
				&typedast.ExprStmt{Value: &typedast.Return{Value: intLit(1, types.U64)}},
			},
		},
	}
	reports := AnalyzeFunction(fn, te)
	if len(reports) != 0 {
		t.Fatalf("expected no reports, got %v", reports)
	}
}

func TestFunctionWithMissingReturnOnOneBranch(t *testing.T) {
	te := types.New()
	fn := &typedast.FuncDecl{
		Name:       "f",
		ReturnType: types.U64,
		Body: &typedast.Block{
			Stmts: []typedast.Stmt{
				&typedast.ExprStmt{Value: &typedast.If{
					Cond: intLit(1, types.Bool),
					Then: &typedast.Block{Stmts: []typedast.Stmt{
						&typedast.ExprStmt{Value: &typedast.Return{Value: intLit(1, types.U64)}},
					}},
					Else: &typedast.Block{},
				}},
			},
		},
	}
	reports := AnalyzeFunction(fn, te)
	if len(reports) == 0 {
		t.Fatalf("expected PathDoesNotReturn report for the empty else branch")
	}
	for _, r := range reports {
		if r.Code != "CFA001" {
			t.Fatalf("expected CFA001, got %s", r.Code)
		}
	}
}

func TestUnitReturningFunctionNeedsNoExplicitReturn(t *testing.T) {
	te := types.New()
	fn := &typedast.FuncDecl{
		Name:       "f",
		ReturnType: types.Unit,
		Body:       &typedast.Block{},
	}
	reports := AnalyzeFunction(fn, te)
	if len(reports) != 0 {
		t.Fatalf("expected no reports for a unit-returning function, got %v", reports)
	}
}

func TestDeadCodeAfterReturn(t *testing.T) {
	fn := &typedast.FuncDecl{
		Name: "f",
		Body: &typedast.Block{
			Stmts: []typedast.Stmt{
				&typedast.ExprStmt{Value: &typedast.Return{}},
				&typedast.ExprStmt{Value: intLit(1, types.U64)},
			},
		},
	}
	reports := DeadCode(fn)
	if len(reports) != 1 || reports[0].Code != "CFA002" {
		t.Fatalf("expected one CFA002 report, got %v", reports)
	}
}
