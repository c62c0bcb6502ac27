package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/planning"
)

func u64Type() ast.TypeExpr { return &ast.NamedTypeExpr{Path: []string{"u64"}} }

func libraryWithAddOne() *ast.File {
	fn := &ast.FuncDecl{
		Name:       "add_one",
		Visibility: ast.Public,
		ReturnType: u64Type(),
		Params:     []ast.Param{{Name: "x", Type: u64Type()}},
		Body: &ast.Block{
			Implicit: &ast.BinaryExpr{
				Op:    ast.OpAdd,
				Left:  &ast.VarExpr{Path: []string{"x"}},
				Right: &ast.IntLit{Value: 1},
			},
		},
	}
	return &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{fn}}
}

func TestRunCompilesCleanLibraryThroughCodegen(t *testing.T) {
	p := New(nil)
	unit := planning.Unit{Name: "mylib"}

	res := p.Run(unit, []*ast.File{libraryWithAddOne()})

	require.True(t, res.Diagnostics.OK(), "unexpected errors: %v", res.Diagnostics.Errors)
	require.NotNil(t, res.Artifacts)
	require.Len(t, res.Artifacts.Functions, 1)
	assert.Equal(t, "add_one", res.Artifacts.Functions[0].Name)
	assert.NotEmpty(t, res.Artifacts.Functions[0].Ops)
}

func TestRunStopsAtS1WhenTypecheckFails(t *testing.T) {
	p := New(nil)
	fn := &ast.FuncDecl{
		Name:       "f",
		ReturnType: u64Type(),
		Body:       &ast.Block{Implicit: &ast.VarExpr{Path: []string{"nope"}}},
	}
	f := &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{fn}}

	res := p.Run(planning.Unit{Name: "badlib"}, []*ast.File{f})

	require.False(t, res.Diagnostics.OK())
	require.Nil(t, res.Artifacts)
	assert.Equal(t, "RES001", res.Diagnostics.Errors[0].Code)
}

func TestRunReportsMissingCompiledDependency(t *testing.T) {
	p := New(nil)
	unit := planning.Unit{Name: "app", Dependencies: []string{"lib"}}

	res := p.Run(unit, []*ast.File{libraryWithAddOne()})

	require.False(t, res.Diagnostics.OK())
	assert.Equal(t, "PLN002", res.Diagnostics.Errors[0].Code)
	assert.Nil(t, res.Artifacts)
}

func TestRunPlanGraftsDependencyNamespaceForDependent(t *testing.T) {
	p := New(nil)
	plan := &planning.Plan{Units: []planning.Unit{
		{Name: "lib"},
		{Name: "app", Dependencies: []string{"lib"}},
	}}

	callCount := map[string]int{}
	results := p.RunPlan(plan, func(unit planning.Unit) ([]*ast.File, error) {
		callCount[unit.Name]++
		return []*ast.File{libraryWithAddOne()}, nil
	})

	require.Len(t, results, 2)
	for _, r := range results {
		require.True(t, r.Diagnostics.OK(), "unit %q: %v", r.Unit.Name, r.Diagnostics.Errors)
	}
	assert.Equal(t, 1, callCount["lib"])
	assert.Equal(t, 1, callCount["app"])
}

func TestCheckRunsOnlyS1AndS2(t *testing.T) {
	p := New(nil)
	unit := planning.Unit{Name: "mylib"}

	res := p.Check(unit, []*ast.File{libraryWithAddOne()})

	require.True(t, res.Diagnostics.OK(), "unexpected errors: %v", res.Diagnostics.Errors)
	assert.Nil(t, res.Artifacts)
}

func TestRunPlanStopsAfterFirstFailingUnit(t *testing.T) {
	p := New(nil)
	plan := &planning.Plan{Units: []planning.Unit{
		{Name: "badlib"},
		{Name: "app", Dependencies: []string{"badlib"}},
	}}

	badFn := &ast.FuncDecl{Name: "f", ReturnType: u64Type(), Body: &ast.Block{Implicit: &ast.VarExpr{Path: []string{"nope"}}}}
	badFile := &ast.File{Kind: ast.KindLibrary, Decls: []ast.Decl{badFn}}

	results := p.RunPlan(plan, func(unit planning.Unit) ([]*ast.File, error) {
		return []*ast.File{badFile}, nil
	})

	require.Len(t, results, 1)
	assert.False(t, results[0].Diagnostics.OK())
}
