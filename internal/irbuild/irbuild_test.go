package irbuild

import (
	"testing"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/typecheck"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

func intLit(v uint64) *typedast.IntLit {
	return &typedast.IntLit{ExprBase: typedast.ExprBase{Type: types.U64}, Value: v}
}

func varRef(t types.TypeId, name string) *typedast.Var {
	return &typedast.Var{ExprBase: typedast.ExprBase{Type: t}, Name: name}
}

func blockOf(implicit typedast.Expr, stmts ...typedast.Stmt) *typedast.Block {
	return &typedast.Block{Stmts: stmts, Implicit: implicit}
}

func buildOne(t *testing.T, fd *typedast.FuncDecl, otherDecls ...*typedast.FuncDecl) (*ir.Module, *types.Engine) {
	t.Helper()
	te := types.New()
	de := decl.New()
	te.SetAggregateFieldsFn(de.FieldTypes)
	file := &typecheck.CheckedFile{Kind: ast.KindScript, Funcs: append([]*typedast.FuncDecl{fd}, otherDecls...)}
	res := Build(ast.KindScript, "test", []*typecheck.CheckedFile{file}, te, de)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected build errors: %v", res.Errors)
	}
	return res.Value, te
}

func TestBuildSimpleReturn(t *testing.T) {
	fd := &typedast.FuncDecl{
		Name:       "main",
		ReturnType: types.U64,
		Body:       blockOf(intLit(42)),
	}
	m, _ := buildOne(t, fd)
	fn, ok := m.GetFunction("main")
	if !ok {
		t.Fatalf("main not found")
	}
	ret, ok := fn.Entry().Terminator().(*ir.Ret)
	if !ok {
		t.Fatalf("expected Ret terminator, got %T", fn.Entry().Terminator())
	}
	if ret.Value.Const == nil || ret.Value.Const.Int != 42 {
		t.Fatalf("expected ret 42, got %+v", ret.Value)
	}
}

func TestBuildLetAndReassign(t *testing.T) {
	fd := &typedast.FuncDecl{
		Name:       "f",
		ReturnType: types.U64,
		Body: blockOf(varRef(types.U64, "x"),
			&typedast.LetStmt{Name: "x", Type: types.U64, Value: intLit(1)},
			&typedast.AssignStmt{Target: "x", Value: &typedast.BinOp{
				ExprBase: typedast.ExprBase{Type: types.U64},
				Op:       ast.OpAdd, Left: varRef(types.U64, "x"), Right: intLit(1),
			}},
		),
	}
	m, te := buildOne(t, fd)
	if reports := ir.Verify(m, te); len(reports) != 0 {
		t.Fatalf("expected valid IR, got %v", reports)
	}
	fn, _ := m.GetFunction("f")
	if len(fn.Locals) != 1 || fn.Locals[0].Name != "x" {
		t.Fatalf("expected one local named x, got %v", fn.Locals)
	}
}

func TestBuildIfElse(t *testing.T) {
	fd := &typedast.FuncDecl{
		Name:       "f",
		Params:     []typedast.Param{{Name: "cond", Type: types.Bool}},
		ReturnType: types.U64,
		Body: blockOf(&typedast.If{
			ExprBase: typedast.ExprBase{Type: types.U64},
			Cond:     varRef(types.Bool, "cond"),
			Then:     blockOf(intLit(1)),
			Else:     blockOf(intLit(2)),
		}),
	}
	m, te := buildOne(t, fd)
	if reports := ir.Verify(m, te); len(reports) != 0 {
		t.Fatalf("expected valid IR, got %v", reports)
	}
	fn, _ := m.GetFunction("f")
	foundJoin := false
	for _, b := range fn.Blocks {
		if b.Label == "ifjoin" && len(b.Args) == 1 {
			foundJoin = true
		}
	}
	if !foundJoin {
		t.Fatalf("expected an ifjoin block with one arg, got %v", fn.Blocks)
	}
}

func TestBuildWhile(t *testing.T) {
	u64 := types.U64
	fd := &typedast.FuncDecl{
		Name:       "f",
		ReturnType: u64,
		Body: blockOf(varRef(u64, "i"),
			&typedast.LetStmt{Name: "i", Type: u64, Value: intLit(0)},
			&typedast.ExprStmt{Value: &typedast.While{
				ExprBase: typedast.ExprBase{Type: types.Unit},
				Cond: &typedast.BinOp{ExprBase: typedast.ExprBase{Type: types.Bool}, Op: ast.OpLt,
					Left: varRef(u64, "i"), Right: intLit(3)},
				Body: blockOf(nil, &typedast.AssignStmt{Target: "i", Value: &typedast.BinOp{
					ExprBase: typedast.ExprBase{Type: u64}, Op: ast.OpAdd,
					Left: varRef(u64, "i"), Right: intLit(1),
				}}),
			}},
		),
	}
	m, te := buildOne(t, fd)
	if reports := ir.Verify(m, te); len(reports) != 0 {
		t.Fatalf("expected valid IR, got %v", reports)
	}
	fn, _ := m.GetFunction("f")
	labels := map[string]bool{}
	for _, b := range fn.Blocks {
		labels[b.Label] = true
	}
	for _, want := range []string{"whilehead", "whilebody", "whileexit"} {
		if !labels[want] {
			t.Fatalf("expected block %q, got %v", want, labels)
		}
	}
}

func TestBuildMatchOverEnum(t *testing.T) {
	te := types.New()
	de := decl.New()
	te.SetAggregateFieldsFn(de.FieldTypes)
	enumID := de.InsertEnum(&decl.EnumDecl{
		Name: "Option",
		Variants: []decl.Variant{
			{Name: "None", Type: types.Unit},
			{Name: "Some", Type: types.U64},
		},
	})
	optTy := te.Enum(enumID, "Option")

	fd := &typedast.FuncDecl{
		Name:       "f",
		Params:     []typedast.Param{{Name: "o", Type: optTy}},
		ReturnType: types.U64,
		Body: blockOf(&typedast.Match{
			ExprBase:  typedast.ExprBase{Type: types.U64},
			Scrutinee: varRef(optTy, "o"),
			Arms: []typedast.MatchArm{
				{
					Pattern: &typedast.CtorPattern{PatternBase: typedast.PatternBase{Type: optTy}, EnumName: "Option", Variant: "None"},
					Body:    intLit(0),
				},
				{
					Pattern: &typedast.CtorPattern{
						PatternBase: typedast.PatternBase{Type: optTy}, EnumName: "Option", Variant: "Some",
						Args: []typedast.Pattern{&typedast.VarPattern{PatternBase: typedast.PatternBase{Type: types.U64}, Name: "x"}},
					},
					Body: varRef(types.U64, "x"),
				},
			},
		}),
	}

	file := &typecheck.CheckedFile{Kind: ast.KindScript, Funcs: []*typedast.FuncDecl{fd}}
	res := Build(ast.KindScript, "test", []*typecheck.CheckedFile{file}, te, de)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected build errors: %v", res.Errors)
	}
	if reports := ir.Verify(res.Value, te); len(reports) != 0 {
		t.Fatalf("expected valid IR, got %v", reports)
	}
	fn, _ := res.Value.GetFunction("f")
	foundJoin := false
	for _, b := range fn.Blocks {
		if b.Label == "matchjoin" {
			foundJoin = true
		}
	}
	if !foundJoin {
		t.Fatalf("expected a matchjoin block, got %v", fn.Blocks)
	}
}

func TestBuildStructLiteralFieldAccess(t *testing.T) {
	te := types.New()
	de := decl.New()
	te.SetAggregateFieldsFn(de.FieldTypes)
	structID := de.InsertStruct(&decl.StructDecl{
		Name: "Point",
		Fields: []decl.Field{
			{Name: "x", Type: types.U64},
			{Name: "y", Type: types.U64},
		},
	})
	pointTy := te.Struct(structID, "Point")

	fd := &typedast.FuncDecl{
		Name:       "f",
		ReturnType: types.U64,
		Body: blockOf(
			&typedast.FieldAccess{ExprBase: typedast.ExprBase{Type: types.U64}, Struct: varRef(pointTy, "p"), Field: "x"},
			&typedast.LetStmt{Name: "p", Type: pointTy, Value: &typedast.StructLit{
				ExprBase: typedast.ExprBase{Type: pointTy}, TypeName: "Point",
				Fields: []typedast.StructLitField{
					{Name: "x", Value: intLit(10)},
					{Name: "y", Value: intLit(20)},
				},
			}},
		),
	}

	file := &typecheck.CheckedFile{Kind: ast.KindScript, Funcs: []*typedast.FuncDecl{fd}}
	res := Build(ast.KindScript, "test", []*typecheck.CheckedFile{file}, te, de)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected build errors: %v", res.Errors)
	}
	if reports := ir.Verify(res.Value, te); len(reports) != 0 {
		t.Fatalf("expected valid IR, got %v", reports)
	}
}

func TestBuildGenericMonomorphizationDedup(t *testing.T) {
	te := types.New()
	de := decl.New()
	te.SetAggregateFieldsFn(de.FieldTypes)
	tParam := te.GenericParam("T")

	identity := &typedast.FuncDecl{
		Name:       "identity",
		TypeParams: []string{"T"},
		Params:     []typedast.Param{{Name: "x", Type: tParam}},
		ReturnType: tParam,
		Body:       blockOf(varRef(tParam, "x")),
	}
	main := &typedast.FuncDecl{
		Name:       "main",
		ReturnType: types.U64,
		Body: blockOf(varRef(types.U64, "a"),
			&typedast.LetStmt{Name: "a", Type: types.U64, Value: &typedast.Call{
				ExprBase: typedast.ExprBase{Type: types.U64}, Callee: "identity", Args: []typedast.Expr{intLit(1)},
			}},
			&typedast.LetStmt{Name: "b", Type: types.U64, Value: &typedast.Call{
				ExprBase: typedast.ExprBase{Type: types.U64}, Callee: "identity", Args: []typedast.Expr{intLit(2)},
			}},
		),
	}

	file := &typecheck.CheckedFile{Kind: ast.KindScript, Funcs: []*typedast.FuncDecl{main, identity}}
	res := Build(ast.KindScript, "test", []*typecheck.CheckedFile{file}, te, de)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected build errors: %v", res.Errors)
	}
	if reports := ir.Verify(res.Value, te); len(reports) != 0 {
		t.Fatalf("expected valid IR, got %v", reports)
	}
	count := 0
	for _, fn := range res.Value.Functions {
		if fn.Name == "identity$u64" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one monomorphized identity$u64, got %d (functions: %v)", count, funcNames(res.Value))
	}
}

func funcNames(m *ir.Module) []string {
	names := make([]string, len(m.Functions))
	for i, f := range m.Functions {
		names[i] = f.Name
	}
	return names
}
