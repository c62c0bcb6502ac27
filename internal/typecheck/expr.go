package typecheck

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/decl"
	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/namespace"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// checkExpr bidirectionally checks e: expected carries the type context
// propagates downward (literal decay, call-argument unification, return
// unification per spec §4.1 step 3); pass types.ErrorRecovery when there is
// no useful expectation — it is never itself flagged as a mismatch; an
// expression's own type is recoverable unconditionally from its returned
// node afterward.
func (c *Checker) checkExpr(e ast.Expr, cc *ctx, expected types.TypeId) typedast.Expr {
	switch v := e.(type) {
	case *ast.IntLit:
		t := types.U64
		if cc.chk.Types.IsNumeric(expected) {
			t = expected
		}
		return &typedast.IntLit{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: t}, Value: v.Value}

	case *ast.BoolLit:
		return &typedast.BoolLit{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.Bool}, Value: v.Value}

	case *ast.StringLit:
		t := cc.chk.Types.Str(len(v.Value))
		return &typedast.StringLit{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: t}, Value: v.Value}

	case *ast.UnitLit:
		return &typedast.TupleLit{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.Unit}}

	case *ast.VarExpr:
		return c.checkVar(v, cc)

	case *ast.CallExpr:
		return c.checkCall(v, cc)

	case *ast.FieldAccessExpr:
		return c.checkFieldAccess(v, cc)

	case *ast.TupleIndexExpr:
		return c.checkTupleIndex(v, cc)

	case *ast.StructLitExpr:
		return c.checkStructLit(v, cc)

	case *ast.TupleLitExpr:
		elems := make([]typedast.Expr, len(v.Elems))
		elemTypes := make([]types.TypeId, len(v.Elems))
		for i, el := range v.Elems {
			elems[i] = c.checkExpr(el, cc, types.ErrorRecovery)
			elemTypes[i] = elems[i].ReturnType()
		}
		t := cc.chk.Types.Tuple(elemTypes...)
		return &typedast.TupleLit{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: t}, Elems: elems}

	case *ast.BinaryExpr:
		return c.checkBinary(v, cc)

	case *ast.UnaryExpr:
		return c.checkUnary(v, cc)

	case *ast.IfExpr:
		return c.checkIf(v, cc, expected)

	case *ast.WhileExpr:
		cond := c.checkExpr(v.Cond, cc, types.Bool)
		c.expectType(cond.ReturnType(), types.Bool, v.Cond.Span(), "while condition")
		body := c.checkBlock(v.Body, cc, types.ErrorRecovery)
		return &typedast.While{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.Unit}, Cond: cond, Body: body}

	case *ast.MatchExpr:
		return c.checkMatch(v, cc, expected)

	case *ast.ReturnExpr:
		var val typedast.Expr
		if v.Value != nil {
			val = c.checkExpr(v.Value, cc, cc.returnType)
			c.expectType(val.ReturnType(), cc.returnType, v.Span(), fmt.Sprintf("return value of %q", cc.fnName))
		}
		return &typedast.Return{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.Unit}, Value: val}

	case *ast.StorageReadExpr:
		return c.checkStorageRead(v, cc)

	case *ast.AsmBlockExpr:
		t := c.resolveType(v.RetType, cc.module, cc.generics)
		return &typedast.AsmBlock{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: t}, Text: v.Body}

	default:
		c.errf(errors.INT001, errors.PhaseInternal, fmt.Sprintf("unexpected expression %T", e), e.Span(), nil)
		return &typedast.Var{ExprBase: typedast.ExprBase{ESpan: e.Span(), Type: types.ErrorRecovery}, Name: "<error>"}
	}
}

// expectType records a TYP001 mismatch unless either side is the
// error-recovery sentinel (already-reported failures shouldn't cascade,
// spec §4.1 failure semantics) or the two ids are equal.
func (c *Checker) expectType(got, want types.TypeId, span ast.Span, what string) {
	if want == types.ErrorRecovery || got == types.ErrorRecovery || types.Equal(got, want) {
		return
	}
	c.errf(errors.TYP001, errors.PhaseTypecheck,
		fmt.Sprintf("%s: expected %s, got %s", what, c.Types.String(want), c.Types.String(got)), span,
		map[string]any{"want": c.Types.String(want), "got": c.Types.String(got)})
}

func (c *Checker) checkVar(v *ast.VarExpr, cc *ctx) typedast.Expr {
	if len(v.Path) == 1 {
		if t, ok := cc.env.lookup(v.Path[0]); ok {
			return &typedast.Var{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: t}, Name: v.Path[0]}
		}
	}
	target, name, err := resolveCallPath(cc.module, v.Path)
	if err != nil {
		c.errf(errors.RES001, errors.PhaseResolve, err.Error(), v.Span(), nil)
		return &typedast.Var{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Name: name}
	}
	ref, ok := target.Lookup(name)
	if !ok {
		c.errf(errors.RES001, errors.PhaseResolve, fmt.Sprintf("unknown symbol %q", name), v.Span(), map[string]any{"name": name})
		return &typedast.Var{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Name: name}
	}
	switch ref.Kind {
	case namespace.DeclConst:
		return &typedast.Var{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: ref.Const.Type}, Name: name}
	case namespace.DeclFunc:
		return &typedast.Var{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Name: name}
	default:
		c.errf(errors.TYP002, errors.PhaseTypecheck, fmt.Sprintf("%q does not name a value", name), v.Span(), nil)
		return &typedast.Var{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Name: name}
	}
}

// checkCall resolves the callee by call path, checks arity, checks each
// argument bidirectionally against the callee's declared parameter types,
// and — when a parameter type is a generic placeholder — checks the trait
// constraints carried on that placeholder against the concrete argument
// type (spec §4.1 step 5). Generic functions are type-checked once against
// their own GenericParam placeholders; per-call-site specialization of the
// body is internal/irbuild's job (see DESIGN.md), so this does not build a
// separate monomorphized declaration the way a struct/enum instantiation
// does.
func (c *Checker) checkCall(v *ast.CallExpr, cc *ctx) typedast.Expr {
	callee, ok := v.Func.(*ast.VarExpr)
	if !ok {
		c.errf(errors.INT001, errors.PhaseInternal, "call target must be a name", v.Span(), nil)
		return c.errExpr(v.Span())
	}
	target, name, err := resolveCallPath(cc.module, callee.Path)
	if err != nil {
		c.errf(errors.RES001, errors.PhaseResolve, err.Error(), v.Span(), nil)
		return c.errExpr(v.Span())
	}
	ref, ok := target.Lookup(name)
	if !ok || ref.Kind != namespace.DeclFunc {
		c.errf(errors.RES001, errors.PhaseResolve, fmt.Sprintf("unknown function %q", name), v.Span(), map[string]any{"name": name})
		return c.errExpr(v.Span())
	}
	fn := ref.Func

	if len(v.Args) != len(fn.Params) {
		c.errf(errors.TYP008, errors.PhaseTypecheck,
			fmt.Sprintf("%q expects %d argument(s), got %d", name, len(fn.Params), len(v.Args)), v.Span(),
			map[string]any{"function": name, "want": len(fn.Params), "got": len(v.Args)})
	}

	args := make([]typedast.Expr, len(v.Args))
	for i, a := range v.Args {
		var paramType types.TypeId = types.ErrorRecovery
		if i < len(fn.Params) {
			paramType = fn.Params[i].Type
		}
		args[i] = c.checkExpr(a, cc, paramType)
		if i < len(fn.Params) {
			c.checkTraitConstraints(paramType, args[i].ReturnType(), cc, a.Span())
			if cc.chk.Types.Get(paramType).Kind != types.KindGenericParam {
				c.expectType(args[i].ReturnType(), paramType, a.Span(), fmt.Sprintf("argument %d of %q", i+1, name))
			}
		}
	}

	return &typedast.Call{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: fn.ReturnType}, Callee: name, Args: args}
}

// checkTraitConstraints implements spec §4.1 step 5's two outcomes. paramType
// is the callee's declared parameter type (possibly a GenericParam carrying
// trait constraints); argType is the concrete (or still-generic) type of the
// value actually passed.
func (c *Checker) checkTraitConstraints(paramType, argType types.TypeId, cc *ctx, span ast.Span) {
	info := cc.chk.Types.Get(paramType)
	if info.Kind != types.KindGenericParam || len(info.Param.TraitConstraints) == 0 {
		return
	}
	argInfo := cc.chk.Types.Get(argType)
	if argInfo.Kind == types.KindGenericParam {
		have := map[string]bool{}
		for _, t := range argInfo.Param.TraitConstraints {
			have[t] = true
		}
		for _, need := range info.Param.TraitConstraints {
			if !have[need] {
				c.errf(errors.TRA001, errors.PhaseTrait,
					fmt.Sprintf("generic parameter %q must declare the %q constraint to be passed here", argInfo.Param.Name, need), span,
					map[string]any{"type": argInfo.Param.Name, "trait": need})
			}
		}
		return
	}
	if argType == types.ErrorRecovery {
		return
	}
	for _, need := range info.Param.TraitConstraints {
		if _, ok := cc.module.HasTraitImpl(need, argType); !ok {
			c.errf(errors.TRA002, errors.PhaseTrait,
				fmt.Sprintf("%s does not implement %q", cc.chk.Types.String(argType), need), span,
				map[string]any{"type": cc.chk.Types.String(argType), "trait": need})
		}
	}
}

func (c *Checker) checkFieldAccess(v *ast.FieldAccessExpr, cc *ctx) typedast.Expr {
	x := c.checkExpr(v.X, cc, types.ErrorRecovery)
	t := x.ReturnType()
	if t == types.ErrorRecovery {
		return &typedast.FieldAccess{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Struct: x, Field: v.Field}
	}
	info := cc.chk.Types.Get(t)
	if info.Kind != types.KindStruct {
		c.errf(errors.TYP004, errors.PhaseTypecheck, fmt.Sprintf("%s is not a struct", cc.chk.Types.String(t)), v.Span(), nil)
		return &typedast.FieldAccess{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Struct: x, Field: v.Field}
	}
	sd := cc.chk.Decls.GetStruct(info.Decl)
	for _, f := range sd.Fields {
		if f.Name == v.Field {
			return &typedast.FieldAccess{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: f.Type}, Struct: x, Field: v.Field}
		}
	}
	c.errf(errors.TYP003, errors.PhaseTypecheck, fmt.Sprintf("%s has no field %q", sd.Name, v.Field), v.Span(), map[string]any{"field": v.Field})
	return &typedast.FieldAccess{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Struct: x, Field: v.Field}
}

func (c *Checker) checkTupleIndex(v *ast.TupleIndexExpr, cc *ctx) typedast.Expr {
	x := c.checkExpr(v.X, cc, types.ErrorRecovery)
	t := x.ReturnType()
	if t == types.ErrorRecovery {
		return &typedast.TupleIndex{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Tuple: x, Index: v.Index}
	}
	info := cc.chk.Types.Get(t)
	if info.Kind != types.KindTuple || v.Index < 0 || v.Index >= len(info.Elems) {
		c.errf(errors.TYP003, errors.PhaseTypecheck, fmt.Sprintf("%s has no element %d", cc.chk.Types.String(t), v.Index), v.Span(), nil)
		return &typedast.TupleIndex{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Tuple: x, Index: v.Index}
	}
	return &typedast.TupleIndex{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: info.Elems[v.Index]}, Tuple: x, Index: v.Index}
}

func (c *Checker) checkStructLit(v *ast.StructLitExpr, cc *ctx) typedast.Expr {
	target, name, err := resolveCallPath(cc.module, []string{v.TypeName})
	if err != nil {
		c.errf(errors.RES001, errors.PhaseResolve, err.Error(), v.Span(), nil)
		return c.errExpr(v.Span())
	}
	ref, ok := target.Lookup(name)
	if !ok || ref.Kind != namespace.DeclStruct {
		c.errf(errors.RES001, errors.PhaseResolve, fmt.Sprintf("unknown struct %q", v.TypeName), v.Span(), nil)
		return c.errExpr(v.Span())
	}
	sd := cc.chk.Decls.GetStruct(ref.Struct)
	byName := make(map[string]*decl.Field, len(sd.Fields))
	for i := range sd.Fields {
		byName[sd.Fields[i].Name] = &sd.Fields[i]
	}
	fields := make([]typedast.StructLitField, len(v.Fields))
	for i, f := range v.Fields {
		expected := types.ErrorRecovery
		if sf, ok := byName[f.Name]; ok {
			expected = sf.Type
		} else {
			c.errf(errors.TYP003, errors.PhaseTypecheck, fmt.Sprintf("%s has no field %q", sd.Name, f.Name), v.Span(), nil)
		}
		val := c.checkExpr(f.Value, cc, expected)
		c.expectType(val.ReturnType(), expected, v.Span(), fmt.Sprintf("field %q of %s", f.Name, sd.Name))
		fields[i] = typedast.StructLitField{Name: f.Name, Value: val}
	}
	t := cc.chk.Types.Struct(ref.Struct, sd.Name)
	return &typedast.StructLit{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: t}, TypeName: sd.Name, Fields: fields}
}

func (c *Checker) checkBinary(v *ast.BinaryExpr, cc *ctx) typedast.Expr {
	switch v.Op {
	case ast.OpAnd, ast.OpOr:
		l := c.checkExpr(v.Left, cc, types.Bool)
		r := c.checkExpr(v.Right, cc, types.Bool)
		c.expectType(l.ReturnType(), types.Bool, v.Left.Span(), "left operand")
		c.expectType(r.ReturnType(), types.Bool, v.Right.Span(), "right operand")
		return &typedast.BinOp{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.Bool}, Op: v.Op, Left: l, Right: r}
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		l := c.checkExpr(v.Left, cc, types.ErrorRecovery)
		r := c.checkExpr(v.Right, cc, l.ReturnType())
		c.expectType(r.ReturnType(), l.ReturnType(), v.Right.Span(), "right operand")
		return &typedast.BinOp{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.Bool}, Op: v.Op, Left: l, Right: r}
	default:
		l := c.checkExpr(v.Left, cc, types.ErrorRecovery)
		r := c.checkExpr(v.Right, cc, l.ReturnType())
		c.expectType(r.ReturnType(), l.ReturnType(), v.Right.Span(), "right operand")
		if !cc.chk.Types.IsNumeric(l.ReturnType()) && l.ReturnType() != types.ErrorRecovery {
			c.errf(errors.TYP001, errors.PhaseTypecheck, "arithmetic operator requires a numeric operand", v.Span(), nil)
		}
		return &typedast.BinOp{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: l.ReturnType()}, Op: v.Op, Left: l, Right: r}
	}
}

func (c *Checker) checkUnary(v *ast.UnaryExpr, cc *ctx) typedast.Expr {
	switch v.Op {
	case ast.OpNot:
		x := c.checkExpr(v.X, cc, types.Bool)
		c.expectType(x.ReturnType(), types.Bool, v.Span(), "operand of !")
		return &typedast.UnOp{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.Bool}, Op: v.Op, Operand: x}
	default:
		x := c.checkExpr(v.X, cc, types.ErrorRecovery)
		return &typedast.UnOp{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: x.ReturnType()}, Op: v.Op, Operand: x}
	}
}

func (c *Checker) checkIf(v *ast.IfExpr, cc *ctx, expected types.TypeId) typedast.Expr {
	cond := c.checkExpr(v.Cond, cc, types.Bool)
	c.expectType(cond.ReturnType(), types.Bool, v.Cond.Span(), "if condition")
	then := c.checkBlock(v.Then, cc, expected)
	if v.Else == nil {
		return &typedast.If{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.Unit}, Cond: cond, Then: then}
	}
	els := c.checkBlock(v.Else, cc, expected)
	t := then.Type()
	c.expectType(els.Type(), t, v.Span(), "if/else branch types")
	return &typedast.If{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: t}, Cond: cond, Then: then, Else: els}
}

func (c *Checker) checkMatch(v *ast.MatchExpr, cc *ctx, expected types.TypeId) typedast.Expr {
	scrutinee := c.checkExpr(v.Scrutinee, cc, types.ErrorRecovery)
	arms := make([]typedast.MatchArm, len(v.Arms))
	resultType := expected
	for i, arm := range v.Arms {
		armEnv := newEnv(cc.env)
		armCC := cc.withEnv(armEnv)
		pat := c.checkPattern(arm.Pattern, armCC, scrutinee.ReturnType())
		var guard typedast.Expr
		if arm.Guard != nil {
			guard = c.checkExpr(arm.Guard, armCC, types.Bool)
			c.expectType(guard.ReturnType(), types.Bool, arm.Guard.Span(), "match guard")
		}
		body := c.checkExpr(arm.Body, armCC, resultType)
		if resultType == types.ErrorRecovery {
			resultType = body.ReturnType()
		} else {
			c.expectType(body.ReturnType(), resultType, arm.Body.Span(), "match arm type")
		}
		arms[i] = typedast.MatchArm{Pattern: pat, Guard: guard, Body: body}
	}
	return &typedast.Match{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: resultType}, Scrutinee: scrutinee, Arms: arms}
}

func (c *Checker) checkStorageRead(v *ast.StorageReadExpr, cc *ctx) typedast.Expr {
	if !cc.purity.MayRead() {
		c.errf(errors.PUR001, errors.PhasePurity, fmt.Sprintf("function %q is not declared to read storage", cc.fnName), v.Span(), nil)
		return &typedast.StorageRead{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Field: v.Field}
	}
	for m := cc.module; m != nil; m = m.Parent {
		if m.Storage == nil {
			continue
		}
		for _, f := range m.Storage.Fields {
			if f.Name == v.Field {
				return &typedast.StorageRead{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: f.Type}, Field: v.Field}
			}
		}
	}
	c.errf(errors.TYP003, errors.PhaseTypecheck, fmt.Sprintf("storage has no field %q", v.Field), v.Span(), nil)
	return &typedast.StorageRead{ExprBase: typedast.ExprBase{ESpan: v.Span(), Type: types.ErrorRecovery}, Field: v.Field}
}

func (c *Checker) errExpr(span ast.Span) typedast.Expr {
	return &typedast.Var{ExprBase: typedast.ExprBase{ESpan: span, Type: types.ErrorRecovery}, Name: "<error>"}
}
