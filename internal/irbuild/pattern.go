package irbuild

import (
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// lowerMatch lowers a match expression as a linear chain of per-arm test
// blocks rather than a column-selecting decision-tree matrix compiler: each
// arm in turn tests its pattern (and guard, if any) against the scrutinee
// and either falls into its own body or falls through to the next arm's
// test. This is a straight-line simplification appropriate for a single
// pass builder; internal/cfa is responsible for exhaustiveness, so the
// final fallthrough block's "no arm matched" case is unreachable in a
// well-typed program and is wired to the match's join with a zero value
// purely so the IR stays structurally total (spec §8 property 8) rather
// than left without a terminator.
func (fb *funcBuilder) lowerMatch(ex *typedast.Match) *ir.Value {
	scrVal := fb.lowerExpr(ex.Scrutinee)
	joinBlock := fb.fn.NewBlock("matchjoin")
	joinArg := joinBlock.AddArg(ex.Type)

	for _, arm := range ex.Arms {
		fb.scope = newScope(fb.scope)

		cond := fb.lowerPattern(arm.Pattern, scrVal)
		bodyBlock := fb.fn.NewBlock("matcharm")
		nextBlock := fb.fn.NewBlock("matchnext")

		if arm.Guard == nil {
			fb.branchOnCond(cond, bodyBlock, nextBlock)
		} else {
			guardBlock := fb.fn.NewBlock("matchguard")
			fb.branchOnCond(cond, guardBlock, nextBlock)
			fb.cur = guardBlock
			guardVal := fb.lowerExpr(arm.Guard)
			fb.cur.Append(&ir.CondBranch{Cond: guardVal, TrueTarget: bodyBlock, FalseTarget: nextBlock})
		}

		fb.cur = bodyBlock
		bodyVal := fb.lowerExpr(arm.Body)
		if !ir.IsTerminator(fb.cur.Terminator()) {
			fb.cur.Append(&ir.Branch{Target: joinBlock, Args: []*ir.Value{bodyVal}})
		}

		fb.scope = fb.scope.parent
		fb.cur = nextBlock
	}

	zero := fb.constValue(fb.zeroConstant(ex.Type))
	fb.cur.Append(&ir.Branch{Target: joinBlock, Args: []*ir.Value{zero}})

	fb.cur = joinBlock
	return joinArg
}

// branchOnCond appends an unconditional branch to whenTrue if cond is nil
// (a pattern that always matches, e.g. wildcard/var), otherwise a
// conditional branch on cond.
func (fb *funcBuilder) branchOnCond(cond *ir.Value, whenTrue, whenFalse *ir.Block) {
	if cond == nil {
		fb.cur.Append(&ir.Branch{Target: whenTrue})
		return
	}
	fb.cur.Append(&ir.CondBranch{Cond: cond, TrueTarget: whenTrue, FalseTarget: whenFalse})
}

// lowerPattern tests pat against scrVal, binding any variables pat
// introduces into fb.scope as it goes (extraction and binding happen
// unconditionally — they're side-effect free — regardless of whether the
// surrounding test ultimately succeeds), and returns the combined boolean
// condition for "pat matches", or nil if pat always matches.
func (fb *funcBuilder) lowerPattern(pat typedast.Pattern, scrVal *ir.Value) *ir.Value {
	switch p := pat.(type) {
	case *typedast.WildcardPattern:
		return nil

	case *typedast.VarPattern:
		fb.bindVar(p.Name, scrVal)
		return nil

	case *typedast.LitPattern:
		litVal := fb.lowerExpr(p.Value)
		res := fb.fn.NewValue(types.Bool)
		fb.cur.Append(&ir.BinOp{Res: res, Op: ir.IEq, Left: scrVal, Right: litVal})
		return res

	case *typedast.CtorPattern:
		return fb.lowerCtorPattern(p, scrVal)

	case *typedast.StructPattern:
		var cond *ir.Value
		for _, pf := range p.Fields {
			idx, _ := fb.structFieldIndex(p.Type, pf.Name)
			elem := fb.fn.NewValue(pf.Pattern.PatternType())
			fb.cur.Append(&ir.ExtractValue{Res: elem, Aggregate: scrVal, Indices: []uint64{uint64(idx)}})
			cond = fb.andCond(cond, fb.lowerPattern(pf.Pattern, elem))
		}
		return cond

	case *typedast.TuplePattern:
		var cond *ir.Value
		for i, ep := range p.Elems {
			elem := fb.fn.NewValue(ep.PatternType())
			fb.cur.Append(&ir.ExtractValue{Res: elem, Aggregate: scrVal, Indices: []uint64{uint64(i)}})
			cond = fb.andCond(cond, fb.lowerPattern(ep, elem))
		}
		return cond

	default:
		return nil
	}
}

func (fb *funcBuilder) lowerCtorPattern(p *typedast.CtorPattern, scrVal *ir.Value) *ir.Value {
	variantIdx := fb.enumVariantIndex(p.Type, p.Variant)
	tagVal := fb.fn.NewValue(types.U64)
	fb.cur.Append(&ir.ExtractValue{Res: tagVal, Aggregate: scrVal, Indices: []uint64{0}})
	wantTag := fb.constValue(&ir.Constant{Type: types.U64, Kind: ir.ConstInt, Int: uint64(variantIdx)})
	cond := fb.fn.NewValue(types.Bool)
	fb.cur.Append(&ir.BinOp{Res: cond, Op: ir.IEq, Left: tagVal, Right: wantTag})

	if len(p.Args) == 0 {
		return cond
	}

	payloadType := p.Args[0].PatternType()
	if len(p.Args) > 1 {
		elems := make([]types.TypeId, len(p.Args))
		for i, a := range p.Args {
			elems[i] = a.PatternType()
		}
		payloadType = fb.te.Tuple(elems...)
	}
	payloadVal := fb.fn.NewValue(payloadType)
	fb.cur.Append(&ir.ExtractValue{Res: payloadVal, Aggregate: scrVal, Indices: []uint64{1}})

	if len(p.Args) == 1 {
		return fb.andCond(cond, fb.lowerPattern(p.Args[0], payloadVal))
	}
	for i, a := range p.Args {
		elem := fb.fn.NewValue(a.PatternType())
		fb.cur.Append(&ir.ExtractValue{Res: elem, Aggregate: payloadVal, Indices: []uint64{uint64(i)}})
		cond = fb.andCond(cond, fb.lowerPattern(a, elem))
	}
	return cond
}

func (fb *funcBuilder) bindVar(name string, val *ir.Value) {
	local := fb.fn.NewUniqueLocal(name, val.Type, nil)
	ptr := fb.fn.NewValue(fb.te.Pointer(val.Type))
	fb.cur.Append(&ir.GetLocal{Res: ptr, Local: local})
	fb.cur.Append(&ir.Store{Ptr: ptr, Value: val})
	fb.scope.bind(name, local)
}

// andCond combines two (possibly absent) match conditions, treating nil as
// "always true" so a struct/tuple pattern whose fields are all
// wildcards/vars still reports "always matches" rather than synthesizing a
// vacuous `true && true`.
func (fb *funcBuilder) andCond(a, b *ir.Value) *ir.Value {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	res := fb.fn.NewValue(types.Bool)
	fb.cur.Append(&ir.BinOp{Res: res, Op: ir.IAnd, Left: a, Right: b})
	return res
}
