package irpass

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/iranalysis"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// isABIEntry reports whether fn is a program entry point that must remain
// a standalone function after inlining: a contract method (carries an ABI
// selector) or, for script/predicate modules, the conventional "main"
// function. Library modules have no entry of their own — every one of
// their functions is a candidate for inlining into whatever script,
// predicate or contract eventually imports them.
func isABIEntry(mod *ir.Module, fn *ir.Function) bool {
	if fn.Selector != nil {
		return true
	}
	return mod.Kind != ast.KindLibrary && fn.Name == "main"
}

// runInline implements spec §4.4.4: every call to a non-ABI-entry
// function is replaced by a copy of the callee's blocks, wired into the
// caller's control flow, producing single-entry-function IR per emitted
// program before code generation. No original_source/sway-ir file
// implements this (the retrieval pack's sway-ir/src/optimize tree has no
// inline.rs); the copy-blocks-rename-values-rewire-call-site technique
// below is the standard textbook approach to it, following the same
// block/value-copying primitives arg_demotion.rs itself relies on
// (Function::new_unique_local_ptr, Block::new, replace_value).
func runInline(te *types.Engine, mod *ir.Module, fn *ir.Function, _ *iranalysis.Cache) bool {
	changed := false
	for _, b := range fn.Blocks {
		for i, instr := range b.Instrs {
			call, ok := instr.(*ir.Call)
			if !ok || call.Callee == fn {
				continue // leave self-recursive calls as calls; they cannot be fully inlined
			}
			if isABIEntry(mod, call.Callee) {
				continue
			}
			inlineCall(te, fn, b, i, call)
			changed = true
			break // b.Instrs was spliced; restart this block on the next outer Run iteration
		}
		if changed {
			break
		}
	}
	return changed
}

var inlineCounter int

// inlineCall splices callee's body into fn in place of the Call at
// b.Instrs[idx]: callee's blocks are copied with fresh values and labels,
// its parameters are bound to the call's argument values directly (no
// load/store needed, since both caller and callee already live in the
// same function's value space after copying), and every Ret in the copy
// becomes a Branch to a new continuation block carrying the returned
// value. A single-block callee gets the same treatment; there is no
// separate straight-line splice for it.
func inlineCall(te *types.Engine, fn *ir.Function, b *ir.Block, idx int, call *ir.Call) {
	callee := call.Callee
	inlineCounter++
	tag := fmt.Sprintf("inl%d", inlineCounter)

	valMap := make(map[*ir.Value]*ir.Value, len(callee.Params)+8)
	for i, p := range callee.Params {
		valMap[p.Value] = call.Args[i]
	}
	localMap := make(map[*ir.Local]*ir.Local, len(callee.Locals))
	for _, l := range callee.Locals {
		localMap[l] = fn.NewUniqueLocal(tag+"_"+l.Name, l.Type, l.Initializer)
	}

	blockMap := make(map[*ir.Block]*ir.Block, len(callee.Blocks))
	for _, cb := range callee.Blocks {
		nb := fn.NewBlock(tag + "_" + cb.Label)
		blockMap[cb] = nb
		for _, arg := range cb.Args {
			valMap[arg] = nb.AddArg(arg.Type)
		}
	}

	contResult := call.Result()
	var cont *ir.Block
	if contResult != nil {
		cont = fn.NewBlock(tag + "_cont")
		cont.AddArg(contResult.Type)
	} else {
		cont = fn.NewBlock(tag + "_cont")
	}

	for _, cb := range callee.Blocks {
		nb := blockMap[cb]
		for _, instr := range cb.Instrs {
			nb.Append(copyInstr(instr, valMap, localMap, blockMap, cont, contResult))
		}
	}

	// Splice: everything in b after the call moves to cont; the call is
	// replaced by a branch into the copied entry block.
	after := append([]ir.Instruction{}, b.Instrs[idx+1:]...)
	b.Instrs = append(b.Instrs[:idx], &ir.Branch{Target: blockMap[callee.Entry()]})
	cont.Instrs = append(cont.Instrs, after...)
	if contResult != nil {
		fn.ReplaceValue(contResult, cont.Args[0])
	}
}

// copyInstr deep-copies instr with every operand Value/Local/Block
// rewritten through the given maps, producing a fresh result Value of the
// same type when instr has one. A Ret becomes a Branch to cont, carrying
// its (rewritten) value as cont's sole argument when the call had a
// result.
func copyInstr(instr ir.Instruction, valMap map[*ir.Value]*ir.Value, localMap map[*ir.Local]*ir.Local, blockMap map[*ir.Block]*ir.Block, cont *ir.Block, contResult *ir.Value) ir.Instruction {
	v := func(old *ir.Value) *ir.Value {
		if old == nil {
			return nil
		}
		if nv, ok := valMap[old]; ok {
			return nv
		}
		return old // module-level constant or named-constant reference, not rewritten
	}
	vs := func(olds []*ir.Value) []*ir.Value {
		out := make([]*ir.Value, len(olds))
		for i, o := range olds {
			out[i] = v(o)
		}
		return out
	}
	newResult := func(t types.TypeId) *ir.Value {
		return &ir.Value{Kind: ir.ValInstr, Type: t}
	}

	switch i := instr.(type) {
	case *ir.BinOp:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.BinOp{Res: r, Op: i.Op, Left: v(i.Left), Right: v(i.Right)}
	case *ir.UnOp:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.UnOp{Res: r, Op: i.Op, X: v(i.X)}
	case *ir.GetLocal:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.GetLocal{Res: r, Local: localMap[i.Local]}
	case *ir.GetPtr:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.GetPtr{Res: r, Base: v(i.Base), Offset: i.Offset}
	case *ir.Load:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.Load{Res: r, Ptr: v(i.Ptr)}
	case *ir.Store:
		return &ir.Store{Ptr: v(i.Ptr), Value: v(i.Value)}
	case *ir.ExtractValue:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.ExtractValue{Res: r, Aggregate: v(i.Aggregate), Indices: i.Indices}
	case *ir.InsertValue:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.InsertValue{Res: r, Aggregate: v(i.Aggregate), Elem: v(i.Elem), Indices: i.Indices}
	case *ir.Call:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.Call{Res: r, Callee: i.Callee, Args: vs(i.Args)}
	case *ir.Branch:
		return &ir.Branch{Target: blockMap[i.Target], Args: vs(i.Args)}
	case *ir.CondBranch:
		return &ir.CondBranch{
			Cond: v(i.Cond), TrueTarget: blockMap[i.TrueTarget], TrueArgs: vs(i.TrueArgs),
			FalseTarget: blockMap[i.FalseTarget], FalseArgs: vs(i.FalseArgs),
		}
	case *ir.Ret:
		if contResult != nil {
			return &ir.Branch{Target: cont, Args: []*ir.Value{v(i.Value)}}
		}
		return &ir.Branch{Target: cont}
	case *ir.StorageLoad:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.StorageLoad{Res: r, Field: i.Field}
	case *ir.StorageStore:
		return &ir.StorageStore{Field: i.Field, Value: v(i.Value)}
	case *ir.AsmBlock:
		r := newResult(i.Res.Type)
		valMap[i.Res] = r
		return &ir.AsmBlock{Res: r, RetType: i.RetType, Text: i.Text, Args: vs(i.Args)}
	default:
		return instr
	}
}
