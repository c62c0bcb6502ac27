package irpass

import (
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/iranalysis"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// isDemotable reports whether t should be passed by pointer rather than
// by value: an aggregate (struct/enum/tuple/array), or any scalar wider
// than one machine word. b256 is the only scalar that currently qualifies
// on width alone — the target VM's general-purpose registers are 64-bit
// (spec §4.5 "a register-based VM").
func isDemotable(te *types.Engine, t types.TypeId) bool {
	return te.IsAggregate(t) || te.Get(t).Kind == types.KindB256
}

type demCandidate struct {
	idx int
	ty  types.TypeId
}

// wire sets instr's result Value.Instr backlink, matching what
// Block.Append does for instructions appended the ordinary way — needed
// here because this pass splices instructions into the middle of a
// block's instruction list rather than appending them.
func wire(instr ir.Instruction) ir.Instruction {
	if r := instr.Result(); r != nil {
		r.Instr = instr
	}
	return instr
}

// runArgDemotion implements spec §4.4.2: by-value parameters whose type
// is demotable are rewritten to take a pointer instead, with a load
// inserted at function entry (or at the top of a non-entry block, for
// block arguments) and a store-to-temporary-then-pass-pointer inserted at
// every call site or predecessor branch. Grounded on
// original_source/sway-ir/src/optimize/arg_demotion.rs's fn_arg_demotion/
// demote_fn_signature/demote_caller/demote_block_signature shape.
func runArgDemotion(te *types.Engine, mod *ir.Module, fn *ir.Function, _ *iranalysis.Cache) bool {
	changed := demoteFnSignature(te, mod, fn)
	for _, b := range fn.Blocks {
		if b == fn.Entry() {
			continue
		}
		changed = demoteBlockSignature(te, fn, b) || changed
	}
	return changed
}

func demoteFnSignature(te *types.Engine, mod *ir.Module, fn *ir.Function) bool {
	var candidates []demCandidate
	for i, p := range fn.Params {
		if isDemotable(te, p.Value.Type) {
			candidates = append(candidates, demCandidate{i, p.Value.Type})
		}
	}
	if len(candidates) == 0 {
		return false
	}

	entry := fn.Entry()
	loadInstrs := make(map[ir.Instruction]bool, len(candidates))
	for _, c := range candidates {
		oldVal := fn.Params[c.idx].Value
		newVal := fn.NewValue(te.Pointer(c.ty))
		fn.Params[c.idx].Value = newVal

		load := wire(&ir.Load{Res: fn.NewValue(c.ty), Ptr: newVal}).(*ir.Load)
		loadInstrs[load] = true
		entry.Instrs = append([]ir.Instruction{load}, entry.Instrs...)
		replaceExcept(fn, oldVal, load.Res, loadInstrs)
	}

	demoteCallSites(te, mod, fn, candidates)
	return true
}

// demoteCallSites rewrites every Call to fn anywhere in mod: each demoted
// argument is stored into a fresh local temporary and the temporary's
// address is passed instead.
func demoteCallSites(te *types.Engine, mod *ir.Module, fn *ir.Function, candidates []demCandidate) {
	for _, caller := range mod.Functions {
		for _, b := range caller.Blocks {
			for _, instr := range b.Instrs {
				call, ok := instr.(*ir.Call)
				if !ok || call.Callee != fn {
					continue
				}
				for _, c := range candidates {
					argVal := call.Args[c.idx]
					local := caller.NewUniqueLocal("__tmp_arg", c.ty, nil)
					getLocal := wire(&ir.GetLocal{Res: caller.NewValue(te.Pointer(c.ty)), Local: local}).(*ir.GetLocal)
					store := &ir.Store{Ptr: getLocal.Res, Value: argVal}
					insertBefore(b, instr, getLocal, store)
					call.Args[c.idx] = getLocal.Res
				}
			}
		}
	}
}

// demoteBlockSignature applies the same by-value-to-by-pointer rewrite to
// a non-entry block's arguments (spec §4.4.2 step 4): every predecessor
// must then store its argument to a shared per-argument local and pass
// that local's address instead of the value directly.
func demoteBlockSignature(te *types.Engine, fn *ir.Function, b *ir.Block) bool {
	var candidates []demCandidate
	for i, a := range b.Args {
		if isDemotable(te, a.Type) {
			candidates = append(candidates, demCandidate{i, a.Type})
		}
	}
	if len(candidates) == 0 {
		return false
	}

	oldArgs := make([]*ir.Value, len(candidates))
	loadInstrs := make(map[ir.Instruction]bool, len(candidates))
	for i, c := range candidates {
		oldArgs[i] = b.Args[c.idx]
		newArg := fn.NewValue(te.Pointer(c.ty))
		b.Args[c.idx] = newArg

		load := wire(&ir.Load{Res: fn.NewValue(c.ty), Ptr: newArg}).(*ir.Load)
		loadInstrs[load] = true
		b.Instrs = append([]ir.Instruction{load}, b.Instrs...)
		replaceExcept(fn, oldArgs[i], load.Res, loadInstrs)
	}

	locals := make([]*ir.Local, len(candidates))
	for i, c := range candidates {
		locals[i] = fn.NewUniqueLocal("__tmp_block_arg", c.ty, nil)
	}

	for _, pred := range predecessorsOf(fn, b) {
		term := pred.Terminator()
		for i, c := range candidates {
			argVal := succArg(term, b, c.idx)
			if argVal == nil {
				continue
			}
			getLocal := wire(&ir.GetLocal{Res: fn.NewValue(te.Pointer(c.ty)), Local: locals[i]}).(*ir.GetLocal)
			store := &ir.Store{Ptr: getLocal.Res, Value: argVal}
			insertBeforeTerminator(pred, getLocal, store)
			setSuccArg(term, b, c.idx, getLocal.Res)
		}
	}
	return true
}

// replaceExcept rewrites old to new across every instruction of fn except
// those in skip (the loads just inserted to produce new from old's
// pointer, which must keep referencing old).
func replaceExcept(fn *ir.Function, old, repl *ir.Value, skip map[ir.Instruction]bool) {
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			if skip[instr] {
				continue
			}
			instr.ReplaceValue(old, repl)
		}
	}
}

func predecessorsOf(fn *ir.Function, target *ir.Block) []*ir.Block {
	var preds []*ir.Block
	for _, b := range fn.Blocks {
		for _, s := range b.Successors() {
			if s == target {
				preds = append(preds, b)
			}
		}
	}
	return preds
}

// succArg returns the block-argument value a terminator passes to target
// at position idx, or nil if term does not branch to target.
func succArg(term ir.Instruction, target *ir.Block, idx int) *ir.Value {
	switch t := term.(type) {
	case *ir.Branch:
		if t.Target == target && idx < len(t.Args) {
			return t.Args[idx]
		}
	case *ir.CondBranch:
		if t.TrueTarget == target && idx < len(t.TrueArgs) {
			return t.TrueArgs[idx]
		}
		if t.FalseTarget == target && idx < len(t.FalseArgs) {
			return t.FalseArgs[idx]
		}
	}
	return nil
}

func setSuccArg(term ir.Instruction, target *ir.Block, idx int, v *ir.Value) {
	switch t := term.(type) {
	case *ir.Branch:
		if t.Target == target {
			t.Args[idx] = v
		}
	case *ir.CondBranch:
		if t.TrueTarget == target {
			t.TrueArgs[idx] = v
		}
		if t.FalseTarget == target {
			t.FalseArgs[idx] = v
		}
	}
}

func insertBefore(b *ir.Block, before ir.Instruction, instrs ...ir.Instruction) {
	idx := -1
	for i, in := range b.Instrs {
		if in == before {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	tail := append([]ir.Instruction{}, b.Instrs[idx:]...)
	b.Instrs = append(append(b.Instrs[:idx], instrs...), tail...)
}

func insertBeforeTerminator(b *ir.Block, instrs ...ir.Instruction) {
	if len(b.Instrs) == 0 {
		b.Instrs = instrs
		return
	}
	last := b.Instrs[len(b.Instrs)-1]
	b.Instrs = append(b.Instrs[:len(b.Instrs)-1], append(instrs, last)...)
}
