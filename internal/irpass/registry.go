// Package irpass implements the IR-to-IR optimization passes that run
// between S3 (internal/irbuild) and S5 code generation (spec §4.4):
// argument demotion and inlining. Each pass reports whether it changed a
// function; the Registry sequences passes and invalidates an
// internal/iranalysis Cache whenever one reports a change, since a
// changed CFG shape invalidates post-order/dominator/dominance-frontier
// results. This registry is deliberately a much simpler thing than
// sway-ir's PassManager (original_source/sway-ir/src/optimize/mod.rs):
// no pass-dependency graph, no per-pass enable/disable flags, just a
// fixed ordered list run to a fixpoint per function.
package irpass

import (
	"github.com/FuelLabs/sway-core-go/internal/ast"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/iranalysis"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// Pass is one named, possibly analysis-consuming transform over a single
// function. Passes that only need the CFG shape (not dominance info) leave
// cache unused; argument demotion is one such pass today.
type Pass struct {
	Name string
	Run  func(te *types.Engine, mod *ir.Module, fn *ir.Function, cache *iranalysis.Cache) bool
}

// Registry runs a fixed, ordered pass pipeline over every function of a
// module, invalidating the shared analysis cache whenever a pass reports
// a change so the next pass (or a later S4.1 consumer) never sees stale
// dominance info.
type Registry struct {
	Passes []Pass
}

// Default returns the standard S4 pipeline: argument demotion, then
// inlining. Demotion must run before inlining — inlining a callee whose
// signature still takes wide by-value aggregates would duplicate that
// cost at every call site instead of paying it once per demoted call.
func Default() *Registry {
	return &Registry{Passes: []Pass{
		{Name: "argdemotion", Run: runArgDemotion},
		{Name: "inline", Run: runInline},
	}}
}

// Run applies every pass in order to every function in mod, looping each
// pass to a per-function fixpoint (a single demotion or inline pass may
// need several applications, e.g. a newly inlined body can itself contain
// further demotable calls), then, outside library modules, prunes any
// non-entry function inlining left with no remaining caller — spec §4.4.4's "single-entry-function IR
// per emitted program" is only exactly true once those are gone too.
func (r *Registry) Run(te *types.Engine, mod *ir.Module, cache *iranalysis.Cache) {
	for _, pass := range r.Passes {
		for _, fn := range mod.Functions {
			for {
				changed := pass.Run(te, mod, fn, cache)
				if cache != nil {
					cache.Invalidate(fn)
				}
				if !changed {
					break
				}
			}
		}
	}
	pruneUnreachable(mod)
}

// pruneUnreachable drops functions that are neither an ABI entry nor
// reachable by a Call from one — typically callees whose every call site
// runInline has replaced with a copy of their body. A library module has
// no entry of its own, so it is left whole: every function it declares is
// kept.
func pruneUnreachable(mod *ir.Module) {
	if mod.Kind == ast.KindLibrary {
		return
	}
	keep := make(map[*ir.Function]bool)
	var walk func(fn *ir.Function)
	walk = func(fn *ir.Function) {
		if keep[fn] {
			return
		}
		keep[fn] = true
		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				if call, ok := instr.(*ir.Call); ok && call.Callee != nil {
					walk(call.Callee)
				}
			}
		}
	}
	for _, fn := range mod.Functions {
		if isABIEntry(mod, fn) {
			walk(fn)
		}
	}
	live := mod.Functions[:0]
	for _, fn := range mod.Functions {
		if keep[fn] {
			live = append(live, fn)
		}
	}
	mod.Functions = live
}
