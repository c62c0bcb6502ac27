// Package iranalysis implements the IR analyses internal/irpass's
// optimization passes (spec §4.4) consume: post-order block traversal, the
// dominator tree, and dominance frontiers, following Cooper, Harvey and
// Kennedy's "A Simple, Fast Dominance Algorithm" exactly as
// original_source/sway-ir/src/analysis/dominator.rs implements it. Unlike
// the teacher, which never builds a block-based IR at all, this package has
// no teacher equivalent; the dependency-ordered analysis cache (Cache,
// below) is grounded on that same file's Pass/AnalysisResults
// deps-and-invalidation shape, adapted from sway-ir's registered-pass
// runner to a direct Go method-call API since this package has no general
// pass-manager to plug into (internal/irpass's registry is a separate,
// simpler thing — see its own package doc).
package iranalysis

import "github.com/FuelLabs/sway-core-go/internal/ir"

// PostOrder is the post-order numbering of a function's reachable blocks.
// Unreachable blocks (no path from the entry block) are absent from both
// maps, exactly as the grounding source documents.
type PostOrder struct {
	BlockToPO map[*ir.Block]int
	POToBlock []*ir.Block
}

// ComputePostOrder performs a recursive post-order walk of fn's CFG
// starting at the entry block, following each block's terminator successors.
func ComputePostOrder(fn *ir.Function) *PostOrder {
	po := &PostOrder{BlockToPO: make(map[*ir.Block]int)}
	onStack := make(map[*ir.Block]bool)
	var visit func(b *ir.Block)
	visit = func(b *ir.Block) {
		if onStack[b] {
			return
		}
		onStack[b] = true
		for _, succ := range b.Successors() {
			visit(succ)
		}
		po.BlockToPO[b] = len(po.POToBlock)
		po.POToBlock = append(po.POToBlock, b)
	}
	visit(fn.Entry())
	return po
}

// predecessors computes, for every block reachable in fn, the set of blocks
// whose terminator branches to it. internal/ir's Block carries no
// predecessor backlink (only Successors, derived from its own terminator),
// so every consumer that needs predecessors — here, the dominator and
// dominance-frontier algorithms both do — recomputes this from scratch
// over the full block list.
func predecessors(fn *ir.Function) map[*ir.Block][]*ir.Block {
	preds := make(map[*ir.Block][]*ir.Block, len(fn.Blocks))
	for _, b := range fn.Blocks {
		for _, succ := range b.Successors() {
			preds[succ] = append(preds[succ], b)
		}
	}
	return preds
}
