package iranalysis

import "github.com/FuelLabs/sway-core-go/internal/ir"

// DomFronts maps each reachable block to its dominance frontier set: the
// blocks it does not strictly dominate but that have a predecessor it
// does dominate (or is).
type DomFronts map[*ir.Block]map[*ir.Block]bool

// ComputeDomFronts computes the dominance frontier of every block in tree,
// following Cooper-Harvey-Kennedy's join-point algorithm: only blocks with
// two or more predecessors can be a frontier member, reached by walking
// each such predecessor up to (but not including) the block's own
// immediate dominator.
func ComputeDomFronts(fn *ir.Function, tree *DomTree) DomFronts {
	preds := predecessors(fn)
	res := make(DomFronts, len(tree.nodes))
	for b := range tree.nodes {
		res[b] = make(map[*ir.Block]bool)
	}

	for b := range tree.nodes {
		ps := preds[b]
		if len(ps) < 2 {
			continue
		}
		bIdom, ok := tree.Parent(b)
		if !ok {
			continue // b is the entry block, which has no idom
		}
		for _, p := range ps {
			if _, reachable := tree.nodes[p]; !reachable {
				continue
			}
			for runner := p; runner != bIdom; {
				res[runner][b] = true
				parent, ok := tree.Parent(runner)
				if !ok {
					break
				}
				runner = parent
			}
		}
	}
	return res
}

// Has reports whether b is in the dominance frontier of block.
func (df DomFronts) Has(block, b *ir.Block) bool {
	return df[block][b]
}
