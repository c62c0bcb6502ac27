package iranalysis

import "github.com/FuelLabs/sway-core-go/internal/ir"

// domTreeNode is one block's entry in a DomTree: its immediate dominator
// (nil for the entry block) and the blocks it immediately dominates.
type domTreeNode struct {
	parent   *ir.Block
	hasIdom  bool
	children []*ir.Block
}

// DomTree is the dominator tree of one function's reachable blocks, keyed
// by block.
type DomTree struct {
	nodes map[*ir.Block]*domTreeNode
}

// ComputeDominatorTree runs the Cooper-Harvey-Kennedy iterative dominance
// algorithm over fn's reachable blocks (per po), converging by fixpoint
// rather than the classical data-flow iteration the textbook algorithm
// uses — the same trade the grounding source makes.
func ComputeDominatorTree(fn *ir.Function, po *PostOrder) *DomTree {
	preds := predecessors(fn)
	entry := fn.Entry()

	tree := &DomTree{nodes: make(map[*ir.Block]*domTreeNode, len(po.POToBlock))}
	tree.nodes[entry] = &domTreeNode{parent: entry, hasIdom: true}
	for _, b := range po.POToBlock[:len(po.POToBlock)-1] {
		tree.nodes[b] = &domTreeNode{}
	}

	changed := true
	for changed {
		changed = false
		// Reverse postorder, skipping the entry block (last in po.POToBlock).
		for i := len(po.POToBlock) - 2; i >= 0; i-- {
			b := po.POToBlock[i]
			newIdom, ok := firstProcessedPred(preds[b], po, po.BlockToPO[b])
			if !ok {
				continue // unreachable predecessor set; b has no processed predecessor yet
			}
			pickedPred := newIdom
			for _, p := range preds[b] {
				if p == pickedPred {
					continue
				}
				if _, known := po.BlockToPO[p]; !known {
					continue // p is itself unreachable
				}
				if tree.nodes[p].hasIdom {
					newIdom = intersect(po, tree, p, newIdom)
				}
			}
			node := tree.nodes[b]
			if !node.hasIdom || node.parent != newIdom {
				node.parent = newIdom
				node.hasIdom = true
				changed = true
			}
		}
	}

	tree.nodes[entry].parent = nil
	for b, node := range tree.nodes {
		if b == entry || !node.hasIdom {
			continue
		}
		parentNode := tree.nodes[node.parent]
		parentNode.children = append(parentNode.children, b)
	}
	return tree
}

// firstProcessedPred picks the first predecessor of b (in the order
// preds[b] lists them) with a strictly higher post-order number than b's
// own (bPO) — i.e. a predecessor the reverse-postorder sweep has already
// assigned an (at least provisional) immediate dominator to, the
// algorithm's seed for the intersect loop below.
func firstProcessedPred(preds []*ir.Block, po *PostOrder, bPO int) (*ir.Block, bool) {
	for _, p := range preds {
		if n, ok := po.BlockToPO[p]; ok && n > bPO {
			return p, true
		}
	}
	return nil, false
}

// intersect finds the nearest common dominator of finger1 and finger2 by
// walking both up the partially built tree until they meet, using
// post-order numbers to decide which finger to advance (Cooper-Harvey-
// Kennedy's "intersect").
func intersect(po *PostOrder, tree *DomTree, finger1, finger2 *ir.Block) *ir.Block {
	for finger1 != finger2 {
		for po.BlockToPO[finger1] < po.BlockToPO[finger2] {
			finger1 = tree.nodes[finger1].parent
		}
		for po.BlockToPO[finger2] < po.BlockToPO[finger1] {
			finger2 = tree.nodes[finger2].parent
		}
	}
	return finger1
}

// Dominates reports whether dominator dominates dominatee (reflexively:
// every block dominates itself).
func (t *DomTree) Dominates(dominator, dominatee *ir.Block) bool {
	for node := dominatee; node != nil; {
		if node == dominator {
			return true
		}
		n := t.nodes[node]
		if n == nil {
			return false
		}
		node = n.parent
	}
	return false
}

// Parent returns b's immediate dominator, or (nil, false) for the entry
// block.
func (t *DomTree) Parent(b *ir.Block) (*ir.Block, bool) {
	n := t.nodes[b]
	if n == nil || n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

// Children returns the blocks b immediately dominates.
func (t *DomTree) Children(b *ir.Block) []*ir.Block {
	if n := t.nodes[b]; n != nil {
		return n.children
	}
	return nil
}
