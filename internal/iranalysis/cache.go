package iranalysis

import "github.com/FuelLabs/sway-core-go/internal/ir"

// Cache memoizes PostOrder, DomTree and DomFronts per function, recomputing
// each only on first request or after Invalidate. The dependency chain is
// linear (DomFronts needs DomTree needs PostOrder), mirroring the grounding
// source's AnalysisResults, which tracks each pass's declared dependencies
// and reruns only what a mutation actually invalidates.
type Cache struct {
	postOrder map[*ir.Function]*PostOrder
	domTree   map[*ir.Function]*DomTree
	domFronts map[*ir.Function]DomFronts
}

func NewCache() *Cache {
	return &Cache{
		postOrder: make(map[*ir.Function]*PostOrder),
		domTree:   make(map[*ir.Function]*DomTree),
		domFronts: make(map[*ir.Function]DomFronts),
	}
}

func (c *Cache) PostOrder(fn *ir.Function) *PostOrder {
	if po, ok := c.postOrder[fn]; ok {
		return po
	}
	po := ComputePostOrder(fn)
	c.postOrder[fn] = po
	return po
}

func (c *Cache) DomTree(fn *ir.Function) *DomTree {
	if dt, ok := c.domTree[fn]; ok {
		return dt
	}
	dt := ComputeDominatorTree(fn, c.PostOrder(fn))
	c.domTree[fn] = dt
	return dt
}

func (c *Cache) DomFronts(fn *ir.Function) DomFronts {
	if df, ok := c.domFronts[fn]; ok {
		return df
	}
	df := ComputeDomFronts(fn, c.DomTree(fn))
	c.domFronts[fn] = df
	return df
}

// Invalidate drops every cached analysis for fn. internal/irpass calls this
// after a pass changes fn's block structure, so the next request recomputes
// from scratch rather than serving a stale tree.
func (c *Cache) Invalidate(fn *ir.Function) {
	delete(c.postOrder, fn)
	delete(c.domTree, fn)
	delete(c.domFronts, fn)
}
