package regalloc

import "github.com/FuelLabs/sway-core-go/internal/codegen"

// unionFind merges arena indices into coalescing classes; Find(i) returns
// the representative node that survives in the interference graph after
// everything unioned with i has been merged into it.
type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) Find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) Union(a, b int) { u.parent[u.Find(b)] = u.Find(a) }

// Coalesce merges the destination and source of every MOVE whose two
// registers do not interfere, repeating until no further candidate
// applies (merging can remove the very edge that blocked an earlier
// candidate). Grounded on spec §4.5 step 4's coalescing rule: "if the two
// registers a MOVE copies between do not interfere, merge them into one
// node and delete the MOVE." Returns the union-find mapping every original
// arena index onto its surviving representative, used by Rewrite to
// collapse every original VReg onto one color.
func Coalesce(g *Graph, ops []codegen.RealizedOp) (*unionFind, []codegen.RealizedOp) {
	uf := newUnionFind(len(g.Nodes))
	removedMoves := make(map[int]bool)

	changed := true
	for changed {
		changed = false
		for i, pair := range g.MoveCandidates {
			if removedMoves[i] {
				continue
			}
			dest, src := pair[0], pair[1]
			if isReserved(dest) || isReserved(src) {
				continue
			}
			di, ok1 := g.index[dest]
			si, ok2 := g.index[src]
			if !ok1 || !ok2 {
				continue
			}
			rd, rs := uf.Find(di), uf.Find(si)
			if rd == rs {
				removedMoves[i] = true
				continue
			}
			if g.adj[rd][rs] {
				continue
			}
			g.Merge(rd, rs)
			uf.Union(rd, rs)
			removedMoves[i] = true
			changed = true
		}
	}

	out := make([]codegen.RealizedOp, 0, len(ops))
	for _, op := range ops {
		if op.Org == codegen.OrgNone && op.Opcode == codegen.OpMove {
			di, ok1 := g.index[op.Dest]
			si, ok2 := g.index[op.Src1]
			if ok1 && ok2 && uf.Find(di) == uf.Find(si) {
				continue
			}
		}
		out = append(out, op)
	}
	return uf, out
}

// representative resolves v through the interference graph's index and the
// union-find structure to the arena index of the node it was coalesced
// into, or -1 if v never entered the graph (a reserved pseudo-register).
func representative(g *Graph, uf *unionFind, v codegen.VReg) int {
	idx, ok := g.index[v]
	if !ok {
		return -1
	}
	return uf.Find(idx)
}
