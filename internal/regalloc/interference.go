package regalloc

import "github.com/FuelLabs/sway-core-go/internal/codegen"

// isReserved reports whether v is one of the negative pseudo-registers the
// selector mints for fixed-purpose machine state (the frame pointer, the
// stack pointer) or the NoReg sentinel — none of these are virtual
// registers the allocator owns, so they never enter the interference graph
// and are passed straight through to a fixed physical slot at rewrite time.
func isReserved(v codegen.VReg) bool {
	return v < 0
}

// Graph is an interference graph over the virtual registers a function's
// selected code addresses: two registers are connected iff some program
// point has both simultaneously live. Stored as an arena of register ids
// with adjacency sets keyed by arena index rather than by pointer-linked
// nodes, per spec §9's design note for cyclic graphs ("store nodes in an
// arena; edges are index pairs; no graph node owns another graph node").
type Graph struct {
	Nodes []codegen.VReg
	index map[codegen.VReg]int
	adj   []map[int]bool

	// MoveCandidates lists every (dest, src) pair copied by a MOVE op, in
	// selection order, including pairs that involve a reserved
	// pseudo-register (Coalesce skips those). Coalescing
	// consults this list to find merge candidates (spec §4.5 step 4's
	// "MOVE operations are recorded as coalescing candidates").
	MoveCandidates [][2]codegen.VReg
}

// NewGraph builds the interference graph and move list for a function's
// realized instructions from its liveness result. A def and everything
// live-out of its instruction interfere, except that a MOVE's own source
// does not interfere with its own destination (the standard refinement
// that makes coalescing possible at all — otherwise every MOVE would
// forbid merging its two operands outright).
func NewGraph(ops []codegen.RealizedOp, live *Liveness) *Graph {
	g := &Graph{index: map[codegen.VReg]int{}}

	ensure := func(v codegen.VReg) int {
		if isReserved(v) {
			return -1
		}
		if idx, ok := g.index[v]; ok {
			return idx
		}
		idx := len(g.Nodes)
		g.Nodes = append(g.Nodes, v)
		g.index[v] = idx
		g.adj = append(g.adj, map[int]bool{})
		return idx
	}

	addEdge := func(a, b codegen.VReg) {
		if a == b {
			return
		}
		ia, ib := ensure(a), ensure(b)
		if ia < 0 || ib < 0 {
			return
		}
		g.adj[ia][ib] = true
		g.adj[ib][ia] = true
	}

	for i, rop := range ops {
		for _, u := range rop.UseRegisters() {
			ensure(u)
		}

		isMove := rop.Org == codegen.OrgNone && rop.Opcode == codegen.OpMove
		var moveSrc codegen.VReg
		if isMove {
			moveSrc = rop.Src1
			g.MoveCandidates = append(g.MoveCandidates, [2]codegen.VReg{rop.Dest, moveSrc})
		}

		for _, d := range rop.DefRegisters() {
			ensure(d)
			for live := range live.LiveOut[i] {
				if isMove && live == moveSrc {
					continue
				}
				addEdge(d, live)
			}
		}
	}
	return g
}

// Degree returns the number of neighbors the register at arena index idx
// currently has.
func (g *Graph) Degree(idx int) int { return len(g.adj[idx]) }

// Neighbors returns the arena indices adjacent to idx.
func (g *Graph) Neighbors(idx int) []int {
	out := make([]int, 0, len(g.adj[idx]))
	for n := range g.adj[idx] {
		out = append(out, n)
	}
	return out
}

// Interferes reports whether a and b are connected by an edge.
func (g *Graph) Interferes(a, b codegen.VReg) bool {
	ia, aok := g.index[a]
	ib, bok := g.index[b]
	if !aok || !bok {
		return false
	}
	return g.adj[ia][ib]
}

// RemoveNode deletes idx's edges from the graph without compacting the
// arena, so every other node's index keeps meaning throughout
// simplification (spec §9: "iteration uses node indices").
func (g *Graph) RemoveNode(idx int) {
	for n := range g.adj[idx] {
		delete(g.adj[n], idx)
	}
	g.adj[idx] = map[int]bool{}
}

// Merge folds node `from` into node `to`: every neighbor of `from` becomes
// a neighbor of `to`, and `from` is left with no edges. Used by
// coalescing when two MOVE-related registers are found non-interfering.
func (g *Graph) Merge(to, from int) {
	for n := range g.adj[from] {
		if n == to {
			continue
		}
		g.adj[to][n] = true
		g.adj[n][to] = true
		delete(g.adj[n], from)
	}
	g.adj[from] = map[int]bool{}
}
