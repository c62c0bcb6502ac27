package regalloc

import (
	"container/heap"

	"github.com/FuelLabs/sway-core-go/internal/codegen"
)

// SpillError reports that simplification could not find a coloring for fn
// even after spilling every node the heuristic offered — spec §4.5 step
// 4's documented failure mode: "a fatal internal error with diagnostic
// attached to the offending function; no partial output is emitted." This
// package never inserts spill loads/stores and retries; a SpillError is
// terminal.
type SpillError struct {
	Func string
	Reg  codegen.VReg
}

func (e *SpillError) Error() string {
	return "internal/regalloc: unable to allocate " + e.Reg.String() + " in function " + e.Func + ": ran out of registers"
}

// degreeItem is a container/heap entry ordering candidate nodes by current
// degree, used to pick which node to push onto the stack when no node has
// degree < k (spec's "heuristically-chosen node" for optimistic spilling).
// Highest-degree-first is the standard Chaitin-Briggs heuristic: a node
// that interferes with the most others is both the one most likely to need
// an actual spill and the one whose early removal most quickly frees its
// neighbors toward colorability.
type degreeItem struct {
	idx    int
	degree int
}

type degreeHeap []degreeItem

func (h degreeHeap) Len() int            { return len(h) }
func (h degreeHeap) Less(i, j int) bool  { return h[i].degree > h[j].degree }
func (h degreeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *degreeHeap) Push(x interface{}) { *h = append(*h, x.(degreeItem)) }
func (h *degreeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// simplify repeatedly removes degree<k nodes from the graph onto a stack;
// when none remain, it pops the highest-degree survivor from a
// lazily-updated heap as a potential-spill push. Returns the stack in the
// order nodes should be popped for assignment (last removed, first
// assigned).
func simplify(g *Graph, roots []int, k int) []int {
	remaining := make(map[int]bool, len(roots))
	for _, r := range roots {
		remaining[r] = true
	}

	var stack []int
	h := &degreeHeap{}
	heap.Init(h)
	for r := range remaining {
		heap.Push(h, degreeItem{idx: r, degree: g.Degree(r)})
	}

	for len(remaining) > 0 {
		pushedLowDegree := false
		for r := range remaining {
			if g.Degree(r) < k {
				stack = append(stack, r)
				g.RemoveNode(r)
				delete(remaining, r)
				pushedLowDegree = true
			}
		}
		if pushedLowDegree {
			continue
		}

		// Stuck: every remaining node has degree >= k. Pick the
		// highest-degree survivor off the heap, skipping stale entries
		// whose recorded degree no longer matches the graph.
		var chosen int = -1
		for h.Len() > 0 {
			top := heap.Pop(h).(degreeItem)
			if !remaining[top.idx] {
				continue
			}
			if top.degree != g.Degree(top.idx) {
				heap.Push(h, degreeItem{idx: top.idx, degree: g.Degree(top.idx)})
				continue
			}
			chosen = top.idx
			break
		}
		if chosen < 0 {
			// Heap exhausted without finding a fresh entry; rebuild it
			// from the remaining set and pop once more.
			for r := range remaining {
				heap.Push(h, degreeItem{idx: r, degree: g.Degree(r)})
			}
			top := heap.Pop(h).(degreeItem)
			chosen = top.idx
		}
		stack = append(stack, chosen)
		g.RemoveNode(chosen)
		delete(remaining, chosen)
	}
	return stack
}

// Coloring maps each arena index to the physical register assigned to it.
type Coloring struct {
	Color map[int]codegen.PhysReg
}

// assign pops the simplification stack and gives each node the first
// physical register (of the k allocatable) not already used by one of its
// now-recolored neighbors (spec: "assign — pop the stack, assign the
// first physical register not used by an already-colored neighbor").
// Reinserts each popped node's original edges from a saved copy of the
// graph before deciding, since RemoveNode stripped them during
// simplification.
func assign(original *Graph, stack []int, k int, fn string, nodeOf func(int) codegen.VReg) (*Coloring, error) {
	colored := &Coloring{Color: map[int]codegen.PhysReg{}}
	for i := len(stack) - 1; i >= 0; i-- {
		idx := stack[i]
		used := make([]bool, k)
		for _, n := range original.Neighbors(idx) {
			if c, ok := colored.Color[n]; ok {
				used[int(c)] = true
			}
		}
		picked := -1
		for c := 0; c < k; c++ {
			if !used[c] {
				picked = c
				break
			}
		}
		if picked < 0 {
			return nil, &SpillError{Func: fn, Reg: nodeOf(idx)}
		}
		colored.Color[idx] = codegen.PhysReg(picked)
	}
	return colored, nil
}

// Allocate runs simplification and assignment over g for function fn,
// coloring with k physical registers. g's adjacency is mutated by
// simplification; callers that still need the original edges for
// diagnostics should build a fresh Graph first.
func Allocate(g *Graph, k int, fn string) (*Coloring, error) {
	original := &Graph{Nodes: g.Nodes, index: g.index, adj: cloneAdj(g.adj)}
	roots := make([]int, 0, len(g.Nodes))
	for i := range g.Nodes {
		roots = append(roots, i)
	}
	stack := simplify(g, roots, k)
	return assign(original, stack, k, fn, func(idx int) codegen.VReg { return original.Nodes[idx] })
}

func cloneAdj(adj []map[int]bool) []map[int]bool {
	out := make([]map[int]bool, len(adj))
	for i, m := range adj {
		cp := make(map[int]bool, len(m))
		for k, v := range m {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}
