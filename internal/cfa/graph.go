// Package cfa builds a control-flow graph over the typed AST and uses it to
// check that every path through a function reaches a return (spec §4.2),
// plus a lightweight unreachable-statement check. Grounded on
// sway-core/src/control_flow_analysis/analyze_return_paths.rs's
// connect_node/depth_first_insertion_code_block/ensure_all_paths_reach_exit
// shape; flow_graph/mod.rs's ControlFlowGraph supplied the node/edge
// vocabulary this package's Graph generalizes (organizational-dominator
// nodes collapse into plain step nodes here, since this package only needs
// reachability, not the richer dead-code-by-declaration-kind tracking the
// original also does in the same graph).
package cfa

import "github.com/FuelLabs/sway-core-go/internal/ast"

// NodeID indexes into a Graph's node table.
type NodeID int

// Graph is a directed graph of program steps; edges represent "may execute
// next".
type Graph struct {
	spans []ast.Span
	edges map[NodeID][]NodeID
}

// NewGraph constructs an empty Graph.
func NewGraph() *Graph {
	return &Graph{edges: make(map[NodeID][]NodeID)}
}

func (g *Graph) addNode(span ast.Span) NodeID {
	id := NodeID(len(g.spans))
	g.spans = append(g.spans, span)
	return id
}

func (g *Graph) addEdge(from, to NodeID) {
	g.edges[from] = append(g.edges[from], to)
}

// Successors returns n's outgoing edges.
func (g *Graph) Successors(n NodeID) []NodeID { return g.edges[n] }

// Span returns the source span recorded for n.
func (g *Graph) Span(n NodeID) ast.Span { return g.spans[n] }

// Reachable returns the set of nodes reachable from entry (BFS).
func (g *Graph) Reachable(entry NodeID) map[NodeID]bool {
	seen := map[NodeID]bool{entry: true}
	queue := []NodeID{entry}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, next := range g.edges[n] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}
