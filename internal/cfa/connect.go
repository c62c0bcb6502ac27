package cfa

import "github.com/FuelLabs/sway-core-go/internal/typedast"

// step is the result of connecting one statement or expression into the
// graph: leaves is the frontier to chain the next step from (empty if this
// step unconditionally diverts control away, e.g. a return), and returns
// collects every return node discovered along the way (including nested
// ones inside if/match branches), which the caller links to the function
// exit node once the whole body has been walked.
type step struct {
	leaves  []NodeID
	returns []NodeID
}

func connectExpr(expr typedast.Expr, g *Graph, leaves []NodeID) step {
	switch v := expr.(type) {
	case *typedast.Return:
		node := g.addNode(v.Span())
		for _, l := range leaves {
			g.addEdge(l, node)
		}
		return step{returns: []NodeID{node}}
	case *typedast.If:
		node := g.addNode(v.Span())
		for _, l := range leaves {
			g.addEdge(l, node)
		}
		thenStep := connectBranch(v.Then, g, node)
		var elseStep step
		if v.Else != nil {
			elseStep = connectBranch(v.Else, g, node)
		} else {
			elseStep = connectBranch(&typedast.Block{}, g, node)
		}
		return step{
			leaves:  append(append([]NodeID{}, thenStep.leaves...), elseStep.leaves...),
			returns: append(append([]NodeID{}, thenStep.returns...), elseStep.returns...),
		}
	case *typedast.While:
		// Abridged, matching the source's treatment: a while loop is one
		// organizational node; its body's internal divergence is not
		// tracked here, only that control may continue past the loop.
		node := g.addNode(v.Span())
		for _, l := range leaves {
			g.addEdge(l, node)
		}
		return step{leaves: []NodeID{node}}
	case *typedast.Match:
		node := g.addNode(v.Span())
		for _, l := range leaves {
			g.addEdge(l, node)
		}
		var allLeaves, allReturns []NodeID
		for _, arm := range v.Arms {
			armStep := connectExpr(arm.Body, g, []NodeID{node})
			allLeaves = append(allLeaves, armStep.leaves...)
			allReturns = append(allReturns, armStep.returns...)
		}
		return step{leaves: allLeaves, returns: allReturns}
	default:
		node := g.addNode(expr.Span())
		for _, l := range leaves {
			g.addEdge(l, node)
		}
		return step{leaves: []NodeID{node}}
	}
}

// connectBranch connects an if/else branch body starting from condNode. An
// empty branch still gets its own dedicated pass-through node rather than
// reusing condNode directly as its leaf — otherwise a sibling branch's
// edges (added onto the same shared condNode) would make this branch's
// dead end look, to a reachability walk, like it has somewhere to go.
func connectBranch(block *typedast.Block, g *Graph, condNode NodeID) step {
	if len(block.Stmts) == 0 && block.Implicit == nil {
		passthrough := g.addNode(g.Span(condNode))
		g.addEdge(condNode, passthrough)
		return step{leaves: []NodeID{passthrough}}
	}
	return connectBlock(block, g, []NodeID{condNode})
}

func connectStmt(stmt typedast.Stmt, g *Graph, leaves []NodeID) step {
	if es, ok := stmt.(*typedast.ExprStmt); ok {
		return connectExpr(es.Value, g, leaves)
	}
	node := g.addNode(stmt.Span())
	for _, l := range leaves {
		g.addEdge(l, node)
	}
	return step{leaves: []NodeID{node}}
}

// connectBlock walks block's statements and implicit-return expression in
// order, chaining each onto the previous step's leaves. A step that
// terminates (empty leaves, e.g. a return) leaves the frontier unchanged
// for whatever statement follows it — matching analyze_return_paths.rs's
// depth_first_insertion_code_block, which likewise does not advance leaves
// past a Return connection; any such following statement is unreachable
// and reported separately by DeadCode.
func connectBlock(block *typedast.Block, g *Graph, leaves []NodeID) step {
	cur := leaves
	var returns []NodeID
	for _, stmt := range block.Stmts {
		s := connectStmt(stmt, g, cur)
		returns = append(returns, s.returns...)
		if len(s.leaves) > 0 {
			cur = s.leaves
		}
	}
	if block.Implicit != nil {
		s := connectExpr(block.Implicit, g, cur)
		returns = append(returns, s.returns...)
		if len(s.leaves) > 0 {
			cur = s.leaves
		} else {
			cur = nil
		}
	}
	return step{leaves: cur, returns: returns}
}

// BuildFunctionGraph builds the return-path graph for one function body,
// returning the graph plus its entry and exit nodes (spec §4.2).
func BuildFunctionGraph(fn *typedast.FuncDecl) (g *Graph, entry, exit NodeID) {
	g = NewGraph()
	entry = g.addNode(fn.Span())
	bodyStep := connectBlock(fn.Body, g, []NodeID{entry})
	exit = g.addNode(fn.Span())
	for _, r := range bodyStep.returns {
		g.addEdge(r, exit)
	}
	return g, entry, exit
}
