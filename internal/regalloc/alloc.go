package regalloc

import "github.com/FuelLabs/sway-core-go/internal/codegen"

// AllocateFunction runs the full Chaitin pipeline (spec §4.5 step 4) over
// one function's realized, label-clean instruction list: liveness
// analysis, interference-graph construction, coalescing, simplification
// with heuristic spilling, assignment, and final rewrite. fnName is used
// only to attach a function name to a SpillError.
func AllocateFunction(fnName string, realized codegen.RealizedInstructionSet) ([]AllocatedOp, error) {
	live := AnalyzeLiveness(realized.Ops)
	graph := NewGraph(realized.Ops, live)
	uf, prunedOps := Coalesce(graph, realized.Ops)

	coloring, err := Allocate(graph, codegen.NumAllocatable, fnName)
	if err != nil {
		return nil, err
	}
	return Rewrite(prunedOps, graph, uf, coloring), nil
}
