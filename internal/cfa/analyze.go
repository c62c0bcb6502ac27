package cfa

import (
	"fmt"

	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/typedast"
	"github.com/FuelLabs/sway-core-go/internal/types"
)

// maxReturnPathIterations bounds the rover-expansion loop in
// EnsureAllPathsReturn, matching analyze_return_paths.rs's fixed cap
// (the source comments it as a defense against graphs that never settle,
// though in practice function-body graphs are finite and shallow).
const maxReturnPathIterations = 50

// EnsureAllPathsReturn walks the graph outward from entry in lockstep
// breadth-first waves, flagging any rover whose path dead-ends before exit
// when the function's return type is not unit (spec §4.2, CFA001
// PathDoesNotReturn). Ported from ensure_all_paths_reach_exit.
func EnsureAllPathsReturn(g *Graph, entry, exit NodeID, fnName string, returnType types.TypeId, te *types.Engine) []*errors.Report {
	var reports []*errors.Report
	rovers := []NodeID{entry}
	iterations := maxReturnPathIterations

	for len(rovers) > 0 && rovers[0] != exit && iterations > 0 {
		iterations--

		filtered := rovers[:0]
		for _, r := range rovers {
			if r != exit {
				filtered = append(filtered, r)
			}
		}
		rovers = filtered

		var next []NodeID
		for _, rover := range rovers {
			neighbors := g.Successors(rover)
			if len(neighbors) == 0 && returnType != types.Unit {
				span := g.Span(rover)
				reports = append(reports, errors.New(
					errors.CFA001,
					errors.PhaseCFA,
					fmt.Sprintf("not all control paths of %q return a value of type %s", fnName, te.String(returnType)),
					&span,
					map[string]any{"function": fnName, "type": te.String(returnType)},
				))
			}
			next = append(next, neighbors...)
		}
		rovers = next
	}
	return reports
}

// AnalyzeFunction runs the return-path check for one typed function
// declaration.
func AnalyzeFunction(fn *typedast.FuncDecl, te *types.Engine) []*errors.Report {
	g, entry, exit := BuildFunctionGraph(fn)
	return EnsureAllPathsReturn(g, entry, exit, fn.Name, fn.ReturnType, te)
}

// DeadCode reports CFA002 warnings for statements that syntactically follow
// an unconditional return within the same block — these can never execute
// regardless of what the graph's stale-leaf chaining reaches, and are
// flagged independently of the reachability graph above.
func DeadCode(fn *typedast.FuncDecl) []*errors.Report {
	var reports []*errors.Report
	deadCodeInBlock(fn.Body, &reports)
	return reports
}

func deadCodeInBlock(block *typedast.Block, reports *[]*errors.Report) {
	terminated := false
	for _, stmt := range block.Stmts {
		if terminated {
			span := stmt.Span()
			*reports = append(*reports, errors.New(
				errors.CFA002, errors.PhaseCFA, "unreachable code", &span, nil,
			))
			continue
		}
		if es, ok := stmt.(*typedast.ExprStmt); ok {
			descendInto(es.Value, reports)
			if _, isReturn := es.Value.(*typedast.Return); isReturn {
				terminated = true
			}
		}
	}
	if block.Implicit != nil && !terminated {
		descendInto(block.Implicit, reports)
	} else if block.Implicit != nil && terminated {
		span := block.Implicit.Span()
		*reports = append(*reports, errors.New(errors.CFA002, errors.PhaseCFA, "unreachable code", &span, nil))
	}
}

func descendInto(expr typedast.Expr, reports *[]*errors.Report) {
	switch v := expr.(type) {
	case *typedast.If:
		deadCodeInBlock(v.Then, reports)
		if v.Else != nil {
			deadCodeInBlock(v.Else, reports)
		}
	case *typedast.While:
		deadCodeInBlock(v.Body, reports)
	case *typedast.Match:
		for _, arm := range v.Arms {
			descendInto(arm.Body, reports)
		}
	}
}
