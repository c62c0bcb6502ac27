// Package planning adapts the teacher's scaffolder/validator pair (which
// built AILANG source files from an LLM-authored JSON plan) into a
// compile-unit planner: given every manifest a driver has loaded for a
// package and its dependencies, it orders units so each is compiled after
// everything it depends on, and validates that every declared dependency
// actually has a manifest in the plan before the pipeline ever runs
// (SPEC_FULL §10.1). Ordering reuses internal/namespace's TopoSort rather
// than re-deriving cycle detection, since both problems are the same DFS
// over a name-keyed dependency graph.
package planning

import (
	"fmt"
	"sort"

	"github.com/FuelLabs/sway-core-go/internal/errors"
	"github.com/FuelLabs/sway-core-go/internal/manifest"
	"github.com/FuelLabs/sway-core-go/internal/namespace"
)

// Unit is one package's manifest plus the names of the dependency units it
// must be compiled after. Dependencies is sorted for deterministic
// iteration (spec §5's hash-map-order ban extends to planning output).
type Unit struct {
	Name         string
	Manifest     *manifest.Manifest
	Dependencies []string
}

// Plan is the ordered compile schedule a driver feeds to internal/pipeline,
// one unit at a time, each guaranteed to follow every unit it depends on.
type Plan struct {
	Units []Unit
}

// Build orders the manifests reachable from root into a Plan. manifests
// maps each package's declared name to its parsed manifest; root is the
// name of the package actually being compiled (its transitive dependency
// closure is what gets planned — sibling packages unreachable from root are
// left out, matching forc's own per-target dependency resolution).
//
// Every error PLN002 names is collected into Errors rather than returned
// directly (per spec §7's two-vector propagation policy); Build still
// returns early with a nil Plan once a dependency cycle (PLN001) is hit,
// since no ordering exists to report.
func Build(manifests map[string]*manifest.Manifest, root string) (*Plan, errors.Result[*Plan]) {
	var result errors.Result[*Plan]

	if _, ok := manifests[root]; !ok {
		result.AddError(errors.New(errors.PLN002, errors.PhasePlanning,
			fmt.Sprintf("root package %q has no manifest", root), nil, map[string]any{"package": root}))
		return nil, result
	}

	deps := func(name string) ([]string, error) {
		m, ok := manifests[name]
		if !ok {
			// Missing dependency is reported as a diagnostic, not a Go
			// error, so TopoSort can keep walking the rest of the graph;
			// treat it as a leaf here so the cycle search still
			// terminates.
			return nil, nil
		}
		names := make([]string, len(m.Dependencies))
		for i, d := range m.Dependencies {
			names[i] = d.Name
		}
		sort.Strings(names)
		return names, nil
	}

	order, err := namespace.TopoSort([]string{root}, deps)
	if err != nil {
		if cycleErr, ok := err.(*namespace.CycleError); ok {
			result.AddError(errors.New(errors.PLN001, errors.PhasePlanning,
				cycleErr.Error(), nil, map[string]any{"cycle": cycleErr.Cycle}))
			return nil, result
		}
		result.AddError(errors.NewInternal(errors.PhasePlanning, nil, err))
		return nil, result
	}

	plan := &Plan{}
	for _, name := range order {
		m := manifests[name]
		if m == nil {
			result.AddError(errors.New(errors.PLN002, errors.PhasePlanning,
				fmt.Sprintf("dependency %q has no manifest in this plan", name), nil, map[string]any{"package": name}))
			continue
		}
		depNames := make([]string, len(m.Dependencies))
		for i, d := range m.Dependencies {
			depNames[i] = d.Name
		}
		sort.Strings(depNames)
		plan.Units = append(plan.Units, Unit{
			Name:         name,
			Manifest:     m,
			Dependencies: depNames,
		})
	}

	if !result.OK() {
		return nil, result
	}
	result.Value = plan
	return plan, result
}
