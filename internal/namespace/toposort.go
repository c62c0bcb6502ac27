package namespace

import "strings"

// CycleError reports a dependency cycle detected while ordering compile
// units or module imports.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return "dependency cycle detected: " + strings.Join(e.Cycle, " -> ")
}

// TopoSort orders roots and everything reachable from them (via deps) so
// that every module's dependencies precede it, detecting cycles along the
// way. Grounded on the teacher's internal/link/topo.go ModuleLinker DFS
// (post-order DFS already yields dependency-first order; no reversal
// needed), stripped of its loader-specific plumbing and debug logging.
func TopoSort(roots []string, deps func(string) ([]string, error)) ([]string, error) {
	visited := make(map[string]bool)
	inPath := make(map[string]bool)
	var sorted []string
	var path []string

	var dfs func(node string) error
	dfs = func(node string) error {
		if visited[node] {
			return nil
		}
		if inPath[node] {
			cycle := []string{}
			started := false
			for _, n := range path {
				if n == node {
					started = true
				}
				if started {
					cycle = append(cycle, n)
				}
			}
			cycle = append(cycle, node)
			return &CycleError{Cycle: cycle}
		}

		inPath[node] = true
		path = append(path, node)

		ds, err := deps(node)
		if err != nil {
			return err
		}
		for _, d := range ds {
			if err := dfs(d); err != nil {
				return err
			}
		}

		inPath[node] = false
		path = path[:len(path)-1]
		visited[node] = true
		sorted = append(sorted, node)
		return nil
	}

	for _, root := range roots {
		if err := dfs(root); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
