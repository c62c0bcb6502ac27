package main

import (
	"fmt"
	"strings"

	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/iranalysis"
)

// dominatorDot renders fn's dominator tree as Graphviz dot, ported from
// original_source/sway-ir/src/analysis/dominator.rs's print_dot. It lives
// here rather than in internal/ir because internal/iranalysis already
// imports internal/ir (DomTree is built over *ir.Function/*ir.Block); a
// dot-printer inside internal/ir that also needed DomTree would close that
// into an import cycle. cmd/swaycorec has no such constraint, so the
// `ir -dot` debug flag lives next to the subcommand that uses it.
func dominatorDot(fn *ir.Function, tree *iranalysis.DomTree) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s_dom {\n", fn.Name)
	for _, blk := range fn.Blocks {
		parent, ok := tree.Parent(blk)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %q -> %q\n", parent.Label, blk.Label)
	}
	b.WriteString("}\n")
	return b.String()
}
