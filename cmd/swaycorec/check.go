package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FuelLabs/sway-core-go/internal/diagnostics"
	"github.com/FuelLabs/sway-core-go/internal/pipeline"
)

// newCheckCmd backs `swaycorec check <dir>`: runs S1 (type checking) and S2
// (control-flow analysis) only, per SPEC_FULL §10.4, and prints whatever
// diagnostics came out. Exits non-zero iff any unit reported an error.
func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [package-dir]",
		Short: "Type-check and analyze a package without generating code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			plan, err := loadPlan(dir)
			if err != nil {
				return err
			}

			sources := map[string]string{}
			p := pipeline.New(logger)
			results := p.CheckPlan(plan, loadUnitFiles(sources))

			renderer := diagnostics.NewRenderer(os.Stdout)
			ok := true
			for _, r := range results {
				renderer.Render(r.Diagnostics, sources)
				if !r.Diagnostics.OK() {
					ok = false
				}
			}
			if !ok {
				return fmt.Errorf("check failed")
			}
			fmt.Println("no errors")
			return nil
		},
	}
	return cmd
}
