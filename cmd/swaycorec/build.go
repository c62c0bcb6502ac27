package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FuelLabs/sway-core-go/internal/diagnostics"
	"github.com/FuelLabs/sway-core-go/internal/pipeline"
)

// newBuildCmd backs `swaycorec build <dir>`: runs the full pipeline (S1-S5)
// and, on success, writes the assembly listing to stdout and the ABI
// descriptor as JSON to <out>/abi.json (spec §6.4's ABI structure; the core
// only builds it, serialization is this driver's job per that same
// section).
func newBuildCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build [package-dir]",
		Short: "Compile a package to assembly and an ABI descriptor",
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
			results := p.RunPlan(plan, loadUnitFiles(sources))

			renderer := diagnostics.NewRenderer(os.Stdout)
			for _, r := range results {
				renderer.Render(r.Diagnostics, sources)
			}
			last := results[len(results)-1]
			if !last.Diagnostics.OK() {
				return fmt.Errorf("build failed")
			}

			fmt.Print(dumpAssembly(last.Artifacts.Functions))

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				abiJSON, err := json.MarshalIndent(last.Artifacts.ABI, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(outDir+"/abi.json", abiJSON, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "wrote %s/abi.json\n", outDir)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "directory to write abi.json into")
	return cmd
}
