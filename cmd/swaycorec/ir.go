package main

import (
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/FuelLabs/sway-core-go/internal/diagnostics"
	"github.com/FuelLabs/sway-core-go/internal/ir"
	"github.com/FuelLabs/sway-core-go/internal/iranalysis"
	"github.com/FuelLabs/sway-core-go/internal/pipeline"
)

// newIRCmd backs `swaycorec ir <dir>`: runs the full pipeline and dumps the
// IR module's text form post-S4 passes (spec §10.4's debugging subcommand).
// -watch re-runs on every Enter press, adapted from the teacher's
// internal/repl line-editing loop (originally an expression REPL) into a
// file-watch loop: each iteration re-reads sources and re-runs the whole
// plan rather than evaluating a typed-in expression.
func newIRCmd() *cobra.Command {
	var watch bool
	var dot bool

	cmd := &cobra.Command{
		Use:   "ir [package-dir]",
		Short: "Dump the IR module for a package, after optimization passes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if !watch {
				return runIROnce(dir, dot)
			}
			return watchIR(dir, dot)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run on every Enter press")
	cmd.Flags().BoolVar(&dot, "dot", false, "print each function's dominator tree as Graphviz dot instead of the IR dump")
	return cmd
}

func runIROnce(dir string, dot bool) error {
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
		return fmt.Errorf("ir dump failed")
	}
	if !dot {
		fmt.Print(ir.Dump(last.Artifacts.Module))
		return nil
	}
	cache := iranalysis.NewCache()
	for _, fn := range last.Artifacts.Module.Functions {
		fmt.Print(dominatorDot(fn, cache.DomTree(fn)))
	}
	return nil
}

func watchIR(dir string, dot bool) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("swaycorec ir -watch: press Enter to recompile, Ctrl-C to quit")
	for {
		_, err := line.Prompt("> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		if err := runIROnce(dir, dot); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
