// Command swaycorec is a thin driver over internal/pipeline (SPEC_FULL
// §10.4), adapted from the teacher's cmd/ailang: where ailang dispatched
// run/repl/test/watch/check/export-training/lsp onto a tree-walking
// evaluator, swaycorec exposes only the three subcommands the core's
// output contract actually supports — check, build, ir — each a thin
// cobra.Command wrapping one Pipeline call plus diagnostic rendering.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version info, set by ldflags during build; kept from the teacher's own
// main.go var block.
var (
	Version = "dev"
	Commit  = "unknown"
)

// logger is nil unless -v/--verbose was passed, making every Pipeline
// stage trace a no-op by default (diagnostics/trace.go's "opt-in" design).
var logger *logrus.Logger

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "swaycorec",
		Short:         "Compile contract-oriented packages to register-VM assembly and ABI JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = logrus.New()
				logger.SetLevel(logrus.DebugLevel)
				logger.SetOutput(os.Stderr)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace each pipeline stage to stderr")

	root.AddCommand(newCheckCmd(), newBuildCmd(), newIRCmd())
	return root
}
