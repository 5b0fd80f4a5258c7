package cmd

import (
	"fmt"
	"go/token"
	"log/slog"

	"github.com/cottand/ileinfer/frontend/infer"
	"github.com/cottand/ileinfer/frontend/types"
	"github.com/cottand/ileinfer/frontend/unify"
	"github.com/cottand/ileinfer/internal/log"
	"github.com/spf13/cobra"
)

var ConstraintsCmd = &cobra.Command{
	Use:          "constraints FILE.yaml",
	Short:        "Print the constraints collected for a program, and their solution",
	RunE:         runConstraints,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var constraintsLogLevel *int

func init() {
	constraintsLogLevel = ConstraintsCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runConstraints(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*constraintsLogLevel))

	fset := token.NewFileSet()
	units, err := loadUnits(fset, args)
	if err != nil {
		return err
	}

	supply := types.NewSupply()
	collector := infer.NewCollector(supply, infer.ConstraintStrategy)
	typed := collector.SynthesizeTyped(infer.NewRootContext(infer.DefaultBuiltins(supply)), units[0].Root)

	out := cmd.OutOrStdout()
	p := newPrinter(out, fset)
	set := collector.Constraints()
	for i, c := range set.All() {
		_, _ = fmt.Fprintf(out, "%4d  %s\n", i, c)
	}
	p.errors(collector.Errors())

	sub, err := unify.Solve(set, supply)
	if err != nil {
		_, _ = fmt.Fprintf(out, "no solution: %v\n", err)
		return nil
	}
	_, _ = fmt.Fprintf(out, "type: %s\n", sub.Apply(typed.Type))
	_, _ = fmt.Fprintf(out, "solution: %s\n", sub)
	return nil
}
