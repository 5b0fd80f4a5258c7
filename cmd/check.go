package cmd

import (
	"go/token"
	"log/slog"
	"runtime"

	"github.com/cottand/ileinfer/frontend/ilerr"
	"github.com/cottand/ileinfer/frontend/infer"
	"github.com/cottand/ileinfer/frontend/loader"
	"github.com/cottand/ileinfer/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check FILE.yaml...",
	Short:        "Infer the type of each program",
	RunE:         runCheck,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

var (
	checkStrategy *string
	checkJobs     *int
	checkLogLevel *int
	checkDebug    *bool
)

func init() {
	checkStrategy = CheckCmd.Flags().StringP("strategy", "s", infer.ConstraintStrategy.Name(),
		"inference strategy, 'constraints' or 'algorithmic'")
	checkJobs = CheckCmd.Flags().IntP("jobs", "j", runtime.GOMAXPROCS(0), "files checked in parallel")
	checkLogLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	checkDebug = CheckCmd.Flags().Bool("debug", false, "print where each diagnostic was raised")
}

// loadUnits loads every path into fset. Files that cannot be loaded
// are not a type error, and stop the command
func loadUnits(fset *token.FileSet, paths []string) ([]infer.Unit, error) {
	units := make([]infer.Unit, 0, len(paths))
	for _, path := range paths {
		root, err := loader.LoadFile(fset, path)
		if err != nil {
			return nil, errors.Wrap(err, "could not load program")
		}
		units = append(units, infer.NewUnit(path, root))
	}
	return units, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*checkLogLevel))
	ilerr.SetDebugPrinting(*checkDebug)
	logger := log.DefaultLogger.With("section", "cmd")

	strategy, err := infer.StrategyByName(*checkStrategy)
	if err != nil {
		return err
	}

	fset := token.NewFileSet()
	units, err := loadUnits(fset, args)
	if err != nil {
		return err
	}
	logger.Debug("loaded", "units", len(units), "strategy", strategy.Name())

	results, err := infer.CheckUnits(cmd.Context(), units, *checkJobs, infer.WithStrategy(strategy))
	if err != nil {
		return errors.Wrap(err, "could not check programs")
	}

	p := newPrinter(cmd.OutOrStdout(), fset)
	failed := 0
	for _, result := range results {
		p.unit(result)
		if !result.OK() {
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("type errors found in %d of %d files", failed, len(results))
	}
	return nil
}
