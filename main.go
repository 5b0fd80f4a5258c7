package main

import (
	"os"

	"github.com/cottand/ileinfer/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "ileinfer [subcommand]",
	Short:        "ileinfer 🌴\n type inference for ile programs written as YAML syntax trees",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
	rootCmd.AddCommand(cmd.ConstraintsCmd)
}
