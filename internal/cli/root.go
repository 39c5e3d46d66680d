// Package cli wires the punch commands. All session and statistics logic
// lives below in tracker, stats and store; this layer resolves paths,
// renders results and maps errors to exit codes.
package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/pkg/color"
	"github.com/punch-project/punch/pkg/logging"
)

var (
	storageOverride string
	jsonOutput      bool
	noColor         bool
	verbose         bool

	rootCmd = &cobra.Command{
		Use:   "punch",
		Short: "punch - a personal work-time tracker",
		Long: `punch records when you start and stop working and when you take breaks,
and derives daily, weekly and monthly statistics against a configured
working-time target. History lives in a single JSON file that is replaced
atomically on every change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Init(noColor)
			if verbose {
				logging.SetGlobalLevel(logging.LevelDebug)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&storageOverride, "storage", "", "path to the storage file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmtErr("%v", err)
		os.Exit(1)
	}
}

// outputJSON prints v as indented JSON on stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
