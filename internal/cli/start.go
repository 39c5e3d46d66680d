package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/internal/timeparse"
	"github.com/punch-project/punch/internal/tracker"
)

var (
	startClock  string
	startOffset string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new work period",
	Long: `Start a new work period.

The start is recorded at the current time unless --time or --offset
moves it. Starting while a period is already running is an error.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		at, err := timeparse.Resolve(currentTime(), startClock, startOffset)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		s := openStore()
		log := loadLogOrEmpty(s)

		res, err := tracker.Start(log, at)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		saveLog(s, log)

		if jsonOutput {
			outputJSON(res)
		} else {
			fmt.Printf("Started work at %s\n", formatClock(at))
		}
	},
}

func init() {
	addTimingFlags(startCmd, &startClock, &startOffset)
	rootCmd.AddCommand(startCmd)
}
