package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/internal/stats"
	"github.com/punch-project/punch/internal/timeparse"
	"github.com/punch-project/punch/internal/tracker"
	"github.com/punch-project/punch/pkg/color"
	"github.com/punch-project/punch/pkg/model"
)

var (
	stopClock  string
	stopOffset string
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running work period",
	Long: `Stop the running work period.

The stop is recorded at the current time unless --time or --offset
moves it. An open break must be stopped first. After stopping, the
total worked time of the day is printed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		at, err := timeparse.Resolve(currentTime(), stopClock, stopOffset)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		s := openStore()
		log := loadLogOrEmpty(s)

		opened, wasOpen := log.OpenStart()

		res, err := tracker.Stop(log, at)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		saveLog(s, log)

		if wasOpen && at.Sub(opened.Timestamp) > 24*time.Hour {
			fmt.Fprintln(os.Stderr, color.Warning(fmt.Sprintf(
				"warning: work period longer than 24h (started %s)",
				opened.Timestamp.Local().Format("2006-01-02 15:04"))))
		}

		if jsonOutput {
			outputJSON(res)
			return
		}

		fmt.Printf("Stopped work at %s\n", formatClock(at))
		fmt.Printf("Worked today: %s\n", formatDuration(workedOnDay(log, at)))
	},
}

func init() {
	addTimingFlags(stopCmd, &stopClock, &stopOffset)
	rootCmd.AddCommand(stopCmd)
}

// workedOnDay sums the net worked time of the day containing t.
func workedOnDay(log *model.Log, t time.Time) time.Duration {
	report := stats.Aggregate(log, stats.Options{Now: t, WindowMonths: 2})
	label := t.Local().Format(time.DateOnly)
	for _, b := range report.Days {
		if b.Label == label {
			return b.Net
		}
	}
	return 0
}
