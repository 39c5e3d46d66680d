package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/internal/timeparse"
	"github.com/punch-project/punch/internal/tracker"
)

var (
	breakStartClock  string
	breakStartOffset string
	breakStopClock   string
	breakStopOffset  string
)

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Manage breaks within the running work period",
}

var breakStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a break",
	Long: `Start a break within the running work period.

Break time is subtracted from the worked time of the period.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		at, err := timeparse.Resolve(currentTime(), breakStartClock, breakStartOffset)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		s := openStore()
		log := loadLogOrEmpty(s)

		res, err := tracker.StartBreak(log, at)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		saveLog(s, log)

		if jsonOutput {
			outputJSON(res)
		} else {
			fmt.Printf("Started break at %s\n", formatClock(at))
		}
	},
}

var breakStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the open break",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		at, err := timeparse.Resolve(currentTime(), breakStopClock, breakStopOffset)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		s := openStore()
		log := loadLogOrEmpty(s)

		res, err := tracker.StopBreak(log, at)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		saveLog(s, log)

		if jsonOutput {
			outputJSON(res)
		} else {
			fmt.Printf("Stopped break at %s\n", formatClock(at))
		}
	},
}

var breakDurationCmd = &cobra.Command{
	Use:     "duration HH:MM",
	Aliases: []string{"dur"},
	Short:   "Record a break of a fixed length ending now",
	Long: `Record a break of a fixed length ending now.

The argument is a duration in HH:MM form, e.g. "00:45" for 45 minutes.
The break is recorded as if it started that long ago and just ended.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := timeparse.ParseHourMinute(args[0])
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		s := openStore()
		log := loadLogOrEmpty(s)

		res, err := tracker.RecordBreak(log, currentTime(), d)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		saveLog(s, log)

		if jsonOutput {
			outputJSON(res)
		} else {
			fmt.Printf("Recorded a break of %s\n", formatDuration(d))
		}
	},
}

func init() {
	addTimingFlags(breakStartCmd, &breakStartClock, &breakStartOffset)
	addTimingFlags(breakStopCmd, &breakStopClock, &breakStopOffset)
	breakCmd.AddCommand(breakStartCmd)
	breakCmd.AddCommand(breakStopCmd)
	breakCmd.AddCommand(breakDurationCmd)
	rootCmd.AddCommand(breakCmd)
}
