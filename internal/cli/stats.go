package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/punch-project/punch/internal/stats"
	"github.com/punch-project/punch/pkg/color"
	"github.com/punch-project/punch/pkg/errclass"
	"github.com/punch-project/punch/pkg/model"
)

var statsCmd = &cobra.Command{
	Use:   "stats [month]",
	Short: "Show worked time per day, week and month",
	Long: `Show worked time per day, week and month.

The report covers the most recent calendar months; how many is set by
the stats_months config key. An optional month name ("august", "aug")
restricts the report to that month; "current" and "now" select the
month of today.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		now := currentTime()
		cfg := loadConfig()

		target, err := cfg.TargetDuration()
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		opts := stats.Options{
			Now:          now,
			DailyTarget:  target,
			WindowMonths: cfg.StatsMonths,
		}
		if len(args) > 0 {
			month, err := parseMonthArg(args[0], now)
			if err != nil {
				fmtErr("%v", err)
				os.Exit(1)
			}
			opts.MonthFilter = month
		}

		s := openStore()
		log := loadLogOrEmpty(s)
		report := stats.Aggregate(log, opts)

		if jsonOutput {
			outputJSON(report)
			return
		}
		printReport(report, target)
	},
}

// parseMonthArg maps a month name or prefix to a calendar month.
// "current" and "now" mean the month of today.
func parseMonthArg(arg string, now time.Time) (time.Month, error) {
	name := strings.ToLower(arg)
	if name == "current" || name == "now" {
		return now.Month(), nil
	}
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m, nil
		}
	}
	return 0, errclass.ErrParse.WithMessagef("unknown month %q", arg)
}

func printReport(report *stats.Report, target time.Duration) {
	if len(report.Days) == 0 {
		fmt.Println("No recorded work in the reporting window")
		printOpenSession(report)
		return
	}

	printBuckets("Days", report.Days, target)
	printBuckets("Weeks", report.Weeks, target)
	printBuckets("Months", report.Months, target)
	printOpenSession(report)
}

func printBuckets(title string, buckets []stats.Bucket, target time.Duration) {
	if len(buckets) == 0 {
		return
	}
	fmt.Println(color.Header(title))

	width := 0
	for _, b := range buckets {
		if w := runewidth.StringWidth(b.Label); w > width {
			width = w
		}
	}
	for _, b := range buckets {
		line := fmt.Sprintf("  %s  %8s", runewidth.FillRight(b.Label, width), formatDuration(b.Net))
		if target > 0 {
			delta := formatDelta(b.Delta)
			if b.Delta < 0 {
				delta = color.Deficit(delta)
			} else {
				delta = color.Surplus(delta)
			}
			line += fmt.Sprintf("  (%s)", delta)
		}
		if b.InProgress {
			line += " " + color.Dim("(running)")
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func printOpenSession(report *stats.Report) {
	switch report.State {
	case model.Working:
		fmt.Printf("%s since %s\n", color.Success("Working"), formatClock(*report.OpenStart))
	case model.OnBreak:
		fmt.Printf("%s since %s\n", color.Warning("On break"), formatClock(*report.OpenBreak))
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
