package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/pkg/color"
	"github.com/punch-project/punch/pkg/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		log := loadLogOrEmpty(s)
		now := currentTime()

		if jsonOutput {
			outputJSON(statusView(log, now))
			return
		}

		state := log.State()
		switch state {
		case model.Idle:
			fmt.Println("Not working")
		case model.Working:
			open, _ := log.OpenStart()
			fmt.Printf("%s since %s\n", color.Success("Working"), formatClock(open.Timestamp))
		case model.OnBreak:
			open, _ := log.OpenBreak()
			fmt.Printf("%s since %s\n", color.Warning("On break"), formatClock(open.Timestamp))
		}
		if state != model.Idle {
			fmt.Printf("Worked today: %s\n", formatDuration(workedOnDay(log, now)))
		}
	},
}

type statusInfo struct {
	State       string         `json:"state"`
	OpenStart   *string        `json:"open_start,omitempty"`
	OpenBreak   *string        `json:"open_break,omitempty"`
	WorkedToday *time.Duration `json:"worked_today,omitempty"`
}

func statusView(log *model.Log, now time.Time) statusInfo {
	info := statusInfo{State: log.State().String()}
	if open, ok := log.OpenStart(); ok {
		ts := open.Timestamp.Format(time.RFC3339Nano)
		info.OpenStart = &ts
		worked := workedOnDay(log, now)
		info.WorkedToday = &worked
	}
	if open, ok := log.OpenBreak(); ok {
		ts := open.Timestamp.Format(time.RFC3339Nano)
		info.OpenBreak = &ts
	}
	return info
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
