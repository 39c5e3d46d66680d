package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/internal/tracker"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Undo the most recent action",
	Long: `Undo the most recent action of the open session.

Removes the latest event from the log: a just-started period is
discarded, an open break is turned back into working time. Cancelling
while not working does nothing.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		log := loadLogOrEmpty(s)

		res, err := tracker.Cancel(log)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		if !res.NoOp {
			saveLog(s, log)
		}

		if jsonOutput {
			outputJSON(res)
			return
		}
		if res.NoOp {
			fmt.Println("Nothing to cancel")
			return
		}
		fmt.Printf("Cancelled %s, now %s\n", res.Removed.Kind, res.State)
	},
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}
