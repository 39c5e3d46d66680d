package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate a legacy storage file to the current layout",
	Long: `Migrate a legacy storage file to the current layout.

The legacy balance format is rewritten into the event log layout. The
original file is kept next to the storage file with a .bak suffix.
Settings embedded in the legacy file are moved into the configuration
file. Running migrate on an already-current file is a no-op.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()

		res, err := s.Migrate()
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}

		if res.LegacyConfig != nil {
			mergeLegacyConfig(res.LegacyConfig)
		}

		if jsonOutput {
			outputJSON(res)
			return
		}
		if res.AlreadyCurrent {
			fmt.Println("Storage is already in the current layout")
			return
		}
		fmt.Printf("Migrated %d events\n", res.Events)
		fmt.Printf("Legacy file preserved as %s\n", res.BackupPath)
	},
}

// mergeLegacyConfig copies settings recovered from a legacy storage file
// into the configuration file, without overwriting values already set.
func mergeLegacyConfig(legacy *config.Config) {
	dir := configDir()
	cfg, err := config.Load(dir)
	if err != nil {
		fmtErr("load config: %v", err)
		os.Exit(1)
	}

	changed := false
	if cfg.DailyTarget == "" && legacy.DailyTarget != "" {
		cfg.DailyTarget = legacy.DailyTarget
		changed = true
	}
	if cfg.StatsMonths == config.Default().StatsMonths && legacy.StatsMonths != 0 {
		cfg.StatsMonths = legacy.StatsMonths
		changed = true
	}
	if !changed {
		return
	}
	if err := config.Save(dir, cfg); err != nil {
		fmtErr("save config: %v", err)
		os.Exit(1)
	}
	fmt.Printf("Carried over legacy settings to %s\n", dir)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
