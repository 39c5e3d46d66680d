package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config <command>",
	Short: "Manage punch configuration",
	Long: `Manage punch configuration stored in config.yaml.

Configuration options:
  daily_target  - Target worked time per day, e.g. "8h" or "7h30m"
  stats_months  - Number of recent calendar months shown by stats

Available commands:
  show              - Show current configuration
  set <key> <value> - Set a configuration value
  get <key>         - Get a configuration value`,
	DisableFlagsInUseLine: true,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		dir := configDir()
		cfg, err := config.Load(dir)
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		if jsonOutput {
			outputJSON(cfg)
			return
		}

		fmt.Println("# Punch configuration")
		fmt.Printf("# Location: %s\n\n", filepath.Join(dir, config.FileName))

		if cfg.DailyTarget != "" {
			fmt.Printf("daily_target: %s\n", cfg.DailyTarget)
		} else {
			fmt.Println("daily_target: (not set)")
		}
		fmt.Printf("stats_months: %d\n", cfg.StatsMonths)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in config.yaml.

Examples:
  punch config set daily_target 8h
  punch config set stats_months 3`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		dir := configDir()
		cfg, err := config.Load(dir)
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		key := args[0]
		value := args[1]

		if err := cfg.Set(key, value); err != nil {
			fmtErr("set config: %v", err)
			os.Exit(1)
		}
		if err := config.Save(dir, cfg); err != nil {
			fmtErr("save config: %v", err)
			os.Exit(1)
		}

		fmt.Printf("Set %s = %s\n", key, value)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configDir())
		if err != nil {
			fmtErr("load config: %v", err)
			os.Exit(1)
		}

		value, err := cfg.Get(args[0])
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		fmt.Println(value)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}
