package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/punch-project/punch/internal/store"
	"github.com/punch-project/punch/pkg/color"
	"github.com/punch-project/punch/pkg/config"
	"github.com/punch-project/punch/pkg/errclass"
	"github.com/punch-project/punch/pkg/logging"
	"github.com/punch-project/punch/pkg/model"
	"github.com/punch-project/punch/pkg/pathutil"
)

// nowFunc supplies "now" for every command; tests may stub it. The core
// packages receive the timestamp as a parameter and never read a clock.
var nowFunc = time.Now

func currentTime() time.Time {
	return nowFunc()
}

// configDir resolves the punch configuration directory, or exits.
func configDir() string {
	dir, err := config.Dir()
	if err != nil {
		fmtErr("%v", err)
		os.Exit(1)
	}
	return dir
}

// openStore resolves the storage path (--storage override or default
// location) and returns a store for it, or exits.
func openStore() *store.Store {
	if storageOverride != "" {
		path, err := pathutil.ValidateStoragePath(storageOverride)
		if err != nil {
			fmtErr("%v", err)
			os.Exit(1)
		}
		return store.New(path)
	}
	return store.New(store.DefaultPath(configDir()))
}

// loadConfig reads the configuration file, or exits.
func loadConfig() *config.Config {
	cfg, err := config.Load(configDir())
	if err != nil {
		fmtErr("load config: %v", err)
		os.Exit(1)
	}
	return cfg
}

// loadLogOrEmpty loads the event log, treating a missing storage file as
// an empty log on first use. Corruption is fatal.
func loadLogOrEmpty(s *store.Store) *model.Log {
	log, err := s.Load()
	if errors.Is(err, errclass.ErrStorageNotFound) {
		logging.Debug("no storage file yet, starting empty", map[string]any{"path": s.Path()})
		return &model.Log{}
	}
	if err != nil {
		fmtErr("%v", err)
		os.Exit(1)
	}
	logging.Debug("loaded storage", map[string]any{"path": s.Path(), "events": log.Len()})
	return log
}

// saveLog rewrites the storage file, or exits.
func saveLog(s *store.Store, log *model.Log) {
	if err := s.Save(log); err != nil {
		fmtErr("%v", err)
		os.Exit(1)
	}
	logging.Debug("saved storage", map[string]any{"path": s.Path(), "events": log.Len()})
}

// addTimingFlags registers the shared -t/--time and -o/--offset flags of
// the start/stop/break commands.
func addTimingFlags(cmd *cobra.Command, clock, offset *string) {
	cmd.Flags().StringVarP(clock, "time", "t", "", "absolute time today in format HH:MM")
	cmd.Flags().StringVarP(offset, "offset", "o", "", "offset to now in format <num><h|m|s>...<+|->")
	cmd.MarkFlagsMutuallyExclusive("time", "offset")
}

func fmtErr(format string, args ...any) {
	prefix := "punch: "
	if color.Enabled() {
		prefix = color.Error("punch:") + " "
	}
	fmt.Fprintf(os.Stderr, prefix+format+"\n", args...)
}

// formatClock renders a timestamp as local wall-clock time.
func formatClock(t time.Time) string {
	return t.Local().Format("15:04")
}

// formatDuration renders a duration as h:mm, e.g. "7:45h" or "-0:15h".
func formatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	return fmt.Sprintf("%s%d:%02dh", sign, h, m)
}

// formatDelta renders a signed balance with a leading + for surpluses.
func formatDelta(d time.Duration) string {
	if d >= 0 {
		return "+" + formatDuration(d)
	}
	return formatDuration(d)
}
