package store

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/punch-project/punch/pkg/config"
	"github.com/punch-project/punch/pkg/errclass"
	"github.com/punch-project/punch/pkg/model"
)

// Layout identifies the storage layout of raw file content.
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutCurrent
	LayoutLegacy
)

// legacyBalance is the pre-versioning storage layout: a running balance
// object instead of an event log.
type legacyBalance struct {
	Start    *time.Time                `json:"start"`
	Breaking *time.Time                `json:"breaking"`
	Breaks   [][]json.RawMessage       `json:"breaks"`
	Config   *legacyConfig             `json:"config"`
	Account  map[string]legacyDuration `json:"account"`
}

type legacyDuration struct {
	Secs  int64 `json:"secs"`
	Nanos int64 `json:"nanos"`
}

func (d legacyDuration) duration() time.Duration {
	return time.Duration(d.Secs)*time.Second + time.Duration(d.Nanos)
}

type legacyConfig struct {
	MonthStats *int `json:"month_stats"`
	DailyHours *int `json:"daily_hours"`
}

// DetectLayout decides which layout raw content is in. Detection is
// explicit: a version tag selects the current layout, the legacy key
// shape selects legacy, anything else is unknown and migration fails
// closed rather than guessing.
func DetectLayout(data []byte) Layout {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return LayoutUnknown
	}
	if _, ok := probe["version"]; ok {
		return LayoutCurrent
	}
	if _, ok := probe["account"]; ok {
		return LayoutLegacy
	}
	return LayoutUnknown
}

// MigrationResult reports what a migration did.
type MigrationResult struct {
	// AlreadyCurrent is set when the file was in the current layout.
	AlreadyCurrent bool
	// Events is the number of events in the migrated log.
	Events int
	// BackupPath is where the legacy file content was preserved.
	BackupPath string
	// LegacyConfig carries settings embedded in the legacy file, to be
	// merged into the configuration file by the caller. Nil if none.
	LegacyConfig *config.Config
}

// Migrate rewrites a legacy storage file into the current layout. The
// legacy content is preserved as <path>.bak. Migrating a file already in
// the current layout is a no-op, keeping the command idempotent.
func (s *Store) Migrate() (*MigrationResult, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, errclass.ErrStorageNotFound.WithMessagef("no storage file at %s", s.path)
	}
	if err != nil {
		return nil, errclass.ErrIO.WithMessagef("read storage: %v", err)
	}

	switch DetectLayout(data) {
	case LayoutCurrent:
		if _, err := Decode(data); err != nil {
			return nil, err
		}
		return &MigrationResult{AlreadyCurrent: true}, nil
	case LayoutLegacy:
		// handled below
	default:
		return nil, errclass.ErrMigration.WithMessage("storage matches neither the legacy nor the current layout")
	}

	log, legacyCfg, err := convertLegacy(data)
	if err != nil {
		return nil, err
	}

	backup := s.path + ".bak"
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return nil, errclass.ErrIO.WithMessagef("write backup: %v", err)
	}
	if err := s.Save(log); err != nil {
		return nil, err
	}

	return &MigrationResult{
		Events:       log.Len(),
		BackupPath:   backup,
		LegacyConfig: legacyCfg,
	}, nil
}

// convertLegacy turns a balance object into an event log. Each account
// entry holds the stop timestamp and the net duration, so the matching
// start is reconstructed as stop minus duration. An open start carries
// its finished breaks and an open break over as trailing events.
func convertLegacy(data []byte) (*model.Log, *config.Config, error) {
	var legacy legacyBalance
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, nil, errclass.ErrMigration.WithMessagef("decode legacy storage: %v", err)
	}

	type accountEntry struct {
		stop time.Time
		dur  time.Duration
	}
	entries := make([]accountEntry, 0, len(legacy.Account))
	for raw, d := range legacy.Account {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, nil, errclass.ErrMigration.WithMessagef("legacy account key %q: not a timestamp", raw)
		}
		entries = append(entries, accountEntry{stop: ts, dur: d.duration()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].stop.Before(entries[j].stop) })

	log := &model.Log{}
	for _, e := range entries {
		log.Append(model.NewEvent(model.KindStart, e.stop.Add(-e.dur)))
		log.Append(model.NewEvent(model.KindStop, e.stop))
	}

	if legacy.Start != nil {
		log.Append(model.NewEvent(model.KindStart, *legacy.Start))
		breaks, err := parseLegacyBreaks(legacy.Breaks)
		if err != nil {
			return nil, nil, err
		}
		for _, b := range breaks {
			log.Append(model.NewEvent(model.KindBreakStart, b.start))
			log.Append(model.NewEvent(model.KindBreakStop, b.start.Add(b.dur)))
		}
		if legacy.Breaking != nil {
			log.Append(model.NewEvent(model.KindBreakStart, *legacy.Breaking))
		}
	}

	if err := log.Validate(); err != nil {
		return nil, nil, errclass.ErrMigration.WithMessagef("legacy storage yields an inconsistent log: %v", err)
	}

	var cfg *config.Config
	if legacy.Config != nil {
		cfg = config.Default()
		if legacy.Config.MonthStats != nil {
			cfg.StatsMonths = *legacy.Config.MonthStats
		}
		if legacy.Config.DailyHours != nil && *legacy.Config.DailyHours > 0 {
			cfg.DailyTarget = strconv.Itoa(*legacy.Config.DailyHours) + "h"
		}
	}
	return log, cfg, nil
}

type legacyBreak struct {
	start time.Time
	dur   time.Duration
}

// parseLegacyBreaks decodes the [[timestamp, {secs,nanos}], ...] pairs.
func parseLegacyBreaks(raw [][]json.RawMessage) ([]legacyBreak, error) {
	out := make([]legacyBreak, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, errclass.ErrMigration.WithMessagef("legacy break %d: expected [timestamp, duration] pair", i)
		}
		var ts time.Time
		if err := json.Unmarshal(pair[0], &ts); err != nil {
			return nil, errclass.ErrMigration.WithMessagef("legacy break %d: invalid timestamp: %v", i, err)
		}
		var d legacyDuration
		if err := json.Unmarshal(pair[1], &d); err != nil {
			return nil, errclass.ErrMigration.WithMessagef("legacy break %d: invalid duration: %v", i, err)
		}
		out = append(out, legacyBreak{start: ts, dur: d.duration()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out, nil
}
