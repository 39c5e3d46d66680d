// Package stats turns a raw event log into grouped net working durations
// compared against a configured daily target.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/punch-project/punch/pkg/model"
)

// Options configures one aggregation run. Now is the reference timestamp
// injected by the caller; the aggregator never reads the system clock.
type Options struct {
	Now time.Time
	// DailyTarget is the target per active day. Zero means no target.
	DailyTarget time.Duration
	// WindowMonths restricts the report to the most recent N calendar
	// months including the current one. Zero yields an empty report.
	WindowMonths int
	// MonthFilter keeps only buckets of the given calendar month when set.
	MonthFilter time.Month
}

// Bucket is one aggregation group (day, ISO week or month).
type Bucket struct {
	// Label identifies the bucket: "2026-08-24", "2026-W35" or "2026-08".
	Label string `json:"label"`
	// Net is the summed worked duration with breaks subtracted.
	Net time.Duration `json:"net"`
	// ActiveDays is the number of days in the bucket with at least one event.
	ActiveDays int `json:"active_days"`
	// Target is daily target times active days; zero when no target is set.
	Target time.Duration `json:"target"`
	// Delta is Net minus Target.
	Delta time.Duration `json:"delta"`
	// InProgress marks buckets containing a still-open work period.
	InProgress bool `json:"in_progress,omitempty"`
}

// Report is the aggregation result, buckets sorted ascending by label.
type Report struct {
	Days   []Bucket `json:"days"`
	Weeks  []Bucket `json:"weeks"`
	Months []Bucket `json:"months"`

	// State describes the session at report time.
	State model.SessionState `json:"-"`
	// OpenStart is the unmatched Start timestamp, if the session is open.
	OpenStart *time.Time `json:"open_start,omitempty"`
	// OpenBreak is the unmatched BreakStart timestamp, if any.
	OpenBreak *time.Time `json:"open_break,omitempty"`
}

// interval is one reconstructed work period with breaks already deducted.
type interval struct {
	start      time.Time
	net        time.Duration
	inProgress bool
}

// rollup accumulates day buckets into a week or month bucket.
type rollup struct {
	net        time.Duration
	activeDays int
	inProgress bool
}

// Aggregate walks the log in action order and produces the report.
// An empty log yields an empty report.
func Aggregate(log *model.Log, opts Options) *Report {
	report := &Report{State: log.State()}
	if open, ok := log.OpenStart(); ok {
		t := open.Timestamp
		report.OpenStart = &t
	}
	if open, ok := log.OpenBreak(); ok {
		t := open.Timestamp
		report.OpenBreak = &t
	}

	intervals := reconstruct(log, opts.Now)
	if len(intervals) == 0 || opts.WindowMonths <= 0 {
		return report
	}

	// Bucket net durations by the day of the Start timestamp. A session
	// crossing midnight belongs entirely to its start day.
	loc := opts.Now.Location()
	days := make(map[string]*rollup)
	dayStart := make(map[string]time.Time)
	for _, iv := range intervals {
		local := iv.start.In(loc)
		if iv.inProgress && !sameDay(local, opts.Now) {
			// A partial interval only ever counts for the current day.
			continue
		}
		key := local.Format(time.DateOnly)
		agg, ok := days[key]
		if !ok {
			agg = &rollup{activeDays: 1}
			days[key] = agg
			dayStart[key] = local
		}
		agg.net += iv.net
		agg.inProgress = agg.inProgress || iv.inProgress
	}

	weeks := make(map[string]*rollup)
	months := make(map[string]*rollup)
	for key, agg := range days {
		day := dayStart[key]
		// Buckets outside the window or the month filter are dropped,
		// not merely hidden.
		if !inWindow(day, opts.Now, opts.WindowMonths) {
			continue
		}
		if opts.MonthFilter != 0 && day.Month() != opts.MonthFilter {
			continue
		}
		report.Days = append(report.Days, Bucket{
			Label:      key,
			Net:        agg.net,
			ActiveDays: 1,
			Target:     opts.DailyTarget,
			Delta:      agg.net - opts.DailyTarget,
			InProgress: agg.inProgress,
		})

		isoYear, isoWeek := day.ISOWeek()
		accumulate(weeks, fmt.Sprintf("%04d-W%02d", isoYear, isoWeek), agg)
		accumulate(months, day.Format("2006-01"), agg)
	}

	report.Weeks = finishRollup(weeks, opts.DailyTarget)
	report.Months = finishRollup(months, opts.DailyTarget)
	sort.Slice(report.Days, func(i, j int) bool { return report.Days[i].Label < report.Days[j].Label })
	return report
}

// reconstruct pairs each Start with the next Stop in action order and
// deducts the breaks of that work period. A trailing open Start or
// BreakStart contributes a partial interval computed against now.
func reconstruct(log *model.Log, now time.Time) []interval {
	var (
		out       []interval
		openStart *time.Time
		openBreak *time.Time
		breakSum  time.Duration
	)
	for _, e := range log.Events {
		switch e.Kind {
		case model.KindStart:
			t := e.Timestamp
			openStart = &t
			openBreak = nil
			breakSum = 0
		case model.KindBreakStart:
			t := e.Timestamp
			openBreak = &t
		case model.KindBreakStop:
			if openBreak != nil {
				breakSum += e.Timestamp.Sub(*openBreak)
				openBreak = nil
			}
		case model.KindStop:
			if openStart != nil {
				net := e.Timestamp.Sub(*openStart) - breakSum
				out = append(out, interval{start: *openStart, net: net})
				openStart = nil
			}
		}
	}
	if openStart != nil {
		net := now.Sub(*openStart) - breakSum
		if openBreak != nil {
			net -= now.Sub(*openBreak)
		}
		out = append(out, interval{start: *openStart, net: net, inProgress: true})
	}
	return out
}

func accumulate(groups map[string]*rollup, key string, day *rollup) {
	r, ok := groups[key]
	if !ok {
		r = &rollup{}
		groups[key] = r
	}
	r.net += day.net
	r.activeDays++
	r.inProgress = r.inProgress || day.inProgress
}

func finishRollup(groups map[string]*rollup, dailyTarget time.Duration) []Bucket {
	out := make([]Bucket, 0, len(groups))
	for label, r := range groups {
		target := dailyTarget * time.Duration(r.activeDays)
		out = append(out, Bucket{
			Label:      label,
			Net:        r.net,
			ActiveDays: r.activeDays,
			Target:     target,
			Delta:      r.net - target,
			InProgress: r.inProgress,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// inWindow reports whether the day's calendar month lies within the last
// n months, counting the current month as the first.
func inWindow(day, now time.Time, n int) bool {
	diff := (now.Year()-day.Year())*12 + int(now.Month()) - int(day.Month())
	return diff >= 0 && diff < n
}
