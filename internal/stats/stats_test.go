package stats

import (
	"testing"
	"time"

	"github.com/punch-project/punch/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d, h, m int) time.Time {
	return time.Date(2026, 8, d, h, m, 0, 0, time.UTC)
}

func buildLog(events ...model.Event) *model.Log {
	log := &model.Log{}
	for _, e := range events {
		log.Append(e)
	}
	return log
}

func defaultOpts(now time.Time) Options {
	return Options{Now: now, WindowMonths: 2}
}

func TestAggregate_EmptyLog(t *testing.T) {
	report := Aggregate(&model.Log{}, defaultOpts(day(24, 18, 0)))
	assert.Empty(t, report.Days)
	assert.Empty(t, report.Weeks)
	assert.Empty(t, report.Months)
	assert.Equal(t, model.Idle, report.State)
}

// start 09:00, break 11:00-11:15, stop 17:00 -> 7h45m net.
func TestAggregate_SingleDayWithBreak(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(24, 9, 0)),
		model.NewEvent(model.KindBreakStart, day(24, 11, 0)),
		model.NewEvent(model.KindBreakStop, day(24, 11, 15)),
		model.NewEvent(model.KindStop, day(24, 17, 0)),
	)

	report := Aggregate(log, defaultOpts(day(24, 18, 0)))
	require.Len(t, report.Days, 1)
	assert.Equal(t, "2026-08-24", report.Days[0].Label)
	assert.Equal(t, 7*time.Hour+45*time.Minute, report.Days[0].Net)
	assert.False(t, report.Days[0].InProgress)
}

func TestAggregate_TargetDelta(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(24, 9, 0)),
		model.NewEvent(model.KindStop, day(24, 16, 0)),
		model.NewEvent(model.KindStart, day(25, 9, 0)),
		model.NewEvent(model.KindStop, day(25, 18, 0)),
	)

	opts := defaultOpts(day(25, 19, 0))
	opts.DailyTarget = 8 * time.Hour
	report := Aggregate(log, opts)

	require.Len(t, report.Days, 2)
	assert.Equal(t, -time.Hour, report.Days[0].Delta)
	assert.Equal(t, time.Hour, report.Days[1].Delta)

	// Both days fall into the same ISO week: 16h worked against 2x8h.
	require.Len(t, report.Weeks, 1)
	assert.Equal(t, "2026-W35", report.Weeks[0].Label)
	assert.Equal(t, 2, report.Weeks[0].ActiveDays)
	assert.Equal(t, 16*time.Hour, report.Weeks[0].Target)
	assert.Equal(t, time.Duration(0), report.Weeks[0].Delta)
}

// Days with zero events contribute no target: only active days count.
func TestAggregate_TargetSkipsInactiveDays(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(3, 9, 0)),
		model.NewEvent(model.KindStop, day(3, 17, 0)),
		model.NewEvent(model.KindStart, day(21, 9, 0)),
		model.NewEvent(model.KindStop, day(21, 17, 0)),
	)

	opts := defaultOpts(day(24, 12, 0))
	opts.DailyTarget = 8 * time.Hour
	report := Aggregate(log, opts)

	require.Len(t, report.Months, 1)
	assert.Equal(t, 2, report.Months[0].ActiveDays)
	assert.Equal(t, 16*time.Hour, report.Months[0].Target)
}

// Summing all daily buckets of a month equals the month bucket.
func TestAggregate_Additivity(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(3, 9, 0)),
		model.NewEvent(model.KindStop, day(3, 17, 30)),
		model.NewEvent(model.KindStart, day(10, 8, 0)),
		model.NewEvent(model.KindBreakStart, day(10, 12, 0)),
		model.NewEvent(model.KindBreakStop, day(10, 13, 0)),
		model.NewEvent(model.KindStop, day(10, 16, 0)),
		model.NewEvent(model.KindStart, day(24, 9, 15)),
		model.NewEvent(model.KindStop, day(24, 11, 45)),
	)

	report := Aggregate(log, defaultOpts(day(25, 9, 0)))
	var sum time.Duration
	for _, d := range report.Days {
		sum += d.Net
	}
	require.Len(t, report.Months, 1)
	assert.Equal(t, sum, report.Months[0].Net)
}

func TestAggregate_OpenSessionIsInProgress(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(24, 9, 0)),
	)

	report := Aggregate(log, defaultOpts(day(24, 12, 0)))
	require.Len(t, report.Days, 1)
	assert.True(t, report.Days[0].InProgress)
	assert.Equal(t, 3*time.Hour, report.Days[0].Net)
	assert.Equal(t, model.Working, report.State)
	require.NotNil(t, report.OpenStart)
	assert.Equal(t, day(24, 9, 0), *report.OpenStart)
}

func TestAggregate_OpenBreakReducesPartialInterval(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(24, 9, 0)),
		model.NewEvent(model.KindBreakStart, day(24, 11, 0)),
	)

	report := Aggregate(log, defaultOpts(day(24, 12, 0)))
	require.Len(t, report.Days, 1)
	// 3h since start minus 1h of open break.
	assert.Equal(t, 2*time.Hour, report.Days[0].Net)
	assert.True(t, report.Days[0].InProgress)
	assert.Equal(t, model.OnBreak, report.State)
	require.NotNil(t, report.OpenBreak)
}

// An open session started yesterday contributes nothing to older days.
func TestAggregate_StaleOpenSessionIgnored(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(23, 9, 0)),
	)

	report := Aggregate(log, defaultOpts(day(24, 12, 0)))
	assert.Empty(t, report.Days)
	assert.Equal(t, model.Working, report.State)
}

// A session crossing midnight is attributed entirely to its start day.
func TestAggregate_MidnightCrossingAttributedToStartDay(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(23, 22, 0)),
		model.NewEvent(model.KindStop, day(24, 2, 0)),
	)

	report := Aggregate(log, defaultOpts(day(24, 12, 0)))
	require.Len(t, report.Days, 1)
	assert.Equal(t, "2026-08-23", report.Days[0].Label)
	assert.Equal(t, 4*time.Hour, report.Days[0].Net)
}

func TestAggregate_WindowDropsOldBuckets(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)),
		model.NewEvent(model.KindStop, time.Date(2026, 4, 2, 17, 0, 0, 0, time.UTC)),
		model.NewEvent(model.KindStart, day(24, 9, 0)),
		model.NewEvent(model.KindStop, day(24, 17, 0)),
	)

	report := Aggregate(log, defaultOpts(day(24, 18, 0)))
	require.Len(t, report.Days, 1)
	assert.Equal(t, "2026-08-24", report.Days[0].Label)
	require.Len(t, report.Months, 1)
	assert.Equal(t, "2026-08", report.Months[0].Label)
}

func TestAggregate_ZeroWindowYieldsEmptyReport(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, day(24, 9, 0)),
		model.NewEvent(model.KindStop, day(24, 17, 0)),
	)

	opts := defaultOpts(day(24, 18, 0))
	opts.WindowMonths = 0
	report := Aggregate(log, opts)
	assert.Empty(t, report.Days)
	assert.Empty(t, report.Weeks)
	assert.Empty(t, report.Months)
}

func TestAggregate_MonthFilter(t *testing.T) {
	log := buildLog(
		model.NewEvent(model.KindStart, time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)),
		model.NewEvent(model.KindStop, time.Date(2026, 7, 30, 17, 0, 0, 0, time.UTC)),
		model.NewEvent(model.KindStart, day(24, 9, 0)),
		model.NewEvent(model.KindStop, day(24, 17, 0)),
	)

	opts := defaultOpts(day(24, 18, 0))
	opts.MonthFilter = time.July
	report := Aggregate(log, opts)
	require.Len(t, report.Days, 1)
	assert.Equal(t, "2026-07-30", report.Days[0].Label)
	require.Len(t, report.Months, 1)
	assert.Equal(t, "2026-07", report.Months[0].Label)
}

func TestReconstruct_PairsInActionOrder(t *testing.T) {
	// The second start is backdated before the first stop's timestamp;
	// pairing follows action order, not timestamp order.
	log := buildLog(
		model.NewEvent(model.KindStart, day(24, 9, 0)),
		model.NewEvent(model.KindStop, day(24, 17, 0)),
		model.NewEvent(model.KindStart, day(24, 16, 0)),
		model.NewEvent(model.KindStop, day(24, 18, 0)),
	)

	intervals := reconstruct(log, day(24, 19, 0))
	require.Len(t, intervals, 2)
	assert.Equal(t, 8*time.Hour, intervals[0].net)
	assert.Equal(t, 2*time.Hour, intervals[1].net)
}

func TestInWindow(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		day  time.Time
		n    int
		want bool
	}{
		{"same month", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 1, true},
		{"previous month within 2", time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), 2, true},
		{"previous month outside 1", time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC), 1, false},
		{"year boundary", time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), 9, true},
		{"future month", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 2, false},
		{"zero window", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inWindow(tt.day, now, tt.n))
		})
	}
}
