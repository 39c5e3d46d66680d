package model_test

import (
	"testing"
	"time"

	"github.com/punch-project/punch/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(h, m int) time.Time {
	return time.Date(2026, 8, 24, h, m, 0, 0, time.UTC)
}

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		input   string
		want    model.EventKind
		wantErr bool
	}{
		{"start", model.KindStart, false},
		{"stop", model.KindStop, false},
		{"break_start", model.KindBreakStart, false},
		{"break_stop", model.KindBreakStop, false},
		{"Start", "", true},
		{"work", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseEventKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEvent_NormalizesToUTC(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	local := time.Date(2026, 8, 24, 11, 0, 0, 0, berlin)

	e := model.NewEvent(model.KindStart, local)
	assert.Equal(t, time.UTC, e.Timestamp.Location())
	assert.True(t, e.Timestamp.Equal(local))
}

func TestLog_StateDerivation(t *testing.T) {
	tests := []struct {
		name  string
		kinds []model.EventKind
		want  model.SessionState
	}{
		{"empty", nil, model.Idle},
		{"open start", []model.EventKind{model.KindStart}, model.Working},
		{"closed day", []model.EventKind{model.KindStart, model.KindStop}, model.Idle},
		{"open break", []model.EventKind{model.KindStart, model.KindBreakStart}, model.OnBreak},
		{"closed break", []model.EventKind{model.KindStart, model.KindBreakStart, model.KindBreakStop}, model.Working},
		{
			"two days",
			[]model.EventKind{model.KindStart, model.KindStop, model.KindStart},
			model.Working,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log model.Log
			for i, k := range tt.kinds {
				log.Append(model.NewEvent(k, ts(9+i, 0)))
			}
			assert.Equal(t, tt.want, log.State())
		})
	}
}

func TestLog_OpenStart(t *testing.T) {
	var log model.Log
	_, ok := log.OpenStart()
	assert.False(t, ok)

	log.Append(model.NewEvent(model.KindStart, ts(9, 0)))
	log.Append(model.NewEvent(model.KindStop, ts(17, 0)))
	_, ok = log.OpenStart()
	assert.False(t, ok)

	log.Append(model.NewEvent(model.KindStart, ts(19, 0)))
	open, ok := log.OpenStart()
	require.True(t, ok)
	assert.Equal(t, ts(19, 0), open.Timestamp)
}

func TestLog_OpenBreak(t *testing.T) {
	var log model.Log
	log.Append(model.NewEvent(model.KindStart, ts(9, 0)))
	_, ok := log.OpenBreak()
	assert.False(t, ok)

	log.Append(model.NewEvent(model.KindBreakStart, ts(12, 0)))
	open, ok := log.OpenBreak()
	require.True(t, ok)
	assert.Equal(t, ts(12, 0), open.Timestamp)

	log.Append(model.NewEvent(model.KindBreakStop, ts(12, 30)))
	_, ok = log.OpenBreak()
	assert.False(t, ok)
}

func TestLog_RemoveLast(t *testing.T) {
	var log model.Log
	_, ok := log.RemoveLast()
	assert.False(t, ok)

	log.Append(model.NewEvent(model.KindStart, ts(9, 0)))
	log.Append(model.NewEvent(model.KindBreakStart, ts(11, 0)))

	removed, ok := log.RemoveLast()
	require.True(t, ok)
	assert.Equal(t, model.KindBreakStart, removed.Kind)
	assert.Equal(t, 1, log.Len())
	assert.Equal(t, model.Working, log.State())
}

func TestLog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		kinds   []model.EventKind
		wantErr bool
	}{
		{"empty", nil, false},
		{"full day with break", []model.EventKind{
			model.KindStart, model.KindBreakStart, model.KindBreakStop, model.KindStop,
		}, false},
		{"double start", []model.EventKind{model.KindStart, model.KindStart}, true},
		{"stop without start", []model.EventKind{model.KindStop}, true},
		{"break while idle", []model.EventKind{model.KindBreakStart}, true},
		{"nested break", []model.EventKind{
			model.KindStart, model.KindBreakStart, model.KindBreakStart,
		}, true},
		{"break stop while working", []model.EventKind{
			model.KindStart, model.KindBreakStop,
		}, true},
		{"stop during break", []model.EventKind{
			model.KindStart, model.KindBreakStart, model.KindStop,
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log model.Log
			for i, k := range tt.kinds {
				log.Append(model.NewEvent(k, ts(9+i, 0)))
			}
			err := log.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLog_CloneIsIndependent(t *testing.T) {
	var log model.Log
	log.Append(model.NewEvent(model.KindStart, ts(9, 0)))

	clone := log.Clone()
	clone.Append(model.NewEvent(model.KindStop, ts(17, 0)))

	assert.Equal(t, 1, log.Len())
	assert.Equal(t, 2, clone.Len())
}
