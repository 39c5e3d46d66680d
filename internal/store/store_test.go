package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/punch-project/punch/internal/store"
	"github.com/punch-project/punch/pkg/errclass"
	"github.com/punch-project/punch/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(filepath.Join(t.TempDir(), store.FileName))
}

func sampleLog() *model.Log {
	log := &model.Log{}
	log.Append(model.NewEvent(model.KindStart, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)))
	log.Append(model.NewEvent(model.KindBreakStart, time.Date(2026, 8, 24, 12, 0, 0, 500_000_000, time.UTC)))
	log.Append(model.NewEvent(model.KindBreakStop, time.Date(2026, 8, 24, 12, 30, 0, 0, time.UTC)))
	log.Append(model.NewEvent(model.KindStop, time.Date(2026, 8, 24, 17, 0, 0, 0, time.UTC)))
	return log
}

func TestLoad_MissingFileIsNotFound(t *testing.T) {
	s := tempStore(t)
	_, err := s.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errclass.ErrStorageNotFound))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := tempStore(t)
	log := sampleLog()

	require.NoError(t, s.Save(log))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, log, loaded, "order, kinds and sub-second timestamps survive the round trip")
}

func TestSave_CreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	s := store.New(filepath.Join(dir, "nested", "punch", store.FileName))

	require.NoError(t, s.Save(sampleLog()))
	_, err := s.Load()
	assert.NoError(t, err)
}

func TestSave_RewritesWholeFile(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save(sampleLog()))

	short := &model.Log{}
	short.Append(model.NewEvent(model.KindStart, time.Date(2026, 8, 25, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, s.Save(short))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "punch punch punch"},
		{"wrong version", `{"version":99,"events":[]}`},
		{"missing version", `{"events":[]}`},
		{"unknown kind", `{"version":2,"events":[{"kind":"nap","timestamp":"2026-08-24T09:00:00Z"}]}`},
		{"bad timestamp", `{"version":2,"events":[{"kind":"start","timestamp":"yesterday"}]}`},
		{"illegal sequence", `{"version":2,"events":[
			{"kind":"stop","timestamp":"2026-08-24T09:00:00Z"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tempStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0644))

			_, err := s.Load()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errclass.ErrStorageCorrupt))
		})
	}
}

func TestLoad_EmptyEventList(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"version":2,"events":[]}`), 0644))

	log, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, log.Len())
}

func TestEncode_WireFormat(t *testing.T) {
	log := &model.Log{}
	log.Append(model.NewEvent(model.KindStart, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)))

	data, err := store.Encode(log)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 2`)
	assert.Contains(t, string(data), `"kind": "start"`)
	assert.Contains(t, string(data), `"2026-08-24T09:00:00Z"`)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/cfg", "storage.json"), store.DefaultPath("/cfg"))
}
