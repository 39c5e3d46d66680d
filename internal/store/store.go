// Package store persists the event log as a single versioned JSON file.
// The file is read in full and replaced wholesale on every mutation; there
// is no append path and no partial-write recovery beyond the atomic rename.
package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/punch-project/punch/pkg/errclass"
	"github.com/punch-project/punch/pkg/fsutil"
	"github.com/punch-project/punch/pkg/model"
)

// CurrentVersion is the storage format version written by this build.
const CurrentVersion = 2

// FileName is the storage file name inside the punch config directory.
const FileName = "storage.json"

// storageFile is the wire representation of the event log.
type storageFile struct {
	Version int         `json:"version"`
	Events  []wireEvent `json:"events"`
}

type wireEvent struct {
	Kind      string `json:"kind"`
	Timestamp string `json:"timestamp"`
}

// Store reads and writes one storage file. It assumes a single invocation
// per path at a time; concurrent writers are a documented hazard.
type Store struct {
	path string
}

// New creates a store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the storage file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and decodes the full event log.
//
// A missing file is ErrStorageNotFound, which callers treat as an empty
// log on first use. Anything undecodable is ErrStorageCorrupt and fatal
// for the invoking command: silently dropping events would break the
// audit trail this tool exists to keep.
func (s *Store) Load() (*model.Log, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, errclass.ErrStorageNotFound.WithMessagef("no storage file at %s", s.path)
	}
	if err != nil {
		return nil, errclass.ErrIO.WithMessagef("read storage: %v", err)
	}
	return Decode(data)
}

// Decode parses storage file content into an event log.
func Decode(data []byte) (*model.Log, error) {
	var file storageFile
	if err := sonic.Unmarshal(data, &file); err != nil {
		return nil, errclass.ErrStorageCorrupt.WithMessagef("invalid JSON: %v", err)
	}
	if file.Version != CurrentVersion {
		return nil, errclass.ErrStorageCorrupt.WithMessagef(
			"unsupported storage version %d, expected %d (try 'punch migrate')", file.Version, CurrentVersion)
	}

	log := &model.Log{}
	for i, we := range file.Events {
		kind, err := model.ParseEventKind(we.Kind)
		if err != nil {
			return nil, errclass.ErrStorageCorrupt.WithMessagef("event %d: %v", i, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, we.Timestamp)
		if err != nil {
			return nil, errclass.ErrStorageCorrupt.WithMessagef("event %d: invalid timestamp %q", i, we.Timestamp)
		}
		log.Append(model.NewEvent(kind, ts))
	}
	if err := log.Validate(); err != nil {
		return nil, errclass.ErrStorageCorrupt.WithMessagef("inconsistent event sequence: %v", err)
	}
	return log, nil
}

// Save encodes the log and atomically replaces the storage file.
func (s *Store) Save(log *model.Log) error {
	data, err := Encode(log)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errclass.ErrIO.WithMessagef("create storage dir: %v", err)
	}
	if err := fsutil.AtomicWrite(s.path, data, 0644); err != nil {
		return errclass.ErrIO.WithMessagef("write storage: %v", err)
	}
	return nil
}

// Encode serializes the log in the current storage layout.
func Encode(log *model.Log) ([]byte, error) {
	file := storageFile{
		Version: CurrentVersion,
		Events:  make([]wireEvent, 0, log.Len()),
	}
	for _, e := range log.Events {
		file.Events = append(file.Events, wireEvent{
			Kind:      e.Kind.String(),
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}
	data, err := sonic.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, errclass.ErrIO.WithMessagef("encode storage: %v", err)
	}
	return data, nil
}

// DefaultPath returns the storage location under the user's config dir.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, FileName)
}
