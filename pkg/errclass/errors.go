package errclass

import "fmt"

// PunchError is a stable, machine-readable error class.
type PunchError struct {
	Code    string
	Message string
}

func (e *PunchError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PunchError) Is(target error) bool {
	t, ok := target.(*PunchError)
	return ok && e.Code == t.Code
}

// WithMessage returns a new PunchError with the same Code but a specific message.
func (e *PunchError) WithMessage(msg string) *PunchError {
	return &PunchError{Code: e.Code, Message: msg}
}

// WithMessagef returns a new PunchError with a formatted message.
func (e *PunchError) WithMessagef(format string, args ...any) *PunchError {
	return &PunchError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// All stable error classes.
var (
	// ErrParse covers malformed offset expressions and time-of-day strings.
	ErrParse = &PunchError{Code: "E_PARSE"}
	// ErrState covers actions that are illegal in the current session state.
	ErrState = &PunchError{Code: "E_STATE"}
	// ErrStorageNotFound means the storage file does not exist yet. Callers
	// treat it as an empty log on first use.
	ErrStorageNotFound = &PunchError{Code: "E_STORAGE_NOT_FOUND"}
	// ErrStorageCorrupt means the storage file exists but cannot be decoded.
	// Never auto-repaired.
	ErrStorageCorrupt = &PunchError{Code: "E_STORAGE_CORRUPT"}
	// ErrIO covers failures while writing the storage file.
	ErrIO = &PunchError{Code: "E_IO"}
	// ErrMigration means the storage file matches neither the legacy nor the
	// current layout.
	ErrMigration = &PunchError{Code: "E_MIGRATION"}
)
