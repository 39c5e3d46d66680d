// Package pathutil validates storage path overrides before any file I/O.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/punch-project/punch/pkg/errclass"
)

// ValidateStoragePath checks a --storage override. The path must name a
// regular file location: non-empty, no control characters, not an existing
// directory. The returned path is NFC-normalized and absolute.
func ValidateStoragePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errclass.ErrIO.WithMessage("storage path must not be empty")
	}

	// NFC normalize
	path = norm.NFC.String(path)

	for _, r := range path {
		if unicode.IsControl(r) {
			return "", errclass.ErrIO.WithMessagef("storage path must not contain control characters: %q", path)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errclass.ErrIO.WithMessagef("resolve storage path: %v", err)
	}

	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return "", errclass.ErrIO.WithMessagef("storage path is a directory: %s", abs)
	}

	return abs, nil
}
