package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// AtomicFile streams into a temp file next to its destination. Nothing is
// visible at the destination until Commit.
type AtomicFile struct {
	*os.File
	path string
	done bool
}

// CreateAtomic opens a temp file that Commit renames to path.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &AtomicFile{File: f, path: path}, nil
}

// Commit closes the temp file and moves it into place. A nil *AtomicFile
// commits nothing.
func (a *AtomicFile) Commit() error {
	if a == nil || a.done {
		return nil
	}
	a.done = true
	if err := a.File.Close(); err != nil {
		_ = os.Remove(a.File.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(a.File.Name(), 0o644); err != nil {
		_ = os.Remove(a.File.Name())
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(a.File.Name(), a.path); err != nil {
		_ = os.Remove(a.File.Name())
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Abort discards the temp file. It is a no-op after Commit, so it can be deferred.
func (a *AtomicFile) Abort() {
	if a == nil || a.done {
		return
	}
	a.done = true
	_ = a.File.Close()
	_ = os.Remove(a.File.Name())
}
